package cognitive

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/remote"
)

const regionHeader = "Ocp-Apim-Subscription-Region"

// TranslatorClient calls the translation service. Source and target languages
// travel in the URL; the body is a bare array of text items.
type TranslatorClient struct {
	client   *remote.Client
	endpoint string
	apiKey   string
	region   string
	logger   *slog.Logger
}

// NewTranslatorClient creates a TranslatorClient for the given service
// endpoint, subscription key, and region.
func NewTranslatorClient(client *remote.Client, endpoint, apiKey, region string, logger *slog.Logger) *TranslatorClient {
	return &TranslatorClient{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		region:   region,
		logger:   logger,
	}
}

// Translate translates text from the given source language into English.
func (c *TranslatorClient) Translate(ctx context.Context, text, fromLanguage string) (string, error) {
	url := fmt.Sprintf("%s/translate?api-version=3.0&from=%s&to=en", c.endpoint, fromLanguage)
	request := []map[string]string{{"text": text}}
	headers := map[string]string{
		subscriptionKeyHeader: c.apiKey,
		regionHeader:          c.region,
	}

	var response []struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}

	if err := c.client.Post(ctx, url, headers, request, &response); err != nil {
		return "", apperrors.Wrap(err, "translation failed")
	}
	if len(response) == 0 || len(response[0].Translations) == 0 {
		return "", apperrors.New("translation returned no results")
	}

	return response[0].Translations[0].Text, nil
}
