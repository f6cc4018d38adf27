// Package cognitive provides HTTP adapters for the text analytics, translation,
// and response generation services consumed by the enrichment pipeline. Each
// adapter performs a single call through the shared remote boundary wrapper
// and maps the service wire format onto domain types.
package cognitive

import (
	"context"
	"log/slog"

	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/feedback/domain"
	"github.com/apexclaims/feedback/internal/remote"
)

const subscriptionKeyHeader = "Ocp-Apim-Subscription-Key"

// document is the shared request document shape of the text analytics endpoints.
type document struct {
	ID       string `json:"id"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text"`
}

type documentsRequest struct {
	Documents []document `json:"documents"`
}

// TextAnalyticsClient calls the language detection, sentiment, key-phrase,
// and entity recognition endpoints of a text analytics service.
type TextAnalyticsClient struct {
	client   *remote.Client
	endpoint string
	apiKey   string
	logger   *slog.Logger
}

// NewTextAnalyticsClient creates a TextAnalyticsClient for the given service
// endpoint and subscription key.
func NewTextAnalyticsClient(client *remote.Client, endpoint, apiKey string, logger *slog.Logger) *TextAnalyticsClient {
	return &TextAnalyticsClient{
		client:   client,
		endpoint: endpoint,
		apiKey:   apiKey,
		logger:   logger,
	}
}

func (c *TextAnalyticsClient) headers() map[string]string {
	return map[string]string{subscriptionKeyHeader: c.apiKey}
}

// DetectLanguage detects the dominant language of the given text.
func (c *TextAnalyticsClient) DetectLanguage(ctx context.Context, text string) (domain.DetectedLanguage, error) {
	request := documentsRequest{Documents: []document{{ID: "1", Text: text}}}

	var response struct {
		Documents []struct {
			DetectedLanguage struct {
				ISO6391Name     string  `json:"iso6391Name"`
				Name            string  `json:"name"`
				ConfidenceScore float64 `json:"confidenceScore"`
			} `json:"detectedLanguage"`
		} `json:"documents"`
	}

	url := c.endpoint + "/text/analytics/v3.1/languages"
	if err := c.client.Post(ctx, url, c.headers(), request, &response); err != nil {
		return domain.DetectedLanguage{}, apperrors.Wrap(err, "language detection failed")
	}
	if len(response.Documents) == 0 {
		return domain.DetectedLanguage{}, apperrors.New("language detection returned no documents")
	}

	detected := response.Documents[0].DetectedLanguage
	return domain.DetectedLanguage{
		Code:       detected.ISO6391Name,
		Name:       detected.Name,
		Confidence: detected.ConfidenceScore,
	}, nil
}

// AnalyzeSentiment analyzes sentiment and key phrases of the given text.
// Two calls are made against the same document shape.
func (c *TextAnalyticsClient) AnalyzeSentiment(ctx context.Context, text string) (domain.SentimentAnalysis, error) {
	request := documentsRequest{Documents: []document{{ID: "1", Language: "en", Text: text}}}

	var sentimentResponse struct {
		Documents []struct {
			Sentiment        string `json:"sentiment"`
			ConfidenceScores struct {
				Positive float64 `json:"positive"`
				Neutral  float64 `json:"neutral"`
				Negative float64 `json:"negative"`
			} `json:"confidenceScores"`
		} `json:"documents"`
	}

	sentimentURL := c.endpoint + "/text/analytics/v3.1/sentiment"
	if err := c.client.Post(ctx, sentimentURL, c.headers(), request, &sentimentResponse); err != nil {
		return domain.SentimentAnalysis{}, apperrors.Wrap(err, "sentiment analysis failed")
	}
	if len(sentimentResponse.Documents) == 0 {
		return domain.SentimentAnalysis{}, apperrors.New("sentiment analysis returned no documents")
	}

	var keyPhrasesResponse struct {
		Documents []struct {
			KeyPhrases []string `json:"keyPhrases"`
		} `json:"documents"`
	}

	keyPhrasesURL := c.endpoint + "/text/analytics/v3.1/keyPhrases"
	if err := c.client.Post(ctx, keyPhrasesURL, c.headers(), request, &keyPhrasesResponse); err != nil {
		return domain.SentimentAnalysis{}, apperrors.Wrap(err, "key phrase extraction failed")
	}

	doc := sentimentResponse.Documents[0]
	analysis := domain.SentimentAnalysis{
		Sentiment: domain.ParseSentiment(doc.Sentiment),
		Scores: domain.ConfidenceScores{
			Positive: doc.ConfidenceScores.Positive,
			Neutral:  doc.ConfidenceScores.Neutral,
			Negative: doc.ConfidenceScores.Negative,
		},
	}
	if len(keyPhrasesResponse.Documents) > 0 {
		analysis.KeyPhrases = keyPhrasesResponse.Documents[0].KeyPhrases
	}

	return analysis, nil
}

// ExtractEntities extracts named entities from the given text, grouped by
// category.
func (c *TextAnalyticsClient) ExtractEntities(ctx context.Context, text string) (domain.EntityGroups, error) {
	request := documentsRequest{Documents: []document{{ID: "1", Language: "en", Text: text}}}

	var response struct {
		Documents []struct {
			Entities []struct {
				Text            string  `json:"text"`
				Category        string  `json:"category"`
				Subcategory     string  `json:"subcategory"`
				ConfidenceScore float64 `json:"confidenceScore"`
			} `json:"entities"`
		} `json:"documents"`
	}

	url := c.endpoint + "/text/analytics/v3.1/entities/recognition/general"
	if err := c.client.Post(ctx, url, c.headers(), request, &response); err != nil {
		return nil, apperrors.Wrap(err, "entity extraction failed")
	}
	if len(response.Documents) == 0 {
		return nil, apperrors.New("entity extraction returned no documents")
	}

	groups := domain.EntityGroups{}
	for _, entity := range response.Documents[0].Entities {
		var subcategory *string
		if entity.Subcategory != "" {
			s := entity.Subcategory
			subcategory = &s
		}
		groups[entity.Category] = append(groups[entity.Category], domain.Entity{
			Text:        entity.Text,
			Confidence:  entity.ConfidenceScore,
			Subcategory: subcategory,
		})
	}

	if c.logger != nil {
		c.logger.Debug("entities extracted", slog.Int("count", groups.Count()))
	}

	return groups, nil
}
