package cognitive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/feedback/domain"
	"github.com/apexclaims/feedback/internal/remote"
)

// systemPrompt is the fixed persona for generated customer responses.
const systemPrompt = `You are a helpful customer service representative. Generate a professional, empathetic response to customer feedback.

Guidelines:
- Be warm and professional
- Acknowledge their specific concerns
- If sentiment is negative, apologize and offer to help
- If sentiment is positive, thank them genuinely
- Keep response under 150 words
- Do not make promises you cannot keep
- Sign off as "Customer Support Team"`

// GeneratorClient calls a chat-completions deployment to generate a
// customer-facing reply. An unconfigured client reports itself as such so the
// pipeline can fall back to the fixed templates without making a call.
type GeneratorClient struct {
	client     *remote.Client
	endpoint   string
	apiKey     string
	deployment string
	logger     *slog.Logger
}

// NewGeneratorClient creates a GeneratorClient for the given deployment.
func NewGeneratorClient(client *remote.Client, endpoint, apiKey, deployment string, logger *slog.Logger) *GeneratorClient {
	return &GeneratorClient{
		client:     client,
		endpoint:   endpoint,
		apiKey:     apiKey,
		deployment: deployment,
		logger:     logger,
	}
}

// Configured reports whether a generation backend is available.
func (c *GeneratorClient) Configured() bool {
	return c.endpoint != "" && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// GenerateResponse generates a reply for the given customer using the
// analysis text, sentiment, and extracted entities.
func (c *GeneratorClient) GenerateResponse(
	ctx context.Context,
	customerName, text string,
	sentiment domain.Sentiment,
	entities domain.EntityGroups,
) (string, error) {
	if !c.Configured() {
		return "", apperrors.Wrap(apperrors.ErrUnavailable, "generation backend not configured")
	}

	entitiesJSON, err := json.Marshal(entities)
	if err != nil {
		return "", apperrors.Wrap(err, "encode entities")
	}

	userPrompt := fmt.Sprintf(
		"Customer Name: %s\nSentiment: %s\nTheir Feedback: %q\nEntities Mentioned: %s\n\nGenerate an appropriate response:",
		customerName, sentiment, text, entitiesJSON,
	)

	request := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	url := fmt.Sprintf(
		"%s/openai/deployments/%s/chat/completions?api-version=2024-02-15-preview",
		c.endpoint, c.deployment,
	)
	headers := map[string]string{"api-key": c.apiKey}

	if err := c.client.Post(ctx, url, headers, request, &response); err != nil {
		return "", apperrors.Wrap(err, "response generation failed")
	}
	if len(response.Choices) == 0 {
		return "", apperrors.New("response generation returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}
