package publisher

import (
	"context"
	"encoding/json"
	"log/slog"

	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/mempubsub"

	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/feedback/domain"
)

// PubSubPublisher delivers analyzed feedback through a gocloud.dev topic URL,
// carrying the routing attributes as message metadata.
type PubSubPublisher struct {
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewPubSubPublisher opens the topic identified by topicURL.
func NewPubSubPublisher(ctx context.Context, topicURL string, logger *slog.Logger) (*PubSubPublisher, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, apperrors.Wrapf(err, "open topic %s", topicURL)
	}
	return &PubSubPublisher{topic: topic, logger: logger}, nil
}

// Publish sends the enriched feedback as a JSON message.
func (p *PubSubPublisher) Publish(ctx context.Context, enriched *domain.EnrichedFeedback) error {
	body, err := json.Marshal(enriched)
	if err != nil {
		return apperrors.Wrap(err, "encode message")
	}

	message := &pubsub.Message{
		Body:     body,
		Metadata: attributes(enriched),
	}
	if err := p.topic.Send(ctx, message); err != nil {
		return apperrors.Wrap(err, "publish to topic")
	}

	if p.logger != nil {
		p.logger.Info("feedback published",
			slog.String("feedback_id", enriched.FeedbackID),
			slog.String("sentiment", string(enriched.SentimentCategory)),
			slog.String("priority", string(enriched.Priority)),
		)
	}

	return nil
}

// Shutdown releases the topic.
func (p *PubSubPublisher) Shutdown(ctx context.Context) error {
	return p.topic.Shutdown(ctx)
}
