package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/apexclaims/feedback/internal/errors"
	"github.com/apexclaims/feedback/internal/feedback/domain"
	"github.com/apexclaims/feedback/internal/remote"
)

// ServiceBusPublisher posts analyzed feedback to a service bus topic over its
// REST endpoint, minting a fresh shared access signature per message. It does
// not retry: a feedback record must be delivered at most once per pipeline run.
type ServiceBusPublisher struct {
	client   *remote.Client
	endpoint string
	topic    string
	keyName  string
	key      string
	logger   *slog.Logger
	now      func() time.Time
}

// NewServiceBusPublisher creates a ServiceBusPublisher for the topic under the
// given namespace endpoint, e.g. https://my-namespace.servicebus.windows.net.
func NewServiceBusPublisher(client *remote.Client, endpoint, topic, keyName, key string, logger *slog.Logger) *ServiceBusPublisher {
	return &ServiceBusPublisher{
		client:   client,
		endpoint: endpoint,
		topic:    topic,
		keyName:  keyName,
		key:      key,
		logger:   logger,
		now:      time.Now,
	}
}

// Publish sends the enriched feedback as a JSON message with routing headers
// for sentiment category and priority.
func (p *ServiceBusPublisher) Publish(ctx context.Context, enriched *domain.EnrichedFeedback) error {
	topicURI := fmt.Sprintf("%s/%s", p.endpoint, p.topic)

	brokerProperties, err := json.Marshal(struct {
		Label string `json:"Label"`
	}{Label: string(enriched.SentimentCategory)})
	if err != nil {
		return apperrors.Wrap(err, "encode broker properties")
	}

	headers := attributes(enriched)
	headers["Authorization"] = sasToken(topicURI, p.keyName, p.key, p.now().Add(sasTokenTTL))
	headers["BrokerProperties"] = string(brokerProperties)

	if err := p.client.Post(ctx, topicURI+"/messages", headers, enriched, nil); err != nil {
		return apperrors.Wrap(err, "publish to topic")
	}

	if p.logger != nil {
		p.logger.Info("feedback published",
			slog.String("feedback_id", enriched.FeedbackID),
			slog.String("topic", p.topic),
			slog.String("sentiment", string(enriched.SentimentCategory)),
			slog.String("priority", string(enriched.Priority)),
		)
	}

	return nil
}
