// Package publisher delivers analyzed feedback to the downstream topic. Two
// drivers are available: a direct REST publisher for a shared-access-signature
// secured service bus topic, and a portable driver built on gocloud.dev pubsub
// URLs for local and alternative brokers.
package publisher

import (
	"context"

	"github.com/apexclaims/feedback/internal/feedback/domain"
)

// Publisher delivers one analyzed feedback record to the topic.
type Publisher interface {
	Publish(ctx context.Context, enriched *domain.EnrichedFeedback) error
}

// attributes returns the routing attributes attached to every published
// message so subscribers can filter without decoding the body.
func attributes(enriched *domain.EnrichedFeedback) map[string]string {
	return map[string]string{
		"sentimentCategory": string(enriched.SentimentCategory),
		"priority":          string(enriched.Priority),
	}
}
