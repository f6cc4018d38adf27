package publisher

import (
	"context"
	"log/slog"

	"gocloud.dev/pubsub"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/apexclaims/feedback/internal/errors"
)

// Handler processes one received message. A non-nil error causes the message
// to be redelivered when the broker supports negative acknowledgement.
type Handler func(ctx context.Context, body []byte, metadata map[string]string) error

// Subscriber consumes a gocloud.dev subscription URL with a fixed number of
// concurrent receivers.
type Subscriber struct {
	subscription *pubsub.Subscription
	concurrency  int
	logger       *slog.Logger
}

// NewSubscriber opens the subscription identified by subscriptionURL.
func NewSubscriber(ctx context.Context, subscriptionURL string, concurrency int, logger *slog.Logger) (*Subscriber, error) {
	subscription, err := pubsub.OpenSubscription(ctx, subscriptionURL)
	if err != nil {
		return nil, apperrors.Wrapf(err, "open subscription %s", subscriptionURL)
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Subscriber{
		subscription: subscription,
		concurrency:  concurrency,
		logger:       logger,
	}, nil
}

// Run receives messages until ctx is cancelled, dispatching each to handler.
// It returns nil on cancellation and the receive error otherwise.
func (s *Subscriber) Run(ctx context.Context, handler Handler) error {
	group, ctx := errgroup.WithContext(ctx)

	for i := 0; i < s.concurrency; i++ {
		group.Go(func() error {
			for {
				message, err := s.subscription.Receive(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return apperrors.Wrap(err, "receive message")
				}

				if err := handler(ctx, message.Body, message.Metadata); err != nil {
					if s.logger != nil {
						s.logger.Error("message handling failed", slog.String("error", err.Error()))
					}
					if message.Nackable() {
						message.Nack()
						continue
					}
				}
				message.Ack()
			}
		})
	}

	return group.Wait()
}

// Shutdown releases the subscription.
func (s *Subscriber) Shutdown(ctx context.Context) error {
	return s.subscription.Shutdown(ctx)
}
