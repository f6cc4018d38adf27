package app

import (
	"context"
	"fmt"

	"github.com/apexclaims/feedback/internal/cognitive"
	"github.com/apexclaims/feedback/internal/publisher"

	feedbackHTTP "github.com/apexclaims/feedback/internal/feedback/http"
	feedbackUsecase "github.com/apexclaims/feedback/internal/feedback/usecase"
)

// Publisher returns the outbound publisher selected by PublisherDriver.
func (c *Container) Publisher() (publisher.Publisher, error) {
	var err error
	c.publisherInit.Do(func() {
		c.publisher, err = c.initPublisher()
		if err != nil {
			c.initErrors["publisher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publisher"]; exists {
		return nil, storedErr
	}
	return c.publisher, nil
}

// Pipeline returns the feedback enrichment pipeline instance.
func (c *Container) Pipeline() (*feedbackUsecase.Pipeline, error) {
	var err error
	c.pipelineInit.Do(func() {
		c.pipeline, err = c.initPipeline()
		if err != nil {
			c.initErrors["pipeline"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pipeline"]; exists {
		return nil, storedErr
	}
	return c.pipeline, nil
}

// FeedbackHandler returns the feedback HTTP handler instance.
func (c *Container) FeedbackHandler() (*feedbackHTTP.FeedbackHandler, error) {
	var err error
	c.feedbackHandlerInit.Do(func() {
		var pipeline *feedbackUsecase.Pipeline
		pipeline, err = c.Pipeline()
		if err != nil {
			c.initErrors["feedbackHandler"] = err
			return
		}
		c.feedbackHandler = feedbackHTTP.NewFeedbackHandler(pipeline, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["feedbackHandler"]; exists {
		return nil, storedErr
	}
	return c.feedbackHandler, nil
}

// Subscriber returns the worker's topic subscriber. The context is used to
// open the subscription and should outlive the worker.
func (c *Container) Subscriber(ctx context.Context) (*publisher.Subscriber, error) {
	var err error
	c.subscriberInit.Do(func() {
		if c.config.PubSubSubscriptionURL == "" {
			err = fmt.Errorf("PUBSUB_SUBSCRIPTION_URL is required for the worker")
			c.initErrors["subscriber"] = err
			return
		}
		c.subscriber, err = publisher.NewSubscriber(
			ctx,
			c.config.PubSubSubscriptionURL,
			c.config.WorkerConcurrency,
			c.Logger(),
		)
		if err != nil {
			c.initErrors["subscriber"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["subscriber"]; exists {
		return nil, storedErr
	}
	return c.subscriber, nil
}

// initPublisher creates the publisher selected by configuration.
func (c *Container) initPublisher() (publisher.Publisher, error) {
	logger := c.Logger()

	switch c.config.PublisherDriver {
	case "servicebus":
		if c.config.ServiceBusKey == "" {
			return nil, fmt.Errorf("SERVICEBUS_KEY is required for the servicebus publisher")
		}
		endpoint := fmt.Sprintf("https://%s.servicebus.windows.net", c.config.ServiceBusNamespace)
		return publisher.NewServiceBusPublisher(
			c.RemoteClient(),
			endpoint,
			c.config.ServiceBusTopic,
			c.config.ServiceBusKeyName,
			c.config.ServiceBusKey,
			logger,
		), nil
	case "pubsub":
		pub, err := publisher.NewPubSubPublisher(context.Background(), c.config.PubSubTopicURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create pubsub publisher: %w", err)
		}
		return pub, nil
	default:
		return nil, fmt.Errorf("unsupported publisher driver: %s", c.config.PublisherDriver)
	}
}

// initPipeline creates the pipeline with its cognitive service backends.
func (c *Container) initPipeline() (*feedbackUsecase.Pipeline, error) {
	logger := c.Logger()
	client := c.RemoteClient()

	business, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for pipeline: %w", err)
	}

	pub, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for pipeline: %w", err)
	}

	analytics := cognitive.NewTextAnalyticsClient(client, c.config.CognitiveEndpoint, c.config.CognitiveKey, logger)

	translatorKey := c.config.TranslatorKey
	if translatorKey == "" {
		translatorKey = c.config.CognitiveKey
	}
	translator := cognitive.NewTranslatorClient(client, c.config.TranslatorEndpoint, translatorKey, c.config.TranslatorRegion, logger)

	generator := cognitive.NewGeneratorClient(client, c.config.OpenAIEndpoint, c.config.OpenAIKey, c.config.OpenAIDeployment, logger)

	return feedbackUsecase.NewPipeline(
		analytics,
		translator,
		analytics,
		analytics,
		generator,
		pub,
		business,
		logger,
	), nil
}
