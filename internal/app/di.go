// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/apexclaims/feedback/internal/config"
	"github.com/apexclaims/feedback/internal/http"
	"github.com/apexclaims/feedback/internal/metrics"
	"github.com/apexclaims/feedback/internal/publisher"
	"github.com/apexclaims/feedback/internal/remote"

	claimsHTTP "github.com/apexclaims/feedback/internal/claims/http"
	claimsRepository "github.com/apexclaims/feedback/internal/claims/repository"
	claimsUsecase "github.com/apexclaims/feedback/internal/claims/usecase"
	feedbackHTTP "github.com/apexclaims/feedback/internal/feedback/http"
	feedbackUsecase "github.com/apexclaims/feedback/internal/feedback/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger       *slog.Logger
	remoteClient *remote.Client

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Publisher
	publisher publisher.Publisher

	// Repositories
	claimRepo *claimsRepository.MemoryClaimRepository

	// Use cases
	pipeline      *feedbackUsecase.Pipeline
	enricher      *claimsUsecase.Enricher
	fraudScorer   *claimsUsecase.FraudScorer
	geocodeLookup *claimsUsecase.GeocodeLookup
	weatherLookup *claimsUsecase.WeatherLookup

	// Handlers
	feedbackHandler *feedbackHTTP.FeedbackHandler
	claimsHandler   *claimsHTTP.ClaimsHandler

	// Servers and Workers
	httpServer    *http.Server
	metricsServer *http.MetricsServer
	subscriber    *publisher.Subscriber

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	remoteClientInit    sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	publisherInit       sync.Once
	claimRepoInit       sync.Once
	pipelineInit        sync.Once
	enricherInit        sync.Once
	fraudScorerInit     sync.Once
	geocodeLookupInit   sync.Once
	weatherLookupInit   sync.Once
	feedbackHandlerInit sync.Once
	claimsHandlerInit   sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	subscriberInit      sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// RemoteClient returns the shared HTTP client used for every external call.
func (c *Container) RemoteClient() *remote.Client {
	c.remoteClientInit.Do(func() {
		c.remoteClient = remote.NewClient(c.config.RemoteTimeout, c.Logger())
	})
	return c.remoteClient
}

// RetryPolicy returns the backoff policy applied to retried external calls.
func (c *Container) RetryPolicy() remote.Policy {
	return remote.Policy{
		MaxAttempts: c.config.RetryMaxAttempts,
		BaseDelay:   c.config.RetryBaseDelay,
	}
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		var provider *metrics.Provider
		provider, err = c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.subscriber != nil {
		if err := c.subscriber.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("subscriber shutdown: %w", err))
		}
	}

	if pubsubPublisher, ok := c.publisher.(*publisher.PubSubPublisher); ok {
		if err := pubsubPublisher.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("publisher shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	business, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return business, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	pub, err := c.Publisher()
	if err != nil {
		return nil, fmt.Errorf("failed to get publisher for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	feedbackHandler, err := c.FeedbackHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback handler for http server: %w", err)
	}

	claimsHandler, err := c.ClaimsHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get claims handler for http server: %w", err)
	}

	server := http.NewServer(
		pub,
		c.config.ServerHost,
		c.config.ServerPort,
		logger,
	)
	server.SetupRouter(c.config, provider, feedbackHandler, claimsHandler)

	return server, nil
}
