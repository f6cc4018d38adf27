// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. It is resolved once at startup
// and passed to constructors; components never read the environment directly.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// CognitiveEndpoint is the base URL of the text analytics service.
	CognitiveEndpoint string
	// CognitiveKey is the subscription key for the text analytics service.
	CognitiveKey string

	// TranslatorEndpoint is the base URL of the translation service.
	TranslatorEndpoint string
	// TranslatorKey is the subscription key for the translation service.
	// Falls back to CognitiveKey when empty.
	TranslatorKey string
	// TranslatorRegion is the region header sent to the translation service.
	TranslatorRegion string

	// OpenAIEndpoint is the base URL of the response generation service.
	// Leave empty to disable generation and use the template fallback.
	OpenAIEndpoint string
	// OpenAIKey is the API key for the response generation service.
	OpenAIKey string
	// OpenAIDeployment is the model deployment used for response generation.
	OpenAIDeployment string

	// RemoteTimeout is the fixed timeout applied to every external call.
	RemoteTimeout time.Duration
	// RetryMaxAttempts is the attempt cap for retried external calls.
	RetryMaxAttempts int
	// RetryBaseDelay is the backoff delay before the second attempt; it
	// doubles on each subsequent attempt.
	RetryBaseDelay time.Duration

	// PublisherDriver selects the outbound delivery mechanism
	// ("servicebus" or "pubsub").
	PublisherDriver string
	// ServiceBusNamespace is the Service Bus namespace for the REST publisher.
	ServiceBusNamespace string
	// ServiceBusTopic is the topic analyzed feedback is published to.
	ServiceBusTopic string
	// ServiceBusKeyName is the shared access key name used for SAS signing.
	ServiceBusKeyName string
	// ServiceBusKey is the shared access key used for SAS signing.
	ServiceBusKey string
	// PubSubTopicURL is the gocloud.dev topic URL for the pubsub publisher.
	PubSubTopicURL string
	// PubSubSubscriptionURL is the gocloud.dev subscription URL consumed by
	// the worker.
	PubSubSubscriptionURL string
	// WorkerConcurrency is the number of concurrent message handlers in the
	// worker.
	WorkerConcurrency int

	// GeocodeAPIURL is the geocode lookup endpoint used for claim enrichment.
	GeocodeAPIURL string
	// GeocodeAPIKey is the function key for the geocode lookup endpoint.
	GeocodeAPIKey string
	// WeatherAPIURL is the weather lookup endpoint used for claim enrichment.
	WeatherAPIURL string
	// WeatherAPIKey is the function key for the weather lookup endpoint.
	WeatherAPIKey string

	// MapsSearchURL is the upstream address search endpoint backing the
	// geocode lookup service.
	MapsSearchURL string
	// MapsKey is the subscription key for the upstream address search.
	MapsKey string
	// MeteoArchiveURL is the upstream historical weather archive endpoint
	// backing the weather lookup service.
	MeteoArchiveURL string

	// RateLimitEnabled indicates whether API rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for API rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// ShutdownTimeout bounds graceful shutdown of the servers and worker.
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Cognitive services
		CognitiveEndpoint:  env.GetString("COGNITIVE_ENDPOINT", ""),
		CognitiveKey:       env.GetString("COGNITIVE_KEY", ""),
		TranslatorEndpoint: env.GetString("TRANSLATOR_ENDPOINT", "https://api.cognitive.microsofttranslator.com"),
		TranslatorKey:      env.GetString("TRANSLATOR_KEY", ""),
		TranslatorRegion:   env.GetString("TRANSLATOR_REGION", "eastus"),
		OpenAIEndpoint:     env.GetString("OPENAI_ENDPOINT", ""),
		OpenAIKey:          env.GetString("OPENAI_KEY", ""),
		OpenAIDeployment:   env.GetString("OPENAI_DEPLOYMENT", "gpt-35-turbo"),

		// External call discipline
		RemoteTimeout:    env.GetDuration("REMOTE_TIMEOUT_SECONDS", 15, time.Second),
		RetryMaxAttempts: env.GetInt("RETRY_MAX_ATTEMPTS", 3),
		RetryBaseDelay:   env.GetDuration("RETRY_BASE_DELAY_MS", 500, time.Millisecond),

		// Publisher
		PublisherDriver:       env.GetString("PUBLISHER_DRIVER", "servicebus"),
		ServiceBusNamespace:   env.GetString("SERVICEBUS_NAMESPACE", "sb-feedback-demo"),
		ServiceBusTopic:       env.GetString("SERVICEBUS_TOPIC", "feedback-analyzed"),
		ServiceBusKeyName:     env.GetString("SERVICEBUS_KEY_NAME", "RootManageSharedAccessKey"),
		ServiceBusKey:         env.GetString("SERVICEBUS_KEY", ""),
		PubSubTopicURL:        env.GetString("PUBSUB_TOPIC_URL", "mem://feedback-analyzed"),
		PubSubSubscriptionURL: env.GetString("PUBSUB_SUBSCRIPTION_URL", ""),
		WorkerConcurrency:     env.GetInt("WORKER_CONCURRENCY", 4),

		// Claim enrichment collaborators
		GeocodeAPIURL: env.GetString("GEOCODE_API_URL", ""),
		GeocodeAPIKey: env.GetString("GEOCODE_API_KEY", ""),
		WeatherAPIURL: env.GetString("WEATHER_API_URL", ""),
		WeatherAPIKey: env.GetString("WEATHER_API_KEY", ""),

		// Lookup service upstreams
		MapsSearchURL:   env.GetString("MAPS_SEARCH_URL", "https://atlas.microsoft.com"),
		MapsKey:         env.GetString("MAPS_KEY", ""),
		MeteoArchiveURL: env.GetString("METEO_ARCHIVE_URL", "https://archive-api.open-meteo.com"),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "feedback"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Shutdown
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 30, time.Second),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			return
		}
		dir = parent
	}
}
