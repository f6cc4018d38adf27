package app

import (
	"testing"
	"time"

	"github.com/apexclaims/feedback/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:          "info",
		ServerHost:        "localhost",
		ServerPort:        8080,
		RemoteTimeout:     15 * time.Second,
		RetryMaxAttempts:  3,
		RetryBaseDelay:    500 * time.Millisecond,
		PublisherDriver:   "pubsub",
		PubSubTopicURL:    "mem://container-test",
		WorkerConcurrency: 2,
		MetricsNamespace:  "feedback",
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	cfg := &config.Config{
		LogLevel: "debug",
	}

	container := NewContainer(cfg)
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	logger2 := container.Logger()
	if logger != logger2 {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerRemoteClient verifies the shared remote client is a singleton.
func TestContainerRemoteClient(t *testing.T) {
	container := NewContainer(testConfig())

	client := container.RemoteClient()
	if client == nil {
		t.Fatal("expected non-nil remote client")
	}

	if client != container.RemoteClient() {
		t.Error("expected same remote client instance on multiple calls")
	}
}

// TestContainerPublisher_UnsupportedDriver verifies that an unknown driver fails.
func TestContainerPublisher_UnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.PublisherDriver = "carrier-pigeon"

	container := NewContainer(cfg)

	if _, err := container.Publisher(); err == nil {
		t.Fatal("expected error for unsupported publisher driver")
	}

	// The error should be cached and returned on subsequent calls
	if _, err := container.Publisher(); err == nil {
		t.Fatal("expected cached error on second call")
	}
}

// TestContainerPublisher_ServiceBusRequiresKey verifies the servicebus driver
// refuses to start without a signing key.
func TestContainerPublisher_ServiceBusRequiresKey(t *testing.T) {
	cfg := testConfig()
	cfg.PublisherDriver = "servicebus"
	cfg.ServiceBusKey = ""

	container := NewContainer(cfg)

	if _, err := container.Publisher(); err == nil {
		t.Fatal("expected error for servicebus publisher without key")
	}
}

// TestContainerPublisher_PubSub verifies the pubsub driver opens an in-memory topic.
func TestContainerPublisher_PubSub(t *testing.T) {
	container := NewContainer(testConfig())

	pub, err := container.Publisher()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub == nil {
		t.Fatal("expected non-nil publisher")
	}
}

// TestContainerMetricsDisabled verifies a nil provider and no-op recorder
// when metrics are off.
func TestContainerMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false

	container := NewContainer(cfg)

	provider, err := container.MetricsProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider != nil {
		t.Error("expected nil provider when metrics are disabled")
	}

	business, err := container.BusinessMetrics()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if business == nil {
		t.Fatal("expected non-nil no-op business metrics")
	}
}

// TestContainerLookups verifies the lookup use cases are singletons.
func TestContainerLookups(t *testing.T) {
	container := NewContainer(testConfig())

	if container.GeocodeLookup() == nil {
		t.Fatal("expected non-nil geocode lookup")
	}
	if container.GeocodeLookup() != container.GeocodeLookup() {
		t.Error("expected same geocode lookup instance on multiple calls")
	}

	if container.WeatherLookup() == nil {
		t.Fatal("expected non-nil weather lookup")
	}
}

// TestContainerHTTPServer verifies the full server graph can be assembled.
func TestContainerHTTPServer(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = true

	container := NewContainer(cfg)

	server, err := container.HTTPServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil http server")
	}
	if server.GetHandler() == nil {
		t.Fatal("expected router to be initialized")
	}
}
