// Package http provides the HTTP server wiring the feedback and claims
// endpoints behind a shared middleware stack.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	claimshttp "github.com/apexclaims/feedback/internal/claims/http"
	"github.com/apexclaims/feedback/internal/config"
	feedbackhttp "github.com/apexclaims/feedback/internal/feedback/http"
	"github.com/apexclaims/feedback/internal/metrics"
	"github.com/apexclaims/feedback/internal/publisher"
)

// Server represents the HTTP server.
type Server struct {
	server    *http.Server
	router    *gin.Engine
	publisher publisher.Publisher
	logger    *slog.Logger
}

// NewServer creates a new HTTP server. The publisher is used by the readiness
// probe: the service is not ready to accept feedback until one is wired.
func NewServer(
	pub publisher.Publisher,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		publisher: pub,
		logger:    logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the router with the middleware stack and registers all
// routes. The metrics provider may be nil, in which case request metrics are
// not recorded.
func (s *Server) SetupRouter(
	cfg *config.Config,
	provider *metrics.Provider,
	feedback *feedbackhttp.FeedbackHandler,
	claims *claimshttp.ClaimsHandler,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if provider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(provider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	v1.POST("/feedback", feedback.ProcessHandler)
	v1.POST("/claims/fraud-score", claims.FraudScoreHandler)
	v1.POST("/claims/:claimId/enrich", claims.EnrichHandler)
	v1.PUT("/claims", claims.UpsertClaimHandler)
	v1.POST("/geocode", claims.GeocodeHandler)
	v1.POST("/weather", claims.WeatherHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the service can accept traffic.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"publisher": "ok"}
	if s.publisher == nil {
		components["publisher"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not initialized, call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
