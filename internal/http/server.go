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
	"go.opentelemetry.io/otel/metric"

	auditHTTP "github.com/allisson/privacycore/internal/audit/http"
	consentHTTP "github.com/allisson/privacycore/internal/consent/http"
	cryptoHTTP "github.com/allisson/privacycore/internal/crypto/http"
	"github.com/allisson/privacycore/internal/metrics"
	privacyHTTP "github.com/allisson/privacycore/internal/privacy/http"
	transportHTTP "github.com/allisson/privacycore/internal/transport/http"
)

// Handlers groups the domain handlers mounted by the server.
type Handlers struct {
	Crypto    *cryptoHTTP.CryptoHandler
	Consent   *consentHTTP.ConsentHandler
	Access    *consentHTTP.AccessHandler
	Privacy   *privacyHTTP.PrivacyHandler
	Transport *transportHTTP.TransportHandler
	Audit     *auditHTTP.AuditHandler
}

// Options configures the server's optional middleware.
type Options struct {
	CORSEnabled             bool
	CORSAllowOrigins        string
	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
	MeterProvider           metric.MeterProvider
	MetricsNamespace        string
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the API server with all routes registered.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	handlers Handlers,
	options Options,
) *Server {
	server := &Server{logger: logger}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(options.CORSEnabled, options.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if options.RateLimitEnabled {
		router.Use(RateLimitMiddleware(options.RateLimitRequestsPerSec, options.RateLimitBurst, logger))
	}

	if options.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(options.MeterProvider, options.MetricsNamespace))
	}

	router.GET("/health", server.healthHandler)

	v1 := router.Group("/v1")
	{
		crypto := v1.Group("/crypto")
		{
			crypto.POST("/encrypt", handlers.Crypto.EncryptHandler)
			crypto.POST("/decrypt", handlers.Crypto.DecryptHandler)
			crypto.POST("/rotate", handlers.Crypto.RotateKeysHandler)
			crypto.POST("/validate-integrity", handlers.Crypto.ValidateIntegrityHandler)
		}

		privacy := v1.Group("/privacy")
		{
			privacy.POST("/mode", handlers.Privacy.EnableModeHandler)
			privacy.DELETE("/mode", handlers.Privacy.DisableModeHandler)
			privacy.GET("/mode", handlers.Privacy.ModeStatusHandler)
			privacy.POST("/decisions", handlers.Privacy.DecideHandler)
			privacy.GET("/capabilities", handlers.Privacy.ListCapabilitiesHandler)
			privacy.POST("/sensitivity", handlers.Privacy.SensitivityHandler)
		}

		consents := v1.Group("/consents")
		{
			consents.POST("/request", handlers.Consent.RequestConsentHandler)
			consents.POST("/revoke", handlers.Consent.RevokeConsentHandler)
			consents.GET("/:userId", handlers.Consent.ListConsentsHandler)
			consents.GET("/:userId/:dataType", handlers.Consent.ConsentStatusHandler)
		}

		accessRequests := v1.Group("/access-requests")
		{
			accessRequests.POST("", handlers.Access.CreateHandler)
			accessRequests.GET("/pending", handlers.Access.ListPendingHandler)
			accessRequests.POST("/:id/approve", handlers.Access.ApproveHandler)
			accessRequests.POST("/:id/deny", handlers.Access.DenyHandler)
		}

		transport := v1.Group("/transport")
		{
			transport.POST("/connections", handlers.Transport.EstablishConnectionHandler)
			transport.POST("/validate", handlers.Transport.ValidateHandler)
			transport.POST("/encrypt", handlers.Transport.EncryptTransmissionHandler)
			transport.POST("/decrypt", handlers.Transport.DecryptTransmissionHandler)
		}

		audit := v1.Group("/audit")
		{
			audit.POST("/events", handlers.Audit.LogEventHandler)
			audit.GET("/events", handlers.Audit.ListEventsHandler)
			audit.GET("/threats", handlers.Audit.DetectThreatsHandler)
			audit.GET("/privacy-report", handlers.Audit.PrivacyReportHandler)
			audit.GET("/access", handlers.Audit.AuditDataAccessHandler)
		}
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
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
