// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditHTTP "github.com/allisson/privacycore/internal/audit/http"
	auditService "github.com/allisson/privacycore/internal/audit/service"
	"github.com/allisson/privacycore/internal/config"
	consentHTTP "github.com/allisson/privacycore/internal/consent/http"
	consentUseCase "github.com/allisson/privacycore/internal/consent/usecase"
	cryptoHTTP "github.com/allisson/privacycore/internal/crypto/http"
	cryptoService "github.com/allisson/privacycore/internal/crypto/service"
	cryptoUseCase "github.com/allisson/privacycore/internal/crypto/usecase"
	"github.com/allisson/privacycore/internal/http"
	"github.com/allisson/privacycore/internal/metrics"
	privacyHTTP "github.com/allisson/privacycore/internal/privacy/http"
	privacyUseCase "github.com/allisson/privacycore/internal/privacy/usecase"
	transportHTTP "github.com/allisson/privacycore/internal/transport/http"
	transportService "github.com/allisson/privacycore/internal/transport/service"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	eventLog        *auditService.EventLog

	// Services
	keyStore         *cryptoService.InMemoryKeyStore
	transportManager *transportService.TransportManager
	threatDetector   *auditService.ThreatDetector
	reportGenerator  *auditService.ReportGenerator

	// Use Cases
	encryptionUseCase cryptoUseCase.EncryptionUseCase
	consentUseCase    consentUseCase.ConsentUseCase
	accessUseCase     consentUseCase.AccessUseCase
	modeUseCase       privacyUseCase.ModeUseCase
	arbiterUseCase    privacyUseCase.ArbiterUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	metricsProviderInit   sync.Once
	eventLogInit          sync.Once
	keyStoreInit          sync.Once
	transportManagerInit  sync.Once
	threatDetectorInit    sync.Once
	reportGeneratorInit   sync.Once
	encryptionUseCaseInit sync.Once
	consentUseCaseInit    sync.Once
	accessUseCaseInit     sync.Once
	modeUseCaseInit       sync.Once
	arbiterUseCaseInit    sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
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

// MetricsProvider returns the OpenTelemetry metrics provider.
// Returns nil when metrics are disabled in the configuration.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// EventLog returns the bounded security event log shared by all components.
func (c *Container) EventLog() *auditService.EventLog {
	c.eventLogInit.Do(func() {
		c.eventLog = auditService.NewEventLog(c.config.EventLogCapacity, c.config.EventLogTrimTo)
	})
	return c.eventLog
}

// KeyStore returns the seeded in-memory key store.
func (c *Container) KeyStore() (*cryptoService.InMemoryKeyStore, error) {
	c.keyStoreInit.Do(func() {
		keyStore, err := cryptoService.NewSeededKeyStore()
		if err != nil {
			c.initErrors["keyStore"] = err
			return
		}
		c.keyStore = keyStore
	})
	if storedErr, exists := c.initErrors["keyStore"]; exists {
		return nil, storedErr
	}
	return c.keyStore, nil
}

// TransportManager returns the secure transport manager.
func (c *Container) TransportManager() (*transportService.TransportManager, error) {
	c.transportManagerInit.Do(func() {
		manager, err := c.initTransportManager()
		if err != nil {
			c.initErrors["transportManager"] = err
			return
		}
		c.transportManager = manager
	})
	if storedErr, exists := c.initErrors["transportManager"]; exists {
		return nil, storedErr
	}
	return c.transportManager, nil
}

// ThreatDetector returns the threat detector over the shared event log.
func (c *Container) ThreatDetector() *auditService.ThreatDetector {
	c.threatDetectorInit.Do(func() {
		c.threatDetector = auditService.NewThreatDetector(c.EventLog())
	})
	return c.threatDetector
}

// ReportGenerator returns the report generator over the shared event log.
func (c *Container) ReportGenerator() *auditService.ReportGenerator {
	c.reportGeneratorInit.Do(func() {
		c.reportGenerator = auditService.NewReportGenerator(c.EventLog())
	})
	return c.reportGenerator
}

// EncryptionUseCase returns the per-category encryption use case, wrapped
// with operation metrics when metrics are enabled.
func (c *Container) EncryptionUseCase() (cryptoUseCase.EncryptionUseCase, error) {
	var err error
	c.encryptionUseCaseInit.Do(func() {
		c.encryptionUseCase, err = c.initEncryptionUseCase()
		if err != nil {
			c.initErrors["encryptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encryptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.encryptionUseCase, nil
}

// ConsentUseCase returns the consent ledger use case.
func (c *Container) ConsentUseCase() consentUseCase.ConsentUseCase {
	c.consentUseCaseInit.Do(func() {
		c.consentUseCase = consentUseCase.NewConsentUseCase(
			consentUseCase.NewInMemoryConsentStore(),
			consentUseCase.AutoApproveDecider{},
			c.EventLog(),
			c.Logger(),
		)
	})
	return c.consentUseCase
}

// AccessUseCase returns the data access workflow use case.
func (c *Container) AccessUseCase() consentUseCase.AccessUseCase {
	c.accessUseCaseInit.Do(func() {
		c.accessUseCase = consentUseCase.NewAccessUseCase(
			consentUseCase.NewInMemoryAccessRequestStore(),
			c.EventLog(),
			c.Logger(),
		)
	})
	return c.accessUseCase
}

// ModeUseCase returns the privacy mode use case.
func (c *Container) ModeUseCase() privacyUseCase.ModeUseCase {
	c.modeUseCaseInit.Do(func() {
		c.modeUseCase = privacyUseCase.NewModeUseCase(c.EventLog(), c.Logger())
	})
	return c.modeUseCase
}

// ArbiterUseCase returns the local processing arbiter.
func (c *Container) ArbiterUseCase() privacyUseCase.ArbiterUseCase {
	c.arbiterUseCaseInit.Do(func() {
		c.arbiterUseCase = privacyUseCase.NewArbiterUseCase(c.ModeUseCase(), c.EventLog(), c.Logger())
	})
	return c.arbiterUseCase
}

// HTTPServer returns the API HTTP server instance.
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

// MetricsServer returns the Prometheus metrics server instance.
// Returns nil when metrics are disabled in the configuration.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
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

	// Shutdown HTTP server if initialized
	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Flush the metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
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

// initTransportManager builds the transport manager from the configured key,
// generating a random one when unset.
func (c *Container) initTransportManager() (*transportService.TransportManager, error) {
	key := c.config.TransportKeyBytes()
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate transport key: %w", err)
		}
		c.Logger().Warn("TRANSPORT_KEY not set, generated an ephemeral key")
	}

	return transportService.NewTransportManager(key, c.EventLog(), c.Logger())
}

// initEncryptionUseCase builds the encryption use case, decorated with
// business metrics when a provider is available.
func (c *Container) initEncryptionUseCase() (cryptoUseCase.EncryptionUseCase, error) {
	keyStore, err := c.KeyStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get key store for encryption use case: %w", err)
	}

	useCase := cryptoUseCase.NewEncryptionUseCase(keyStore, c.EventLog(), c.Logger())

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for encryption use case: %w", err)
	}
	if provider == nil {
		return useCase, nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	return cryptoUseCase.NewMetricsDecorator(useCase, businessMetrics), nil
}

// initHTTPServer assembles the domain handlers and creates the API server.
func (c *Container) initHTTPServer() (*http.Server, error) {
	encryptionUseCase, err := c.EncryptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption use case for http server: %w", err)
	}

	transportManager, err := c.TransportManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get transport manager for http server: %w", err)
	}

	logger := c.Logger()
	handlers := http.Handlers{
		Crypto:    cryptoHTTP.NewCryptoHandler(encryptionUseCase, logger),
		Consent:   consentHTTP.NewConsentHandler(c.ConsentUseCase(), logger),
		Access:    consentHTTP.NewAccessHandler(c.AccessUseCase(), logger),
		Privacy:   privacyHTTP.NewPrivacyHandler(c.ModeUseCase(), c.ArbiterUseCase(), logger),
		Transport: transportHTTP.NewTransportHandler(transportManager, logger),
		Audit:     auditHTTP.NewAuditHandler(c.EventLog(), c.ThreatDetector(), c.ReportGenerator(), logger),
	}

	options := http.Options{
		CORSEnabled:             c.config.CORSEnabled,
		CORSAllowOrigins:        c.config.CORSAllowOrigins,
		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
		MetricsNamespace:        c.config.MetricsNamespace,
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}
	if provider != nil {
		options.MeterProvider = provider.MeterProvider()
	}

	return http.NewServer(c.config.ServerHost, c.config.ServerPort, logger, handlers, options), nil
}
