// Package app provides the dependency injection container assembling the
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/receiptvault/internal/config"
	cryptoDomain "github.com/allisson/receiptvault/internal/crypto/domain"
	cryptoService "github.com/allisson/receiptvault/internal/crypto/service"
	"github.com/allisson/receiptvault/internal/database"
	"github.com/allisson/receiptvault/internal/metrics"
	objectsService "github.com/allisson/receiptvault/internal/objects/service"
	objectsUsecase "github.com/allisson/receiptvault/internal/objects/usecase"
	piiUsecase "github.com/allisson/receiptvault/internal/pii/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	secretKey     *cryptoDomain.SecretKey
	tokenCipher   cryptoService.TokenCipher
	fingerprinter cryptoService.Fingerprinter

	// PII
	codec piiUsecase.Codec

	// Objects
	blobStore    *objectsService.BlobStore
	metadataRepo objectsUsecase.MetadataRepository
	policyRepo   objectsUsecase.PolicyRepository
	gateway      objectsUsecase.Gateway
	reconciler   objectsUsecase.Reconciler

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	secretKeyInit       sync.Once
	tokenCipherInit     sync.Once
	fingerprinterInit   sync.Once
	codecInit           sync.Once
	blobStoreInit       sync.Once
	metadataRepoInit    sync.Once
	policyRepoInit      sync.Once
	gatewayInit         sync.Once
	reconcilerInit      sync.Once
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

// DB returns the database connection used by the SQL object store drivers.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager. The memory object store driver
// has no transactions, so it gets a no-op manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		txManager, err := c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = txManager
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the otel/prometheus metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
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

// BusinessMetrics returns the business metrics recorder. Disabled metrics
// yield a no-op implementation so decorators stay wired unconditionally.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		businessMetrics, err := c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.blobStore != nil {
		if err := c.blobStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("blob store close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.secretKey != nil {
		c.secretKey.Close()
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

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	driver := c.config.ObjectStoreDriver
	if driver == "memory" {
		return nil, fmt.Errorf("memory object store driver has no database")
	}

	db, err := database.Connect(database.Config{
		Driver:             driver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager matching the object store driver.
func (c *Container) initTxManager() (database.TxManager, error) {
	if c.config.ObjectStoreDriver == "memory" {
		return database.NewNoOpTxManager(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider: %w", err)
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}
