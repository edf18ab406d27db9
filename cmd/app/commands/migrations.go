package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending schema migrations for the configured
// object store driver. Returns nil when there is nothing to apply. The
// memory driver has no schema and is rejected.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	if driver == "memory" {
		return fmt.Errorf("the memory object store driver does not use migrations")
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	migrationsPath := "file://migrations/postgresql"
	if driver == "mysql" {
		migrationsPath = "file://migrations/mysql"
	}

	m, err := migrate.New(migrationsPath, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
