// Package db owns the connection pool and schema migrations.
package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/shopsquad/shopsquad-backend/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies all pending schema migrations from the embedded
// files. Safe to call on every startup; applied migrations are skipped.
func RunMigrations(dbURL string) error {
	log := logger.GetLogger()

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5URL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database is up to date, no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Info("Migrations applied successfully")
	} else {
		log.Infow("Migrations applied successfully",
			"currentVersion", version,
			"dirty", dirty)
	}
	return nil
}

// convertToPgx5URL rewrites a postgres:// URL to the pgx5:// scheme
// golang-migrate's pgx v5 driver expects.
func convertToPgx5URL(dbURL string) string {
	if rest, ok := strings.CutPrefix(dbURL, "postgresql:"); ok {
		return "pgx5:" + rest
	}
	if rest, ok := strings.CutPrefix(dbURL, "postgres:"); ok {
		return "pgx5:" + rest
	}
	return dbURL
}
