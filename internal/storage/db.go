// Package storage persists the durable half of the bridge: device and entity
// registries, latest entity states, notifications, unit preferences, and the
// sync activity log. Everything lives in PostgreSQL behind a pgx pool.
package storage

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgxpool.Pool and provides repository methods.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new DB with a connection pool.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// Counts returns registry totals for the status endpoint.
func (db *DB) Counts(ctx context.Context) (entities, devices, notifications int, err error) {
	err = db.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM entities),
			(SELECT COUNT(*) FROM devices),
			(SELECT COUNT(*) FROM notifications)
	`).Scan(&entities, &devices, &notifications)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("counting registries: %w", err)
	}
	return entities, devices, notifications, nil
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
