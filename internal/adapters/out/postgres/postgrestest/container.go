// Package postgrestest starts a throwaway Postgres for integration tests and applies
// the real schema migrations to it.
package postgrestest

import (
	"context"
	"fmt"
	"time"

	"kds/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a migrated Postgres running in a container.
type Database struct {
	Container *postgres.PostgresContainer
	DSN       string
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, applies the migrations and opens a GORM connection.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	d := &Database{Container: container}
	if err = d.init(ctx); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}
	return d, nil
}

func (d *Database) init(ctx context.Context) error {
	dsn, err := d.Container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fmt.Errorf("get connection string: %w", err)
	}
	d.DSN = dsn

	m, err := migrations.New(dsn, zap.NewNop())
	if err != nil {
		return err
	}
	defer func() {
		_ = m.Close()
	}()
	if err = m.Up(); err != nil {
		return err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("open gorm connection: %w", err)
	}
	d.DB = db
	return nil
}

// Truncate empties the orders table and resets its id sequence.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE orders RESTART IDENTITY").Error
}

// Terminate closes the connection and removes the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
