// Package lifecycle declares the steps that bring a bike-share database
// from nothing to a state where questions can be answered.
package lifecycle

import (
	"context"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate for tables and indexes, and plain SQL for
// foreign keys. Both operations are idempotent.
type SchemaManager interface {
	// Create creates stations, bikes, trips and daily_weather tables
	// together with their foreign keys. Dropping old tables is up to the
	// caller.
	Create(ctx context.Context) error

	// Migrate updates the tables to the latest models.
	Migrate(ctx context.Context) error
}
