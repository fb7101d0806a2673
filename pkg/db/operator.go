// Package db holds the contracts between the application and PostgreSQL.
package db

import (
	"context"

	"github.com/bikeq/bikeq/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the connection pool and the lifetime of tables.
// Components that need bulk inserts or custom queries get the pool
// through Pool().
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the connection pool.
	Close() error

	// Pool returns the underlying pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the public schema has any tables.
	// Used to decide if schema creation should ask for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	DropAllTables(ctx context.Context) error
}
