// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/bikeq/bikeq/pkg/db"
	"github.com/bikeq/bikeq/pkg/lifecycle"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the bike-share tables using GORM AutoMigrate
// and adds foreign keys between them.
func (m *manager) Create(ctx context.Context) error {
	gormDB, err := m.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.setConstraints(ctx); err != nil {
		return err
	}

	slog.Info("Schema created", "tables", schema.AllowedTables())
	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate. Missing foreign keys are added.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := m.gormDB()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.setConstraints(ctx); err != nil {
		return err
	}

	slog.Info("Schema migrated")
	return nil
}

func (m *manager) gormDB() (*gorm.DB, error) {
	pool := m.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	res, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return res, nil
}

// setConstraints adds foreign keys listed in schema.References.
// Existing constraints are left alone.
func (m *manager) setConstraints(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	for _, ref := range schema.References() {
		name := constraintName(ref)

		var exists bool
		err := pool.QueryRow(ctx, constraintExistsSQL, name).Scan(&exists)
		if err != nil {
			return ConstraintError(ref.Table, ref.Column, err)
		}
		if exists {
			slog.Debug("Foreign key exists", "constraint", name)
			continue
		}

		if _, err := pool.Exec(ctx, formatConstraintSQL(ref)); err != nil {
			return ConstraintError(ref.Table, ref.Column, err)
		}
		slog.Info("Added foreign key", "constraint", name)
	}

	return nil
}
