// Package iostore runs validated statements against PostgreSQL and
// introspects the live schema. It implements db.Store.
package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/bikeq/bikeq/pkg/db"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// undefinedColumn is the PostgreSQL error code for a missing column.
const undefinedColumn = "42703"

// PgStore is a db.Store on top of a pgx pool.
type PgStore struct {
	pool *pgxpool.Pool
	db   *sql.DB
	desc atomic.Pointer[schema.Description]
}

// New creates a store. Statements run on the pool, introspection goes
// through database/sql on the same pool.
func New(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool, db: stdlib.OpenDBFromPool(pool)}
}

// NewFromDB creates a store that can only describe the schema and
// sample values. Execute and Ping need a pool.
func NewFromDB(sqlDB *sql.DB) *PgStore {
	return &PgStore{db: sqlDB}
}

// Execute runs a statement with positional parameters and returns rows
// with their column order.
func (s *PgStore) Execute(
	ctx context.Context,
	query string,
	params []any,
) ([]db.Row, error) {
	if s.pool == nil {
		return nil, ExecutionError(query, errNoPool)
	}

	rows, err := s.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, executionError(query, params, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var res []db.Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, executionError(query, params, err)
		}
		row := make(db.Row, len(fields))
		for i, f := range fields {
			row[i] = db.Field{Key: f.Name, Value: vals[i]}
		}
		res = append(res, row)
	}
	if err := rows.Err(); err != nil {
		return nil, executionError(query, params, err)
	}
	return res, nil
}

// Ping checks that the database answers.
func (s *PgStore) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	return s.db.PingContext(ctx)
}

// SampleValues returns up to limit distinct non-null values of a column.
// Both the table and the column must be present in Describe.
func (s *PgStore) SampleValues(
	ctx context.Context,
	table, column string,
	limit int,
) ([]any, error) {
	desc, err := s.Describe(ctx)
	if err != nil {
		return nil, err
	}
	if !desc.HasColumn(table, column) {
		return nil, UnknownColumnError(table, column, nil)
	}

	col := pgx.Identifier{column}.Sanitize()
	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL LIMIT $1",
		col, pgx.Identifier{table}.Sanitize(), col,
	)
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, ExecutionError(query, err)
	}
	defer rows.Close()

	var res []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, ExecutionError(query, err)
		}
		res = append(res, v)
	}
	if err := rows.Err(); err != nil {
		return nil, ExecutionError(query, err)
	}
	return res, nil
}

var errNoPool = errors.New("store has no connection pool")

func executionError(query string, params []any, err error) error {
	slog.Error("Query execution failed",
		"error", err, "sql", query, "params", params)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedColumn {
		return UnknownColumnError(pgErr.TableName, columnName(pgErr), err)
	}
	return ExecutionError(query, err)
}

// columnName takes the name from the error fields or from a message
// like `column "x" does not exist`.
func columnName(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	_, rest, ok := strings.Cut(pgErr.Message, `"`)
	if !ok {
		return pgErr.Message
	}
	name, _, _ := strings.Cut(rest, `"`)
	return name
}
