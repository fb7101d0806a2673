package db

import (
	"context"

	"github.com/bikeq/bikeq/pkg/schema"
)

// Field is a named value of a result row.
type Field struct {
	Key   string
	Value any
}

// Row keeps the column order of a result set.
type Row []Field

// Map converts the row to a map. Column order is lost, and duplicate
// column names keep the last value.
func (r Row) Map() map[string]any {
	res := make(map[string]any, len(r))
	for _, f := range r {
		res[f.Key] = f.Value
	}
	return res
}

// Store runs validated statements and describes the live schema.
type Store interface {
	// Describe returns the schema of the allowed tables. The result is
	// computed once and reused.
	Describe(ctx context.Context) (schema.Description, error)

	// Execute runs a statement with positional parameters.
	Execute(ctx context.Context, sql string, params []any) ([]Row, error)

	// Ping checks that the database answers.
	Ping(ctx context.Context) error
}
