package iostore

import (
	"errors"
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

func SchemaIntrospectionError(err error) error {
	return &gn.Error{
		Code: errcode.SchemaIntrospectionError,
		Msg:  "Cannot read database schema",
		Err:  fmt.Errorf("schema introspection failed: %w", err),
	}
}

func ExecutionError(query string, err error) error {
	return &gn.Error{
		Code: errcode.ExecutionError,
		Msg:  "Database cannot run the query",
		Err:  fmt.Errorf("query %q failed: %w", query, err),
	}
}

// UnknownColumnError is returned for columns the database does not
// have. Table can be empty when the database does not report it.
func UnknownColumnError(table, column string, err error) error {
	if err == nil {
		err = errors.New("column not found in schema")
	}
	msg := "Column <em>%s</em> does not exist"
	vars := []any{column}
	if table != "" {
		msg = "Column <em>%s.%s</em> does not exist"
		vars = []any{table, column}
	}
	return &gn.Error{
		Code: errcode.UnknownColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown column %s.%s: %w", table, column, err),
	}
}
