package iopopulate

import (
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when populate
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// SourceNotFoundError creates an error for a missing SQLite export.
func SourceNotFoundError(path string, err error) error {
	msg := `Cannot find source file <em>%s</em>

<em>How to fix:</em>
  1. Check the path given with --source
  2. Make sure the file is an SQLite database`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.PopulateSourceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s: %w", path, err),
	}
}

// SourceReadError creates an error for a table that cannot be
// read from the SQLite export.
func SourceReadError(table string, err error) error {
	msg := "Cannot read table <em>%s</em> from source"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.PopulateSourceReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("read %s: %w", table, err),
	}
}

func TruncateError(err error) error {
	return &gn.Error{
		Code: errcode.PopulateTruncateError,
		Msg:  "Cannot remove existing rows",
		Err:  fmt.Errorf("truncate: %w", err),
	}
}

// CopyError creates an error for failed bulk inserts.
func CopyError(table string, err error) error {
	msg := `Cannot import rows into <em>%s</em>

<em>Possible causes:</em>
  - Tables were not created, run <em>bikeq create</em>
  - Rows already exist, use <em>--truncate</em>
  - Source rows refer to missing stations or bikes`

	vars := []any{table}

	return &gn.Error{
		Code: errcode.PopulateCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("copy into %s: %w", table, err),
	}
}

func AllTablesFailedError(count int) error {
	msg := "All <em>%d</em> tables failed to import"
	vars := []any{count}

	return &gn.Error{
		Code: errcode.PopulateAllTablesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("all %d tables failed", count),
	}
}
