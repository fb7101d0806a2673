package iofs

import (
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError is returned when one of bikeq directories cannot be
// created under the home directory.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory <em>%s</em>

Check permissions of the home directory.`
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: []any{dir},
		Err:  fmt.Errorf("mkdir %s: %w", dir, err),
	}
}

// CopyFileError is returned when the config template cannot be written.
func CopyFileError(file string, err error) error {
	msg := "Cannot write config template to <em>%s</em>"
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: []any{file},
		Err:  fmt.Errorf("write config template %s: %w", file, err),
	}
}

// ReadFileError is returned when a config or data file cannot be read.
func ReadFileError(path string, err error) error {
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("read %s: %w", path, err),
	}
}
