package iologger

import (
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError is returned when the log file or its directory
// cannot be opened. Setting log.destination to stderr avoids the file.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>

Set log.destination to 'stderr' to log without a file.`
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("open log %s: %w", path, err),
	}
}
