package answer

import (
	"errors"
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

func EmptyQuestionError() error {
	return &gn.Error{
		Code: errcode.EmptyQuestionError,
		Msg:  MsgQuestionRequired,
		Err:  errors.New("empty question"),
	}
}

// RequestDecodeError is used by transports that cannot read a question
// from the request.
func RequestDecodeError(err error) error {
	return &gn.Error{
		Code: errcode.RequestDecodeError,
		Msg:  MsgRequestJSON,
		Err:  fmt.Errorf("cannot decode request: %w", err),
	}
}

func EmptyResultError(sql string) error {
	return &gn.Error{
		Code: errcode.EmptyResultError,
		Msg:  "Query returned no data",
		Err:  fmt.Errorf("no rows or a null value from %q", sql),
	}
}

func unexpectedError(cause any) error {
	return &gn.Error{
		Code: errcode.UnknownError,
		Msg:  "Unexpected failure",
		Err:  fmt.Errorf("pipeline panicked: %v", cause),
	}
}
