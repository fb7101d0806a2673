package synth

import (
	"errors"
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

func GenerationEmptyError() error {
	return &gn.Error{
		Code: errcode.GenerationEmptyError,
		Msg:  "Language model returned an empty response",
		Err:  errors.New("LLM returned empty response"),
	}
}

// GenerationDomainError is returned when the model decides the question
// has nothing to do with bike share data.
func GenerationDomainError(reason string) error {
	msg := "Question is out of scope: <em>%s</em>"
	vars := []any{reason}
	return &gn.Error{
		Code: errcode.GenerationDomainError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("model refused the question: %s", reason),
	}
}

func GenerationFailedError(err error) error {
	if err == nil {
		err = errors.New("LLM failed to generate SQL query")
	}
	return &gn.Error{
		Code: errcode.GenerationFailedError,
		Msg:  "Language model failed to generate SQL query",
		Err:  fmt.Errorf("generation failed: %w", err),
	}
}

// GenerationTimeoutError is retryable.
func GenerationTimeoutError(err error) error {
	return &gn.Error{
		Code: errcode.GenerationTimeoutError,
		Msg:  "Language model did not answer in time",
		Err:  fmt.Errorf("generation timed out: %w", err),
	}
}

func GenerationRequestError(err error) error {
	return &gn.Error{
		Code: errcode.LLMRequestError,
		Msg:  "Cannot get an answer from the language model",
		Err:  fmt.Errorf("generation request failed: %w", err),
	}
}

// SafetyRejectedError keeps the validator's reason and the statement out
// of the user message. Both are only available in Err.
func SafetyRejectedError(sql, reason string) error {
	return &gn.Error{
		Code: errcode.SafetyRejectedError,
		Msg:  "Generated query was rejected",
		Err:  fmt.Errorf("unsafe SQL %q: %s", sql, reason),
	}
}
