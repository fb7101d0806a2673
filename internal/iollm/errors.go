package iollm

import (
	"fmt"

	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
)

// ConfigError is returned when the language model cannot be set up.
func ConfigError(provider, reason string) error {
	msg := `Language model <em>%s</em> is not configured: %s

Set llm.api_key in ~/.config/bikeq/config.yaml or
BIKEQ_LLM_API_KEY variable.`
	vars := []any{provider, reason}
	return &gn.Error{
		Code: errcode.LLMConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("llm %s: %s", provider, reason),
	}
}

func RequestError(provider string, err error) error {
	msg := "Request to <em>%s</em> failed"
	vars := []any{provider}
	return &gn.Error{
		Code: errcode.LLMRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s request: %w", provider, err),
	}
}

// ResponseError is returned for non-200 answers or bodies that do not
// have the expected shape.
func ResponseError(provider string, status int, detail string) error {
	msg := "Unexpected answer from <em>%s</em>"
	vars := []any{provider}
	return &gn.Error{
		Code: errcode.LLMResponseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s response (status %d): %s", provider, status, detail),
	}
}
