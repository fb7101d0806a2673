// Package synth turns a question and its schema hints into a validated,
// parameterized SELECT statement with the help of a language model.
package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/bikeq/bikeq/pkg/entity"
	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/bikeq/bikeq/pkg/mapper"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/bikeq/bikeq/pkg/sqlguard"
	"github.com/gnames/gn"
)

// Generator sends a prompt to a language model and returns its raw
// JSON answer.
type Generator interface {
	Generate(ctx context.Context, p Prompt) ([]byte, error)
}

// Query is a validated statement with positional parameters.
type Query struct {
	SQL         string `json:"sql"`
	Params      []any  `json:"params"`
	Explanation string `json:"explanation,omitempty"`
}

// output is the JSON object a Generator is asked to return.
type output struct {
	SQL         *string `json:"sql"`
	Params      []any   `json:"params"`
	Explanation string  `json:"explanation"`
	Error       string  `json:"error"`
}

// Synthesizer builds queries.
type Synthesizer struct {
	gen     Generator
	timeout time.Duration
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// OptTimeout limits the time of a single generation. Zero means the
// caller's context is the only limit.
func OptTimeout(d time.Duration) Option {
	return func(s *Synthesizer) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// New creates a Synthesizer.
func New(gen Generator, opts ...Option) *Synthesizer {
	res := &Synthesizer{gen: gen}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Synthesize asks the generator for SQL and checks the result. A
// returned Query always passed sqlguard.Validate.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	question string,
	ents entity.Bag,
	desc schema.Description,
	mapping mapper.Mapping,
) (Query, error) {
	var res Query
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(question, ents, desc, mapping)
	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return res, generationError(ctx, err)
	}

	out, err := decode(raw)
	if err != nil {
		return res, err
	}

	sql := RewritePlaceholders(strings.TrimSpace(*out.SQL))
	if v := sqlguard.Validate(sql); !v.Safe {
		err = SafetyRejectedError(sql, v.Reason)
		slog.Error("SQL validation failed", "error", err, "sql", sql)
		return res, err
	}

	res = Query{
		SQL:         sql,
		Params:      NormalizeParams(out.Params),
		Explanation: out.Explanation,
	}
	slog.Info("Generated SQL",
		"sql", res.SQL,
		"params", res.Params,
		"explanation", res.Explanation,
	)
	return res, nil
}

func decode(raw []byte) (output, error) {
	var res output
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return res, GenerationEmptyError()
	}
	// null and {} carry no answer at all
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil && len(fields) == 0 {
		return res, GenerationEmptyError()
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, GenerationFailedError(err)
	}
	if res.Error != "" {
		return res, GenerationDomainError(res.Error)
	}
	if res.SQL == nil || strings.TrimSpace(*res.SQL) == "" {
		return res, GenerationFailedError(nil)
	}
	if res.Params == nil {
		res.Params = []any{}
	}
	return res, nil
}

// generationError keeps errors that already carry a language model
// code and turns a deadline into a retryable timeout.
func generationError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return GenerationTimeoutError(err)
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		switch gnErr.Code {
		case errcode.LLMConfigError, errcode.LLMRequestError,
			errcode.LLMResponseError:
			return err
		}
	}
	return GenerationRequestError(err)
}
