// Package answer runs the whole question answering pipeline: entity
// extraction, schema mapping, SQL synthesis, execution and formatting.
// Every failure becomes a stable user message, details go to the log.
package answer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bikeq/bikeq/pkg/db"
	"github.com/bikeq/bikeq/pkg/entity"
	"github.com/bikeq/bikeq/pkg/mapper"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/bikeq/bikeq/pkg/synth"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// Extractor finds entities in a question.
type Extractor interface {
	Extract(text string) entity.Bag
}

// Mapper turns entities into schema hints.
type Mapper interface {
	Map(question string, ents entity.Bag, desc schema.Description) mapper.Mapping
}

// Synthesizer writes a validated SQL statement.
type Synthesizer interface {
	Synthesize(
		ctx context.Context,
		question string,
		ents entity.Bag,
		desc schema.Description,
		mapping mapper.Mapping,
	) (synth.Query, error)
}

// Result is the envelope returned to callers.
type Result struct {
	SQL    *string `json:"sql"`
	Result any     `json:"result"`
	Error  *string `json:"error"`
}

// Service answers questions.
type Service struct {
	ext   Extractor
	mp    Mapper
	syn   Synthesizer
	store db.Store
}

// New creates a Service.
func New(ext Extractor, mp Mapper, syn Synthesizer, store db.Store) *Service {
	return &Service{ext: ext, mp: mp, syn: syn, store: store}
}

// Answer runs the pipeline for one question.
func (s *Service) Answer(ctx context.Context, question string) (res Result, st Status) {
	start := time.Now()
	question = strings.TrimSpace(question)
	if question == "" {
		return Failure(EmptyQuestionError(), nil)
	}

	log := slog.With(
		"request_id", uuid.NewString(),
		"question_id", QuestionID(question),
	)
	log.Info("Answering question", "question", question)

	var sql *string
	defer func() {
		if r := recover(); r != nil {
			err := unexpectedError(r)
			log.Error("Pipeline failed", "error", err)
			res, st = Failure(err, sql)
		}
	}()

	ents := s.ext.Extract(question)

	desc, err := s.store.Describe(ctx)
	if err != nil {
		return s.fail(log, err, nil)
	}

	mapping := s.mp.Map(question, ents, desc)

	query, err := s.syn.Synthesize(ctx, question, ents, desc, mapping)
	if err != nil {
		return s.fail(log, err, nil)
	}
	sql = &query.SQL

	rows, err := s.store.Execute(ctx, query.SQL, query.Params)
	if err != nil {
		return s.fail(log, err, sql)
	}

	value, err := Format(query.SQL, rows)
	if err != nil {
		return s.fail(log, err, sql)
	}

	log.Info("Answered question",
		"rows", humanize.Comma(int64(len(rows))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return Result{SQL: sql, Result: value}, StatusOK
}

// Health checks that the store answers.
func (s *Service) Health(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Describe returns the live schema.
func (s *Service) Describe(ctx context.Context) (schema.Description, error) {
	return s.store.Describe(ctx)
}

func (s *Service) fail(log *slog.Logger, err error, sql *string) (Result, Status) {
	res, st := Failure(err, sql)
	if st == StatusInternal {
		log.Error("Question failed", "error", err)
	} else {
		log.Warn("Question failed", "error", err, "status", st.String())
	}
	return res, st
}

// Failure builds the envelope for an error.
func Failure(err error, sql *string) (Result, Status) {
	msg, st := Outcome(err)
	return Result{SQL: sql, Error: &msg}, st
}

// QuestionID is the same for questions that differ only in case and
// surrounding spaces.
func QuestionID(question string) string {
	q := strings.ToLower(strings.TrimSpace(question))
	return gnuuid.New(q).String()
}
