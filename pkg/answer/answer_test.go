package answer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bikeq/bikeq/pkg/answer"
	"github.com/bikeq/bikeq/pkg/db"
	"github.com/bikeq/bikeq/pkg/entity"
	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/bikeq/bikeq/pkg/mapper"
	"github.com/bikeq/bikeq/pkg/period"
	"github.com/bikeq/bikeq/pkg/schema"
	"github.com/bikeq/bikeq/pkg/synth"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	rows     []db.Row
	err      error
	descErr  error
	panicMsg string
	sql      string
	params   []any
}

func (f *fakeStore) Describe(context.Context) (schema.Description, error) {
	return schema.Description{Tables: []schema.Table{
		{Name: "trips"}, {Name: "stations"}, {Name: "bikes"},
		{Name: "daily_weather"},
	}}, f.descErr
}

func (f *fakeStore) Execute(_ context.Context, sql string, params []any) ([]db.Row, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	f.sql, f.params = sql, params
	return f.rows, f.err
}

func (f *fakeStore) Ping(context.Context) error { return f.err }

type fakeSynth struct {
	query   synth.Query
	err     error
	mapping mapper.Mapping
	ents    entity.Bag
}

func (f *fakeSynth) Synthesize(
	_ context.Context,
	_ string,
	ents entity.Bag,
	_ schema.Description,
	mapping mapper.Mapping,
) (synth.Query, error) {
	f.ents, f.mapping = ents, mapping
	return f.query, f.err
}

type fakeGen string

func (g fakeGen) Generate(context.Context, synth.Prompt) ([]byte, error) {
	return []byte(g), nil
}

func newService(syn answer.Synthesizer, store db.Store) *answer.Service {
	ref := time.Date(2025, time.July, 15, 0, 0, 0, 0, time.UTC)
	res := period.New(period.OptReference(ref))
	return answer.New(
		entity.New(entity.OptResolver(res)),
		mapper.New(mapper.OptResolver(res)),
		syn,
		store,
	)
}

func TestAnswerAverageRideTime(t *testing.T) {
	sql := "SELECT AVG(t.ended_at - t.started_at) FROM trips t " +
		"JOIN stations s ON t.start_station_id = s.station_id " +
		"WHERE s.station_name = $1 AND DATE_PART('month', t.started_at) = $2"
	syn := &fakeSynth{query: synth.Query{
		SQL: sql, Params: []any{"Congress Avenue", 6},
	}}
	store := &fakeStore{rows: []db.Row{{{
		Key: "avg",
		Value: pgtype.Interval{
			Microseconds: int64(25*time.Minute/time.Microsecond) + 29_000_000,
			Valid:        true,
		},
	}}}}

	q := "What was the average ride time for journeys that started at " +
		"Congress Avenue in June 2025?"
	res, st := newService(syn, store).Answer(context.Background(), q)

	assert.Equal(t, answer.StatusOK, st)
	assert.Nil(t, res.Error)
	require.NotNil(t, res.SQL)
	assert.Contains(t, *res.SQL, "started_at")
	assert.Contains(t, *res.SQL, "stations")
	assert.Equal(t, 25.5, res.Result)

	assert.NotEmpty(t, syn.ents.Locations)
	assert.NotEmpty(t, syn.ents.Dates)
	assert.Contains(t, syn.mapping.Filters, mapper.Condition{
		Condition: "station_name = 'Congress Avenue'", Confidence: 0.9})
	require.NotEmpty(t, syn.mapping.DateFilters)
	assert.Contains(t, syn.mapping.DateFilters[0].Condition,
		"DATE_PART('month', started_at) = 6")
	assert.Equal(t, []any{"Congress Avenue", 6}, store.params)
}

func TestAnswerEmptyQuestion(t *testing.T) {
	svc := newService(&fakeSynth{}, &fakeStore{})
	for _, q := range []string{"", "   \n"} {
		res, st := svc.Answer(context.Background(), q)
		assert.Equal(t, answer.StatusBadRequest, st)
		require.NotNil(t, res.Error)
		assert.Equal(t, "Question is required", *res.Error)
		assert.Nil(t, res.SQL)
		assert.Nil(t, res.Result)
	}
}

func TestAnswerForbiddenTable(t *testing.T) {
	syn := synth.New(fakeGen(`{"sql": "SELECT * FROM users", "params": []}`))
	store := &fakeStore{}
	res, st := newService(syn, store).Answer(context.Background(),
		"list all users")

	assert.Equal(t, answer.StatusOK, st)
	require.NotNil(t, res.Error)
	assert.Equal(t, answer.MsgRejected, *res.Error)
	assert.NotContains(t, *res.Error, "users")
	assert.Nil(t, res.SQL)
	assert.Empty(t, store.sql, "rejected SQL must not run")
}

func TestAnswerFailures(t *testing.T) {
	const sql = "SELECT COUNT(*) FROM trips"
	ok := synth.Query{SQL: sql, Params: []any{}}
	genErr := &gn.Error{Code: errcode.GenerationDomainError}
	tests := []struct {
		msg     string
		syn     *fakeSynth
		store   *fakeStore
		status  answer.Status
		errMsg  string
		withSQL bool
	}{
		{"no rows", &fakeSynth{query: ok}, &fakeStore{},
			answer.StatusOK, answer.MsgNoData, true},
		{"null scalar", &fakeSynth{query: ok},
			&fakeStore{rows: []db.Row{{{Key: "count", Value: nil}}}},
			answer.StatusOK, answer.MsgNoData, true},
		{"off domain", &fakeSynth{err: genErr}, &fakeStore{},
			answer.StatusOK, answer.MsgNotUnderstood, false},
		{"describe fails", &fakeSynth{query: ok},
			&fakeStore{descErr: &gn.Error{Code: errcode.SchemaIntrospectionError}},
			answer.StatusUnavailable, answer.MsgCannotProcess, false},
		{"unknown column", &fakeSynth{query: ok},
			&fakeStore{err: &gn.Error{Code: errcode.UnknownColumnError}},
			answer.StatusOK, answer.MsgNoColumn, true},
		{"timeout", &fakeSynth{err: &gn.Error{Code: errcode.GenerationTimeoutError}},
			&fakeStore{}, answer.StatusUnavailable, answer.MsgTrouble, false},
		{"plain error", &fakeSynth{err: errors.New("boom")}, &fakeStore{},
			answer.StatusInternal, answer.MsgFallback, false},
		{"panic", &fakeSynth{query: ok}, &fakeStore{panicMsg: "boom"},
			answer.StatusInternal, answer.MsgFallback, true},
	}

	for _, v := range tests {
		res, st := newService(v.syn, v.store).Answer(context.Background(),
			"how many trips")
		assert.Equal(t, v.status, st, v.msg)
		require.NotNil(t, res.Error, v.msg)
		assert.Equal(t, v.errMsg, *res.Error, v.msg)
		assert.Nil(t, res.Result, v.msg)
		if v.withSQL {
			require.NotNil(t, res.SQL, v.msg)
			assert.Equal(t, sql, *res.SQL, v.msg)
		} else {
			assert.Nil(t, res.SQL, v.msg)
		}
	}
}

func TestAnswerRows(t *testing.T) {
	syn := &fakeSynth{query: synth.Query{SQL: "SELECT station_name, n FROM x"}}
	store := &fakeStore{rows: []db.Row{
		{{Key: "station_name", Value: "East Side"}, {Key: "n", Value: int64(3)}},
		{{Key: "station_name", Value: "River Walk"}, {Key: "n", Value: int64(1)}},
	}}
	res, st := newService(syn, store).Answer(context.Background(),
		"trips per station")
	assert.Equal(t, answer.StatusOK, st)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Equal(t,
		`{"sql":"SELECT station_name, n FROM x","result":[`+
			`{"station_name":"East Side","n":3},`+
			`{"station_name":"River Walk","n":1}],"error":null}`,
		string(raw))
}

func TestHealth(t *testing.T) {
	assert.NoError(t, newService(&fakeSynth{}, &fakeStore{}).
		Health(context.Background()))
	assert.Error(t, newService(&fakeSynth{}, &fakeStore{err: errors.New("down")}).
		Health(context.Background()))
}

func TestQuestionID(t *testing.T) {
	assert.Equal(t,
		answer.QuestionID("How many trips?"),
		answer.QuestionID("  how many TRIPS? "))
	assert.NotEqual(t,
		answer.QuestionID("How many trips?"),
		answer.QuestionID("How many bikes?"))
}
