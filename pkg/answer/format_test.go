package answer_test

import (
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/bikeq/bikeq/pkg/answer"
	"github.com/bikeq/bikeq/pkg/db"
	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	day := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		msg string
		in  any
		out any
	}{
		{"nil", nil, nil},
		{"duration", 90*time.Second + 2*time.Second, 1.5},
		{"interval", pgtype.Interval{
			Microseconds: int64(12*time.Minute/time.Microsecond) + 14_000_000,
			Valid:        true,
		}, 12.2},
		{"interval days", pgtype.Interval{Days: 1, Valid: true}, 1440.0},
		{"null interval", pgtype.Interval{}, nil},
		{"null numeric", pgtype.Numeric{}, nil},
		{"nan", math.NaN(), nil},
		{"int", int64(42), int64(42)},
		{"string", "East Side", "East Side"},
		{"time", day, day},
	}
	for _, v := range tests {
		assert.Equal(t, v.out, answer.Value(v.in), v.msg)
	}

	num := answer.Value(pgtype.Numeric{Int: big.NewInt(1234), Exp: -2, Valid: true})
	require.IsType(t, float64(0), num)
	assert.InDelta(t, 12.34, num, 1e-9)
}

func TestFormat(t *testing.T) {
	_, err := answer.Format("SELECT 1", nil)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.EmptyResultError, gnErr.Code)

	res, err := answer.Format("SELECT 1", []db.Row{{{Key: "n", Value: int64(0)}}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res, "zero is a value, not an empty result")

	res, err = answer.Format("SELECT a, b", []db.Row{
		{{Key: "b", Value: int64(1)}, {Key: "a", Value: 2 * time.Minute}},
	})
	require.NoError(t, err)
	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Equal(t, `[{"b":1,"a":2}]`, string(raw))
}

func TestOutcome(t *testing.T) {
	msg, st := answer.Outcome(answer.RequestDecodeError(assert.AnError))
	assert.Equal(t, answer.MsgRequestJSON, msg)
	assert.Equal(t, answer.StatusBadRequest, st)

	msg, st = answer.Outcome(&gn.Error{Code: errcode.UnknownError})
	assert.Equal(t, answer.MsgFallback, msg)
	assert.Equal(t, answer.StatusInternal, st)
	assert.Equal(t, "internal", st.String())
}
