package answer

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/bikeq/bikeq/pkg/db"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	microsPerMinute = float64(time.Minute / time.Microsecond)
	microsPerDay    = int64(24 * time.Hour / time.Microsecond)
)

// Record is a result row that keeps column order when encoded to JSON.
type Record db.Row

// MarshalJSON encodes the record as an object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Format turns rows into an answer. A single row with a single column
// becomes a scalar, anything else becomes a list of records. Durations
// are reported in minutes rounded to one decimal. No rows, or a null
// scalar, is an EmptyResultError.
func Format(sql string, rows []db.Row) (any, error) {
	if len(rows) == 0 {
		return nil, EmptyResultError(sql)
	}

	if len(rows) == 1 && len(rows[0]) == 1 {
		v := Value(rows[0][0].Value)
		if v == nil {
			return nil, EmptyResultError(sql)
		}
		return v, nil
	}

	res := make([]Record, len(rows))
	for i, row := range rows {
		rec := make(Record, len(row))
		for j, f := range row {
			rec[j] = db.Field{Key: f.Key, Value: Value(f.Value)}
		}
		res[i] = rec
	}
	return res, nil
}

// Value converts a database value into something JSON can show.
func Value(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Duration:
		return roundMinutes(float64(t/time.Microsecond) / microsPerMinute)
	case pgtype.Interval:
		if !t.Valid {
			return nil
		}
		micros := t.Microseconds +
			int64(t.Days)*microsPerDay +
			int64(t.Months)*30*microsPerDay
		return roundMinutes(float64(micros) / microsPerMinute)
	case pgtype.Numeric:
		if !t.Valid {
			return nil
		}
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil
		}
		return t
	default:
		return v
	}
}

func roundMinutes(m float64) float64 {
	return math.Round(m*10) / 10
}
