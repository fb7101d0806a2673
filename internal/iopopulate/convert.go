package iopopulate

import (
	"database/sql"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnlib"
)

type kind int

const (
	kindAny kind = iota
	kindInt
	kindFloat
	kindText
	kindTime
)

var (
	timeType       = reflect.TypeOf(time.Time{})
	nullTimeType   = reflect.TypeOf(sql.NullTime{})
	nullStringType = reflect.TypeOf(sql.NullString{})
	nullFloatType  = reflect.TypeOf(sql.NullFloat64{})
	nullInt32Type  = reflect.TypeOf(sql.NullInt32{})
	nullInt64Type  = reflect.TypeOf(sql.NullInt64{})
)

var timeLayouts = []string{
	time.DateTime,
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	time.DateOnly,
}

// columnKinds returns kinds of model fields that carry a `db` tag,
// in the same order as schema.Columns.
func columnKinds(model any) []kind {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var res []kind
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("db") == "" {
			continue
		}
		res = append(res, fieldKind(f.Type))
	}
	return res
}

func fieldKind(t reflect.Type) kind {
	switch t {
	case timeType, nullTimeType:
		return kindTime
	case nullStringType:
		return kindText
	case nullFloatType:
		return kindFloat
	case nullInt32Type, nullInt64Type:
		return kindInt
	}
	switch t.Kind() {
	case reflect.String:
		return kindText
	case reflect.Float32, reflect.Float64:
		return kindFloat
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return kindInt
	}
	return kindAny
}

// convert turns a value scanned from SQLite into a value pgx can
// send in binary COPY format. SQLite keeps dates as text and is loose
// about numeric types, so both are normalized here.
func convert(v any, k kind) (any, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return nil, nil
	}

	switch k {
	case kindText:
		s := strings.TrimSpace(gnlib.FixUtf8(fmt.Sprint(v)))
		return s, nil
	case kindTime:
		return toTime(v)
	case kindInt:
		return toInt(v)
	case kindFloat:
		return toFloat(v)
	}
	return v, nil
}

func toTime(v any) (any, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case int64:
		return time.Unix(t, 0).UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		for _, layout := range timeLayouts {
			if res, err := time.Parse(layout, s); err == nil {
				return res, nil
			}
		}
		return nil, fmt.Errorf("cannot parse time %q", s)
	}
	return nil, fmt.Errorf("unexpected time value %v (%T)", v, v)
}

func toInt(v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil, nil
		}
		res, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse integer %q: %w", s, err)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unexpected integer value %v (%T)", v, v)
}

func toFloat(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil, nil
		}
		res, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse number %q: %w", s, err)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unexpected number value %v (%T)", v, v)
}
