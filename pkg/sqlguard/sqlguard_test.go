package sqlguard_test

import (
	"strings"
	"testing"

	"github.com/bikeq/bikeq/pkg/sqlguard"
	"github.com/stretchr/testify/assert"
)

func TestValidateForbidden(t *testing.T) {
	for _, kw := range sqlguard.Forbidden {
		stmts := []string{
			kw + " FROM trips",
			"SELECT 1; " + strings.ToLower(kw) + " table trips",
		}
		for _, s := range stmts {
			res := sqlguard.Validate(s)
			assert.False(t, res.Safe, s)
			assert.Contains(t, res.Reason, kw, s)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		msg    string
		sql    string
		safe   bool
		reason string
	}{
		{"simple select", "SELECT COUNT(*) FROM trips", true, ""},
		{"lower case", "select * from stations;", true, ""},
		{"extract", "SELECT COUNT(*) FROM trips WHERE " +
			"EXTRACT(DOW FROM started_at) IN (0, 6)", true, ""},
		{"extract epoch", "SELECT AVG(EXTRACT(EPOCH FROM (ended_at - " +
			"started_at))/60) FROM trips", true, ""},
		{"join", "SELECT s.station_name FROM trips t JOIN stations s ON " +
			"t.start_station_id = s.station_id", true, ""},
		{"schema qualified", "SELECT * FROM public.daily_weather", true, ""},
		{"subquery", "SELECT AVG(c) FROM (SELECT COUNT(*) c FROM trips " +
			"GROUP BY bike_id) x", true, ""},
		{"unknown table", "SELECT * FROM users", false, "unknown table 'users'"},
		{"unknown in subquery", "SELECT AVG(c) FROM (SELECT id FROM users) x",
			false, "unknown table 'users'"},
		{"unknown in multi-line subquery", "SELECT COUNT(*) FROM trips\n" +
			"WHERE bike_id IN (\n  SELECT id\n  FROM users\n)",
			false, "unknown table 'users'"},
		{"unknown in spaced subquery", "SELECT COUNT(*) FROM trips " +
			"WHERE bike_id IN ( SELECT id FROM users)",
			false, "unknown table 'users'"},
		{"catalog in joined subquery", "SELECT * FROM trips t JOIN (\n" +
			" SELECT usename FROM pg_user) u ON true",
			false, "unknown table 'pg_user'"},
		{"long subquery select list", "SELECT * FROM trips WHERE bike_id IN " +
			"(SELECT bike_id, bike_model, acquisition_date, status FROM users)",
			false, "unknown table 'users'"},
		{"multi-line allowed subquery", "SELECT COUNT(*) FROM trips\n" +
			"WHERE bike_id IN (\n  SELECT bike_id\n  FROM bikes\n" +
			"  WHERE EXTRACT(YEAR FROM acquisition_date) = $1\n)",
			true, ""},
		{"parenthesis in literal", "SELECT COUNT(*) FROM stations " +
			"WHERE station_name = '(closed' AND EXTRACT(DOW FROM now()) = 1",
			true, ""},
		{"unknown join", "SELECT * FROM trips JOIN users ON " +
			"trips.bike_id = users.id", false, "unknown table 'users'"},
		{"catalog", "SELECT * FROM pg_catalog.pg_user", false,
			"unknown table 'pg_catalog.pg_user'"},
		{"created_at column", "SELECT created_at FROM trips", false,
			"CREATE"},
	}

	for _, v := range tests {
		res := sqlguard.Validate(v.sql)
		assert.Equal(t, v.safe, res.Safe, v.msg)
		if v.safe {
			assert.Empty(t, res.Reason, v.msg)
			continue
		}
		assert.Contains(t, res.Reason, v.reason, v.msg)
	}
}

func TestAllowedTables(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"bikes", "trips", "stations", "daily_weather"},
		sqlguard.AllowedTables())
}
