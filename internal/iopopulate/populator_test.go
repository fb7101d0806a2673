package iopopulate_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/bikeq/bikeq/internal/iodb"
	"github.com/bikeq/bikeq/internal/iopopulate"
	"github.com/bikeq/bikeq/internal/ioschema"
	"github.com/bikeq/bikeq/internal/iotesting"
	"github.com/bikeq/bikeq/pkg/config"
	"github.com/bikeq/bikeq/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestPopulateNotConnected(t *testing.T) {
	p := iopopulate.New(config.New(), iodb.NewPgxOperator(1))
	_, err := p.Populate(context.Background())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

const exportDDL = `
CREATE TABLE stations (station_id INTEGER, station_name TEXT,
	latitude REAL, longitude REAL, capacity INTEGER);
CREATE TABLE bikes (bike_id INTEGER, bike_model TEXT,
	acquisition_date TEXT, current_station_id INTEGER);
CREATE TABLE trips (trip_id INTEGER, bike_id INTEGER, started_at TEXT,
	ended_at TEXT, start_station_id INTEGER, end_station_id INTEGER,
	trip_distance_km REAL, rider_birth_year INTEGER, rider_gender TEXT);
CREATE TABLE daily_weather (weather_date TEXT, high_temp_c REAL,
	low_temp_c REAL, precipitation_mm REAL);
INSERT INTO stations VALUES (1, 'Congress Avenue', 30.26, -97.74, 20),
	(2, 'Zilker Park', 30.27, -97.77, 15);
INSERT INTO bikes VALUES (10, 'E‑Bike', '2024-03-01', 1),
	(11, 'Classic', '2023-05-10', 2);
INSERT INTO trips VALUES
	(100, 10, '2025-06-01 08:00:00', '2025-06-01 08:20:00', 1, 2, 3.2, 1990, 'female'),
	(101, 11, '2025-06-02 17:30:00', '2025-06-02 17:45:00', 2, 1, 2.1, 1985, 'male');
INSERT INTO daily_weather VALUES ('2025-06-01', 33.5, 22.0, 0),
	('2025-06-02', 29.0, 21.5, 12.5);
`

func TestPopulate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "export.sqlite")
	src, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = src.Exec(exportDDL)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	cfg := iotesting.GetTestConfig()
	cfg.Update([]config.Option{
		config.OptPopulateSourcePath(path),
		config.OptPopulateTruncate(true),
	})

	op := iodb.NewPgxOperator(2)
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()
	require.NoError(t, op.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(op).Create(ctx))

	res, err := iopopulate.New(cfg, op).Populate(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"stations": 2, "bikes": 2, "trips": 2, "daily_weather": 2,
	}, res)

	var model string
	err = op.Pool().QueryRow(ctx,
		"SELECT bike_model FROM bikes WHERE bike_id = 10").Scan(&model)
	require.NoError(t, err)
	assert.Equal(t, "E‑Bike", model)

	// truncate makes the import repeatable
	res, err = iopopulate.New(cfg, op).Populate(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res["trips"])
}

func TestPopulateMissingSource(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	cfg.Update([]config.Option{
		config.OptPopulateSourcePath(filepath.Join(t.TempDir(), "none.sqlite")),
	})

	op := iodb.NewPgxOperator(2)
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	_, err := iopopulate.New(cfg, op).Populate(ctx)
	require.Error(t, err)
	assert.Equal(t, errcode.PopulateSourceNotFoundError, err.(*gn.Error).Code)
}
