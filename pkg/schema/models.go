// Package schema provides the bike-share database models and the
// description of the live schema used to prompt the SQL generator.
package schema

import (
	"database/sql"
	"time"
)

// Station is a docking point where trips start and end.
type Station struct {
	// StationID is the identifier assigned by the bike-share operator.
	StationID int `db:"station_id" gorm:"column:station_id;primaryKey;autoIncrement:false"`

	// StationName is a human readable name, e.g. "Congress Avenue".
	StationName string `db:"station_name" gorm:"column:station_name;type:varchar(100);not null;index"`

	// Latitude of the station.
	Latitude sql.NullFloat64 `db:"latitude" gorm:"column:latitude;type:numeric(9,6)"`

	// Longitude of the station.
	Longitude sql.NullFloat64 `db:"longitude" gorm:"column:longitude;type:numeric(9,6)"`

	// Capacity is the number of docks at the station.
	Capacity sql.NullInt32 `db:"capacity" gorm:"column:capacity"`
}

// TableName returns the PostgreSQL table name for this model.
func (Station) TableName() string { return TableStations }

// Bike is a single bicycle in the fleet.
type Bike struct {
	BikeID int `db:"bike_id" gorm:"column:bike_id;primaryKey;autoIncrement:false"`

	// BikeModel is one of 'Classic', 'E‑Bike' or 'Step‑Thru'. The two
	// latter use U+2011 NON-BREAKING HYPHEN.
	BikeModel sql.NullString `db:"bike_model" gorm:"column:bike_model;type:varchar(50);index"`

	AcquisitionDate sql.NullTime `db:"acquisition_date" gorm:"column:acquisition_date;type:date"`

	// CurrentStationID refers to stations.station_id.
	CurrentStationID sql.NullInt32 `db:"current_station_id" gorm:"column:current_station_id;index"`
}

// TableName returns the PostgreSQL table name for this model.
func (Bike) TableName() string { return TableBikes }

// Trip is one rental from a start station to an end station.
type Trip struct {
	TripID int64 `db:"trip_id" gorm:"column:trip_id;primaryKey;autoIncrement:false"`

	// BikeID refers to bikes.bike_id.
	BikeID sql.NullInt32 `db:"bike_id" gorm:"column:bike_id;index"`

	StartedAt sql.NullTime `db:"started_at" gorm:"column:started_at;type:timestamp;index"`
	EndedAt   sql.NullTime `db:"ended_at" gorm:"column:ended_at;type:timestamp"`

	// StartStationID and EndStationID refer to stations.station_id.
	StartStationID sql.NullInt32 `db:"start_station_id" gorm:"column:start_station_id;index"`
	EndStationID   sql.NullInt32 `db:"end_station_id" gorm:"column:end_station_id;index"`

	TripDistanceKm sql.NullFloat64 `db:"trip_distance_km" gorm:"column:trip_distance_km;type:numeric(6,2)"`

	RiderBirthYear sql.NullInt32 `db:"rider_birth_year" gorm:"column:rider_birth_year"`

	// RiderGender is 'female', 'male' or 'non-binary'.
	RiderGender sql.NullString `db:"rider_gender" gorm:"column:rider_gender;type:varchar(20)"`
}

// TableName returns the PostgreSQL table name for this model.
func (Trip) TableName() string { return TableTrips }

// DailyWeather keeps one weather observation per calendar day.
type DailyWeather struct {
	WeatherDate time.Time `db:"weather_date" gorm:"column:weather_date;type:date;primaryKey"`

	HighTempC sql.NullFloat64 `db:"high_temp_c" gorm:"column:high_temp_c;type:numeric(4,1)"`
	LowTempC  sql.NullFloat64 `db:"low_temp_c" gorm:"column:low_temp_c;type:numeric(4,1)"`

	// PrecipitationMm is 0 on dry days.
	PrecipitationMm sql.NullFloat64 `db:"precipitation_mm" gorm:"column:precipitation_mm;type:numeric(5,1)"`
}

// TableName returns the PostgreSQL table name for this model.
func (DailyWeather) TableName() string { return TableDailyWeather }
