package schema

import (
	"reflect"
	"slices"
)

const (
	TableBikes        = "bikes"
	TableTrips        = "trips"
	TableStations     = "stations"
	TableDailyWeather = "daily_weather"
)

// Bike models as stored in bikes.bike_model. Two of them contain a
// non-breaking hyphen (U+2011), not an ASCII one.
const (
	BikeEBike    = "E\u2011Bike"
	BikeClassic  = "Classic"
	BikeStepThru = "Step\u2011Thru"
)

// AllowedTables returns the only tables generated SQL may read from.
func AllowedTables() []string {
	return []string{TableBikes, TableTrips, TableStations, TableDailyWeather}
}

// IsAllowedTable checks the table name against AllowedTables.
// The name must be lower-case.
func IsAllowedTable(name string) bool {
	return slices.Contains(AllowedTables(), name)
}

// Reference is a foreign key between two tables.
type Reference struct {
	Table, Column       string
	RefTable, RefColumn string
}

// References lists foreign keys of the bike-share schema. GORM models
// carry no associations, so these are created separately.
func References() []Reference {
	return []Reference{
		{TableBikes, "current_station_id", TableStations, "station_id"},
		{TableTrips, "bike_id", TableBikes, "bike_id"},
		{TableTrips, "start_station_id", TableStations, "station_id"},
		{TableTrips, "end_station_id", TableStations, "station_id"},
	}
}

// Columns returns column names of a model in declaration order,
// taken from its `db` tags.
func Columns(model any) []string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}
