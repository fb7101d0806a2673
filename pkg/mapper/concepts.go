package mapper

import "github.com/bikeq/bikeq/pkg/schema"

const (
	eBike    = schema.BikeEBike
	stepThru = schema.BikeStepThru
	classic  = schema.BikeClassic
)

// concept maps a phrase to schema fragments.
type concept struct {
	phrase    string
	fragments []string
}

// domainConcepts are grouped by category: time, location, measurement,
// demographic, weather and bike type. Order matters, entries are
// emitted in the order they are found here.
var domainConcepts = [][]concept{
	{
		{"journey", []string{schema.TableTrips}},
		{"ride", []string{schema.TableTrips}},
		{"trip", []string{schema.TableTrips}},
		{"departure", []string{"start_station_id", "started_at"}},
		{"arrival", []string{"end_station_id", "ended_at"}},
		{"duration", []string{"ended_at - started_at"}},
		{"ride time", []string{"ended_at - started_at"}},
		{"weekends", []string{"EXTRACT(ISODOW FROM started_at) IN (6, 7)"}},
		{"weekend", []string{"EXTRACT(ISODOW FROM started_at) IN (6, 7)"}},
		{"weekdays", []string{"EXTRACT(ISODOW FROM started_at) BETWEEN 1 AND 5"}},
		{"weekday", []string{"EXTRACT(ISODOW FROM started_at) BETWEEN 1 AND 5"}},
	},
	{
		{"station", []string{schema.TableStations}},
		{"docking point", []string{schema.TableStations}},
		{"location", []string{schema.TableStations}},
		{"congress avenue", []string{"station_name = 'Congress Avenue'"}},
		{"barton springs", []string{"station_name = 'Barton Springs'"}},
		{"capitol square", []string{"station_name = 'Capitol Square'"}},
		{"east side", []string{"station_name = 'East Side'"}},
		{"river walk", []string{"station_name = 'River Walk'"}},
	},
	{
		{"kilometres", []string{"trip_distance_km"}},
		{"kilometers", []string{"trip_distance_km"}},
		{"km", []string{"trip_distance_km"}},
		{"distance", []string{"trip_distance_km"}},
		{"minutes", []string{"EXTRACT(EPOCH FROM (ended_at - started_at))/60"}},
		{"time", []string{"ended_at - started_at"}},
	},
	{
		{"women", []string{"rider_gender = 'female'"}},
		{"men", []string{"rider_gender = 'male'"}},
		{"female", []string{"rider_gender = 'female'"}},
		{"male", []string{"rider_gender = 'male'"}},
		{"gender", []string{"rider_gender"}},
	},
	{
		{"rainy", []string{"precipitation_mm > 0"}},
		{"sunny", []string{"precipitation_mm = 0"}},
		{"rain", []string{"precipitation_mm > 0"}},
		{"weather", []string{schema.TableDailyWeather}},
	},
	{
		{"ebikes", []string{"bike_model = '" + eBike + "'"}},
		{"electric bikes", []string{"bike_model = '" + eBike + "'"}},
		{"electric", []string{"bike_model = '" + eBike + "'"}},
		{"e-bike", []string{"bike_model = '" + eBike + "'"}},
		{"classic bikes", []string{"bike_model = '" + classic + "'"}},
		{"classic", []string{"bike_model = '" + classic + "'"}},
		{"step-thru", []string{"bike_model = '" + stepThru + "'"}},
		{"step thru", []string{"bike_model = '" + stepThru + "'"}},
	},
}

// bikeTypes are checked in order, the first match wins.
var bikeTypes = []struct {
	phrase, condition string
}{
	{"ebikes", "bike_model = '" + eBike + "'"},
	{"e-bikes", "bike_model = '" + eBike + "'"},
	{"electric bikes", "bike_model = '" + eBike + "'"},
	{"electric", "bike_model = '" + eBike + "'"},
	{"classic bikes", "bike_model = '" + classic + "'"},
	{"classic", "bike_model = '" + classic + "'"},
	{"step-thru", "bike_model = '" + stepThru + "'"},
	{"step thru", "bike_model = '" + stepThru + "'"},
}

type tablePair struct{ a, b string }

// joinPatterns are keyed by table pairs in lexical order.
var joinPatterns = map[tablePair][]string{
	{schema.TableStations, schema.TableTrips}: {
		"trips.start_station_id = stations.station_id",
		"trips.end_station_id = stations.station_id",
	},
	{schema.TableDailyWeather, schema.TableTrips}: {
		"DATE(trips.started_at) = daily_weather.weather_date",
	},
	{schema.TableBikes, schema.TableTrips}: {
		"trips.bike_id = bikes.bike_id",
	},
}
