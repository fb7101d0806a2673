// Package mapper translates extracted entities and the raw question into
// schema fragments: tables, columns, filter predicates, joins,
// aggregation functions and date filters. Every fragment carries a
// confidence score that is passed along to query synthesis as a hint.
package mapper

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/bikeq/bikeq/pkg/entity"
	"github.com/bikeq/bikeq/pkg/period"
	"github.com/bikeq/bikeq/pkg/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stationMatch is the minimal similarity for a location to be
// recognized as a known station.
const stationMatch = 0.7

// Table is a candidate table.
type Table struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Column is a column reference or a computed expression.
type Column struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Condition is a SQL predicate fragment.
type Condition struct {
	Condition  string  `json:"condition"`
	Confidence float64 `json:"confidence"`
}

// Aggregation is an upper-cased aggregation function name.
type Aggregation struct {
	Function   string  `json:"function"`
	Confidence float64 `json:"confidence"`
}

// Mapping collects schema hints for one question. Entries are not
// deduplicated.
type Mapping struct {
	Tables       []Table       `json:"tables"`
	Columns      []Column      `json:"columns"`
	Filters      []Condition   `json:"filters"`
	Joins        []Condition   `json:"joins"`
	Aggregations []Aggregation `json:"aggregations"`
	DateFilters  []Condition   `json:"date_filters"`
}

// NewMapping returns a Mapping with empty, non-nil slices.
func NewMapping() Mapping {
	return Mapping{
		Tables:       []Table{},
		Columns:      []Column{},
		Filters:      []Condition{},
		Joins:        []Condition{},
		Aggregations: []Aggregation{},
		DateFilters:  []Condition{},
	}
}

// TableNames returns distinct table names in order of first appearance.
func (m Mapping) TableNames() []string {
	var res []string
	for _, t := range m.Tables {
		if !slices.Contains(res, t.Name) {
			res = append(res, t.Name)
		}
	}
	return res
}

func (m *Mapping) addTable(name string, conf float64) {
	m.Tables = append(m.Tables, Table{Name: name, Confidence: conf})
}

func (m *Mapping) addColumn(name string, conf float64) {
	m.Columns = append(m.Columns, Column{Name: name, Confidence: conf})
}

func (m *Mapping) addFilter(cond string, conf float64) {
	m.Filters = append(m.Filters, Condition{Condition: cond, Confidence: conf})
}

func (m *Mapping) addDateFilter(cond string, conf float64) {
	m.DateFilters = append(m.DateFilters,
		Condition{Condition: cond, Confidence: conf})
}

// Mapper builds Mappings.
type Mapper struct {
	periods period.Resolver
}

// Option configures a Mapper.
type Option func(*Mapper)

// OptResolver sets the resolver for calendar phrases.
func OptResolver(r period.Resolver) Option {
	return func(m *Mapper) {
		m.periods = r
	}
}

// New creates a Mapper.
func New(opts ...Option) *Mapper {
	res := &Mapper{periods: period.New()}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Map builds schema hints for the question. The schema description is
// only used to warn about tables the database does not have.
func (m *Mapper) Map(
	question string,
	ents entity.Bag,
	desc schema.Description,
) Mapping {
	res := NewMapping()
	q := strings.ToLower(question)

	domainPhrases(q, &res)
	locations(ents.Locations, &res)
	demographics(ents.Demographics, &res)
	weather(ents.WeatherConditions, &res)
	m.timePeriods(q, ents.TimePeriods, &res)
	measurements(ents.Measurements, &res)
	aggregations(ents.Aggregations, &res)
	bikeType(q, &res)
	joins(&res)

	if !desc.IsEmpty() {
		for _, t := range res.TableNames() {
			if !desc.HasTable(t) {
				slog.Warn("Mapped table is not in the database", "table", t)
			}
		}
	}

	slog.Debug("Mapped question", "question", question, "mapping", res)
	return res
}

func domainPhrases(q string, m *Mapping) {
	for _, category := range domainConcepts {
		for _, c := range category {
			if !entity.ContainsTerm(q, c.phrase) {
				continue
			}
			for _, f := range c.fragments {
				routeFragment(f, m)
			}
		}
	}
}

// routeFragment sorts a fragment by its shape.
func routeFragment(f string, m *Mapping) {
	switch {
	case strings.HasPrefix(f, "station_name ="),
		strings.HasPrefix(f, "rider_gender ="):
		m.addFilter(f, 0.95)
	case strings.HasPrefix(f, "precipitation_mm"):
		m.addFilter(f, 0.9)
		m.addTable(schema.TableDailyWeather, 0.9)
	case strings.HasPrefix(f, "EXTRACT(ISODOW"):
		m.addFilter(f, 0.9)
	case schema.IsAllowedTable(f):
		m.addTable(f, 0.9)
	default:
		m.addColumn(f, 0.8)
	}
}

func locations(locs []string, m *Mapping) {
	if len(locs) == 0 {
		return
	}
	m.addTable(schema.TableStations, 0.8)
	for _, loc := range locs {
		if cond, ok := StationFilter(loc); ok {
			m.addFilter(cond, 0.9)
		}
	}
}

// StationFilter fuzzy-matches a location against known station names
// and returns an equality predicate on the canonical name.
func StationFilter(location string) (string, bool) {
	loc := strings.ToLower(location)
	title := cases.Title(language.English)
	for _, st := range entity.StationNames {
		if Similarity(loc, st) >= stationMatch {
			return "station_name = '" + title.String(st) + "'", true
		}
	}
	return "", false
}

func demographics(demos []entity.Demographic, m *Mapping) {
	for _, d := range demos {
		if d.Type != "gender" {
			continue
		}
		switch strings.ToLower(d.Value) {
		case "women", "female":
			m.addFilter("rider_gender = 'female'", 0.95)
		case "men", "male":
			m.addFilter("rider_gender = 'male'", 0.95)
		}
		m.addTable(schema.TableTrips, 0.9)
	}
}

func weather(conds []string, m *Mapping) {
	if len(conds) == 0 {
		return
	}
	m.addTable(schema.TableDailyWeather, 0.9)
	for _, c := range conds {
		switch c {
		case "rainy":
			m.addFilter("precipitation_mm > 0", 0.95)
		case "sunny":
			m.addFilter("precipitation_mm = 0", 0.9)
		}
	}
}

// timePeriods turns period phrases into date filters. A first-week
// phrase without a year is resolved against the whole question, so
// "first week of may in may 2023" gets 2023 like the extractor does.
func (m *Mapper) timePeriods(q string, periods []string, res *Mapping) {
	const col = "started_at"
	for _, p := range periods {
		p = strings.ToLower(p)
		if rng, ok := m.periods.FirstWeek(p); ok {
			if wk, ok := m.periods.FirstWeek(q); ok &&
				wk.Start.Month() == rng.Start.Month() {
				rng = wk
			}
			res.addDateFilter(rng.BetweenCondition(col), 0.9)
			continue
		}
		if rng, ok := m.periods.MonthYear(p); ok {
			res.addDateFilter(rng.MonthCondition(col), 0.95)
			continue
		}
		switch {
		case strings.Contains(p, "last month"):
			res.addDateFilter(m.periods.LastMonth().MonthCondition(col), 0.8)
		case strings.Contains(p, "this month"):
			res.addDateFilter(m.periods.ThisMonth().MonthCondition(col), 0.8)
		}
	}
}

func measurements(ms []string, m *Mapping) {
	for _, v := range ms {
		switch v {
		case "distance":
			m.addColumn("trip_distance_km", 0.9)
		case "time":
			m.addColumn("ended_at - started_at", 0.8)
		}
	}
}

func aggregations(aggs []string, m *Mapping) {
	for _, a := range aggs {
		m.Aggregations = append(m.Aggregations,
			Aggregation{Function: strings.ToUpper(a), Confidence: 0.95})
	}
}

func bikeType(q string, m *Mapping) {
	for _, b := range bikeTypes {
		if entity.ContainsTerm(q, b.phrase) {
			m.addFilter(b.condition, 0.95)
			m.addTable(schema.TableBikes, 0.9)
			return
		}
	}
}

func joins(m *Mapping) {
	tables := m.TableNames()
	for i, t1 := range tables {
		for _, t2 := range tables[i+1:] {
			key := tablePair{t1, t2}
			if t2 < t1 {
				key = tablePair{t2, t1}
			}
			for _, cond := range joinPatterns[key] {
				m.Joins = append(m.Joins,
					Condition{Condition: cond, Confidence: 0.9})
			}
		}
	}
}
