package entity

// group maps a canonical tag to keywords that signal it.
type group struct {
	tag      string
	keywords []string
}

// fixedPeriods are time-period phrases appended verbatim when found.
// Calendar phrases ("june 2025", "first week of june") are found by
// the period package instead.
var fixedPeriods = []string{
	"last month",
	"this month",
	"morning",
	"afternoon",
	"evening",
	"night",
	"weekday",
	"weekend",
}

var weatherGroups = []group{
	{"rainy", []string{"rainy", "rain", "wet"}},
	{"sunny", []string{"sunny", "clear", "dry"}},
	{"hot", []string{"hot", "warm", "high temperature"}},
	{"cold", []string{"cold", "cool", "low temperature"}},
}

var aggregationGroups = []group{
	{"count", []string{"how many", "count", "number of"}},
	{"average", []string{"average", "avg", "mean"}},
	{"sum", []string{"total", "sum", "add up"}},
	{"max", []string{"maximum", "max", "highest", "most"}},
	{"min", []string{"minimum", "min", "lowest", "least"}},
}

var measurementGroups = []group{
	{"distance", []string{"kilometres", "kilometers", "km", "distance", "miles"}},
	{"time", []string{"minutes", "hours", "time", "duration"}},
	{"temperature", []string{"degrees", "celsius", "fahrenheit", "temp"}},
	{"precipitation", []string{"mm", "millimeters", "rain", "precipitation"}},
}

// demographicGroups are scanned without stopping at the first match.
var demographicGroups = []group{
	{"gender", []string{"women", "men", "male", "female", "non-binary"}},
	{"age", []string{"young", "old", "adult", "senior", "teen"}},
}

// StationNames is the gazetteer of known stations, lower-cased.
var StationNames = []string{
	"congress avenue",
	"barton springs",
	"capitol square",
	"east side",
	"river walk",
}

// locationTerms are generic location nouns recorded as filter hints.
var locationTerms = []string{"station", "docking point", "departure", "arrival"}
