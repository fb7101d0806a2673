package entity

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bikeq/bikeq/pkg/period"
)

// Extractor turns question text into a Bag.
type Extractor struct {
	rec     Recognizer
	periods period.Resolver
}

// Option configures an Extractor.
type Option func(*Extractor)

// OptRecognizer replaces the default LexiconRecognizer.
func OptRecognizer(r Recognizer) Option {
	return func(e *Extractor) {
		if r != nil {
			e.rec = r
		}
	}
}

// OptResolver sets the resolver for calendar phrases.
func OptResolver(r period.Resolver) Option {
	return func(e *Extractor) {
		e.periods = r
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	res := &Extractor{
		rec:     NewLexiconRecognizer(),
		periods: period.New(),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Extract finds entities in the text. It never fails: empty text, or a
// recognizer that panics, gives a bag with empty slots.
func (e *Extractor) Extract(text string) (res Bag) {
	res = NewBag()
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Entity extraction failed",
				"error", ExtractionInputError(text, r))
			res = NewBag()
		}
	}()

	e.recognize(text, &res)
	e.timePatterns(text, &res)
	scanGroups(text, weatherGroups, true, &res.WeatherConditions)
	scanGroups(text, aggregationGroups, true, &res.Aggregations)
	scanGroups(text, measurementGroups, true, &res.Measurements)
	demographicPatterns(text, &res)
	locationPatterns(text, &res)

	slog.Debug("Extracted entities", "text", text, "entities", res)
	return res
}

func (e *Extractor) recognize(text string, bag *Bag) {
	for _, s := range e.rec.Recognize(text) {
		switch s.Label {
		case Cardinal, Quantity:
			bag.Numbers = append(bag.Numbers, s.Text)
		case Date, Time:
			bag.Dates = append(bag.Dates, s.Text)
		case GPE, Loc, Fac:
			bag.Locations = append(bag.Locations, s.Text)
		case Person:
			bag.People = append(bag.People, s.Text)
		case Org:
			bag.Organizations = append(bag.Organizations, s.Text)
		}
	}
}

func (e *Extractor) timePatterns(text string, bag *Bag) {
	for _, p := range fixedPeriods[:2] {
		if ContainsTerm(text, p) {
			bag.TimePeriods = append(bag.TimePeriods, p)
		}
	}

	monthYears := period.MonthYearRe.FindAllString(text, -1)
	bag.TimePeriods = append(bag.TimePeriods, monthYears...)

	firstWeek := period.FirstWeekRe.FindString(text)
	if firstWeek != "" {
		bag.TimePeriods = append(bag.TimePeriods, firstWeek)
	}

	for _, p := range fixedPeriods[2:] {
		if ContainsTerm(text, p) {
			bag.TimePeriods = append(bag.TimePeriods, p)
		}
	}

	for _, my := range monthYears {
		if rng, ok := e.periods.MonthYear(my); ok {
			bag.Dates = append(bag.Dates, rng.Month())
		}
	}
	if rng, ok := e.periods.FirstWeek(text); ok {
		bag.Dates = append(bag.Dates, rng.String())
	}
}

// scanGroups appends the tag of every group that has a keyword in
// the text. With firstOnly the tag is added once per group,
// otherwise once per matching keyword.
func scanGroups(text string, groups []group, firstOnly bool, out *[]string) {
	for _, g := range groups {
		for _, kw := range g.keywords {
			if ContainsTerm(text, kw) {
				*out = append(*out, g.tag)
				if firstOnly {
					break
				}
			}
		}
	}
}

func demographicPatterns(text string, bag *Bag) {
	for _, g := range demographicGroups {
		for _, kw := range g.keywords {
			if ContainsTerm(text, kw) {
				bag.Demographics = append(bag.Demographics,
					Demographic{Type: g.tag, Value: kw})
			}
		}
	}
}

func locationPatterns(text string, bag *Bag) {
	for _, st := range StationNames {
		if ContainsTerm(text, st) {
			bag.Locations = append(bag.Locations, st)
		}
	}
	for _, term := range locationTerms {
		if ContainsTerm(text, term) {
			bag.Filters = append(bag.Filters, term)
		}
	}
}

// ContainsTerm reports whether the term occurs in the text starting at
// a word boundary. The end of the term is not checked, so "trip" is
// found in "trips", while "men" is not found in "women".
func ContainsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	for i := 0; ; {
		idx := strings.Index(text[i:], term)
		if idx < 0 {
			return false
		}
		pos := i + idx
		if pos == 0 {
			return true
		}
		r, _ := utf8.DecodeLastRuneInString(text[:pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
		i = pos + 1
	}
}
