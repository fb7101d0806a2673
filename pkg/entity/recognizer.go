package entity

import (
	"regexp"
	"slices"
	"strings"
)

// Label is a named-entity category.
type Label string

const (
	Cardinal Label = "CARDINAL"
	Quantity Label = "QUANTITY"
	Date     Label = "DATE"
	Time     Label = "TIME"
	GPE      Label = "GPE"
	Loc      Label = "LOC"
	Fac      Label = "FAC"
	Person   Label = "PERSON"
	Org      Label = "ORG"
)

// Span is a labelled piece of text.
type Span struct {
	Text  string
	Label Label
	Start int
}

// Recognizer finds named entities in lower-cased text.
type Recognizer interface {
	Recognize(text string) []Span
}

// LexiconRecognizer is a rule-based Recognizer. It knows about numbers,
// calendar expressions, clock times, streets and a few place names.
// Lower-cased text carries no capitalization hints, so it never
// reports people or organizations.
type LexiconRecognizer struct {
	rules []rule
}

type rule struct {
	label Label
	re    *regexp.Regexp
}

const (
	months = `january|february|march|april|may|june|july|august|` +
		`september|october|november|december`
	weekdays   = `monday|tuesday|wednesday|thursday|friday|saturday|sunday`
	numWords   = `one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|twenty|thirty|hundred`
	units      = `km|kilometers|kilometres|miles|meters|minutes|mins|hours|mm|millimeters|degrees|celsius|fahrenheit|bikes|trips|rides`
	placeWords = `avenue|street|square|springs|park|bridge|plaza|walk|side`
)

// NewLexiconRecognizer creates the default recognizer.
// Rules are ordered by priority: a later rule never claims text
// already claimed by an earlier one.
func NewLexiconRecognizer() *LexiconRecognizer {
	return &LexiconRecognizer{
		rules: []rule{
			{Date, regexp.MustCompile(
				`\b(?:the\s+)?first\s+week\s+of\s+(?:` + months + `)(?:\s+\d{4})?\b`)},
			{Date, regexp.MustCompile(
				`\b(?:` + months + `)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`)},
			{Date, regexp.MustCompile(`\b(?:` + months + `)(?:\s+\d{4})?\b`)},
			{Date, regexp.MustCompile(`\b(?:last|this|next)\s+(?:month|week|year)\b`)},
			{Date, regexp.MustCompile(`\b(?:` + weekdays + `)s?\b`)},
			{Date, regexp.MustCompile(`\b(?:today|yesterday|weekends?)\b`)},
			{Date, regexp.MustCompile(`\b(?:19|20)\d{2}\b`)},
			{Time, regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`)},
			{Time, regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)},
			{Time, regexp.MustCompile(`\b(?:noon|midnight|tonight)\b`)},
			{Quantity, regexp.MustCompile(
				`\b\d+(?:\.\d+)?\s*(?:` + units + `)\b`)},
			{Fac, regexp.MustCompile(`\b[a-z]+\s+(?:` + placeWords + `)\b`)},
			{GPE, regexp.MustCompile(`\b(?:austin|texas|downtown)\b`)},
			{Cardinal, regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)},
			{Cardinal, regexp.MustCompile(`\b(?:` + numWords + `)\b`)},
		},
	}
}

// Recognize returns non-overlapping spans ordered by position.
func (l *LexiconRecognizer) Recognize(text string) []Span {
	var res []Span
	claimed := make([]bool, len(text))

	for _, r := range l.rules {
		for _, loc := range r.re.FindAllStringIndex(text, -1) {
			if slices.Contains(claimed[loc[0]:loc[1]], true) {
				continue
			}
			for i := loc[0]; i < loc[1]; i++ {
				claimed[i] = true
			}
			res = append(res, Span{
				Text:  strings.TrimPrefix(text[loc[0]:loc[1]], "the "),
				Label: r.label,
				Start: loc[0],
			})
		}
	}

	slices.SortFunc(res, func(a, b Span) int {
		return a.Start - b.Start
	})
	return res
}
