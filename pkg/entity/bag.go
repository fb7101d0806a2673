// Package entity extracts typed entities from a bike-share question.
// Extraction is a pure function of the text and static keyword tables.
package entity

// Demographic is a demographic term found in a question, such as
// {Type: "gender", Value: "women"}.
type Demographic struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Bag holds entities extracted from one question. Every slot is always
// present and never nil, so an empty slot encodes as [] in JSON.
type Bag struct {
	Numbers           []string      `json:"numbers"`
	Dates             []string      `json:"dates"`
	Locations         []string      `json:"locations"`
	People            []string      `json:"people"`
	Organizations     []string      `json:"organizations"`
	TimePeriods       []string      `json:"time_periods"`
	WeatherConditions []string      `json:"weather_conditions"`
	Aggregations      []string      `json:"aggregations"`
	Filters           []string      `json:"filters"`
	Measurements      []string      `json:"measurements"`
	Demographics      []Demographic `json:"demographics"`
}

// NewBag returns a Bag with every slot set to an empty slice.
func NewBag() Bag {
	return Bag{
		Numbers:           []string{},
		Dates:             []string{},
		Locations:         []string{},
		People:            []string{},
		Organizations:     []string{},
		TimePeriods:       []string{},
		WeatherConditions: []string{},
		Aggregations:      []string{},
		Filters:           []string{},
		Measurements:      []string{},
		Demographics:      []Demographic{},
	}
}

// IsEmpty is true when no slot has entries.
func (b Bag) IsEmpty() bool {
	return len(b.Numbers)+len(b.Dates)+len(b.Locations)+len(b.People)+
		len(b.Organizations)+len(b.TimePeriods)+len(b.WeatherConditions)+
		len(b.Aggregations)+len(b.Filters)+len(b.Measurements)+
		len(b.Demographics) == 0
}

// Gender returns values of all gender demographics.
func (b Bag) Gender() []string {
	var res []string
	for _, d := range b.Demographics {
		if d.Type == "gender" {
			res = append(res, d.Value)
		}
	}
	return res
}
