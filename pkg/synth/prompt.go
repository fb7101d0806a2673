package synth

import (
	"encoding/json"
	"strings"

	"github.com/bikeq/bikeq/pkg/entity"
	"github.com/bikeq/bikeq/pkg/mapper"
	"github.com/bikeq/bikeq/pkg/schema"
)

// Prompt is an instruction document for a Generator.
type Prompt struct {
	// System holds the schema, the mapping hints and the rules.
	System string
	// User holds the question and the extracted entities.
	User string
}

const rules = `RULES:
1. Generate ONLY parameterized SQL queries (use $1, $2, ... for parameters)
2. NEVER put literal values from the question into the SQL text, pass them in "params"
3. Always use proper JOINs when multiple tables are needed
4. For date/time filters, use appropriate PostgreSQL date functions
5. Handle aggregations (COUNT, AVG, SUM, MAX, MIN) based on the question
6. Use CASE statements for conditional logic
7. Always validate that column names exist in the schema
8. ONLY generate SELECT queries - NEVER DELETE, UPDATE, INSERT, or DROP
9. If the question is not about bike share data, set "sql" to null and put the reason into "error"
10. Only use tables: bikes, trips, stations, daily_weather
11. IMPORTANT: The trips table has columns: trip_id, started_at, ended_at, start_station_id, end_station_id, bike_id, trip_distance_km, rider_birth_year, rider_gender
12. For weekend queries, use EXTRACT(DOW FROM started_at) IN (0, 6) where 0=Sunday, 6=Saturday
13. Always use "started_at" and "ended_at" for trip timestamps - NEVER "start_time" or "end_time"
14. Use "rider_birth_year" - NEVER "birth_year"
15. Use "rider_gender" - NEVER "gender"

WEATHER CONDITIONS:
- "rainy days" means precipitation_mm > 0
- "sunny days" means precipitation_mm = 0

GENDER:
- "women" means rider_gender = 'female'
- "men" means rider_gender = 'male'

BIKE MODELS - CRITICAL UNICODE HANDLING:
- Use EXACT bike model names: '` + eBike + `', 'Classic', '` + stepThru + `'
- ` + eBike + ` and ` + stepThru + ` use Unicode U+2011 (‑) NOT ASCII hyphen (-)
- When generating bike_model filters, use these exact Unicode strings
- Example: bike_model = '` + eBike + `' (with Unicode ‑ hyphen)

Return JSON in this exact format:
{
    "sql": "SELECT ... FROM ... WHERE ... ",
    "params": [param1, param2, ...],
    "explanation": "Brief explanation of the query logic"
}
or, for unrelated questions:
{
    "sql": null,
    "error": "Why the question cannot be answered"
}`

const focus = `Focus on:
1. Identifying the main metric requested (count, average, sum, etc.)
2. Applying appropriate filters based on entities
3. Joining tables as needed
4. Using parameterized queries for safety
`

// BuildPrompt assembles the instruction document for a question.
func BuildPrompt(
	question string,
	ents entity.Bag,
	desc schema.Description,
	mapping mapper.Mapping,
) Prompt {
	var sys strings.Builder
	sys.WriteString("You are an expert SQL query generator for a " +
		"bike-share analytics system.\n\n")
	sys.WriteString("DATABASE SCHEMA:\n")
	sys.WriteString(desc.Render())
	sys.WriteString("\nSEMANTIC MAPPINGS:\n")
	sys.WriteString(indentJSON(mapping))
	sys.WriteString("\n\n")
	sys.WriteString(rules)

	var usr strings.Builder
	usr.WriteString("\nConvert this natural language question to SQL:\n")
	usr.WriteString(`"` + question + `"` + "\n\n")
	usr.WriteString("Extracted entities: ")
	usr.WriteString(indentJSON(ents))
	usr.WriteString("\n\n")
	usr.WriteString(focus)

	return Prompt{System: sys.String(), User: usr.String()}
}

func indentJSON(v any) string {
	res, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(res)
}
