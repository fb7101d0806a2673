package synth

import (
	"strconv"
	"strings"

	"github.com/bikeq/bikeq/pkg/schema"
)

const (
	eBike    = schema.BikeEBike
	stepThru = schema.BikeStepThru
)

// bikeModels maps lower-cased spellings to stored bike model names.
var bikeModels = map[string]string{
	"e-bike":    eBike,
	"e‑bike":    eBike,
	"ebike":     eBike,
	"e bike":    eBike,
	"electric":  eBike,
	"step-thru": stepThru,
	"step‑thru": stepThru,
	"step thru": stepThru,
	"stepthru":  stepThru,
	"classic":   schema.BikeClassic,
}

// NormalizeParams rewrites string parameters that name a bike model to
// the spelling used in the database, which contains U+2011 hyphens.
// Other values are returned unchanged.
func NormalizeParams(params []any) []any {
	res := make([]any, len(params))
	for i, p := range params {
		res[i] = p
		s, ok := p.(string)
		if !ok {
			continue
		}
		if canon, ok := bikeModels[strings.ToLower(strings.TrimSpace(s))]; ok {
			res[i] = canon
		}
	}
	return res
}

// RewritePlaceholders turns %s placeholders into $1, $2, ... in order.
// Text inside single-quoted literals is left alone.
func RewritePlaceholders(sql string) string {
	var sb strings.Builder
	var n int
	var quoted bool
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case c == '\'':
			quoted = !quoted
		case !quoted && c == '%' && i+1 < len(sql) && sql[i+1] == 's':
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
