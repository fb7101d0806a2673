// Package sqlguard is a lexical gate for generated SQL. It rejects
// statements with data-changing keywords and statements that read from
// tables outside of the allow-list. It is not a SQL parser.
package sqlguard

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/bikeq/bikeq/pkg/schema"
)

// Forbidden keywords are rejected anywhere in a statement.
var Forbidden = []string{
	"DELETE", "UPDATE", "INSERT", "DROP", "ALTER", "TRUNCATE", "CREATE",
}

// Verdict is the result of a validation.
type Verdict struct {
	Safe   bool
	Reason string
}

// AllowedTables returns the names of tables a statement may read.
func AllowedTables() []string {
	return schema.AllowedTables()
}

// Validate checks the statement. It is pure and keeps no state, so it
// can be called on every generated statement.
func Validate(sql string) Verdict {
	upper := strings.ToUpper(strings.TrimSpace(sql))

	for _, kw := range Forbidden {
		if strings.Contains(upper, kw) {
			return Verdict{Reason: fmt.Sprintf(
				"Query contains unsafe operation: %s. "+
					"Only SELECT queries are allowed.", kw)}
		}
	}

	toks := tokenize(upper)
	// calls has one entry per open parenthesis: true for a function
	// call, false for a subquery or a grouping.
	var calls []bool
	for i, tok := range toks {
		switch tok {
		case "(":
			sub := i+1 < len(toks) && toks[i+1] == "SELECT"
			calls = append(calls, !sub && isCall(toks, i))
			continue
		case ")":
			if len(calls) > 0 {
				calls = calls[:len(calls)-1]
			}
			continue
		case "FROM":
			if len(calls) > 0 && calls[len(calls)-1] {
				continue
			}
		case "JOIN":
		default:
			continue
		}
		if i+1 >= len(toks) || toks[i+1] == "(" {
			continue
		}
		if tbl, ok := checkTable(toks[i+1]); !ok {
			return Verdict{Reason: fmt.Sprintf(
				"Query references unknown table '%s'. Available tables: %s",
				tbl, strings.Join(AllowedTables(), ", "))}
		}
	}

	return Verdict{Safe: true}
}

// isCall reports whether the parenthesis at position i follows a
// function name, as in EXTRACT(DOW FROM started_at).
func isCall(toks []string, i int) bool {
	if i == 0 {
		return false
	}
	prev := toks[i-1]
	switch prev {
	case "(", ")", ",", "IN", "FROM", "JOIN", "EXISTS", "AS", "ON",
		"WHERE", "AND", "OR", "NOT", "SELECT":
		return false
	}
	return true
}

// tokenize splits upper-cased SQL into words. Parentheses and commas
// are tokens of their own, and quoted literals become a single "?".
func tokenize(sql string) []string {
	var (
		res []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			res = append(res, cur.String())
			cur.Reset()
		}
	}

	inQuote := false
	for _, r := range sql {
		if inQuote {
			if r == '\'' {
				inQuote = false
			}
			continue
		}
		switch {
		case r == '\'':
			flush()
			res = append(res, "?")
			inQuote = true
		case r == '(' || r == ')' || r == ',':
			flush()
			res = append(res, string(r))
		case unicode.IsSpace(r) || r == ';':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return res
}

// checkTable normalizes a table token and reports whether it is allowed.
func checkTable(token string) (string, bool) {
	tbl := strings.ToLower(strings.Trim(token, "\""))
	tbl = strings.TrimPrefix(tbl, "public.")
	tbl = strings.Trim(tbl, "\"")
	return tbl, slices.Contains(AllowedTables(), tbl)
}
