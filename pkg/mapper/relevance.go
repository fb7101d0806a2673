package mapper

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bikeq/bikeq/pkg/schema"
)

// ColumnScore is a column ranked against a question.
type ColumnScore struct {
	Table  string  `json:"table" yaml:"table"`
	Column string  `json:"column" yaml:"column"`
	Score  float64 `json:"score" yaml:"score"`
}

// ScoreColumnRelevance scores how well a column name fits the text.
// Shared words give 0.8 plus 0.1 per word, otherwise the best
// word-to-word similarity is scaled by 0.6.
func ScoreColumnRelevance(column, text string) float64 {
	textWords := wordSet(strings.Fields(strings.ToLower(text)))
	colWords := wordSet(strings.Fields(
		strings.ReplaceAll(strings.ToLower(column), "_", " ")))

	var direct int
	for w := range colWords {
		if textWords[w] {
			direct++
		}
	}
	if direct > 0 {
		return 0.8 + float64(direct)*0.1
	}

	var best float64
	for tw := range textWords {
		for cw := range colWords {
			best = max(best, Similarity(tw, cw))
		}
	}
	return best * 0.6
}

// RankColumns scores every column of the description against the text
// and returns the top n, best first. A non-positive n returns all.
func RankColumns(desc schema.Description, text string, n int) []ColumnScore {
	var res []ColumnScore
	for _, t := range desc.Tables {
		for _, c := range t.Columns {
			res = append(res, ColumnScore{
				Table:  t.Name,
				Column: c.Name,
				Score:  ScoreColumnRelevance(c.Name, text),
			})
		}
	}
	slices.SortStableFunc(res, func(a, b ColumnScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if n > 0 && len(res) > n {
		res = res[:n]
	}
	return res
}

func wordSet(words []string) map[string]bool {
	res := make(map[string]bool, len(words))
	for _, w := range words {
		res[w] = true
	}
	return res
}
