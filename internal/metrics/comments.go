package metrics

import (
	"strings"

	"github.com/acadeval/report-server/internal/dataset"
)

// placeholder answers people type instead of leaving the box blank
var commentPlaceholders = map[string]struct{}{
	"n/a": {},
	"na":  {},
	"no":  {},
	"":    {},
}

// Comments extracts the free-text answers of one column, dropping blanks
// and placeholder non-answers. A missing column yields no comments.
func Comments(table *dataset.EvaluationTable, column string) []string {
	if !table.HasQuestion(column) {
		return nil
	}

	var comments []string
	for _, cell := range table.Column(column) {
		if cell.Missing {
			continue
		}
		normalized := strings.ToLower(strings.TrimSpace(cell.Value))
		if _, skip := commentPlaceholders[normalized]; skip {
			continue
		}
		comments = append(comments, cell.Value)
	}
	return comments
}
