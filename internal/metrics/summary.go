package metrics

import (
	"strconv"
	"strings"

	"github.com/acadeval/report-server/internal/dataset"
)

// QuestionSummary aggregates the responses of one survey question.
//
// Categories carries the distribution keys in first-occurrence order; both
// the chart renderer and the report composer consume this slice so segment
// ordering and colors stay consistent across the document.
type QuestionSummary struct {
	Question     string
	Numeric      bool
	Categories   []string
	Counts       map[string]int
	Valid        int
	NonResponses int
	// Mean is nil when the question has no valid numeric responses.
	// "no data" is distinct from a mean of zero.
	Mean *float64
}

// HasData reports whether any valid response was observed.
func (s QuestionSummary) HasData() bool {
	return s.Valid > 0
}

// Summarize computes one QuestionSummary per question identifier, in the
// table's header order. It is a pure function of the input table: the same
// table always yields the same summaries.
func Summarize(table *dataset.EvaluationTable) []QuestionSummary {
	summaries := make([]QuestionSummary, 0, len(table.Questions))
	for _, q := range table.Questions {
		summaries = append(summaries, summarizeColumn(q, table.Column(q)))
	}
	return summaries
}

func summarizeColumn(question string, cells []dataset.Cell) QuestionSummary {
	s := QuestionSummary{
		Question:   question,
		Categories: []string{},
		Counts:     make(map[string]int),
	}

	var numericValues []float64
	var textValues []string
	for _, c := range cells {
		if c.Missing {
			s.NonResponses++
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64); err == nil {
			numericValues = append(numericValues, v)
		}
		textValues = append(textValues, c.Value)
	}

	// A column counts as numeric when numbers dominate its answered
	// cells. Stray text inside such a column is a non-response, not a
	// category of its own.
	s.Numeric = len(numericValues) > 0 && 2*len(numericValues) >= len(textValues)

	if s.Numeric {
		sum := 0.0
		for _, v := range numericValues {
			sum += v
		}
		mean := sum / float64(len(numericValues))
		s.Mean = &mean
		s.Valid = len(numericValues)
		s.NonResponses += len(textValues) - len(numericValues)

		for _, raw := range textValues {
			v := strings.TrimSpace(raw)
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				continue
			}
			if _, seen := s.Counts[v]; !seen {
				s.Categories = append(s.Categories, v)
			}
			s.Counts[v]++
		}
		return s
	}

	s.Valid = len(textValues)
	for _, v := range textValues {
		if _, seen := s.Counts[v]; !seen {
			s.Categories = append(s.Categories, v)
		}
		s.Counts[v]++
	}
	return s
}
