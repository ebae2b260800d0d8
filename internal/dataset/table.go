package dataset

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrFormat reports a malformed input table, e.g. a row whose column
	// count does not match the header.
	ErrFormat = errors.New("malformed table")
	// ErrEmptyData reports a table with no data rows.
	ErrEmptyData = errors.New("table contains no data")
	// ErrSourceUnavailable reports a remote source that could not be
	// fetched or is not publicly readable.
	ErrSourceUnavailable = errors.New("data source unavailable")
	// ErrBadSheetURL reports a sheet link the loader cannot parse.
	ErrBadSheetURL = errors.New("invalid sheet URL")
)

// Cell is one response value. Missing cells stay in the row so a blank
// answer is never silently dropped.
type Cell struct {
	Value   string
	Missing bool
}

// Row maps a question identifier to the response given for it.
type Row map[string]Cell

// EvaluationTable is the normalized in-memory form of a survey export.
// Questions preserves header order; every row carries a cell for every
// question. The table is built once per report and not mutated afterwards.
type EvaluationTable struct {
	Questions []string
	Rows      []Row
}

// Column returns the cells of one question in row order. Unknown
// questions yield nil.
func (t *EvaluationTable) Column(question string) []Cell {
	known := false
	for _, q := range t.Questions {
		if q == question {
			known = true
			break
		}
	}
	if !known {
		return nil
	}

	cells := make([]Cell, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells = append(cells, row[question])
	}
	return cells
}

// HasQuestion reports whether the header contains the given identifier.
func (t *EvaluationTable) HasQuestion(question string) bool {
	for _, q := range t.Questions {
		if q == question {
			return true
		}
	}
	return false
}

// newCell normalizes one raw value. Survey exports often encode scale
// answers as "5: Excellent"; only the label after the numeric prefix is
// kept so counting and scoring see one canonical form.
func newCell(raw string) Cell {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Cell{Missing: true}
	}

	if prefix, label, ok := strings.Cut(v, ": "); ok {
		if _, err := strconv.Atoi(strings.TrimSpace(prefix)); err == nil {
			label = strings.TrimSpace(label)
			if label != "" {
				return Cell{Value: label}
			}
		}
	}

	return Cell{Value: v}
}

func tableFromRecords(records [][]string) (*EvaluationTable, error) {
	if len(records) == 0 {
		return nil, ErrEmptyData
	}

	header := records[0]
	questions := make([]string, 0, len(header))
	for _, h := range header {
		questions = append(questions, strings.TrimSpace(h))
	}
	if len(questions) == 0 {
		return nil, ErrEmptyData
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) > len(questions) {
			return nil, ErrFormat
		}
		row := make(Row, len(questions))
		for i, q := range questions {
			if i < len(rec) {
				row[q] = newCell(rec[i])
			} else {
				row[q] = Cell{Missing: true}
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyData
	}

	return &EvaluationTable{Questions: questions, Rows: rows}, nil
}
