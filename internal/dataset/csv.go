package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ParseCSV reads a CSV export into an EvaluationTable. The first record
// is the header defining the question identifiers.
func ParseCSV(r io.Reader) (*EvaluationTable, error) {
	reader := csv.NewReader(r)

	records, err := reader.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return tableFromRecords(records)
}
