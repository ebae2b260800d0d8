package dataset

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an Excel workbook into an
// EvaluationTable. Rows shorter than the header are padded with missing
// cells, matching how spreadsheet exports drop trailing blanks.
func ParseXLSX(r io.Reader) (*EvaluationTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrEmptyData
	}

	records, err := f.GetRows(sheetList[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	return tableFromRecords(records)
}
