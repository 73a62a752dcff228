package testing

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// PieceReportRows is a small piece report with two lots. Against a reference date of
// 2026-01-12, lot G-1 is 42 days old and G-2 was received in the reference month.
var PieceReportRows = [][]interface{}{
	{"Group ID ", "Item", "Receipt Date", "Count Qty On Hand", "Grs Weight On Hand"},
	{"G-1", "APPLE", "12/1/2025", 10, 1.5},
	{"G-2", "PEAR", "1/9/2026", 4, 2},
	{"G-1", "APPLE", "12/2/2025", 6, 0.25},
}

// BuildWorkbook writes rows into the first sheet of a new workbook, one row per slice
func BuildWorkbook(rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for r, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := row
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}
	return f, nil
}

// WriteWorkbook saves rows as an .xlsx file at path
func WriteWorkbook(path string, rows [][]interface{}) error {
	f, err := BuildWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// WorkbookBytes renders rows as .xlsx content, for upload tests
func WorkbookBytes(rows [][]interface{}) ([]byte, error) {
	f, err := BuildWorkbook(rows)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
