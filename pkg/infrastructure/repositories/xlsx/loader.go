package xlsx

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/repositories"
)

// Loader reads the first sheet of an .xlsx workbook into a table.
// Row 1 is the header and is kept exactly as written; cells are typed from
// their cell type and number format so date-formatted numbers become times.
type Loader struct{}

// NewLoader creates a new xlsx loader
func NewLoader() *Loader {
	return &Loader{}
}

// Verify interface compliance
var _ repositories.TableReader = (*Loader)(nil)

// LoadFile loads a table from a workbook on disk
func (l *Loader) LoadFile(filename string) (*entities.Table, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer f.Close()

	return l.readWorkbook(f)
}

// ReadTable loads a table from workbook bytes
func (l *Loader) ReadTable(r io.Reader) (*entities.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return l.readWorkbook(f)
}

// sheetReader carries per-sheet lookups while cells are decoded
type sheetReader struct {
	f         *excelize.File
	sheet     string
	formatted [][]string
	raw       [][]string
	date1904  bool
	dateStyle map[int]bool
}

func (l *Loader) readWorkbook(f *excelize.File) (*entities.Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read raw values of sheet %s: %w", sheet, err)
	}

	if len(formatted) == 0 {
		return entities.NewTable(nil, nil), nil
	}

	sr := &sheetReader{
		f:         f,
		sheet:     sheet,
		formatted: formatted,
		raw:       raw,
		date1904:  uses1904(f),
		dateStyle: make(map[int]bool),
	}

	width := 0
	for _, row := range formatted {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := headerNames(formatted[0], width)

	var rows [][]entities.Value
	for r := 1; r < len(formatted); r++ {
		row := make([]entities.Value, width)
		blank := true
		for c := 0; c < width; c++ {
			v, err := sr.cell(r, c)
			if err != nil {
				return nil, fmt.Errorf("sheet %s row %d: %w", sheet, r+1, err)
			}
			if !v.IsEmpty() {
				blank = false
			}
			row[c] = v
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	return entities.NewTable(columns, rows), nil
}

// headerNames names every column, labelling blank headers by position
func headerNames(header []string, width int) []string {
	columns := make([]string, width)
	for i := range columns {
		if i < len(header) && header[i] != "" {
			columns[i] = header[i]
			continue
		}
		columns[i] = fmt.Sprintf("Unnamed: %d", i)
	}
	return columns
}

func at(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

func (sr *sheetReader) cell(r, c int) (entities.Value, error) {
	text := at(sr.formatted, r, c)
	raw := at(sr.raw, r, c)
	if text == "" && raw == "" {
		return entities.Empty(), nil
	}

	axis, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return entities.Empty(), err
	}
	cellType, err := sr.f.GetCellType(sr.sheet, axis)
	if err != nil {
		return entities.Empty(), err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeBool:
		return entities.Text(text), nil
	case excelize.CellTypeError:
		return entities.Empty(), nil
	case excelize.CellTypeDate:
		if t, ok := parseISOTime(raw); ok {
			return entities.TimeValue(t), nil
		}
		return entities.Text(text), nil
	}

	number, err := decimal.NewFromString(raw)
	if err != nil {
		return entities.Text(text), nil
	}

	isDate, err := sr.isDateCell(axis)
	if err != nil {
		return entities.Empty(), err
	}
	if !isDate {
		return entities.Number(number), nil
	}

	t, err := excelize.ExcelDateToTime(number.InexactFloat64(), sr.date1904)
	if err != nil {
		return entities.Text(text), nil
	}
	return entities.TimeValue(t), nil
}

func (sr *sheetReader) isDateCell(axis string) (bool, error) {
	styleID, err := sr.f.GetCellStyle(sr.sheet, axis)
	if err != nil {
		return false, err
	}
	if isDate, ok := sr.dateStyle[styleID]; ok {
		return isDate, nil
	}

	style, err := sr.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := isDateFormat(style.NumFmt, style.CustomNumFmt)
	sr.dateStyle[styleID] = isDate
	return isDate, nil
}

// isDateFormat reports whether a number format displays a calendar date
func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil {
		return customFormatHasDate(*custom)
	}
	switch {
	case numFmt >= 14 && numFmt <= 17, numFmt == 22:
		return true
	case numFmt >= 27 && numFmt <= 36, numFmt >= 50 && numFmt <= 58:
		return true
	default:
		return false
	}
}

func customFormatHasDate(format string) bool {
	var b strings.Builder
	quoted, bracketed := false, false
	for _, r := range format {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracketed = true
		case r == ']':
			bracketed = false
		case bracketed:
		default:
			b.WriteRune(r)
		}
	}
	stripped := strings.ToLower(b.String())
	return strings.ContainsAny(stripped, "yd")
}

var isoLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseISOTime(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func uses1904(f *excelize.File) bool {
	props, err := f.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}
