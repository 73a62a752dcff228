package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/repositories"
)

// Built-in number formats: 14 renders as m/d/yyyy in US locales, 2 is "0.00"
const (
	dateNumFmt  = 14
	fixedNumFmt = 2
)

// Writer writes a table into a single-sheet workbook, keeping column order
type Writer struct{}

// NewWriter creates a new xlsx writer
func NewWriter() *Writer {
	return &Writer{}
}

// Verify interface compliance
var _ repositories.TableWriter = (*Writer)(nil)

// WriteTable streams the workbook to w
func (w *Writer) WriteTable(out io.Writer, sheet string, table *entities.Table) error {
	f, err := w.workbook(sheet, table)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook to filename, replacing any existing file
func (w *Writer) WriteFile(filename, sheet string, table *entities.Table) error {
	f, err := w.workbook(sheet, table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filename, err)
	}
	return nil
}

type cellStyles struct {
	header int
	date   int
	fixed  int
}

func (w *Writer) workbook(sheet string, table *entities.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	if defaultSheet := f.GetSheetName(0); defaultSheet != sheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet %s: %w", sheet, err)
		}
	}

	styles, err := newCellStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, name := range table.Columns {
		header[i] = excelize.Cell{StyleID: styles.header, Value: name}
	}
	if err := sw.SetRow("A1", header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = styles.cell(v)
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := sw.SetRow(axis, cells); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to flush sheet %s: %w", sheet, err)
	}
	return f, nil
}

func newCellStyles(f *excelize.File) (cellStyles, error) {
	var styles cellStyles
	var err error

	if styles.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return styles, fmt.Errorf("failed to create header style: %w", err)
	}
	if styles.date, err = f.NewStyle(&excelize.Style{NumFmt: dateNumFmt}); err != nil {
		return styles, fmt.Errorf("failed to create date style: %w", err)
	}
	if styles.fixed, err = f.NewStyle(&excelize.Style{NumFmt: fixedNumFmt}); err != nil {
		return styles, fmt.Errorf("failed to create number style: %w", err)
	}
	return styles, nil
}

func (s cellStyles) cell(v entities.Value) interface{} {
	switch v.Kind {
	case entities.KindText:
		return v.Text
	case entities.KindNumber:
		if v.Places >= 0 {
			return excelize.Cell{StyleID: s.fixed, Value: v.Number.InexactFloat64()}
		}
		if v.Number.IsInteger() {
			return v.Number.IntPart()
		}
		return v.Number.InexactFloat64()
	case entities.KindTime:
		return excelize.Cell{StyleID: s.date, Value: v.Time}
	default:
		return nil
	}
}
