package xlsx

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

func sampleTable() *entities.Table {
	return entities.NewTable(
		[]string{"Group ID", "Count Qty On Hand", "Receipt Date", "Weeks Since Receipt Date", "Note"},
		[][]entities.Value{
			{
				entities.Text("LP-1"),
				entities.Int(15),
				entities.DateValue(entities.NewDate(2025, time.December, 1)),
				entities.FixedNumber(decimal.RequireFromString("6"), 2),
				entities.Empty(),
			},
			{
				entities.Text("LP-2"),
				entities.Number(decimal.RequireFromString("7.25")),
				entities.DateValue(entities.NewDate(2026, time.January, 9)),
				entities.Empty(),
				entities.Text("late"),
			},
		},
	)
}

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter().WriteTable(&buf, entities.InteractiveSheetName, sampleTable()); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != entities.InteractiveSheetName {
		t.Fatalf("Expected single sheet %q, got %v", entities.InteractiveSheetName, sheets)
	}

	table, err := NewLoader().ReadTable(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	want := sampleTable()
	for i, col := range want.Columns {
		if table.Columns[i] != col {
			t.Errorf("column %d: expected %q, got %q", i, col, table.Columns[i])
		}
	}
	if table.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.Len())
	}

	if v := table.Cell(0, 2); v.Kind != entities.KindTime || entities.DateOf(v.Time) != entities.NewDate(2025, time.December, 1) {
		t.Errorf("Expected receipt date to round trip as a date, got %+v", v)
	}
	if v := table.Cell(0, 3); v.Kind != entities.KindNumber || !v.Number.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Expected weeks 6, got %+v", v)
	}
	if v := table.Cell(1, 1); !v.Number.Equal(decimal.RequireFromString("7.25")) {
		t.Errorf("Expected 7.25, got %+v", v)
	}
	if v := table.Cell(1, 3); !v.IsEmpty() {
		t.Errorf("Expected empty metric cell, got %+v", v)
	}
	if v := table.Cell(1, 4); v.Text != "late" {
		t.Errorf("Expected note, got %+v", v)
	}
}

func TestWriter_WriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), entities.BatchOutputFileName)
	w := NewWriter()

	if err := w.WriteFile(path, "Sheet1", sampleTable()); err != nil {
		t.Fatalf("first WriteFile failed: %v", err)
	}
	if err := w.WriteFile(path, "Sheet1", sampleTable().Head(1)); err != nil {
		t.Fatalf("second WriteFile failed: %v", err)
	}

	table, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("Expected overwritten file with 1 row, got %d", table.Len())
	}
}
