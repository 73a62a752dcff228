package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/services"
	"github.com/vsinha/receiptaging/pkg/infrastructure/repositories/xlsx"
)

func TestGenerateCommand_WritesPieceReport(t *testing.T) {
	dir := t.TempDir()
	cmd := NewGenerateCommand(GenerateConfig{
		Groups:        5,
		MaxPieces:     2,
		HistoryDays:   30,
		ReferenceDate: "2026-01-12",
		OutputDir:     dir,
		Seed:          42,
		Verbose:       true,
		Stdout:        &bytes.Buffer{},
	})
	if err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	table, err := xlsx.NewLoader().LoadFile(filepath.Join(dir, SampleFileName))
	if err != nil {
		t.Fatalf("Failed to load generated report: %v", err)
	}

	if len(table.Columns) != len(sampleColumns) {
		t.Fatalf("Expected %d columns, got %d", len(sampleColumns), len(table.Columns))
	}
	if table.Len() < 5 || table.Len() > 10 {
		t.Errorf("Expected between 5 and 10 rows, got %d", table.Len())
	}

	today := entities.NewDate(2026, time.January, 12)
	earliest := entities.NewDate(2025, time.December, 13)
	normalizer := services.NewDateNormalizer()
	receiptCol := table.Index(entities.ColumnReceiptDate)
	for i := 0; i < table.Len(); i++ {
		received, ok := normalizer.Normalize(table.Cell(i, receiptCol)).Get()
		if !ok {
			t.Fatalf("Row %d: unreadable receipt date %v", i, table.Cell(i, receiptCol))
		}
		if today.DaysSince(received) < 0 || received.DaysSince(earliest) < 0 {
			t.Errorf("Row %d: receipt date %s outside history window", i, received)
		}
	}
}

func TestGenerateCommand_Reproducible(t *testing.T) {
	build := func() *entities.Table {
		cmd := NewGenerateCommand(GenerateConfig{Groups: 8, Seed: 99})
		table, err := cmd.generateTable(context.Background(), entities.NewDate(2026, time.January, 12))
		if err != nil {
			t.Fatalf("generateTable failed: %v", err)
		}
		return table
	}

	a, b := build(), build()
	if a.Len() != b.Len() {
		t.Fatalf("Expected identical row counts, got %d and %d", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		for j := range a.Columns {
			if a.Rows[i][j].String() != b.Rows[i][j].String() {
				t.Errorf("Row %d column %s differs: %s vs %s", i, a.Columns[j], a.Rows[i][j], b.Rows[i][j])
			}
		}
	}
}

func TestGenerateCommand_RequiresGroups(t *testing.T) {
	cmd := NewGenerateCommand(GenerateConfig{OutputDir: t.TempDir(), Stdout: &bytes.Buffer{}})
	if err := cmd.Execute(context.Background()); err == nil {
		t.Error("Expected error when -groups is zero")
	}
}
