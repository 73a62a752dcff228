package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vsinha/receiptaging/pkg/application/dto"
	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
	Elapsed time.Duration
	Writer  io.Writer
}

func (c Config) out() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Summary is the machine readable description of a batch run
type Summary struct {
	SourceFile                string   `json:"sourceFile"`
	OutputFile                string   `json:"outputFile"`
	ReferenceDate             string   `json:"referenceDate"`
	GroupColumn               string   `json:"groupColumn"`
	NumericColumns            []string `json:"numericColumns"`
	InputRows                 int      `json:"inputRows"`
	DroppedMissingGroupKey    int      `json:"droppedMissingGroupKey"`
	DroppedInvalidReceiptDate int      `json:"droppedInvalidReceiptDate"`
	Groups                    int      `json:"groups"`
	ElapsedMillis             int64    `json:"elapsedMillis"`
}

// ValidateFormat rejects output formats Generate cannot produce
func ValidateFormat(format string) error {
	switch format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (expected text or json)", format)
	}
}

// Generate prints the result of a batch run in the configured format
func Generate(result *dto.BatchResult, config Config) error {
	if err := ValidateFormat(config.Format); err != nil {
		return err
	}
	if config.Format == "json" {
		return generateJSONOutput(result, config)
	}
	return generateTextOutput(result, config)
}

// NewSummary flattens a batch result
func NewSummary(result *dto.BatchResult, elapsed time.Duration) Summary {
	report := result.Report
	return Summary{
		SourceFile:                result.SourceFile,
		OutputFile:                result.OutputFile,
		ReferenceDate:             report.ReferenceDate.String(),
		GroupColumn:               report.GroupColumn,
		NumericColumns:            report.NumericColumns,
		InputRows:                 report.InputRows,
		DroppedMissingGroupKey:    report.DroppedMissingGroupKey,
		DroppedInvalidReceiptDate: report.DroppedInvalidReceiptDate,
		Groups:                    report.Groups,
		ElapsedMillis:             elapsed.Milliseconds(),
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.BatchResult, config Config) error {
	w := config.out()
	report := result.Report

	fmt.Fprintf(w, "Processing: %s\n", filepath.Base(result.SourceFile))
	fmt.Fprintf(w, "Using '%s' as grouping column.\n", report.GroupColumn)

	if config.Verbose {
		fmt.Fprintf(w, "📊 Aging Report Summary\n")
		fmt.Fprintf(w, "=======================\n\n")
		fmt.Fprintf(w, "Reference Date: %s\n", report.ReferenceDate)
		fmt.Fprintf(w, "Input Rows: %d\n", report.InputRows)
		fmt.Fprintf(w, "Dropped (no group key): %d\n", report.DroppedMissingGroupKey)
		fmt.Fprintf(w, "Dropped (bad receipt date): %d\n", report.DroppedInvalidReceiptDate)
		fmt.Fprintf(w, "Summed Columns: %s\n", strings.Join(report.NumericColumns, ", "))
		fmt.Fprintf(w, "Elapsed: %v\n\n", config.Elapsed)

		fmt.Fprintf(w, "📋 First %d groups:\n", entities.PreviewRows)
		PrintTable(w, report.Table.Head(entities.PreviewRows))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "✅ Success! Output saved to:\n%s\n", result.OutputFile)
	fmt.Fprintf(w, "📊 Processed %d unique groups.\n", report.Groups)
	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.BatchResult, config Config) error {
	jsonData, err := json.MarshalIndent(NewSummary(result, config.Elapsed), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(config.out(), string(jsonData))
	return err
}

const maxCellWidth = 24

// PrintTable writes a fixed-width rendering of a table
func PrintTable(w io.Writer, table *entities.Table) {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = displayWidth(col)
	}
	for _, row := range table.Rows {
		for i, v := range row {
			if n := displayWidth(v.String()); n > widths[i] {
				widths[i] = n
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = pad(truncate(cell), widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " "), " "))
	}

	printRow(table.Columns)
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	printRow(rule)

	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		printRow(cells)
	}
}

func displayWidth(s string) int {
	n := utf8.RuneCountInString(s)
	if n > maxCellWidth {
		return maxCellWidth
	}
	return n
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxCellWidth {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxCellWidth-1]) + "…"
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
