package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/repositories"
)

// Loader handles loading piece reports exported as CSV
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Verify interface compliance
var _ repositories.TableReader = (*Loader)(nil)

// LoadFile loads a table from a CSV file
func (l *Loader) LoadFile(filename string) (*entities.Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadTable(file)
}

// ReadTable loads a table from CSV text. A byte order mark selects UTF-8 or
// UTF-16; without one the input is read as UTF-8. Every cell is text.
func (l *Loader) ReadTable(r io.Reader) (*entities.Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return entities.NewTable(nil, nil), nil
	}

	width := 0
	for _, record := range records {
		if len(record) > width {
			width = len(record)
		}
	}

	header := records[0]
	columns := make([]string, width)
	for i := range columns {
		if i < len(header) && header[i] != "" {
			columns[i] = header[i]
		} else {
			columns[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	var rows [][]entities.Value
	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		row := make([]entities.Value, width)
		for i, field := range record {
			row[i] = entities.Text(field)
		}
		rows = append(rows, row)
	}

	return entities.NewTable(columns, rows), nil
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
