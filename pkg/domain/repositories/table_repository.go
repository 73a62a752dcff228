package repositories

import (
	"io"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// TableReader loads a table from a spreadsheet-like source, either an
// uploaded stream or a file on disk
type TableReader interface {
	ReadTable(r io.Reader) (*entities.Table, error)
	LoadFile(filename string) (*entities.Table, error)
}

// TableWriter serializes a table into a single-sheet workbook
type TableWriter interface {
	WriteTable(w io.Writer, sheet string, table *entities.Table) error
}
