package dto

import (
	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// SummaryReport is the per-group output of a batch run
type SummaryReport struct {
	Table                     *entities.Table
	GroupColumn               string
	NumericColumns            []string
	ReferenceDate             entities.Date
	InputRows                 int
	DroppedMissingGroupKey    int
	DroppedInvalidReceiptDate int
	Groups                    int
}

// AnnotatedReport is the per-row output of an interactive run
type AnnotatedReport struct {
	Table               *entities.Table
	ReferenceDate       entities.Date
	Rows                int
	InvalidReceiptDates int
}

// BatchResult describes a completed batch run
type BatchResult struct {
	SourceFile string
	OutputFile string
	Report     *SummaryReport
}

// InteractiveResult is an annotated report rendered into a workbook
type InteractiveResult struct {
	SourceName string
	Report     *AnnotatedReport
	Workbook   []byte
}
