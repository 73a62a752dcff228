package repositories

import (
	"errors"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// ReportRepository keeps rendered interactive reports until they are downloaded
type ReportRepository interface {
	Save(report *entities.StoredReport) (string, error)
	Get(id string) (*entities.StoredReport, error)
	Len() int
}

// ErrReportNotFound is returned when a report id is unknown or evicted
var ErrReportNotFound = errors.New("report not found")
