package entities

import "time"

// StoredReport is a rendered interactive report kept for download
type StoredReport struct {
	ID            string
	SourceName    string
	ReferenceDate Date
	CreatedAt     time.Time
	Rows          int
	Preview       *Table
	Workbook      []byte
}

// DownloadName returns the file name offered to the browser
func (r *StoredReport) DownloadName() string {
	return "aging_report_" + r.ReferenceDate.String() + ".xlsx"
}
