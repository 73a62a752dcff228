package entities

// Column names recognized in piece reports
const (
	ColumnGroupID     = "Group ID"
	ColumnLP          = "LP"
	ColumnReceiptDate = "Receipt Date"

	ColumnDaysSinceReceipt    = "Days Since Receipt Date"
	ColumnWeeksSinceReceipt   = "Weeks Since Receipt Date"
	ColumnWeeksFromMonthStart = "Weeks from Start of Month to Today"
)

// Report file and sheet names
const (
	BatchOutputFileName  = "aggregated_receipt_report_final.xlsx"
	InteractiveSheetName = "Aging Report"
	PreviewRows          = 20
)

// GroupKeyPreference lists the group key columns in the order they are tried
var GroupKeyPreference = []string{ColumnGroupID, ColumnLP}

// NumericSummableColumns are the quantity and weight columns summed per group
var NumericSummableColumns = []string{
	"Count Qty On Hand",
	"Net Weight On Hand",
	"Alt 1 Qty On Hand",
	"Alt 2 Qty On Hand",
	"Grs Weight On Hand",
	"Count Qty Committed",
	"Count Qty Uncommitted",
	"Count Qty On Hold",
}

// AgingColumns are the derived columns appended to every report, in order
var AgingColumns = []string{
	ColumnDaysSinceReceipt,
	ColumnWeeksSinceReceipt,
	ColumnWeeksFromMonthStart,
}
