package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// DateNormalizer turns receipt date cells into calendar dates.
// Slash, dash or dot separated numeric dates are always read month first:
// "1/9/2026" is January 9, never September 1. A four digit leading field is
// read as year-month-day. Dates outside entities.MinDate..entities.MaxDate
// and anything else are absent.
type DateNormalizer struct{}

// NewDateNormalizer creates a new date normalizer
func NewDateNormalizer() *DateNormalizer {
	return &DateNormalizer{}
}

var timeOfDayLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
	"3:04PM",
	"3:04:05PM",
}

// Normalize converts a single cell
func (n *DateNormalizer) Normalize(v entities.Value) entities.Optional[entities.Date] {
	switch v.Kind {
	case entities.KindTime:
		return inRange(entities.DateOf(v.Time))
	case entities.KindText:
		return n.ParseText(v.Text)
	default:
		return entities.None[entities.Date]()
	}
}

// NormalizeColumn converts every cell of a column, keeping positions
func (n *DateNormalizer) NormalizeColumn(values []entities.Value) []entities.Optional[entities.Date] {
	dates := make([]entities.Optional[entities.Date], len(values))
	for i, v := range values {
		dates[i] = n.Normalize(v)
	}
	return dates
}

// ParseText parses a textual date
func (n *DateNormalizer) ParseText(s string) entities.Optional[entities.Date] {
	s = strings.TrimSpace(s)
	if s == "" {
		return entities.None[entities.Date]()
	}

	datePart, timePart := splitDateTime(s)
	if timePart != "" && !isTimeOfDay(timePart) {
		return entities.None[entities.Date]()
	}

	fields, ok := splitFields(datePart)
	if !ok {
		return entities.None[entities.Date]()
	}

	if len(fields[0]) == 4 {
		if len(fields[1]) > 2 || len(fields[2]) > 2 {
			return entities.None[entities.Date]()
		}
		return buildDate(fields[0], fields[1], fields[2])
	}

	if len(fields[0]) > 2 || len(fields[1]) > 2 {
		return entities.None[entities.Date]()
	}
	switch len(fields[2]) {
	case 2:
		return buildDate(expandYear(fields[2]), fields[0], fields[1])
	case 4:
		return buildDate(fields[2], fields[0], fields[1])
	default:
		return entities.None[entities.Date]()
	}
}

// ParseReference parses a configured or user supplied reference date
func (n *DateNormalizer) ParseReference(s string) (entities.Date, error) {
	d, ok := n.ParseText(s).Get()
	if !ok {
		return entities.Date{}, fmt.Errorf("invalid reference date %q: expected MM/DD/YYYY or YYYY-MM-DD", s)
	}
	return d, nil
}

func splitDateTime(s string) (string, string) {
	idx := strings.IndexAny(s, " T")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

func isTimeOfDay(s string) bool {
	s = strings.ToUpper(s)
	for _, layout := range timeOfDayLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// splitFields splits on a single separator used consistently throughout
func splitFields(s string) ([]string, bool) {
	sepIdx := strings.IndexAny(s, "/-.")
	if sepIdx < 0 {
		return nil, false
	}
	fields := strings.Split(s, s[sepIdx:sepIdx+1])
	if len(fields) != 3 {
		return nil, false
	}
	for _, f := range fields {
		if f == "" || !isDigits(f) {
			return nil, false
		}
	}
	return fields, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// expandYear maps two digit years the way strptime's %y does
func expandYear(yy string) string {
	n, _ := strconv.Atoi(yy)
	if n < 69 {
		return strconv.Itoa(2000 + n)
	}
	return strconv.Itoa(1900 + n)
}

func buildDate(yearStr, monthStr, dayStr string) entities.Optional[entities.Date] {
	year, _ := strconv.Atoi(yearStr)
	month, _ := strconv.Atoi(monthStr)
	day, _ := strconv.Atoi(dayStr)

	if year < 1 || month < 1 || month > 12 || day < 1 {
		return entities.None[entities.Date]()
	}
	if day > daysIn(year, time.Month(month)) {
		return entities.None[entities.Date]()
	}
	return inRange(entities.Date{Year: year, Month: time.Month(month), Day: day})
}

func inRange(d entities.Date) entities.Optional[entities.Date] {
	if !d.InRange() {
		return entities.None[entities.Date]()
	}
	return entities.Some(d)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
