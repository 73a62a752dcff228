package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind identifies what a cell holds
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
	KindTime
)

// String method for ValueKind enum
func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindText:
		return "Text"
	case KindNumber:
		return "Number"
	case KindTime:
		return "Time"
	default:
		return "Unknown"
	}
}

// Value is a single table cell. The zero Value is an empty cell.
type Value struct {
	Kind   ValueKind
	Text   string
	Number decimal.Decimal
	Time   time.Time
	// Places is the display precision for fixed numbers; negative means as-is
	Places int32
}

// Empty returns an empty cell
func Empty() Value {
	return Value{}
}

// Text returns a text cell. An empty string is an empty cell.
func Text(s string) Value {
	if s == "" {
		return Empty()
	}
	return Value{Kind: KindText, Text: s, Places: -1}
}

// Number returns a numeric cell
func Number(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Number: d, Places: -1}
}

// Int returns an integer numeric cell
func Int(n int64) Value {
	return Number(decimal.NewFromInt(n))
}

// FixedNumber returns a numeric cell displayed with a fixed number of decimal places
func FixedNumber(d decimal.Decimal, places int32) Value {
	return Value{Kind: KindNumber, Number: d, Places: places}
}

// TimeValue returns a date/time cell
func TimeValue(t time.Time) Value {
	return Value{Kind: KindTime, Time: t, Places: -1}
}

// DateValue returns a date cell at midnight UTC
func DateValue(d Date) Value {
	return TimeValue(d.Time())
}

// IsEmpty reports whether the cell holds no data
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// String renders the cell the way it reads in a spreadsheet
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		if v.Places >= 0 {
			return v.Number.StringFixed(v.Places)
		}
		return v.Number.String()
	case KindTime:
		h, m, s := v.Time.Clock()
		if h == 0 && m == 0 && s == 0 {
			return v.Time.Format("1/2/2006")
		}
		return v.Time.Format("1/2/2006 15:04:05")
	default:
		return ""
	}
}
