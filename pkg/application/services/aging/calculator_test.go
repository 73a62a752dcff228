package aging

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/services"
)

func date(y int, m time.Month, d int) entities.Date {
	return entities.NewDate(y, m, d)
}

func TestCalculator_Compute(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name           string
		today          entities.Date
		receipt        entities.Date
		wantDays       int
		wantWeeks      string
		wantMonthStart string // empty means absent
	}{
		{"prior_month", date(2026, 1, 12), date(2025, 12, 1), 42, "6.00", "1.57"},
		{"same_month_suppressed", date(2026, 1, 12), date(2026, 1, 5), 7, "1.00", ""},
		{"same_day", date(2026, 1, 12), date(2026, 1, 12), 0, "0.00", ""},
		{"first_of_month", date(2026, 2, 1), date(2026, 1, 20), 12, "1.71", "0.00"},
		{"future_month_not_suppressed", date(2026, 1, 12), date(2026, 2, 3), -22, "-3.14", "1.57"},
		{"same_month_other_year", date(2026, 1, 12), date(2025, 1, 12), 365, "52.14", "1.57"},
		{"thirty_days_rounds_to_two_places", date(2026, 1, 31), date(2026, 1, 1), 30, "4.29", ""},
		{"three_centuries", date(2026, 1, 12), date(1700, 1, 1), 119080, "17011.43", "1.57"},
		{"just_under_three_centuries", date(2026, 1, 12), date(1733, 1, 1), 107027, "15289.57", "1.57"},
		{"far_future_receipt", date(2026, 1, 12), date(9999, 12, 31), -2912431, "-416061.57", "1.57"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := calc.Compute(tt.today, entities.Some(tt.receipt))

			days, ok := m.DaysSinceReceipt.Get()
			if !ok || days != tt.wantDays {
				t.Errorf("DaysSinceReceipt = %d (valid %v), want %d", days, ok, tt.wantDays)
			}

			weeks, ok := m.WeeksSinceReceipt.Get()
			if !ok || weeks.StringFixed(2) != tt.wantWeeks {
				t.Errorf("WeeksSinceReceipt = %s (valid %v), want %s", weeks.StringFixed(2), ok, tt.wantWeeks)
			}

			monthStart, ok := m.WeeksFromMonthStart.Get()
			if tt.wantMonthStart == "" {
				if ok {
					t.Errorf("WeeksFromMonthStart = %s, want absent", monthStart)
				}
				return
			}
			if !ok || monthStart.StringFixed(2) != tt.wantMonthStart {
				t.Errorf("WeeksFromMonthStart = %s (valid %v), want %s", monthStart.StringFixed(2), ok, tt.wantMonthStart)
			}
		})
	}
}

func TestCalculator_AbsentReceiptPropagates(t *testing.T) {
	m := NewCalculator().Compute(date(2026, 1, 12), entities.None[entities.Date]())

	if m.DaysSinceReceipt.Valid() || m.WeeksSinceReceipt.Valid() || m.WeeksFromMonthStart.Valid() {
		t.Errorf("Expected all metrics absent, got %+v", m)
	}
	for i, v := range m.Values() {
		if !v.IsEmpty() {
			t.Errorf("Expected empty cell at %d, got %v", i, v)
		}
	}
}

func TestCalculator_MonthStartConstantAcrossReceipts(t *testing.T) {
	calc := NewCalculator()
	today := date(2026, 3, 18)
	want := decimal.NewFromInt(17).Div(decimal.NewFromInt(7)).Round(2)

	for _, receipt := range []entities.Date{date(2025, 1, 1), date(2026, 2, 28), date(2024, 11, 5)} {
		got, ok := calc.Compute(today, entities.Some(receipt)).WeeksFromMonthStart.Get()
		if !ok || !got.Equal(want) {
			t.Errorf("receipt %v: WeeksFromMonthStart = %s, want %s", receipt, got, want)
		}
	}
}

func TestMetrics_Values(t *testing.T) {
	m := NewCalculator().Compute(date(2026, 1, 12), entities.Some(date(2025, 12, 1)))
	values := m.Values()

	if len(values) != len(entities.AgingColumns) {
		t.Fatalf("Expected %d values, got %d", len(entities.AgingColumns), len(values))
	}
	want := []string{"42", "6.00", "1.57"}
	for i, v := range values {
		if v.Kind != entities.KindNumber {
			t.Errorf("value %d: expected number, got %v", i, v.Kind)
		}
		if v.String() != want[i] {
			t.Errorf("value %d: expected %s, got %s", i, want[i], v.String())
		}
	}
}

func TestRoundWeeks_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{"positive_tie", "4.285", "4.29"},
		{"negative_tie", "-4.285", "-4.29"},
		{"below_tie", "4.2849", "4.28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundWeeks(decimal.RequireFromString(tt.value)).StringFixed(weekPlaces)
			if got != tt.expected {
				t.Errorf("Round(%s) = %s, want %s", tt.value, got, tt.expected)
			}
		})
	}
}

func TestCalculator_ParsedHistoricalReceipts(t *testing.T) {
	calc := NewCalculator()
	normalizer := services.NewDateNormalizer()
	today := date(2026, 1, 12)

	tests := []struct {
		input    string
		wantDays int
		valid    bool
	}{
		{"1/1/1700", 119080, true},
		{"1/1/1733", 107027, true},
		{"1/1/1600", 0, false},
		{"12/31/9999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := calc.Compute(today, normalizer.ParseText(tt.input))

			days, ok := m.DaysSinceReceipt.Get()
			if ok != tt.valid {
				t.Fatalf("DaysSinceReceipt valid = %v, want %v", ok, tt.valid)
			}
			if !ok {
				if m.WeeksSinceReceipt.Valid() || m.WeeksFromMonthStart.Valid() {
					t.Errorf("Expected all metrics absent, got %+v", m)
				}
				return
			}
			if days != tt.wantDays {
				t.Errorf("DaysSinceReceipt = %d, want %d", days, tt.wantDays)
			}
		})
	}
}
