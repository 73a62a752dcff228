package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

func TestDateNormalizer_ParseText(t *testing.T) {
	n := NewDateNormalizer()

	tests := []struct {
		name  string
		input string
		want  entities.Date
		valid bool
	}{
		{"month_first_not_day_first", "1/9/2026", entities.Date{Year: 2026, Month: time.January, Day: 9}, true},
		{"zero_padded", "01/09/2026", entities.Date{Year: 2026, Month: time.January, Day: 9}, true},
		{"dash_separated", "12-01-2025", entities.Date{Year: 2025, Month: time.December, Day: 1}, true},
		{"dot_separated", "3.15.2024", entities.Date{Year: 2024, Month: time.March, Day: 15}, true},
		{"two_digit_year", "1/9/26", entities.Date{Year: 2026, Month: time.January, Day: 9}, true},
		{"two_digit_year_last_century", "7/4/76", entities.Date{Year: 1976, Month: time.July, Day: 4}, true},
		{"with_time", "1/9/2026 14:30", entities.Date{Year: 2026, Month: time.January, Day: 9}, true},
		{"with_seconds_and_meridiem", "1/9/2026 2:30:00 pm", entities.Date{Year: 2026, Month: time.January, Day: 9}, true},
		{"iso", "2025-12-01", entities.Date{Year: 2025, Month: time.December, Day: 1}, true},
		{"iso_with_time", "2025-12-01 00:00:00", entities.Date{Year: 2025, Month: time.December, Day: 1}, true},
		{"iso_t_separator", "2025-12-01T08:15:00", entities.Date{Year: 2025, Month: time.December, Day: 1}, true},
		{"surrounding_whitespace", "  1/9/2026 ", entities.Date{Year: 2026, Month: time.January, Day: 9}, true},
		{"leap_day", "2/29/2024", entities.Date{Year: 2024, Month: time.February, Day: 29}, true},
		{"month_out_of_range", "13/1/2026", entities.Date{}, false},
		{"day_out_of_range", "2/30/2026", entities.Date{}, false},
		{"not_a_leap_year", "2/29/2025", entities.Date{}, false},
		{"zero_day", "1/0/2026", entities.Date{}, false},
		{"two_fields", "1/2026", entities.Date{}, false},
		{"four_fields", "1/9/2026/1", entities.Date{}, false},
		{"mixed_separators", "1/9-2026", entities.Date{}, false},
		{"three_digit_year", "1/9/202", entities.Date{}, false},
		{"garbage", "next tuesday", entities.Date{}, false},
		{"bad_time", "1/9/2026 noon", entities.Date{}, false},
		{"empty", "", entities.Date{}, false},
		{"eighteenth_century", "1/1/1700", entities.Date{Year: 1700, Month: time.January, Day: 1}, true},
		{"earliest_supported", "9/22/1677", entities.Date{Year: 1677, Month: time.September, Day: 22}, true},
		{"before_supported_range", "9/21/1677", entities.Date{}, false},
		{"seventeenth_century", "1/1/1600", entities.Date{}, false},
		{"latest_supported", "2262-04-11", entities.Date{Year: 2262, Month: time.April, Day: 11}, true},
		{"after_supported_range", "4/12/2262", entities.Date{}, false},
		{"far_future", "12/31/9999", entities.Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.ParseText(tt.input).Get()
			if ok != tt.valid {
				t.Fatalf("ParseText(%q) valid = %v, want %v", tt.input, ok, tt.valid)
			}
			if ok && got != tt.want {
				t.Errorf("ParseText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateNormalizer_MonthDayOrderHolds(t *testing.T) {
	n := NewDateNormalizer()

	for month := 1; month <= 12; month++ {
		for day := 1; day <= 28; day++ {
			input := time.Date(2026, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("1/2/2006")
			got, ok := n.ParseText(input).Get()
			if !ok {
				t.Fatalf("ParseText(%q) returned absent", input)
			}
			if int(got.Month) != month || got.Day != day {
				t.Fatalf("ParseText(%q) = %v, want month %d day %d", input, got, month, day)
			}
		}
	}
}

func TestDateNormalizer_Normalize(t *testing.T) {
	n := NewDateNormalizer()

	tests := []struct {
		name  string
		value entities.Value
		want  entities.Optional[entities.Date]
	}{
		{"time_cell", entities.TimeValue(time.Date(2025, 12, 1, 13, 45, 0, 0, time.UTC)), entities.Some(entities.NewDate(2025, time.December, 1))},
		{"text_cell", entities.Text("1/9/2026"), entities.Some(entities.NewDate(2026, time.January, 9))},
		{"number_cell", entities.Number(decimal.NewFromInt(46031)), entities.None[entities.Date]()},
		{"empty_cell", entities.Empty(), entities.None[entities.Date]()},
		{"out_of_range_time_cell", entities.TimeValue(time.Date(1500, 6, 1, 0, 0, 0, 0, time.UTC)), entities.None[entities.Date]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.value)
			if got != tt.want {
				t.Errorf("Normalize(%v) = %+v, want %+v", tt.value, got, tt.want)
			}
		})
	}
}

func TestDateNormalizer_NormalizeColumnKeepsPositions(t *testing.T) {
	n := NewDateNormalizer()
	values := []entities.Value{entities.Text("bad"), entities.Text("1/9/2026"), entities.Empty()}

	dates := n.NormalizeColumn(values)
	if len(dates) != len(values) {
		t.Fatalf("Expected %d dates, got %d", len(values), len(dates))
	}
	if dates[0].Valid() || !dates[1].Valid() || dates[2].Valid() {
		t.Errorf("Unexpected validity pattern: %v %v %v", dates[0].Valid(), dates[1].Valid(), dates[2].Valid())
	}
}

func TestDateNormalizer_ParseReference(t *testing.T) {
	n := NewDateNormalizer()

	got, err := n.ParseReference("2026-01-12")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != entities.NewDate(2026, time.January, 12) {
		t.Errorf("Expected 2026-01-12, got %v", got)
	}

	if _, err := n.ParseReference("12/01"); err == nil {
		t.Error("Expected error for incomplete reference date")
	}
}
