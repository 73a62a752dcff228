package aging

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

const weekPlaces = 2

var daysPerWeek = decimal.NewFromInt(7)

// Metrics are the aging values derived for one receipt date
type Metrics struct {
	DaysSinceReceipt    entities.Optional[int]
	WeeksSinceReceipt   entities.Optional[decimal.Decimal]
	WeeksFromMonthStart entities.Optional[decimal.Decimal]
}

// Values renders the metrics as cells in entities.AgingColumns order
func (m Metrics) Values() []entities.Value {
	return []entities.Value{
		optionalCell(entities.Map(m.DaysSinceReceipt, func(days int) entities.Value {
			return entities.Int(int64(days))
		})),
		optionalCell(entities.Map(m.WeeksSinceReceipt, fixedWeeks)),
		optionalCell(entities.Map(m.WeeksFromMonthStart, fixedWeeks)),
	}
}

func fixedWeeks(weeks decimal.Decimal) entities.Value {
	return entities.FixedNumber(weeks, weekPlaces)
}

func optionalCell(v entities.Optional[entities.Value]) entities.Value {
	return v.OrElse(entities.Empty())
}

// Calculator computes aging metrics against a fixed reference date
type Calculator struct{}

// NewCalculator creates a new aging calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute derives the three aging metrics for a receipt date.
// WeeksFromMonthStart depends only on today; it is suppressed when the receipt
// falls in today's calendar month.
func (c *Calculator) Compute(today entities.Date, receipt entities.Optional[entities.Date]) Metrics {
	days := entities.Map(receipt, today.DaysSince)

	monthStart := entities.Map(receipt, func(d entities.Date) entities.Optional[decimal.Decimal] {
		if d.SameMonth(today) {
			return entities.None[decimal.Decimal]()
		}
		return entities.Some(toWeeks(today.DaysSince(today.StartOfMonth())))
	})

	return Metrics{
		DaysSinceReceipt:    days,
		WeeksSinceReceipt:   entities.Map(days, toWeeks),
		WeeksFromMonthStart: flatten(monthStart),
	}
}

func toWeeks(days int) decimal.Decimal {
	return roundWeeks(decimal.NewFromInt(int64(days)).Div(daysPerWeek))
}

// roundWeeks rounds to two places, half away from zero
func roundWeeks(weeks decimal.Decimal) decimal.Decimal {
	return weeks.Round(weekPlaces)
}

func flatten[T any](o entities.Optional[entities.Optional[T]]) entities.Optional[T] {
	inner, ok := o.Get()
	if !ok {
		return entities.None[T]()
	}
	return inner
}
