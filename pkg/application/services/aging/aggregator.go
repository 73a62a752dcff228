package aging

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/receiptaging/pkg/application/dto"
	"github.com/vsinha/receiptaging/pkg/domain/entities"
	"github.com/vsinha/receiptaging/pkg/domain/services"
)

// Progress receives one tick per processed input row. If it also has a
// ChangeMax(int) method it is told the row count before the first tick.
type Progress interface {
	Add(n int) error
}

type sizedProgress interface {
	ChangeMax(max int)
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithProgress reports row processing to p
func WithProgress(p Progress) Option {
	return func(a *Aggregator) {
		a.progress = p
	}
}

// Aggregator builds aging reports from piece report tables
type Aggregator struct {
	resolver   *services.ColumnResolver
	normalizer *services.DateNormalizer
	calculator *Calculator
	progress   Progress
}

// NewAggregator creates an aggregator with the standard column rules
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		resolver:   services.NewColumnResolver(),
		normalizer: services.NewDateNormalizer(),
		calculator: NewCalculator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// groupAccumulator collects one group's rows in input order
type groupAccumulator struct {
	key     entities.Value
	receipt entities.Date
	first   []entities.Value
	sums    []decimal.Decimal
}

// Summarize collapses rows into one row per group key, summing the quantity
// columns and keeping the first value of every other column.
func (a *Aggregator) Summarize(ctx context.Context, table *entities.Table, today entities.Date) (*dto.SummaryReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := table.WithTrimmedColumns()

	resolved, err := a.resolver.ResolveBatch(t.Columns)
	if err != nil {
		return nil, err
	}
	groupKey, numeric := resolved.GroupKey, resolved.Numeric

	keyIdx := t.Index(groupKey)
	dateIdx := t.Index(resolved.ReceiptDate)
	numericIdx := make([]int, len(numeric))
	for i, name := range numeric {
		numericIdx[i] = t.Index(name)
	}
	otherIdx := otherColumns(t.Columns, groupKey, numeric)

	report := &dto.SummaryReport{
		GroupColumn:    groupKey,
		NumericColumns: numeric,
		ReferenceDate:  today,
		InputRows:      t.Len(),
	}

	var groups []*groupAccumulator
	index := make(map[string]int)

	a.start(t.Len())

	for i := range t.Rows {
		a.tick()

		key := t.Cell(i, keyIdx)
		if key.IsEmpty() {
			report.DroppedMissingGroupKey++
			continue
		}
		receipt, ok := a.normalizer.Normalize(t.Cell(i, dateIdx)).Get()
		if !ok {
			report.DroppedInvalidReceiptDate++
			continue
		}

		pos, seen := index[key.String()]
		if !seen {
			pos = len(groups)
			index[key.String()] = pos
			groups = append(groups, &groupAccumulator{
				key:     key,
				receipt: receipt,
				first:   make([]entities.Value, len(t.Columns)),
				sums:    make([]decimal.Decimal, len(numeric)),
			})
		}
		acc := groups[pos]

		for j, col := range numericIdx {
			if n, ok := numericValue(t.Cell(i, col)); ok {
				acc.sums[j] = acc.sums[j].Add(n)
			}
		}
		for _, col := range otherIdx {
			if acc.first[col].IsEmpty() {
				acc.first[col] = t.Cell(i, col)
			}
		}
	}

	if len(groups) == 0 {
		return nil, &entities.EmptyResultError{
			InputRows:          report.InputRows,
			MissingGroupKey:    report.DroppedMissingGroupKey,
			InvalidReceiptDate: report.DroppedInvalidReceiptDate,
		}
	}

	columns := make([]string, 0, 1+len(numeric)+len(otherIdx)+len(entities.AgingColumns))
	columns = append(columns, entities.ColumnGroupID)
	columns = append(columns, numeric...)
	for _, col := range otherIdx {
		columns = append(columns, t.Columns[col])
	}
	columns = append(columns, entities.AgingColumns...)

	rows := make([][]entities.Value, len(groups))
	for i, acc := range groups {
		row := make([]entities.Value, 0, len(columns))
		row = append(row, acc.key)
		for _, sum := range acc.sums {
			row = append(row, entities.Number(sum))
		}
		for _, col := range otherIdx {
			if col == dateIdx {
				row = append(row, entities.DateValue(acc.receipt))
				continue
			}
			row = append(row, acc.first[col])
		}
		metrics := a.calculator.Compute(today, entities.Some(acc.receipt))
		rows[i] = append(row, metrics.Values()...)
	}

	report.Table = entities.NewTable(columns, rows)
	report.Groups = len(groups)
	return report, nil
}

func (a *Aggregator) start(rows int) {
	if sized, ok := a.progress.(sizedProgress); ok {
		sized.ChangeMax(rows)
	}
}

func (a *Aggregator) tick() {
	if a.progress != nil {
		_ = a.progress.Add(1)
	}
}

// otherColumns returns the positions of columns that are neither the group key nor summed
func otherColumns(columns []string, groupKey string, numeric []string) []int {
	summed := make(map[string]bool, len(numeric))
	for _, name := range numeric {
		summed[name] = true
	}
	var idx []int
	for i, col := range columns {
		if col == groupKey || summed[col] {
			continue
		}
		idx = append(idx, i)
	}
	return idx
}

// numericValue reads a summable quantity. Blank and non-numeric cells do not count.
func numericValue(v entities.Value) (decimal.Decimal, bool) {
	switch v.Kind {
	case entities.KindNumber:
		return v.Number, true
	case entities.KindText:
		s := strings.ReplaceAll(strings.TrimSpace(v.Text), ",", "")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}
