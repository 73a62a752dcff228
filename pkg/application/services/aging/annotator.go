package aging

import (
	"context"

	"github.com/vsinha/receiptaging/pkg/application/dto"
	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// Annotate appends the aging metrics to every row. No row is dropped or
// reordered; rows without a readable receipt date get empty metrics.
func (a *Aggregator) Annotate(ctx context.Context, table *entities.Table, today entities.Date) (*dto.AnnotatedReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := table.WithTrimmedColumns()
	if err := a.resolver.ResolveInteractive(t.Columns); err != nil {
		return nil, err
	}
	dateIdx := t.Index(entities.ColumnReceiptDate)

	columns := make([]string, 0, len(t.Columns)+len(entities.AgingColumns))
	columns = append(columns, t.Columns...)
	columns = append(columns, entities.AgingColumns...)

	report := &dto.AnnotatedReport{
		ReferenceDate: today,
		Rows:          t.Len(),
	}

	a.start(t.Len())
	rows := make([][]entities.Value, t.Len())
	for i, src := range t.Rows {
		a.tick()

		receipt := a.normalizer.Normalize(t.Cell(i, dateIdx))
		if !receipt.Valid() {
			report.InvalidReceiptDates++
		}

		row := make([]entities.Value, len(t.Columns), len(columns))
		copy(row, src)
		rows[i] = append(row, a.calculator.Compute(today, receipt).Values()...)
	}

	report.Table = &entities.Table{Columns: columns, Rows: rows}
	return report, nil
}
