package services

import (
	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

// ColumnResolver decides which columns of a piece report drive the aging report
type ColumnResolver struct {
	groupKeys []string
	numeric   []string
}

// NewColumnResolver creates a resolver using the standard column names
func NewColumnResolver() *ColumnResolver {
	return &ColumnResolver{
		groupKeys: entities.GroupKeyPreference,
		numeric:   entities.NumericSummableColumns,
	}
}

// ResolvedColumns are the columns a batch summary works with
type ResolvedColumns struct {
	GroupKey    string
	ReceiptDate string
	Numeric     []string
}

// ResolveGroupKey returns the first preferred group key column present
func (r *ColumnResolver) ResolveGroupKey(columns []string) (string, error) {
	for _, candidate := range r.groupKeys {
		if contains(columns, candidate) {
			return candidate, nil
		}
	}
	return "", missingColumn(r.groupKeys, columns)
}

// RequireReceiptDate fails when the receipt date column is absent
func (r *ColumnResolver) RequireReceiptDate(columns []string) error {
	if !contains(columns, entities.ColumnReceiptDate) {
		return missingColumn([]string{entities.ColumnReceiptDate}, columns)
	}
	return nil
}

// NumericColumns returns the summable columns present, in allow-list order
func (r *ColumnResolver) NumericColumns(columns []string) []string {
	present := make([]string, 0, len(r.numeric))
	for _, name := range r.numeric {
		if contains(columns, name) {
			present = append(present, name)
		}
	}
	return present
}

// ResolveBatch resolves every column a grouped summary needs
func (r *ColumnResolver) ResolveBatch(columns []string) (ResolvedColumns, error) {
	groupKey, err := r.ResolveGroupKey(columns)
	if err != nil {
		return ResolvedColumns{}, err
	}
	if err := r.RequireReceiptDate(columns); err != nil {
		return ResolvedColumns{}, err
	}
	return ResolvedColumns{
		GroupKey:    groupKey,
		ReceiptDate: entities.ColumnReceiptDate,
		Numeric:     r.NumericColumns(columns),
	}, nil
}

// ResolveInteractive checks the columns a per-row annotation needs
func (r *ColumnResolver) ResolveInteractive(columns []string) error {
	return r.RequireReceiptDate(columns)
}

func missingColumn(alternatives, available []string) *entities.MissingColumnError {
	return &entities.MissingColumnError{
		Alternatives: append([]string(nil), alternatives...),
		Available:    append([]string(nil), available...),
	}
}

func contains(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}
