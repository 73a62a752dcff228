package services

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vsinha/receiptaging/pkg/domain/entities"
)

func TestColumnResolver_ResolveGroupKey(t *testing.T) {
	r := NewColumnResolver()

	tests := []struct {
		name    string
		columns []string
		want    string
		wantErr bool
	}{
		{"group_id_preferred_over_lp", []string{"LP", "Group ID", "Receipt Date"}, "Group ID", false},
		{"lp_fallback", []string{"Item", "LP", "Receipt Date"}, "LP", false},
		{"case_sensitive", []string{"group id", "lp"}, "", true},
		{"no_whitespace_tolerance", []string{" Group ID", "LP "}, "", true},
		{"neither_present", []string{"Item", "Receipt Date"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveGroupKey(tt.columns)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveGroupKey(%v) error = %v, wantErr %v", tt.columns, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveGroupKey(%v) = %q, want %q", tt.columns, got, tt.want)
			}
		})
	}
}

func TestColumnResolver_MissingGroupKeyListsColumns(t *testing.T) {
	r := NewColumnResolver()
	columns := []string{"Item", "Lot Number", "Receipt Date"}

	_, err := r.ResolveGroupKey(columns)

	var missing *entities.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingColumnError, got %T: %v", err, err)
	}
	if !reflect.DeepEqual(missing.Available, columns) {
		t.Errorf("Expected available columns %v, got %v", columns, missing.Available)
	}

	want := "neither 'Group ID' nor 'LP' found. Available columns: 'Item', 'Lot Number', 'Receipt Date'"
	if err.Error() != want {
		t.Errorf("Expected error '%s', got '%s'", want, err.Error())
	}
}

func TestColumnResolver_RequireReceiptDate(t *testing.T) {
	r := NewColumnResolver()

	if err := r.RequireReceiptDate([]string{"LP", "Receipt Date"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err := r.RequireReceiptDate([]string{"LP", "Received"})
	if err == nil {
		t.Fatal("Expected error for missing Receipt Date")
	}
	if !strings.HasPrefix(err.Error(), "'Receipt Date' not found.") || !strings.Contains(err.Error(), "'Received'") {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestColumnResolver_NumericColumnsInAllowListOrder(t *testing.T) {
	r := NewColumnResolver()
	columns := []string{"Count Qty On Hold", "LP", "Net Weight On Hand", "Count Qty On Hand", "Weight"}

	got := r.NumericColumns(columns)
	want := []string{"Count Qty On Hand", "Net Weight On Hand", "Count Qty On Hold"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NumericColumns() = %v, want %v", got, want)
	}
}

func TestColumnResolver_ResolveBatch(t *testing.T) {
	r := NewColumnResolver()

	resolved, err := r.ResolveBatch([]string{"LP", "Receipt Date", "Grs Weight On Hand"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resolved.GroupKey != "LP" || resolved.ReceiptDate != "Receipt Date" {
		t.Errorf("Unexpected resolution: %+v", resolved)
	}
	if !reflect.DeepEqual(resolved.Numeric, []string{"Grs Weight On Hand"}) {
		t.Errorf("Unexpected numeric columns: %v", resolved.Numeric)
	}

	if _, err := r.ResolveBatch([]string{"LP"}); err == nil {
		t.Error("Expected error when Receipt Date is missing")
	}
	if err := r.ResolveInteractive([]string{"Item", "Receipt Date"}); err != nil {
		t.Errorf("Interactive resolution should not need a group key: %v", err)
	}
}
