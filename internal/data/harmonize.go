package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ImputeColumnMeans fills every missing cell with the mean of the
// non-missing values in the same column of this table. Imputation
// happens per source, before any merge, so each dataset's own
// statistics fill its gaps. A column with no observed value at all has
// no defined mean and fails fast.
func (t *Table) ImputeColumnMeans() error {
	for j, col := range t.Columns {
		sum := decimal.Zero
		observed := 0

		for i := range t.Rows {
			if !t.Missing[i][j] {
				sum = sum.Add(t.Rows[i][j])
				observed++
			}
		}

		if observed == 0 {
			return fmt.Errorf("column %q has no observed values: %w", col, ErrDegenerateColumn)
		}

		mean := sum.Div(decimal.NewFromInt(int64(observed)))

		for i := range t.Rows {
			if t.Missing[i][j] {
				t.Rows[i][j] = mean
				t.Missing[i][j] = false
			}
		}
	}

	return nil
}

// DropColumn removes the named column if present. Dropping an absent
// column is a no-op; identifier columns only sometimes survive export.
func (t *Table) DropColumn(name string) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return
	}

	t.Columns = append(t.Columns[:idx], t.Columns[idx+1:]...)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i][:idx], t.Rows[i][idx+1:]...)
		t.Missing[i] = append(t.Missing[i][:idx], t.Missing[i][idx+1:]...)
	}
}

// RenameColumns applies the lookup table to column names; names with
// no mapping are kept as-is.
func (t *Table) RenameColumns(renames map[string]string) {
	for i, col := range t.Columns {
		if canonical, ok := renames[col]; ok {
			t.Columns[i] = canonical
		}
	}
}

// BinarizeColumn collapses the named outcome column to {0,1}: positive
// values become 1, everything else 0.
func (t *Table) BinarizeColumn(name string) error {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return fmt.Errorf("column %q not found: %w", name, ErrSchemaMismatch)
	}

	one := decimal.NewFromInt(1)
	for i := range t.Rows {
		if t.Rows[i][idx].Sign() > 0 {
			t.Rows[i][idx] = one
		} else {
			t.Rows[i][idx] = decimal.Zero
		}
	}

	return nil
}
