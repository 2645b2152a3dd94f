package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Table is an in-memory tabular dataset: an ordered list of named
// columns over positionally aligned rows. Cells are numeric; a cell
// that could not be parsed (or carried a missing-value sentinel) is
// flagged in Missing until imputation clears it.
type Table struct {
	Columns []string
	Rows    [][]decimal.Decimal
	Missing [][]bool
}

func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

func (t *Table) NumCols() int {
	return len(t.Columns)
}

func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

func (t *Table) AppendRow(row []decimal.Decimal, missing []bool) {
	t.Rows = append(t.Rows, row)
	t.Missing = append(t.Missing, missing)
}

func (t *Table) HasMissing() bool {
	for _, row := range t.Missing {
		for _, m := range row {
			if m {
				return true
			}
		}
	}
	return false
}

// SplitFeaturesLabel separates the label column from the feature
// columns, returning the feature matrix, the label vector as ints and
// the feature column names.
func (t *Table) SplitFeaturesLabel(labelCol string) ([][]decimal.Decimal, []int, []string, error) {
	labelIdx := t.ColumnIndex(labelCol)
	if labelIdx < 0 {
		return nil, nil, nil, fmt.Errorf("label column %q not found: %w", labelCol, ErrSchemaMismatch)
	}

	features := make([]string, 0, len(t.Columns)-1)
	for i, col := range t.Columns {
		if i != labelIdx {
			features = append(features, col)
		}
	}

	X := make([][]decimal.Decimal, len(t.Rows))
	y := make([]int, len(t.Rows))

	for i, row := range t.Rows {
		X[i] = make([]decimal.Decimal, 0, len(row)-1)
		for j, cell := range row {
			if j == labelIdx {
				y[i] = int(cell.IntPart())
			} else {
				X[i] = append(X[i], cell)
			}
		}
	}

	return X, y, features, nil
}
