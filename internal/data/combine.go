package data

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// Concat stacks two harmonized tables row-wise. Both tables must
// expose exactly the same ordered column set; harmonization is the
// caller's job, not Concat's.
func Concat(a, b *Table) (*Table, error) {
	if len(a.Columns) != len(b.Columns) {
		return nil, fmt.Errorf("column counts differ: %d vs %d: %w",
			len(a.Columns), len(b.Columns), ErrSchemaMismatch)
	}
	for i := range a.Columns {
		if a.Columns[i] != b.Columns[i] {
			return nil, fmt.Errorf("column %d differs: %q vs %q: %w",
				i, a.Columns[i], b.Columns[i], ErrSchemaMismatch)
		}
	}

	combined := NewTable(a.Columns)
	for _, t := range []*Table{a, b} {
		for i := range t.Rows {
			row := make([]decimal.Decimal, len(t.Rows[i]))
			copy(row, t.Rows[i])
			missing := make([]bool, len(t.Missing[i]))
			copy(missing, t.Missing[i])
			combined.AppendRow(row, missing)
		}
	}

	return combined, nil
}

// Sample draws a uniform random subsample without replacement of the
// given fraction of rows. The seeded shuffle makes the selection and
// its order deterministic for a fixed seed.
func (t *Table) Sample(frac float64, seed int64) (*Table, error) {
	if frac <= 0 || frac > 1 {
		return nil, fmt.Errorf("sample fraction must be in (0, 1], got %v", frac)
	}

	n := t.NumRows()
	count := int(math.Round(frac * float64(n)))
	if count < 1 {
		count = 1
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	sampled := NewTable(t.Columns)
	for _, idx := range indices[:count] {
		row := make([]decimal.Decimal, len(t.Rows[idx]))
		copy(row, t.Rows[idx])
		missing := make([]bool, len(t.Missing[idx]))
		copy(missing, t.Missing[idx])
		sampled.AppendRow(row, missing)
	}

	return sampled, nil
}
