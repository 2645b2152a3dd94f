package ensemble

import (
	"github.com/shopspring/decimal"
)

// separableDataset builds a balanced, linearly separable binary
// dataset large enough that seeded folds keep both classes.
func separableDataset(n int) ([][]decimal.Decimal, []int) {
	X := make([][]decimal.Decimal, 0, n)
	y := make([]int, 0, n)

	for i := 0; len(X) < n; i++ {
		jitterA := float64(i%5) / 10
		jitterB := float64(i%3) / 10

		X = append(X, []decimal.Decimal{
			decimal.NewFromFloat(jitterA),
			decimal.NewFromFloat(jitterB),
		})
		y = append(y, 0)

		if len(X) == n {
			break
		}

		X = append(X, []decimal.Decimal{
			decimal.NewFromFloat(6 + jitterA),
			decimal.NewFromFloat(6 + jitterB),
		})
		y = append(y, 1)
	}

	return X, y
}
