package models

import (
	"github.com/shopspring/decimal"
)

func matrix(rows ...[]float64) [][]decimal.Decimal {
	out := make([][]decimal.Decimal, len(rows))
	for i, row := range rows {
		out[i] = make([]decimal.Decimal, len(row))
		for j, v := range row {
			out[i][j] = decimal.NewFromFloat(v)
		}
	}
	return out
}

// twoClusters builds a linearly separable binary dataset: class 0
// around the origin, class 1 around (5, 5).
func twoClusters() ([][]decimal.Decimal, []int) {
	var rows [][]float64
	var y []int

	offsets := []float64{-0.4, -0.2, 0, 0.2, 0.4}
	for _, dx := range offsets {
		for _, dy := range offsets {
			rows = append(rows, []float64{dx, dy})
			y = append(y, 0)
			rows = append(rows, []float64{5 + dx, 5 + dy})
			y = append(y, 1)
		}
	}

	return matrix(rows...), y
}
