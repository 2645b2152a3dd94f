package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

type Model interface {
	Fit(X [][]decimal.Decimal, y []int) error
	Predict(X [][]decimal.Decimal) []int
	PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal
	GetType() string
	GetName() string
	GetParams() map[string]any
	GetClasses() []int
	Reset()
}

type BaseModel struct {
	Name    string
	Params  map[string]any
	Classes []int
}

func (bm *BaseModel) GetType() string {
	return bm.Name
}

func (bm *BaseModel) GetName() string {
	return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
	return bm.Params
}

// ExtractClasses returns the distinct label values in ascending order,
// so that class index positions are stable across fits.
func ExtractClasses(y []int) []int {
	classMap := make(map[int]bool)
	for _, label := range y {
		classMap[label] = true
	}

	classes := make([]int, 0, len(classMap))
	for class := range classMap {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	return classes
}

// ToFloats converts a decimal feature matrix to float64 for the model
// internals that need transcendental math.
func ToFloats(X [][]decimal.Decimal) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			f, _ := v.Float64()
			out[i][j] = f
		}
	}
	return out
}
