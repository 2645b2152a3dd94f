package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVMLinearSeparable(t *testing.T) {
	X, y := twoClusters()

	svm := NewSVM(1, "linear", 42)
	require.NoError(t, svm.Fit(X, y))

	preds := svm.Predict(matrix([]float64{0, 0}, []float64{5, 5}))
	assert.Equal(t, []int{0, 1}, preds)
}

func TestSVMRBFSeparable(t *testing.T) {
	X, y := twoClusters()

	svm := NewSVM(1, "rbf", 42)
	require.NoError(t, svm.Fit(X, y))

	preds := svm.Predict(X)
	correct := 0
	for i, p := range preds {
		if p == y[i] {
			correct++
		}
	}
	assert.GreaterOrEqual(t, correct, len(y)*9/10)
}

func TestSVMPredictProba(t *testing.T) {
	X, y := twoClusters()

	svm := NewSVM(1, "linear", 42)
	require.NoError(t, svm.Fit(X, y))

	proba := svm.PredictProba(matrix([]float64{0, 0}, []float64{5, 5}, []float64{2.5, 2.5}))
	for _, row := range proba {
		require.Len(t, row, 2)
		p0, _ := row[0].Float64()
		p1, _ := row[1].Float64()
		assert.GreaterOrEqual(t, p0, 0.0)
		assert.LessOrEqual(t, p0, 1.0)
		assert.InDelta(t, 1, p0+p1, 1e-9)
	}

	// Platt scaling must keep the ordering of the decision values.
	neg, _ := proba[0][1].Float64()
	pos, _ := proba[1][1].Float64()
	assert.Greater(t, pos, neg)
}

func TestSVMRequiresTwoClasses(t *testing.T) {
	X := matrix([]float64{0}, []float64{1})

	err := NewSVM(1, "linear", 42).Fit(X, []int{1, 1})
	assert.Error(t, err)

	X3 := matrix([]float64{0}, []float64{1}, []float64{2})
	err = NewSVM(1, "linear", 42).Fit(X3, []int{0, 1, 2})
	assert.Error(t, err)
}

func TestSVMDeterministicForSeed(t *testing.T) {
	X, y := twoClusters()
	probe := matrix([]float64{1, 1})

	a := NewSVM(0.1, "rbf", 42)
	require.NoError(t, a.Fit(X, y))
	b := NewSVM(0.1, "rbf", 42)
	require.NoError(t, b.Fit(X, y))

	pa, _ := a.PredictProba(probe)[0][1].Float64()
	pb, _ := b.PredictProba(probe)[0][1].Float64()
	assert.Equal(t, pa, pb)
}

func TestSVMKernelFallback(t *testing.T) {
	svm := NewSVM(-1, "poly", 42)
	assert.Equal(t, float64(1), svm.C)
	assert.Equal(t, "rbf", svm.Kernel)
}
