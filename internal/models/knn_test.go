package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKNNPredict(t *testing.T) {
	X, y := twoClusters()

	knn := NewKNN(3, "euclidean")
	require.NoError(t, knn.Fit(X, y))

	preds := knn.Predict(matrix([]float64{0.1, -0.1}, []float64{4.9, 5.2}))
	assert.Equal(t, []int{0, 1}, preds)
}

func TestKNNManhattan(t *testing.T) {
	X, y := twoClusters()

	knn := NewKNN(5, "manhattan")
	require.NoError(t, knn.Fit(X, y))

	preds := knn.Predict(matrix([]float64{0, 0}, []float64{5, 5}))
	assert.Equal(t, []int{0, 1}, preds)
}

func TestKNNPredictProba(t *testing.T) {
	X, y := twoClusters()

	knn := NewKNN(3, "euclidean")
	require.NoError(t, knn.Fit(X, y))

	proba := knn.PredictProba(matrix([]float64{0, 0}))
	require.Len(t, proba, 1)
	require.Len(t, proba[0], 2)

	p0, _ := proba[0][0].Float64()
	p1, _ := proba[0][1].Float64()
	assert.InDelta(t, 1, p0+p1, 1e-9)
	assert.Equal(t, float64(1), p0, "all 3 neighbors are class 0")
}

func TestKNNClassesSorted(t *testing.T) {
	X := matrix([]float64{0}, []float64{1}, []float64{2})
	y := []int{2, 0, 1}

	knn := NewKNN(1, "euclidean")
	require.NoError(t, knn.Fit(X, y))

	assert.Equal(t, []int{0, 1, 2}, knn.GetClasses())
}

func TestKNNKLargerThanTrainingSet(t *testing.T) {
	X := matrix([]float64{0}, []float64{5})
	y := []int{0, 1}

	knn := NewKNN(10, "euclidean")
	require.NoError(t, knn.Fit(X, y))

	preds := knn.Predict(matrix([]float64{0.2}))
	require.Len(t, preds, 1)
}

func TestKNNReset(t *testing.T) {
	X, y := twoClusters()
	knn := NewKNN(3, "euclidean")
	require.NoError(t, knn.Fit(X, y))

	knn.Reset()
	assert.Nil(t, knn.GetClasses())
}
