package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMetrics(t *testing.T) {
	yTrue := []int{1, 0, 1, 1, 0, 0, 1, 0}
	yPred := []int{1, 0, 0, 1, 0, 1, 1, 0}

	m := CalculateMetrics(yTrue, yPred, []int{0, 1})
	require.NotNil(t, m)

	assert.InDelta(t, 0.75, m.Accuracy, 1e-9)

	// Positive class: tp=3, fp=1, fn=1.
	assert.InDelta(t, 0.75, m.PerClassMetrics[1].Precision, 1e-9)
	assert.InDelta(t, 0.75, m.PerClassMetrics[1].Recall, 1e-9)
	assert.InDelta(t, 0.75, m.F1Score, 1e-9)

	assert.Equal(t, 4, m.ClassSupport[0])
	assert.Equal(t, 4, m.ClassSupport[1])
}

func TestConfusionMatrixSums(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 1, 0}
	yPred := []int{0, 1, 1, 0, 1, 0}

	m := CalculateMetrics(yTrue, yPred, []int{0, 1})
	require.NotNil(t, m)

	// Row sums equal per-class support, total equals sample count.
	total := 0
	for i, class := range m.Classes {
		rowSum := 0
		for j := range m.Classes {
			rowSum += m.ConfusionMatrix[i][j]
		}
		assert.Equal(t, m.ClassSupport[class], rowSum)
		total += rowSum
	}
	assert.Equal(t, m.NumSamples, total)
}

func TestCalculateMetricsPerfect(t *testing.T) {
	y := []int{0, 1, 1, 0}
	m := CalculateMetrics(y, y, []int{0, 1})
	require.NotNil(t, m)

	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 1.0, m.F1Score)
	assert.Equal(t, 1.0, m.MacroF1)
}

func TestCalculateMetricsDegenerate(t *testing.T) {
	assert.Nil(t, CalculateMetrics(nil, nil, []int{0, 1}))
	assert.Nil(t, CalculateMetrics([]int{0, 1}, []int{0}, []int{0, 1}))
}

func TestCalculateMetricsNoPositivePredictions(t *testing.T) {
	yTrue := []int{0, 1, 1}
	yPred := []int{0, 0, 0}

	m := CalculateMetrics(yTrue, yPred, []int{0, 1})
	require.NotNil(t, m)

	// Zero denominators report zero instead of NaN.
	assert.Equal(t, 0.0, m.PerClassMetrics[1].Precision)
	assert.Equal(t, 0.0, m.F1Score)
}

func TestFormatReport(t *testing.T) {
	yTrue := []int{0, 1, 1, 0}
	m := CalculateMetrics(yTrue, yTrue, []int{0, 1})
	require.NotNil(t, m)

	report := m.FormatReport()
	assert.Contains(t, report, "precision")
	assert.Contains(t, report, "accuracy")

	matrix := m.FormatConfusionMatrix()
	assert.Contains(t, matrix, "actual")
	assert.Contains(t, matrix, "pred")
}
