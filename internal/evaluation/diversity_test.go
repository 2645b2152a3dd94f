package evaluation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiostack/internal/models"
)

func TestPairwiseDisagreementIdentical(t *testing.T) {
	preds := [][]int{
		{0, 1, 0, 1},
		{0, 1, 0, 1},
		{0, 1, 0, 1},
	}

	score, err := PairwiseDisagreement(preds)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestPairwiseDisagreementOpposite(t *testing.T) {
	preds := [][]int{
		{0, 0, 0, 0},
		{1, 1, 1, 1},
	}

	score, err := PairwiseDisagreement(preds)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestPairwiseDisagreementAveragesPairs(t *testing.T) {
	// Pairs disagree on 2/4, 2/4 and 0/4 instances.
	preds := [][]int{
		{0, 0, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
	}

	score, err := PairwiseDisagreement(preds)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, score, 1e-9)
}

func TestPairwiseDisagreementSymmetric(t *testing.T) {
	preds := [][]int{
		{0, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 1, 1, 0},
	}

	score, err := PairwiseDisagreement(preds)
	require.NoError(t, err)

	permutations := [][][]int{
		{preds[1], preds[0], preds[2]},
		{preds[2], preds[1], preds[0]},
		{preds[2], preds[0], preds[1]},
	}
	for _, permuted := range permutations {
		got, err := PairwiseDisagreement(permuted)
		require.NoError(t, err)
		assert.Equal(t, score, got)
	}
}

func TestPairwiseDisagreementValidation(t *testing.T) {
	_, err := PairwiseDisagreement([][]int{{0, 1}})
	assert.Error(t, err)

	_, err = PairwiseDisagreement([][]int{{}, {}})
	assert.Error(t, err)

	_, err = PairwiseDisagreement([][]int{{0, 1}, {0}})
	assert.Error(t, err)
}

func TestDiversityScore(t *testing.T) {
	X := make([][]decimal.Decimal, 0, 20)
	y := make([]int, 0, 20)
	for i := 0; i < 10; i++ {
		X = append(X, []decimal.Decimal{decimal.NewFromFloat(float64(i) / 10)})
		y = append(y, 0)
		X = append(X, []decimal.Decimal{decimal.NewFromFloat(5 + float64(i)/10)})
		y = append(y, 1)
	}

	learners := []models.Model{
		models.NewKNN(3, "euclidean"),
		models.NewDecisionTree(0, 2),
	}

	score, err := DiversityScore(learners, X, y, X[:6])
	require.NoError(t, err)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}
