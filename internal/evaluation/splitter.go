package evaluation

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
)

type TrainTestSplitter struct {
	testSize   float64
	randomSeed int64
	shuffle    bool
}

func NewTrainTestSplitter(testSize float64, randomSeed int64, shuffle bool) *TrainTestSplitter {
	return &TrainTestSplitter{
		testSize:   testSize,
		randomSeed: randomSeed,
		shuffle:    shuffle,
	}
}

func (tts *TrainTestSplitter) Split(X [][]decimal.Decimal, y []int) ([][]decimal.Decimal, [][]decimal.Decimal, []int, []int, error) {
	if len(X) != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("x and y must have the same length")
	}

	if len(X) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("cannot split empty dataset")
	}

	if tts.testSize <= 0 || tts.testSize >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("test size must be between 0 and 1")
	}

	n := len(X)
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	if tts.shuffle {
		rng := rand.New(rand.NewSource(tts.randomSeed))
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	testCount := int(float64(n) * tts.testSize)
	trainCount := n - testCount

	XTrain := make([][]decimal.Decimal, trainCount)
	XTest := make([][]decimal.Decimal, testCount)
	yTrain := make([]int, trainCount)
	yTest := make([]int, testCount)

	for i := 0; i < trainCount; i++ {
		idx := indices[i]
		XTrain[i] = make([]decimal.Decimal, len(X[idx]))
		copy(XTrain[i], X[idx])
		yTrain[i] = y[idx]
	}

	for i := 0; i < testCount; i++ {
		idx := indices[trainCount+i]
		XTest[i] = make([]decimal.Decimal, len(X[idx]))
		copy(XTest[i], X[idx])
		yTest[i] = y[idx]
	}

	return XTrain, XTest, yTrain, yTest, nil
}

// KFoldIndices shuffles 0..n-1 with the given seed and cuts the result
// into k folds of (near) equal size, returning each fold's test
// indices. The last fold absorbs the remainder.
func KFoldIndices(n, folds int, seed int64) ([][]int, error) {
	if folds < 2 || folds > n {
		return nil, fmt.Errorf("number of folds must be between 2 and %d, got %d", n, folds)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	out := make([][]int, folds)
	foldSize := n / folds

	for fold := 0; fold < folds; fold++ {
		start := fold * foldSize
		end := start + foldSize
		if fold == folds-1 {
			end = n
		}
		out[fold] = make([]int, end-start)
		copy(out[fold], indices[start:end])
	}

	return out, nil
}
