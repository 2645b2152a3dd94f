package data

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type DataValidator struct{}

func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

func (dv *DataValidator) ValidateDataset(X [][]decimal.Decimal, y []int) error {
	if len(X) == 0 {
		return fmt.Errorf("dataset is empty")
	}

	if len(X) != len(y) {
		return fmt.Errorf("feature matrix and labels have different lengths: %d vs %d", len(X), len(y))
	}

	nFeatures := len(X[0])
	if nFeatures == 0 {
		return fmt.Errorf("features cannot be empty")
	}

	for i, sample := range X {
		if len(sample) != nFeatures {
			return fmt.Errorf("inconsistent feature count at sample %d: expected %d, got %d", i, nFeatures, len(sample))
		}
	}

	return nil
}

func (dv *DataValidator) ValidateLabels(y []int) error {
	if len(y) == 0 {
		return fmt.Errorf("labels are empty")
	}

	classCount := make(map[int]int)
	for _, label := range y {
		classCount[label]++
	}

	if len(classCount) < 2 {
		return fmt.Errorf("dataset must have at least 2 classes, found %d", len(classCount))
	}

	return nil
}

func (dv *DataValidator) ValidateTrainTestSplit(XTrain, XTest [][]decimal.Decimal, yTrain, yTest []int) error {
	if err := dv.ValidateDataset(XTrain, yTrain); err != nil {
		return fmt.Errorf("training set validation failed: %v", err)
	}

	if err := dv.ValidateDataset(XTest, yTest); err != nil {
		return fmt.Errorf("test set validation failed: %v", err)
	}

	if len(XTrain[0]) != len(XTest[0]) {
		return fmt.Errorf("train and test sets have different feature counts: %d vs %d", len(XTrain[0]), len(XTest[0]))
	}

	return nil
}

// ClassDistribution counts occurrences per label value.
func ClassDistribution(y []int) map[int]int {
	dist := make(map[int]int)
	for _, label := range y {
		dist[label]++
	}
	return dist
}
