package models

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a binary L2-regularized classifier trained
// with batch gradient descent. C is the inverse regularization
// strength: smaller C, stronger penalty.
type LogisticRegression struct {
	BaseModel
	C            float64
	LearningRate float64
	Epochs       int

	weights []float64
	bias    float64
}

func NewLogisticRegression(c float64) *LogisticRegression {
	if c <= 0 {
		c = 1
	}

	return &LogisticRegression{
		C:            c,
		LearningRate: 0.1,
		Epochs:       500,
		BaseModel: BaseModel{
			Name: "LogisticRegression",
			Params: map[string]any{
				"c": c,
			},
		},
	}
}

func (lr *LogisticRegression) Fit(X [][]decimal.Decimal, y []int) error {
	classes := ExtractClasses(y)
	if len(classes) != 2 {
		return fmt.Errorf("logistic regression requires exactly 2 classes, got %d", len(classes))
	}
	lr.Classes = classes

	xf := ToFloats(X)
	n := len(xf)
	if n == 0 {
		return fmt.Errorf("empty dataset")
	}
	nFeatures := len(xf[0])

	targets := make([]float64, n)
	for i, label := range y {
		if label == classes[1] {
			targets[i] = 1
		}
	}

	lr.weights = make([]float64, nFeatures)
	lr.bias = 0
	penalty := 1 / (lr.C * float64(n))

	for epoch := 0; epoch < lr.Epochs; epoch++ {
		gradW := make([]float64, nFeatures)
		gradB := 0.0

		for i, row := range xf {
			p := sigmoid(floats.Dot(lr.weights, row) + lr.bias)
			diff := p - targets[i]
			for j, v := range row {
				gradW[j] += diff * v
			}
			gradB += diff
		}

		for j := range gradW {
			gradW[j] = gradW[j]/float64(n) + penalty*lr.weights[j]
			lr.weights[j] -= lr.LearningRate * gradW[j]
		}
		lr.bias -= lr.LearningRate * gradB / float64(n)
	}

	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func (lr *LogisticRegression) positiveProba(row []float64) float64 {
	return sigmoid(floats.Dot(lr.weights, row) + lr.bias)
}

func (lr *LogisticRegression) Predict(X [][]decimal.Decimal) []int {
	predictions := make([]int, len(X))
	for i, row := range ToFloats(X) {
		if lr.positiveProba(row) >= 0.5 {
			predictions[i] = lr.Classes[1]
		} else {
			predictions[i] = lr.Classes[0]
		}
	}
	return predictions
}

func (lr *LogisticRegression) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
	proba := make([][]decimal.Decimal, len(X))
	for i, row := range ToFloats(X) {
		pos := lr.positiveProba(row)
		proba[i] = []decimal.Decimal{
			decimal.NewFromFloat(1 - pos),
			decimal.NewFromFloat(pos),
		}
	}
	return proba
}

func (lr *LogisticRegression) GetClasses() []int {
	return lr.Classes
}

func (lr *LogisticRegression) Reset() {
	lr.weights = nil
	lr.bias = 0
	lr.Classes = nil
}
