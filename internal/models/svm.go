package models

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// SVM is a binary soft-margin support vector classifier trained with
// the simplified SMO procedure. Probabilities come from Platt scaling:
// a sigmoid fitted on the training decision values after SMO runs.
type SVM struct {
	BaseModel
	C         float64
	Kernel    string
	Gamma     float64
	Tol       float64
	MaxPasses int
	Seed      int64

	xTrain [][]float64
	yTrain []float64
	alphas []float64
	bias   float64
	gamma  float64
	plattA float64
	plattB float64
}

// smoIterCap bounds the outer SMO loop so a pathological fold cannot
// spin forever.
const smoIterCap = 500

func NewSVM(c float64, kernel string, seed int64) *SVM {
	if c <= 0 {
		c = 1
	}

	if kernel != "linear" && kernel != "rbf" {
		kernel = "rbf"
	}

	return &SVM{
		C:         c,
		Kernel:    kernel,
		Tol:       1e-3,
		MaxPasses: 5,
		Seed:      seed,
		BaseModel: BaseModel{
			Name: "SVM",
			Params: map[string]any{
				"c":      c,
				"kernel": kernel,
				"seed":   seed,
			},
		},
	}
}

func (svm *SVM) Fit(X [][]decimal.Decimal, y []int) error {
	classes := ExtractClasses(y)
	if len(classes) != 2 {
		return fmt.Errorf("svm requires exactly 2 classes, got %d", len(classes))
	}
	svm.Classes = classes

	svm.xTrain = ToFloats(X)
	svm.yTrain = make([]float64, len(y))
	for i, label := range y {
		if label == classes[1] {
			svm.yTrain[i] = 1
		} else {
			svm.yTrain[i] = -1
		}
	}

	svm.gamma = svm.Gamma
	if svm.gamma <= 0 && len(svm.xTrain) > 0 {
		svm.gamma = 1 / float64(len(svm.xTrain[0]))
	}

	svm.runSMO()
	svm.fitPlatt()

	return nil
}

func (svm *SVM) kernel(a, b []float64) float64 {
	switch svm.Kernel {
	case "linear":
		return floats.Dot(a, b)
	default:
		d := floats.Distance(a, b, 2)
		return math.Exp(-svm.gamma * d * d)
	}
}

func (svm *SVM) runSMO() {
	n := len(svm.xTrain)
	svm.alphas = make([]float64, n)
	svm.bias = 0

	gram := make([][]float64, n)
	for i := 0; i < n; i++ {
		gram[i] = make([]float64, n)
		for j := 0; j <= i; j++ {
			k := svm.kernel(svm.xTrain[i], svm.xTrain[j])
			gram[i][j] = k
			gram[j][i] = k
		}
	}

	decision := func(i int) float64 {
		sum := svm.bias
		for j := 0; j < n; j++ {
			if svm.alphas[j] != 0 {
				sum += svm.alphas[j] * svm.yTrain[j] * gram[i][j]
			}
		}
		return sum
	}

	rng := rand.New(rand.NewSource(svm.Seed))
	passes := 0

	for iter := 0; passes < svm.MaxPasses && iter < smoIterCap; iter++ {
		changed := 0

		for i := 0; i < n; i++ {
			errI := decision(i) - svm.yTrain[i]

			if !((svm.yTrain[i]*errI < -svm.Tol && svm.alphas[i] < svm.C) ||
				(svm.yTrain[i]*errI > svm.Tol && svm.alphas[i] > 0)) {
				continue
			}

			j := rng.Intn(n - 1)
			if j >= i {
				j++
			}
			errJ := decision(j) - svm.yTrain[j]

			alphaIOld := svm.alphas[i]
			alphaJOld := svm.alphas[j]

			var lo, hi float64
			if svm.yTrain[i] != svm.yTrain[j] {
				lo = math.Max(0, alphaJOld-alphaIOld)
				hi = math.Min(svm.C, svm.C+alphaJOld-alphaIOld)
			} else {
				lo = math.Max(0, alphaIOld+alphaJOld-svm.C)
				hi = math.Min(svm.C, alphaIOld+alphaJOld)
			}
			if lo == hi {
				continue
			}

			eta := 2*gram[i][j] - gram[i][i] - gram[j][j]
			if eta >= 0 {
				continue
			}

			alphaJ := alphaJOld - svm.yTrain[j]*(errI-errJ)/eta
			if alphaJ > hi {
				alphaJ = hi
			} else if alphaJ < lo {
				alphaJ = lo
			}
			if math.Abs(alphaJ-alphaJOld) < 1e-5 {
				continue
			}

			alphaI := alphaIOld + svm.yTrain[i]*svm.yTrain[j]*(alphaJOld-alphaJ)
			svm.alphas[i] = alphaI
			svm.alphas[j] = alphaJ

			b1 := svm.bias - errI -
				svm.yTrain[i]*(alphaI-alphaIOld)*gram[i][i] -
				svm.yTrain[j]*(alphaJ-alphaJOld)*gram[i][j]
			b2 := svm.bias - errJ -
				svm.yTrain[i]*(alphaI-alphaIOld)*gram[i][j] -
				svm.yTrain[j]*(alphaJ-alphaJOld)*gram[j][j]

			switch {
			case alphaI > 0 && alphaI < svm.C:
				svm.bias = b1
			case alphaJ > 0 && alphaJ < svm.C:
				svm.bias = b2
			default:
				svm.bias = (b1 + b2) / 2
			}

			changed++
		}

		if changed == 0 {
			passes++
		} else {
			passes = 0
		}
	}
}

// DecisionFunction evaluates the signed margin for one sample.
func (svm *SVM) DecisionFunction(sample []float64) float64 {
	sum := svm.bias
	for i, alpha := range svm.alphas {
		if alpha != 0 {
			sum += alpha * svm.yTrain[i] * svm.kernel(svm.xTrain[i], sample)
		}
	}
	return sum
}

// fitPlatt fits P(positive|f) = 1 / (1 + exp(A*f + B)) on the training
// decision values by gradient descent, with Platt's smoothed targets.
func (svm *SVM) fitPlatt() {
	n := len(svm.xTrain)
	scores := make([]float64, n)
	for i := range svm.xTrain {
		scores[i] = svm.DecisionFunction(svm.xTrain[i])
	}

	nPos, nNeg := 0, 0
	for _, y := range svm.yTrain {
		if y > 0 {
			nPos++
		} else {
			nNeg++
		}
	}
	tPos := (float64(nPos) + 1) / (float64(nPos) + 2)
	tNeg := 1 / (float64(nNeg) + 2)

	a, b := -1.0, 0.0
	lr := 1e-2

	for iter := 0; iter < 300; iter++ {
		var gradA, gradB float64
		for i, f := range scores {
			t := tNeg
			if svm.yTrain[i] > 0 {
				t = tPos
			}
			p := 1 / (1 + math.Exp(a*f+b))
			gradA += (t - p) * f
			gradB += t - p
		}
		a -= lr * gradA / float64(n)
		b -= lr * gradB / float64(n)
	}

	svm.plattA = a
	svm.plattB = b
}

func (svm *SVM) positiveProba(sample []float64) float64 {
	f := svm.DecisionFunction(sample)
	return 1 / (1 + math.Exp(svm.plattA*f+svm.plattB))
}

func (svm *SVM) Predict(X [][]decimal.Decimal) []int {
	predictions := make([]int, len(X))
	for i, sample := range ToFloats(X) {
		if svm.DecisionFunction(sample) >= 0 {
			predictions[i] = svm.Classes[1]
		} else {
			predictions[i] = svm.Classes[0]
		}
	}
	return predictions
}

func (svm *SVM) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
	proba := make([][]decimal.Decimal, len(X))
	for i, sample := range ToFloats(X) {
		pos := svm.positiveProba(sample)
		proba[i] = []decimal.Decimal{
			decimal.NewFromFloat(1 - pos),
			decimal.NewFromFloat(pos),
		}
	}
	return proba
}

func (svm *SVM) GetClasses() []int {
	return svm.Classes
}

func (svm *SVM) Reset() {
	svm.xTrain = nil
	svm.yTrain = nil
	svm.alphas = nil
	svm.bias = 0
	svm.plattA = 0
	svm.plattB = 0
	svm.Classes = nil
}
