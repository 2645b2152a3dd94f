package evaluation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

var ErrDegenerateLabel = errors.New("degenerate labels")

// ROCPoint is one operating point of the receiver operating
// characteristic, the (FPR, TPR) reached by classifying scores at or
// above Threshold as positive.
type ROCPoint struct {
	FPR       float64
	TPR       float64
	Threshold float64
}

// ROCCurve sweeps the decision threshold over the score range and
// returns the operating points ordered from the strictest threshold to
// the most permissive. Both classes must appear in yTrue.
func ROCCurve(yTrue []int, scores []float64, positiveClass int) ([]ROCPoint, error) {
	if len(yTrue) != len(scores) {
		return nil, fmt.Errorf("labels and scores have different lengths: %d vs %d", len(yTrue), len(scores))
	}

	totalPos, totalNeg := 0, 0
	for _, label := range yTrue {
		if label == positiveClass {
			totalPos++
		} else {
			totalNeg++
		}
	}
	if totalPos == 0 || totalNeg == 0 {
		return nil, fmt.Errorf("need both classes to trace a ROC curve: %w", ErrDegenerateLabel)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	points := []ROCPoint{{FPR: 0, TPR: 0, Threshold: math.Inf(1)}}
	tp, fp := 0, 0

	for k, idx := range order {
		if yTrue[idx] == positiveClass {
			tp++
		} else {
			fp++
		}
		// Emit a point only once all samples tied at this score are in.
		if k+1 < len(order) && scores[order[k+1]] == scores[idx] {
			continue
		}
		points = append(points, ROCPoint{
			FPR:       float64(fp) / float64(totalNeg),
			TPR:       float64(tp) / float64(totalPos),
			Threshold: scores[idx],
		})
	}

	return points, nil
}

// AUC integrates the curve with the trapezoid rule.
func AUC(points []ROCPoint) float64 {
	fpr := make([]float64, len(points))
	tpr := make([]float64, len(points))
	for i, p := range points {
		fpr[i] = p.FPR
		tpr[i] = p.TPR
	}
	return integrate.Trapezoidal(fpr, tpr)
}

// ROCAUC is the one-call form used by the cross-validation scorer.
func ROCAUC(yTrue []int, scores []float64, positiveClass int) (float64, error) {
	points, err := ROCCurve(yTrue, scores, positiveClass)
	if err != nil {
		return 0, err
	}
	return AUC(points), nil
}
