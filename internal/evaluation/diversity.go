package evaluation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cardiostack/internal/models"
)

// PairwiseDisagreement takes one prediction vector per learner and
// returns the Hamming disagreement rate averaged over all learner
// pairs. 0 means every learner predicted identically on every
// instance.
func PairwiseDisagreement(predictions [][]int) (float64, error) {
	if len(predictions) < 2 {
		return 0, fmt.Errorf("need at least 2 learners, got %d", len(predictions))
	}

	n := len(predictions[0])
	if n == 0 {
		return 0, fmt.Errorf("empty prediction vectors")
	}
	for i, preds := range predictions {
		if len(preds) != n {
			return 0, fmt.Errorf("learner %d predicted %d instances, expected %d", i, len(preds), n)
		}
	}

	var total float64
	pairs := 0

	for a := 0; a < len(predictions); a++ {
		for b := a + 1; b < len(predictions); b++ {
			differing := 0
			for i := 0; i < n; i++ {
				if predictions[a][i] != predictions[b][i] {
					differing++
				}
			}
			total += float64(differing) / float64(n)
			pairs++
		}
	}

	return total / float64(pairs), nil
}

// DiversityScore refits each learner independently on the training
// partition, outside any stacking context, and measures how often
// their hard predictions on the held-out partition disagree.
func DiversityScore(learners []models.Model, XTrain [][]decimal.Decimal, yTrain []int, XTest [][]decimal.Decimal) (float64, error) {
	predictions := make([][]int, len(learners))

	for i, learner := range learners {
		learner.Reset()
		if err := learner.Fit(XTrain, yTrain); err != nil {
			return 0, fmt.Errorf("refit %s: %w", learner.GetName(), err)
		}
		predictions[i] = learner.Predict(XTest)
	}

	return PairwiseDisagreement(predictions)
}
