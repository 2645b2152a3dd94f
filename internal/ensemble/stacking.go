package ensemble

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cardiostack/internal/evaluation"
	"cardiostack/internal/models"
)

// StackingClassifier is a two-level ensemble: heterogeneous base
// learners feed a linear meta-learner. The meta-learner trains on
// out-of-fold base probabilities so it never sees a base prediction
// made on that base's own training rows.
type StackingClassifier struct {
	models.BaseModel
	BaseConfigs []models.ModelConfig
	MetaConfig  models.ModelConfig
	Folds       int
	Seed        int64

	baseModels []models.Model
	metaModel  models.Model
}

func NewStackingClassifier(bases []models.ModelConfig, meta models.ModelConfig, folds int, seed int64) *StackingClassifier {
	if folds <= 1 {
		folds = 5
	}

	return &StackingClassifier{
		BaseConfigs: bases,
		MetaConfig:  meta,
		Folds:       folds,
		Seed:        seed,
		BaseModel: models.BaseModel{
			Name: "Stacking",
			Params: map[string]any{
				"folds": folds,
				"seed":  seed,
			},
		},
	}
}

func (sc *StackingClassifier) Fit(X [][]decimal.Decimal, y []int) error {
	if len(sc.BaseConfigs) == 0 {
		return fmt.Errorf("stacking requires at least one base learner")
	}

	classes := models.ExtractClasses(y)
	if len(classes) != 2 {
		return fmt.Errorf("stacking requires exactly 2 classes, got %d", len(classes))
	}
	sc.Classes = classes
	positive := classes[1]

	folds, err := evaluation.KFoldIndices(len(X), sc.Folds, sc.Seed)
	if err != nil {
		return fmt.Errorf("stacking folds: %w", err)
	}

	metaX := make([][]decimal.Decimal, len(X))
	for i := range metaX {
		metaX[i] = make([]decimal.Decimal, len(sc.BaseConfigs))
	}

	for _, testIndices := range folds {
		inTest := make(map[int]bool, len(testIndices))
		for _, idx := range testIndices {
			inTest[idx] = true
		}

		XTrain := make([][]decimal.Decimal, 0, len(X)-len(testIndices))
		yTrain := make([]int, 0, len(X)-len(testIndices))
		for i := range X {
			if !inTest[i] {
				XTrain = append(XTrain, X[i])
				yTrain = append(yTrain, y[i])
			}
		}

		XTest := make([][]decimal.Decimal, len(testIndices))
		for i, idx := range testIndices {
			XTest[i] = X[idx]
		}

		for b, config := range sc.BaseConfigs {
			model, err := models.CreateModel(config)
			if err != nil {
				return fmt.Errorf("base learner %d: %w", b, err)
			}
			if err := model.Fit(XTrain, yTrain); err != nil {
				return fmt.Errorf("fit base %s on fold: %w", model.GetName(), err)
			}

			scores := PositiveProba(model, XTest, positive)
			for i, idx := range testIndices {
				metaX[idx][b] = scores[i]
			}
		}
	}

	sc.metaModel, err = models.CreateModel(sc.MetaConfig)
	if err != nil {
		return fmt.Errorf("meta learner: %w", err)
	}
	if err := sc.metaModel.Fit(metaX, y); err != nil {
		return fmt.Errorf("fit meta learner: %w", err)
	}

	// Bases used at prediction time see all the training data.
	sc.baseModels = make([]models.Model, len(sc.BaseConfigs))
	for b, config := range sc.BaseConfigs {
		model, err := models.CreateModel(config)
		if err != nil {
			return fmt.Errorf("base learner %d: %w", b, err)
		}
		if err := model.Fit(X, y); err != nil {
			return fmt.Errorf("refit base %s: %w", model.GetName(), err)
		}
		sc.baseModels[b] = model
	}

	return nil
}

func (sc *StackingClassifier) metaFeatures(X [][]decimal.Decimal) [][]decimal.Decimal {
	positive := sc.Classes[1]

	metaX := make([][]decimal.Decimal, len(X))
	for i := range metaX {
		metaX[i] = make([]decimal.Decimal, len(sc.baseModels))
	}

	for b, model := range sc.baseModels {
		scores := PositiveProba(model, X, positive)
		for i := range X {
			metaX[i][b] = scores[i]
		}
	}

	return metaX
}

func (sc *StackingClassifier) Predict(X [][]decimal.Decimal) []int {
	return sc.metaModel.Predict(sc.metaFeatures(X))
}

func (sc *StackingClassifier) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
	return sc.metaModel.PredictProba(sc.metaFeatures(X))
}

func (sc *StackingClassifier) GetClasses() []int {
	return sc.Classes
}

func (sc *StackingClassifier) Reset() {
	sc.baseModels = nil
	sc.metaModel = nil
	sc.Classes = nil
}

// PositiveProba extracts the probability column for the given class
// from a model's PredictProba output. A class absent from the model's
// training labels scores zero.
func PositiveProba(model models.Model, X [][]decimal.Decimal, positive int) []decimal.Decimal {
	proba := model.PredictProba(X)
	classes := model.GetClasses()

	col := -1
	for i, class := range classes {
		if class == positive {
			col = i
		}
	}

	scores := make([]decimal.Decimal, len(X))
	for i := range proba {
		if col >= 0 {
			scores[i] = proba[i][col]
		}
	}
	return scores
}
