package pipeline

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"cardiostack/internal/data"
	"cardiostack/internal/ensemble"
	"cardiostack/internal/evaluation"
	"cardiostack/internal/models"
	"cardiostack/internal/preprocessing"
)

// indiaRenames maps the Indian dataset's column names onto the UCI
// schema so the two sources can be stacked row-wise.
var indiaRenames = map[string]string{
	"age":               "Age",
	"gender":            "Sex",
	"chestpain":         "cp",
	"restingBP":         "trestbps",
	"serumcholestrol":   "chol",
	"fastingbloodsugar": "fbs",
	"restingrelectro":   "restecg",
	"maxheartrate":      "thalach",
	"exerciseangia":     "exang",
	"oldpeak":           "oldpeak",
	"slope":             "slope",
	"noofmajorvessels":  "ca",
	"target":            "num",
}

type Runner struct {
	Config Config

	green  func(a ...interface{}) string
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
}

func NewRunner(config Config) *Runner {
	return &Runner{
		Config: config,
		green:  color.New(color.FgGreen).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
	}
}

// RunReport collects everything the pipeline measured on the held-out
// partition plus the grid search outcome.
type RunReport struct {
	BestParams ensemble.Candidate
	BestCVAUC  float64
	TestAUC    float64
	Metrics    *evaluation.ClassificationMetrics
	Diversity  float64
	ROCPoints  []evaluation.ROCPoint
	NumSamples int
	NumTrain   int
	NumTest    int
	Features   []string
}

// Run executes the full pipeline: load both sources, harmonize,
// binarize, combine, sample, split, scale, grid-search the stacked
// ensemble and evaluate the winner on the held-out partition.
func (r *Runner) Run(uciPath, indiaPath string) (*RunReport, error) {
	cfg := r.Config

	fmt.Printf("%s loading datasets\n", r.cyan(">"))

	uci, err := data.LoadTable(uciPath)
	if err != nil {
		return nil, fmt.Errorf("load uci dataset: %w", err)
	}

	india, err := data.LoadTable(indiaPath)
	if err != nil {
		return nil, fmt.Errorf("load india dataset: %w", err)
	}

	india.DropColumn("patientid")
	india.RenameColumns(indiaRenames)

	if err := uci.ImputeColumnMeans(); err != nil {
		return nil, fmt.Errorf("impute uci dataset: %w", err)
	}
	if err := india.ImputeColumnMeans(); err != nil {
		return nil, fmt.Errorf("impute india dataset: %w", err)
	}

	if err := uci.BinarizeColumn(cfg.LabelColumn); err != nil {
		return nil, fmt.Errorf("binarize uci labels: %w", err)
	}
	if err := india.BinarizeColumn(cfg.LabelColumn); err != nil {
		return nil, fmt.Errorf("binarize india labels: %w", err)
	}

	combined, err := data.Concat(uci, india)
	if err != nil {
		return nil, fmt.Errorf("combine datasets: %w", err)
	}

	sampled, err := combined.Sample(cfg.SampleFraction, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("sample combined dataset: %w", err)
	}

	fmt.Printf("%s combined %d rows, sampled %d\n",
		r.cyan(">"), combined.NumRows(), sampled.NumRows())

	X, y, features, err := sampled.SplitFeaturesLabel(cfg.LabelColumn)
	if err != nil {
		return nil, fmt.Errorf("split features and label: %w", err)
	}

	validator := data.NewDataValidator()
	if err := validator.ValidateDataset(X, y); err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}
	if err := validator.ValidateLabels(y); err != nil {
		return nil, fmt.Errorf("validate labels: %w", err)
	}

	fmt.Printf("%s class distribution: %v\n", r.cyan(">"), data.ClassDistribution(y))

	splitter := evaluation.NewTrainTestSplitter(cfg.TestFraction, cfg.Seed, true)
	XTrainRaw, XTestRaw, yTrain, yTest, err := splitter.Split(X, y)
	if err != nil {
		return nil, fmt.Errorf("train/test split: %w", err)
	}
	if err := validator.ValidateTrainTestSplit(XTrainRaw, XTestRaw, yTrain, yTest); err != nil {
		return nil, fmt.Errorf("validate split: %w", err)
	}

	// Scaling statistics come from the training partition only.
	scaler := preprocessing.NewScaler()
	XTrain, err := scaler.FitTransform(XTrainRaw)
	if err != nil {
		return nil, fmt.Errorf("fit scaler: %w", err)
	}
	XTest, err := scaler.Transform(XTestRaw)
	if err != nil {
		return nil, fmt.Errorf("scale test partition: %w", err)
	}

	fmt.Printf("%s grid search over %d candidates, %d-fold cv\n",
		r.cyan(">"), len(cfg.Grid.Candidates()), cfg.Folds)

	search := ensemble.NewGridSearch(cfg.Grid, cfg.Folds, cfg.Seed)
	result, err := search.Search(XTrain, yTrain)
	if err != nil {
		return nil, fmt.Errorf("grid search: %w", err)
	}

	classes := models.ExtractClasses(y)
	positive := classes[len(classes)-1]

	scores := toFloats(ensemble.PositiveProba(result.Model, XTest, positive))

	rocPoints, err := evaluation.ROCCurve(yTest, scores, positive)
	if err != nil {
		return nil, fmt.Errorf("roc curve: %w", err)
	}
	testAUC := evaluation.AUC(rocPoints)

	yPred := make([]int, len(scores))
	for i, score := range scores {
		if score >= cfg.Threshold {
			yPred[i] = positive
		} else {
			yPred[i] = classes[0]
		}
	}

	metrics := evaluation.CalculateMetrics(yTest, yPred, classes)
	if metrics == nil {
		return nil, fmt.Errorf("metrics: empty evaluation set")
	}

	learners, err := search.BaseLearners(result.Best)
	if err != nil {
		return nil, fmt.Errorf("diversity learners: %w", err)
	}
	diversity, err := evaluation.DiversityScore(learners, XTrain, yTrain, XTest)
	if err != nil {
		return nil, fmt.Errorf("diversity score: %w", err)
	}

	if cfg.ROCPath != "" {
		if err := evaluation.SaveROCPlot(rocPoints, testAUC, cfg.ROCPath); err != nil {
			return nil, fmt.Errorf("save roc plot: %w", err)
		}
		fmt.Printf("%s roc curve written to %s\n", r.cyan(">"), cfg.ROCPath)
	}

	return &RunReport{
		BestParams: result.Best,
		BestCVAUC:  result.BestScore,
		TestAUC:    testAUC,
		Metrics:    metrics,
		Diversity:  diversity,
		ROCPoints:  rocPoints,
		NumSamples: sampled.NumRows(),
		NumTrain:   len(XTrain),
		NumTest:    len(XTest),
		Features:   features,
	}, nil
}

// PrintReport writes the evaluation summary to stdout.
func (r *Runner) PrintReport(report *RunReport) {
	fmt.Println()
	fmt.Println(r.green("=== Stacking Model Report ==="))
	fmt.Printf("samples: %d (train %d / test %d), features: %d\n",
		report.NumSamples, report.NumTrain, report.NumTest, len(report.Features))
	fmt.Println()

	fmt.Printf("best parameters:  %s\n", r.yellow(report.BestParams.String()))
	fmt.Printf("best cv auc:      %s\n", r.yellow(fmt.Sprintf("%.4f", report.BestCVAUC)))
	fmt.Printf("test auc:         %s\n", r.green(fmt.Sprintf("%.4f", report.TestAUC)))
	fmt.Printf("accuracy:         %s\n", r.green(fmt.Sprintf("%.4f", report.Metrics.Accuracy)))
	fmt.Printf("f1 score:         %s\n", r.green(fmt.Sprintf("%.4f", report.Metrics.F1Score)))
	fmt.Printf("base diversity:   %s\n", r.yellow(fmt.Sprintf("%.4f", report.Diversity)))
	fmt.Println()

	fmt.Println("confusion matrix:")
	fmt.Println(report.Metrics.FormatConfusionMatrix())
	fmt.Println("classification report:")
	fmt.Println(report.Metrics.FormatReport())
}

func toFloats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i], _ = v.Float64()
	}
	return out
}
