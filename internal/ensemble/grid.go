package ensemble

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"cardiostack/internal/evaluation"
	"cardiostack/internal/models"
)

var ErrNoValidConfiguration = errors.New("no valid configuration")

// Grid enumerates the hyperparameter space searched exhaustively: one
// axis per tunable knob of each base learner plus the meta-learner's
// regularization strength. A tree depth of 0 means unlimited.
type Grid struct {
	KNNNeighbors  []int     `yaml:"knn_neighbors"`
	SVMC          []float64 `yaml:"svm_c"`
	SVMKernels    []string  `yaml:"svm_kernels"`
	TreeMaxDepths []int     `yaml:"tree_max_depths"`
	MetaC         []float64 `yaml:"meta_c"`
}

func DefaultGrid() Grid {
	return Grid{
		KNNNeighbors:  []int{3, 5},
		SVMC:          []float64{0.1, 1},
		SVMKernels:    []string{"linear", "rbf"},
		TreeMaxDepths: []int{0, 5},
		MetaC:         []float64{0.1, 1},
	}
}

type Candidate struct {
	KNNNeighbors int
	SVMC         float64
	SVMKernel    string
	TreeMaxDepth int
	MetaC        float64
}

func (c Candidate) String() string {
	depth := fmt.Sprintf("%d", c.TreeMaxDepth)
	if c.TreeMaxDepth <= 0 {
		depth = "none"
	}
	return fmt.Sprintf("knn_n_neighbors=%d svm_c=%g svm_kernel=%s tree_max_depth=%s meta_c=%g",
		c.KNNNeighbors, c.SVMC, c.SVMKernel, depth, c.MetaC)
}

// Candidates expands the Cartesian product of every grid axis.
func (g Grid) Candidates() []Candidate {
	var out []Candidate
	for _, k := range g.KNNNeighbors {
		for _, c := range g.SVMC {
			for _, kernel := range g.SVMKernels {
				for _, depth := range g.TreeMaxDepths {
					for _, metaC := range g.MetaC {
						out = append(out, Candidate{
							KNNNeighbors: k,
							SVMC:         c,
							SVMKernel:    kernel,
							TreeMaxDepth: depth,
							MetaC:        metaC,
						})
					}
				}
			}
		}
	}
	return out
}

// GridSearch scores every candidate by k-fold cross-validated AUC and
// keeps the fully refit winner. Candidates are independent, so they
// fan out over a worker pool.
type GridSearch struct {
	Grid       Grid
	Folds      int
	Seed       int64
	Parallel   bool
	MaxWorkers int
}

func NewGridSearch(grid Grid, folds int, seed int64) *GridSearch {
	if folds <= 1 {
		folds = 5
	}

	return &GridSearch{
		Grid:       grid,
		Folds:      folds,
		Seed:       seed,
		Parallel:   true,
		MaxWorkers: 4,
	}
}

type SearchResult struct {
	Best      Candidate
	BestScore float64
	Scores    []float64
	Model     *StackingClassifier
}

func (gs *GridSearch) buildModel(c Candidate) *StackingClassifier {
	bases := []models.ModelConfig{
		{Algorithm: "knn", K: c.KNNNeighbors, Distance: "euclidean"},
		{Algorithm: "svm", C: c.SVMC, Kernel: c.SVMKernel, Seed: gs.Seed},
		{Algorithm: "tree", MaxDepth: c.TreeMaxDepth, MinSplit: 2},
	}
	meta := models.ModelConfig{Algorithm: "logistic", C: c.MetaC}
	return NewStackingClassifier(bases, meta, gs.Folds, gs.Seed)
}

// BaseLearners builds fresh, unfit copies of a candidate's base
// learners, in grid order.
func (gs *GridSearch) BaseLearners(c Candidate) ([]models.Model, error) {
	configs := gs.buildModel(c).BaseConfigs
	learners := make([]models.Model, len(configs))
	for i, config := range configs {
		model, err := models.CreateModel(config)
		if err != nil {
			return nil, err
		}
		learners[i] = model
	}
	return learners, nil
}

func (gs *GridSearch) Search(X [][]decimal.Decimal, y []int) (*SearchResult, error) {
	candidates := gs.Grid.Candidates()
	if len(candidates) == 0 {
		return nil, fmt.Errorf("empty hyperparameter grid: %w", ErrNoValidConfiguration)
	}

	classes := models.ExtractClasses(y)
	if len(classes) != 2 {
		return nil, fmt.Errorf("need binary labels, got %d classes: %w", len(classes), ErrNoValidConfiguration)
	}
	positive := classes[1]

	folds, err := evaluation.KFoldIndices(len(X), gs.Folds, gs.Seed)
	if err != nil {
		return nil, fmt.Errorf("cross-validation folds: %v: %w", err, ErrNoValidConfiguration)
	}

	scores := make([]float64, len(candidates))
	scoreErrs := make([]error, len(candidates))

	if gs.Parallel {
		workers := gs.MaxWorkers
		if workers > len(candidates) {
			workers = len(candidates)
		}

		jobs := make(chan int, len(candidates))
		var wg sync.WaitGroup

		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					scores[i], scoreErrs[i] = gs.scoreCandidate(X, y, candidates[i], folds, positive)
				}
			}()
		}

		for i := range candidates {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i, candidate := range candidates {
			scores[i], scoreErrs[i] = gs.scoreCandidate(X, y, candidate, folds, positive)
		}
	}

	// Every grid point must be scorable; a fold that cannot be scored
	// invalidates the whole search rather than silently skewing it.
	for i, err := range scoreErrs {
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %v: %w", candidates[i], err, ErrNoValidConfiguration)
		}
	}

	bestIdx := 0
	for i, score := range scores {
		if score > scores[bestIdx] {
			bestIdx = i
		}
	}

	winner := gs.buildModel(candidates[bestIdx])
	if err := winner.Fit(X, y); err != nil {
		return nil, fmt.Errorf("refit winning candidate %s: %v: %w", candidates[bestIdx], err, ErrNoValidConfiguration)
	}

	return &SearchResult{
		Best:      candidates[bestIdx],
		BestScore: scores[bestIdx],
		Scores:    scores,
		Model:     winner,
	}, nil
}

func (gs *GridSearch) scoreCandidate(X [][]decimal.Decimal, y []int, c Candidate, folds [][]int, positive int) (float64, error) {
	var total float64

	for f, testIndices := range folds {
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
		yTest := make([]int, len(testIndices))
		for i, idx := range testIndices {
			XTest[i] = X[idx]
			yTest[i] = y[idx]
		}

		model := gs.buildModel(c)
		if err := model.Fit(XTrain, yTrain); err != nil {
			return 0, fmt.Errorf("fold %d: %w", f, err)
		}

		probaScores := PositiveProba(model, XTest, positive)
		floatScores := make([]float64, len(probaScores))
		for i, s := range probaScores {
			floatScores[i], _ = s.Float64()
		}

		auc, err := evaluation.ROCAUC(yTest, floatScores, positive)
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", f, err)
		}
		total += auc
	}

	return total / float64(len(folds)), nil
}
