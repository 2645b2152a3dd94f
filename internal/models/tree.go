package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

type TreeNode struct {
	IsLeaf     bool
	Class      int
	ClassCount map[int]int
	Feature    int
	Threshold  decimal.Decimal
	Left       *TreeNode
	Right      *TreeNode
	Samples    int
	Impurity   float64
}

// DecisionTree is a CART-style classifier splitting on Gini impurity.
// MaxDepth <= 0 means the tree grows until leaves are pure or too
// small to split.
type DecisionTree struct {
	BaseModel
	Root            *TreeNode
	MaxDepth        int
	MinSamplesSplit int
}

func NewDecisionTree(maxDepth, minSamplesSplit int) *DecisionTree {
	if minSamplesSplit <= 0 {
		minSamplesSplit = 2
	}

	return &DecisionTree{
		MaxDepth:        maxDepth,
		MinSamplesSplit: minSamplesSplit,
		BaseModel: BaseModel{
			Name: "DecisionTree",
			Params: map[string]any{
				"max_depth":         maxDepth,
				"min_samples_split": minSamplesSplit,
			},
		},
	}
}

func (dt *DecisionTree) Fit(X [][]decimal.Decimal, y []int) error {
	dt.Classes = ExtractClasses(y)
	dt.Root = dt.buildTree(X, y, 0)
	return nil
}

func (dt *DecisionTree) buildTree(X [][]decimal.Decimal, y []int, depth int) *TreeNode {
	node := &TreeNode{
		Samples:  len(y),
		Impurity: dt.gini(y),
	}

	depthLimited := dt.MaxDepth > 0 && depth >= dt.MaxDepth
	if depthLimited || len(y) < dt.MinSamplesSplit || dt.isPure(y) {
		return dt.makeLeaf(node, y)
	}

	bestFeature, bestThreshold, bestDecrease := dt.findBestSplit(X, y)
	if bestDecrease <= 0 {
		return dt.makeLeaf(node, y)
	}

	node.Feature = bestFeature
	node.Threshold = bestThreshold

	leftIndices, rightIndices := dt.splitIndices(X, bestFeature, bestThreshold)
	if len(leftIndices) == 0 || len(rightIndices) == 0 {
		return dt.makeLeaf(node, y)
	}

	XLeft, yLeft := dt.selectRows(X, y, leftIndices)
	XRight, yRight := dt.selectRows(X, y, rightIndices)

	node.Left = dt.buildTree(XLeft, yLeft, depth+1)
	node.Right = dt.buildTree(XRight, yRight, depth+1)

	return node
}

func (dt *DecisionTree) makeLeaf(node *TreeNode, y []int) *TreeNode {
	node.IsLeaf = true
	node.ClassCount = make(map[int]int)
	for _, class := range y {
		node.ClassCount[class]++
	}
	node.Class = dt.mostCommonClass(y)
	return node
}

func (dt *DecisionTree) findBestSplit(X [][]decimal.Decimal, y []int) (int, decimal.Decimal, float64) {
	bestFeature := 0
	bestThreshold := decimal.Zero
	bestDecrease := 0.0

	parentImpurity := dt.gini(y)
	n := len(y)

	for feature := range X[0] {
		for _, threshold := range dt.uniqueValues(X, feature) {
			leftIndices, rightIndices := dt.splitIndices(X, feature, threshold)
			if len(leftIndices) == 0 || len(rightIndices) == 0 {
				continue
			}

			yLeft := make([]int, len(leftIndices))
			for i, idx := range leftIndices {
				yLeft[i] = y[idx]
			}
			yRight := make([]int, len(rightIndices))
			for i, idx := range rightIndices {
				yRight[i] = y[idx]
			}

			weighted := (float64(len(yLeft))/float64(n))*dt.gini(yLeft) +
				(float64(len(yRight))/float64(n))*dt.gini(yRight)

			decrease := parentImpurity - weighted
			if decrease > bestDecrease {
				bestDecrease = decrease
				bestFeature = feature
				bestThreshold = threshold
			}
		}
	}

	return bestFeature, bestThreshold, bestDecrease
}

func (dt *DecisionTree) Predict(X [][]decimal.Decimal) []int {
	predictions := make([]int, len(X))
	for i, sample := range X {
		leaf := dt.findLeaf(sample, dt.Root)
		predictions[i] = leaf.Class
	}
	return predictions
}

// PredictProba reports the class distribution of the leaf each sample
// lands in.
func (dt *DecisionTree) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
	proba := make([][]decimal.Decimal, len(X))

	for i, sample := range X {
		leaf := dt.findLeaf(sample, dt.Root)
		total := 0
		for _, count := range leaf.ClassCount {
			total += count
		}

		proba[i] = make([]decimal.Decimal, len(dt.Classes))
		for j, class := range dt.Classes {
			proba[i][j] = decimal.NewFromInt(int64(leaf.ClassCount[class])).
				Div(decimal.NewFromInt(int64(total)))
		}
	}

	return proba
}

func (dt *DecisionTree) findLeaf(sample []decimal.Decimal, node *TreeNode) *TreeNode {
	if node.IsLeaf {
		return node
	}

	if sample[node.Feature].LessThan(node.Threshold) {
		return dt.findLeaf(sample, node.Left)
	}
	return dt.findLeaf(sample, node.Right)
}

func (dt *DecisionTree) GetClasses() []int {
	return dt.Classes
}

func (dt *DecisionTree) Reset() {
	dt.Root = nil
	dt.Classes = nil
}

func (dt *DecisionTree) gini(y []int) float64 {
	if len(y) == 0 {
		return 0
	}

	classCounts := make(map[int]int)
	for _, class := range y {
		classCounts[class]++
	}

	impurity := 1.0
	n := float64(len(y))
	for _, count := range classCounts {
		p := float64(count) / n
		impurity -= p * p
	}

	return impurity
}

func (dt *DecisionTree) isPure(y []int) bool {
	if len(y) == 0 {
		return true
	}
	for _, class := range y {
		if class != y[0] {
			return false
		}
	}
	return true
}

func (dt *DecisionTree) mostCommonClass(y []int) int {
	if len(y) == 0 {
		return 0
	}

	classCounts := make(map[int]int)
	for _, class := range y {
		classCounts[class]++
	}

	maxCount := 0
	mostCommon := y[0]
	for _, class := range ExtractClasses(y) {
		if classCounts[class] > maxCount {
			maxCount = classCounts[class]
			mostCommon = class
		}
	}

	return mostCommon
}

func (dt *DecisionTree) uniqueValues(X [][]decimal.Decimal, feature int) []decimal.Decimal {
	valueMap := make(map[string]decimal.Decimal)
	for _, sample := range X {
		valueMap[sample[feature].String()] = sample[feature]
	}

	values := make([]decimal.Decimal, 0, len(valueMap))
	for _, value := range valueMap {
		values = append(values, value)
	}

	// Scan thresholds in a fixed order so Gini ties resolve the same
	// way on every fit.
	sort.Slice(values, func(i, j int) bool {
		return values[i].LessThan(values[j])
	})

	return values
}

func (dt *DecisionTree) splitIndices(X [][]decimal.Decimal, feature int, threshold decimal.Decimal) ([]int, []int) {
	var leftIndices, rightIndices []int
	for i, sample := range X {
		if sample[feature].LessThan(threshold) {
			leftIndices = append(leftIndices, i)
		} else {
			rightIndices = append(rightIndices, i)
		}
	}
	return leftIndices, rightIndices
}

func (dt *DecisionTree) selectRows(X [][]decimal.Decimal, y []int, indices []int) ([][]decimal.Decimal, []int) {
	selectedX := make([][]decimal.Decimal, len(indices))
	selectedY := make([]int, len(indices))
	for i, idx := range indices {
		selectedX[i] = X[idx]
		selectedY[i] = y[idx]
	}
	return selectedX, selectedY
}
