package models

import (
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

type KNN struct {
	BaseModel
	K        int
	Distance string
	xTrain   [][]float64
	yTrain   []int
}

func NewKNN(k int, distance string) *KNN {
	if k <= 0 {
		k = 5
	}

	if distance != "euclidean" && distance != "manhattan" {
		distance = "euclidean"
	}

	return &KNN{
		K:        k,
		Distance: distance,
		BaseModel: BaseModel{
			Name: "KNN",
			Params: map[string]any{
				"k":        k,
				"distance": distance,
			},
		},
	}
}

func (knn *KNN) Fit(X [][]decimal.Decimal, y []int) error {
	knn.xTrain = ToFloats(X)
	knn.yTrain = make([]int, len(y))
	copy(knn.yTrain, y)
	knn.Classes = ExtractClasses(y)
	return nil
}

func (knn *KNN) Predict(X [][]decimal.Decimal) []int {
	predictions := make([]int, len(X))

	for i, sample := range ToFloats(X) {
		neighbors := knn.findNeighbors(sample)
		predictions[i] = knn.majorityVote(neighbors)
	}

	return predictions
}

func (knn *KNN) PredictProba(X [][]decimal.Decimal) [][]decimal.Decimal {
	proba := make([][]decimal.Decimal, len(X))

	for i, sample := range ToFloats(X) {
		neighbors := knn.findNeighbors(sample)
		proba[i] = knn.voteFractions(neighbors)
	}

	return proba
}

func (knn *KNN) norm() float64 {
	if knn.Distance == "manhattan" {
		return 1
	}
	return 2
}

func (knn *KNN) findNeighbors(sample []float64) []int {
	type neighbor struct {
		index    int
		distance float64
	}

	norm := knn.norm()
	neighbors := make([]neighbor, len(knn.xTrain))

	for i, trainSample := range knn.xTrain {
		neighbors[i] = neighbor{
			index:    i,
			distance: floats.Distance(sample, trainSample, norm),
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	k := knn.K
	if k > len(neighbors) {
		k = len(neighbors)
	}

	kNearest := make([]int, k)
	for i := 0; i < k; i++ {
		kNearest[i] = neighbors[i].index
	}

	return kNearest
}

func (knn *KNN) countVotes(neighbors []int) map[int]int {
	votes := make(map[int]int)
	for _, idx := range neighbors {
		votes[knn.yTrain[idx]]++
	}
	return votes
}

func (knn *KNN) majorityVote(neighbors []int) int {
	votes := knn.countVotes(neighbors)

	maxVotes := 0
	bestClass := knn.Classes[0]

	// Iterate classes in order so ties break deterministically.
	for _, class := range knn.Classes {
		if votes[class] > maxVotes {
			maxVotes = votes[class]
			bestClass = class
		}
	}

	return bestClass
}

func (knn *KNN) voteFractions(neighbors []int) []decimal.Decimal {
	votes := knn.countVotes(neighbors)

	proba := make([]decimal.Decimal, len(knn.Classes))
	total := decimal.NewFromInt(int64(len(neighbors)))

	for i, class := range knn.Classes {
		proba[i] = decimal.NewFromInt(int64(votes[class])).Div(total)
	}

	return proba
}

func (knn *KNN) GetClasses() []int {
	return knn.Classes
}

func (knn *KNN) Reset() {
	knn.xTrain = nil
	knn.yTrain = nil
	knn.Classes = nil
}
