package models

import (
	"fmt"
)

type ModelConfig struct {
	Algorithm string
	K         int
	Distance  string
	C         float64
	Kernel    string
	MaxDepth  int
	MinSplit  int
	Seed      int64
}

func CreateModel(config ModelConfig) (Model, error) {
	switch config.Algorithm {
	case "knn":
		if config.K <= 0 {
			config.K = 5
		}
		if config.Distance == "" {
			config.Distance = "euclidean"
		}
		return NewKNN(config.K, config.Distance), nil

	case "svm":
		if config.C <= 0 {
			config.C = 1
		}
		if config.Kernel == "" {
			config.Kernel = "rbf"
		}
		return NewSVM(config.C, config.Kernel, config.Seed), nil

	case "tree":
		if config.MinSplit <= 0 {
			config.MinSplit = 2
		}
		return NewDecisionTree(config.MaxDepth, config.MinSplit), nil

	case "logistic":
		if config.C <= 0 {
			config.C = 1
		}
		return NewLogisticRegression(config.C), nil

	default:
		return nil, fmt.Errorf("unknown algorithm: %s", config.Algorithm)
	}
}

func DefaultConfig(algorithm string) ModelConfig {
	config := ModelConfig{Algorithm: algorithm}

	switch algorithm {
	case "knn":
		config.K = 5
		config.Distance = "euclidean"
	case "svm":
		config.C = 1
		config.Kernel = "rbf"
		config.Seed = 42
	case "tree":
		config.MaxDepth = 0
		config.MinSplit = 2
	case "logistic":
		config.C = 1
	}

	return config
}
