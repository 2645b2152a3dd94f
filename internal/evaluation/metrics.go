package evaluation

import (
	"fmt"
	"math"
	"strings"
)

type ClassificationMetrics struct {
	Accuracy        float64              `json:"accuracy"`
	F1Score         float64              `json:"f1_score"`
	MacroPrecision  float64              `json:"macro_precision"`
	MacroRecall     float64              `json:"macro_recall"`
	MacroF1         float64              `json:"macro_f1"`
	PerClassMetrics map[int]ClassMetrics `json:"per_class_metrics"`
	ConfusionMatrix [][]int              `json:"confusion_matrix"`
	Classes         []int                `json:"classes"`
	ClassSupport    map[int]int          `json:"class_support"`
	NumSamples      int                  `json:"num_samples"`
}

type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1Score   float64 `json:"f1_score"`
	Support   int     `json:"support"`
}

// CalculateMetrics computes the confusion matrix and the derived
// scores for the given class list. F1Score is the F1 of the highest
// class value, which for {0,1} labels is the positive class.
func CalculateMetrics(yTrue, yPred []int, classes []int) *ClassificationMetrics {
	if len(yTrue) != len(yPred) || len(yTrue) == 0 {
		return nil
	}

	numSamples := len(yTrue)
	numClasses := len(classes)

	confusionMatrix := buildConfusionMatrix(yTrue, yPred, classes)

	classSupport := make(map[int]int)
	for _, class := range yTrue {
		classSupport[class]++
	}

	perClassMetrics := make(map[int]ClassMetrics)
	var macroPrec, macroRec, macroF1 float64

	for i, class := range classes {
		tp := confusionMatrix[i][i]
		fp := 0
		fn := 0

		for j := range classes {
			if j != i {
				fp += confusionMatrix[j][i]
				fn += confusionMatrix[i][j]
			}
		}

		precision := safeDivide(float64(tp), float64(tp+fp))
		recall := safeDivide(float64(tp), float64(tp+fn))
		f1 := safeDivide(2*precision*recall, precision+recall)

		perClassMetrics[class] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1Score:   f1,
			Support:   classSupport[class],
		}

		macroPrec += precision
		macroRec += recall
		macroF1 += f1
	}

	macroPrec /= float64(numClasses)
	macroRec /= float64(numClasses)
	macroF1 /= float64(numClasses)

	correct := 0
	for i, pred := range yPred {
		if pred == yTrue[i] {
			correct++
		}
	}

	positive := classes[numClasses-1]

	return &ClassificationMetrics{
		Accuracy:        float64(correct) / float64(numSamples),
		F1Score:         perClassMetrics[positive].F1Score,
		MacroPrecision:  macroPrec,
		MacroRecall:     macroRec,
		MacroF1:         macroF1,
		PerClassMetrics: perClassMetrics,
		ConfusionMatrix: confusionMatrix,
		Classes:         classes,
		ClassSupport:    classSupport,
		NumSamples:      numSamples,
	}
}

func buildConfusionMatrix(yTrue, yPred []int, classes []int) [][]int {
	numClasses := len(classes)
	matrix := make([][]int, numClasses)
	for i := range matrix {
		matrix[i] = make([]int, numClasses)
	}

	classToIdx := make(map[int]int)
	for i, class := range classes {
		classToIdx[class] = i
	}

	for i := range yTrue {
		trueIdx, trueOk := classToIdx[yTrue[i]]
		predIdx, predOk := classToIdx[yPred[i]]
		if trueOk && predOk {
			matrix[trueIdx][predIdx]++
		}
	}

	return matrix
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

// FormatConfusionMatrix renders the matrix with actual classes as rows
// and predicted classes as columns.
func (m *ClassificationMetrics) FormatConfusionMatrix() string {
	var sb strings.Builder

	sb.WriteString("            ")
	for _, class := range m.Classes {
		sb.WriteString(fmt.Sprintf("pred %-6d", class))
	}
	sb.WriteString("\n")

	for i, class := range m.Classes {
		sb.WriteString(fmt.Sprintf("actual %-5d", class))
		for j := range m.Classes {
			sb.WriteString(fmt.Sprintf("%-11d", m.ConfusionMatrix[i][j]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatReport renders the per-class precision/recall/F1 table.
func (m *ClassificationMetrics) FormatReport() string {
	var sb strings.Builder

	sb.WriteString("              precision    recall  f1-score   support\n\n")
	for _, class := range m.Classes {
		cm := m.PerClassMetrics[class]
		sb.WriteString(fmt.Sprintf("%12d   %8.4f  %8.4f  %8.4f  %8d\n",
			class, cm.Precision, cm.Recall, cm.F1Score, cm.Support))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%12s   %8s  %8s  %8.4f  %8d\n",
		"accuracy", "", "", m.Accuracy, m.NumSamples))
	sb.WriteString(fmt.Sprintf("%12s   %8.4f  %8.4f  %8.4f  %8d\n",
		"macro avg", m.MacroPrecision, m.MacroRecall, m.MacroF1, m.NumSamples))

	return sb.String()
}
