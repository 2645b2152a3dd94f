package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardiostack/internal/ensemble"
)

// featureValue makes every column vary across rows while keeping the
// two classes far apart.
func featureValue(i, j, label int) float64 {
	return float64((i*3+j*5)%7) + float64(label*10)
}

func writeUCIDataset(t *testing.T, dir string, rows int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("Age,Sex,cp,trestbps,chol,fbs,restecg,thalach,exang,oldpeak,slope,ca,num\n")

	for i := 0; i < rows; i++ {
		label := i % 2
		for j := 0; j < 12; j++ {
			if j > 0 {
				sb.WriteString(",")
			}
			if i == 3 && j == 4 {
				sb.WriteString("?")
				continue
			}
			fmt.Fprintf(&sb, "%g", featureValue(i, j, label))
		}
		// Raw severity grades 0-4 collapse to a binary outcome later.
		num := 0
		if label == 1 {
			num = 1 + i%4
		}
		fmt.Fprintf(&sb, ",%d\n", num)
	}

	path := filepath.Join(dir, "uci.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func writeIndiaDataset(t *testing.T, dir string, rows int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("patientid,age,gender,chestpain,restingBP,serumcholestrol," +
		"fastingbloodsugar,restingrelectro,maxheartrate,exerciseangia,oldpeak,slope,noofmajorvessels,target\n")

	for i := 0; i < rows; i++ {
		label := i % 2
		fmt.Fprintf(&sb, "%d", 1000+i)
		for j := 0; j < 12; j++ {
			fmt.Fprintf(&sb, ",%g", featureValue(i+1, j, label))
		}
		fmt.Fprintf(&sb, ",%d\n", label)
	}

	path := filepath.Join(dir, "india.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func e2eConfig(rocPath string) Config {
	config := DefaultConfig()
	config.SampleFraction = 1.0
	config.TestFraction = 0.3
	config.Folds = 2
	config.ROCPath = rocPath
	config.Grid = ensemble.Grid{
		KNNNeighbors:  []int{3},
		SVMC:          []float64{1},
		SVMKernels:    []string{"linear"},
		TreeMaxDepths: []int{5},
		MetaC:         []float64{1},
	}
	return config
}

func TestRunnerEndToEnd(t *testing.T) {
	dir := t.TempDir()
	uciPath := writeUCIDataset(t, dir, 30)
	indiaPath := writeIndiaDataset(t, dir, 30)
	rocPath := filepath.Join(dir, "roc.png")

	runner := NewRunner(e2eConfig(rocPath))
	report, err := runner.Run(uciPath, indiaPath)
	require.NoError(t, err)

	assert.Equal(t, 60, report.NumSamples)
	assert.Equal(t, 42, report.NumTrain)
	assert.Equal(t, 18, report.NumTest)
	assert.Len(t, report.Features, 12)

	assert.GreaterOrEqual(t, report.TestAUC, 0.9)
	assert.LessOrEqual(t, report.TestAUC, 1.0)
	assert.GreaterOrEqual(t, report.Metrics.Accuracy, 0.9)
	assert.GreaterOrEqual(t, report.Diversity, 0.0)
	assert.LessOrEqual(t, report.Diversity, 1.0)
	assert.Equal(t, 18, report.Metrics.NumSamples)

	info, err := os.Stat(rocPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	runner.PrintReport(report)
}

func TestRunnerMissingInputFile(t *testing.T) {
	dir := t.TempDir()
	indiaPath := writeIndiaDataset(t, dir, 10)

	runner := NewRunner(e2eConfig(""))
	_, err := runner.Run(filepath.Join(dir, "nope.csv"), indiaPath)
	assert.Error(t, err)
}

func TestRunnerSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	uciPath := writeUCIDataset(t, dir, 10)

	// A file that misses the rename map entirely cannot be harmonized.
	badPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(badPath, []byte("a,b,target\n1,2,1\n3,4,0\n"), 0o644))

	runner := NewRunner(e2eConfig(""))
	_, err := runner.Run(uciPath, badPath)
	assert.Error(t, err)
}
