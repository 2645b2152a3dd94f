package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveROCPlot(t *testing.T) {
	y := []int{0, 1, 0, 1, 1, 0}
	scores := []float64{0.2, 0.8, 0.4, 0.7, 0.9, 0.1}

	points, err := ROCCurve(y, scores, 1)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "roc.png")
	require.NoError(t, SaveROCPlot(points, AUC(points), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
