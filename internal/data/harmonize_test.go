package data

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImputeColumnMeans(t *testing.T) {
	table := NewTable([]string{"a", "b"})
	table.AppendRow(dRow(2, 10), noneMissing(2))
	table.AppendRow(dRow(0, 20), []bool{true, false})
	table.AppendRow(dRow(4, 30), noneMissing(2))

	require.NoError(t, table.ImputeColumnMeans())

	assert.False(t, table.HasMissing())
	assert.Equal(t, "3", table.Rows[1][0].String())
}

func TestImputeColumnMeansAllMissing(t *testing.T) {
	table := NewTable([]string{"a", "b"})
	table.AppendRow(dRow(1, 0), []bool{false, true})
	table.AppendRow(dRow(2, 0), []bool{false, true})

	err := table.ImputeColumnMeans()
	assert.ErrorIs(t, err, ErrDegenerateColumn)
}

func TestDropColumn(t *testing.T) {
	table := NewTable([]string{"patientid", "age", "num"})
	table.AppendRow(dRow(101, 63, 1), noneMissing(3))

	table.DropColumn("patientid")

	assert.Equal(t, []string{"age", "num"}, table.Columns)
	require.Len(t, table.Rows[0], 2)
	assert.Equal(t, "63", table.Rows[0][0].String())

	// Absent column is a no-op.
	table.DropColumn("patientid")
	assert.Equal(t, 2, table.NumCols())
}

func TestRenameColumns(t *testing.T) {
	table := NewTable([]string{"age", "target", "extra"})
	table.RenameColumns(map[string]string{"age": "Age", "target": "num"})

	assert.Equal(t, []string{"Age", "num", "extra"}, table.Columns)
}

func TestBinarizeColumn(t *testing.T) {
	table := NewTable([]string{"num"})
	for _, v := range []float64{0, 1, 2, 4, -1} {
		table.AppendRow([]decimal.Decimal{decimal.NewFromFloat(v)}, noneMissing(1))
	}

	require.NoError(t, table.BinarizeColumn("num"))

	got := make([]string, table.NumRows())
	for i := range table.Rows {
		got[i] = table.Rows[i][0].String()
	}
	assert.Equal(t, []string{"0", "1", "1", "1", "0"}, got)
}

func TestBinarizeColumnNotFound(t *testing.T) {
	table := NewTable([]string{"a"})
	err := table.BinarizeColumn("num")
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
