package valuesparquet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jamesrr39/mappaint-app/mappaint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDataset(t *testing.T, rows []*DatasetRow) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "dataset.parquet")

	w, err := NewDatasetWriter(filePath)
	require.NoError(t, err)

	for _, row := range rows {
		require.NoError(t, w.WriteRow(row))
	}
	require.NoError(t, w.Close())
	require.EqualValues(t, len(rows), w.RowsWritten())

	return filePath
}

func TestDatasetReader_ReadBatch(t *testing.T) {
	filePath := writeTestDataset(t, []*DatasetRow{
		NumberRow("NO-01", 5),
		NumberRow("NO-02", 15),
		TextRow("NO-03", "closed"),
		NumberRow("NO-04", 25),
		TextRow("NO-05", "open"),
	})

	r, err := NewDatasetReader(filePath)
	require.NoError(t, err)
	defer r.Close()

	assert.EqualValues(t, 5, r.TotalRows())

	batch, err := r.ReadBatch(2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "NO-01", batch[0].Key)
	assert.Equal(t, float64(5), batch[0].Value)
	assert.Equal(t, "NO-02", batch[1].Key)

	batch, err = r.ReadBatch(2)
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, "NO-03", batch[0].Key)
	assert.True(t, batch[0].IsText)
	assert.Equal(t, "closed", batch[0].Text)

	// only one row left, the batch comes back short
	batch, err = r.ReadBatch(2)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "NO-05", batch[0].Key)

	batch, err = r.ReadBatch(2)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestDatasetReader_ReadAll(t *testing.T) {
	filePath := writeTestDataset(t, []*DatasetRow{
		NumberRow("NO-01", 5),
		TextRow("NO-02", "closed"),
	})

	r, err := NewDatasetReader(filePath)
	require.NoError(t, err)
	defer r.Close()

	rows, err := r.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, mappaint.ValueKindNumber, rows[0].ToValue().Kind())
	assert.Equal(t, float64(5), rows[0].ToValue().Num())
	assert.Equal(t, mappaint.ValueKindString, rows[1].ToValue().Kind())
	assert.Equal(t, "closed", rows[1].ToValue().Str())
}

func TestDatasetReader_badBatchSize(t *testing.T) {
	filePath := writeTestDataset(t, []*DatasetRow{NumberRow("NO-01", 5)})

	r, err := NewDatasetReader(filePath)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadBatch(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch size must be positive")
}

func TestResultWriter_roundTrip(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "results.parquet")

	w, err := NewResultWriter(filePath)
	require.NoError(t, err)

	results := []*ResultRow{
		{Key: "NO-01", Matched: true, RuleIndex: 1, Color: "#1a9850", OpacitySet: true, Opacity: 0.5, Label: "Light"},
		{Key: "NO-02", Matched: false, RuleIndex: -1},
	}
	for _, result := range results {
		require.NoError(t, w.WriteRow(result))
	}
	require.NoError(t, w.Close())
	require.EqualValues(t, 2, w.RowsWritten())

	readBack, err := ReadAllResults(filePath)
	require.NoError(t, err)
	assert.Equal(t, results, readBack)
}
