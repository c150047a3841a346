package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSeries_CSVWithHeader(t *testing.T) {
	path := writeTempCSV(t, "time,value\n0,1.5\n1.5,2.5\n4,-0.5\n")

	s, err := NewSeriesReader().ReadSeries(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []float64{0, 1.5, 4}, s.Times())
	assert.Equal(t, []float64{1.5, 2.5, -0.5}, s.Values())
}

func TestReadSeries_CSVWithoutHeader(t *testing.T) {
	path := writeTempCSV(t, "0,1\n2,3\n")

	s, err := NewSeriesReader().ReadSeries(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestReadSeries_TimestampColumn(t *testing.T) {
	path := writeTempCSV(t, "time,value\n2024-01-01T00:00:00Z,1\n2024-01-01T00:00:10Z,2\n")

	s, err := NewSeriesReader().ReadSeries(context.Background(), path)
	require.NoError(t, err)

	times := s.Times()
	assert.InDelta(t, 10.0, times[1]-times[0], 1e-9)
}

func TestReadSeries_BadRow(t *testing.T) {
	path := writeTempCSV(t, "time,value\n0,1\nnot-a-time,2\n")

	_, err := NewSeriesReader().ReadSeries(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestReadSeries_MissingFile(t *testing.T) {
	_, err := NewSeriesReader().ReadSeries(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadSeries_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.parquet")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := NewSeriesReader().ReadSeries(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}
