package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trip.features/internal/features"
)

func testMatrix() *features.Matrix {
	return &features.Matrix{
		Columns: []string{"Speed_mean", "acceleration_std", "over_Speed", "over_gyro_x", "0", "1", "2"},
		Rows: []features.Row{
			{TripID: 1, Values: []float64{10, 0.5, 2, 0, 3, 0, 1}},
			{TripID: 2, Values: []float64{20, 0.1, 1, 4, 0, 5, 0}},
			{TripID: 3, Values: []float64{0, 0, 0, 0, 0, 0, 0}},
		},
	}
}

func TestColumnsByFamily(t *testing.T) {
	m := testMatrix()
	assert.Equal(t, []string{"0", "1", "2"}, clusterColumns(m))
	assert.Equal(t, []string{"over_Speed", "over_gyro_x"}, outlierColumns(m))
	assert.Equal(t, []float64{4, 5, 0}, WindowCounts(m))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, testMatrix(), "trip features"))

	html := buf.String()
	assert.True(t, strings.Contains(html, "<html"), "output is not an HTML page")
	for _, want := range []string{"trip features", "Window clusters", "Outlying samples", "over_gyro_x"} {
		assert.Contains(t, html, want)
	}
}

func TestWriteHTMLEmptyMatrix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, &features.Matrix{}, "empty"))
	assert.Contains(t, buf.String(), "empty")
}

func TestSaveWindowHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.png")
	require.NoError(t, SaveWindowHistogram(testMatrix(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "not a PNG file")
}

func TestWriteWindowHistogram(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWindowHistogram(&buf, testMatrix()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestWindowHistogramNoTrips(t *testing.T) {
	err := SaveWindowHistogram(&features.Matrix{}, filepath.Join(t.TempDir(), "x.png"))
	assert.True(t, errors.Is(err, ErrNoTrips))
}
