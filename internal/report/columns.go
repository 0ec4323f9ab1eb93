package report

import (
	"strconv"
	"strings"

	"github.com/banshee-data/trip.features/internal/features"
)

// clusterColumns returns the window cluster columns "0" … "K-1" in order.
func clusterColumns(m *features.Matrix) []string {
	var cols []string
	for _, c := range m.Columns {
		if _, err := strconv.Atoi(c); err == nil {
			cols = append(cols, c)
		}
	}
	return cols
}

func outlierColumns(m *features.Matrix) []string {
	var cols []string
	for _, c := range m.Columns {
		if strings.HasPrefix(c, "over_") {
			cols = append(cols, c)
		}
	}
	return cols
}

// WindowCounts returns, per trip, the total number of windows assigned to
// any cluster.
func WindowCounts(m *features.Matrix) []float64 {
	idx := make([]int, 0)
	for _, c := range clusterColumns(m) {
		i, _ := m.ColumnIndex(c)
		idx = append(idx, i)
	}
	out := make([]float64, len(m.Rows))
	for r, row := range m.Rows {
		for _, i := range idx {
			out[r] += row.Values[i]
		}
	}
	return out
}
