package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/trip.features/internal/features"
)

// Scatter axes of the per-trip chart.
const (
	scatterX = "Speed_mean"
	scatterY = "acceleration_std"
)

// WriteHTML renders a single-page dashboard of the matrix to w.
func WriteHTML(w io.Writer, m *features.Matrix, title string) error {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		totalsBar(m, "Window clusters", "windows", clusterColumns(m)),
		totalsBar(m, "Outlying samples", "samples", outlierColumns(m)),
		tripScatter(m),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func totalsBar(m *features.Matrix, title, series string, cols []string) *charts.Bar {
	y := make([]opts.BarData, len(cols))
	for i, c := range cols {
		y[i] = opts.BarData{Value: m.Sum(c)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("trips=%d", len(m.Rows))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(cols).
		AddSeries(series, y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func tripScatter(m *features.Matrix) *charts.Scatter {
	xi, okX := m.ColumnIndex(scatterX)
	yi, okY := m.ColumnIndex(scatterY)

	data := make([]opts.ScatterData, 0, len(m.Rows))
	if okX && okY {
		for _, r := range m.Rows {
			data = append(data, opts.ScatterData{Value: []interface{}{r.Values[xi], r.Values[yi], r.TripID}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: "Trips", Subtitle: fmt.Sprintf("%s vs %s", scatterX, scatterY)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: scatterX, NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: scatterY, NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("trips", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	return scatter
}
