package report

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trip.features/internal/features"
)

// ErrNoTrips is returned when there is nothing to plot.
var ErrNoTrips = errors.New("no trips to plot")

const histogramBins = 20

func windowHistogram(m *features.Matrix) (*plot.Plot, error) {
	counts := WindowCounts(m)
	if len(counts) == 0 {
		return nil, ErrNoTrips
	}

	p := plot.New()
	p.Title.Text = "Sliding windows per trip"
	p.X.Label.Text = "Windows"
	p.Y.Label.Text = "Trips"

	bins := histogramBins
	if len(counts) < bins {
		bins = len(counts)
	}
	h, err := plotter.NewHist(plotter.Values(counts), bins)
	if err != nil {
		return nil, fmt.Errorf("failed to build histogram: %w", err)
	}
	p.Add(h)
	return p, nil
}

// SaveWindowHistogram writes a histogram of per-trip window counts. The
// image format follows the file extension.
func SaveWindowHistogram(m *features.Matrix, path string) error {
	p, err := windowHistogram(m)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WriteWindowHistogram writes the histogram to w as PNG.
func WriteWindowHistogram(w io.Writer, m *features.Matrix) error {
	p, err := windowHistogram(m)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
