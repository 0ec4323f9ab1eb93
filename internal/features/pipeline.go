package features

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/trip.features/internal/config"
	"github.com/banshee-data/trip.features/internal/monitoring"
	"github.com/banshee-data/trip.features/internal/params"
	"github.com/banshee-data/trip.features/internal/telematics"
)

// Pipeline stage names, reported through Progress in this order.
const (
	StageValidate  = "validating input"
	StageClean     = "cleaning data"
	StageTransform = "transforming data"
	StageSummary   = "generating features (summary statistics)"
	StageOutlier   = "generating features (outlying behaviours)"
	StageWindow    = "generating features (sliding windows)"
	StageAssemble  = "assembling features"
)

const stageCount = 7

// Pipeline runs validation, cleaning, transformation, the three feature
// families and assembly over one batch of samples. A Pipeline holds no
// per-run state and may be reused.
type Pipeline struct {
	Params   *params.Bundle
	Config   *config.FeatureConfig
	Progress monitoring.Progress
}

// New returns a pipeline. A nil cfg uses the defaults.
func New(bundle *params.Bundle, cfg *config.FeatureConfig) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultFeatureConfig()
	}
	return &Pipeline{Params: bundle, Config: cfg}
}

// Run computes the feature matrix. A nil Config uses the defaults. A
// field-set mismatch returns a *telematics.SchemaError before any stage
// runs; a parameter table that does not fit returns a
// *params.ConfigMismatchError from the stage that needed it.
func (p *Pipeline) Run(in telematics.Input) (*Matrix, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = config.DefaultFeatureConfig()
	}

	p.Progress.Report(StageValidate, 1, stageCount)
	if err := telematics.ValidateFields(in.Fields); err != nil {
		return nil, err
	}
	if p.Params == nil {
		return nil, fmt.Errorf("pipeline has no parameter bundle")
	}
	if p.Params.Gyro == nil {
		return nil, &params.ConfigMismatchError{Table: "gyro_pca", Reason: "no gyro projection"}
	}
	tripIDs := telematics.TripIDs(in.Samples)
	samples := telematics.Normalize(in.Samples)

	p.Progress.Report(StageClean, 2, stageCount)
	cleaner := &telematics.Cleaner{
		MaxAccuracy:  cfg.GetMaxAccuracyM(),
		InvalidSpeed: cfg.GetInvalidSpeed(),
	}
	readings := cleaner.Clean(samples)

	p.Progress.Report(StageTransform, 3, stageCount)
	transformer := telematics.NewTransformer(p.Params.Gyro)
	if from := cfg.GetInputSpeedUnit(); from != "" && p.Params.SpeedUnit != "" {
		transformer.SpeedFrom, transformer.SpeedTo = from, p.Params.SpeedUnit
	}
	derived, err := transformer.Transform(readings)
	if err != nil {
		return nil, err
	}
	trips := telematics.GroupTrips(derived)

	p.Progress.Report(StageSummary, 4, stageCount)
	summary, err := p.runFamily(NewSummaryFeaturizer(), trips, cfg.GetWorkers())
	if err != nil {
		return nil, err
	}

	p.Progress.Report(StageOutlier, 5, stageCount)
	outlierF, err := NewOutlierFeaturizer(p.Params.IQR)
	if err != nil {
		return nil, err
	}
	outliers, err := p.runFamily(outlierF, trips, cfg.GetWorkers())
	if err != nil {
		return nil, err
	}

	p.Progress.Report(StageWindow, 6, stageCount)
	windowF, err := NewWindowClusterFeaturizer(
		p.Params.WindowStats, p.Params.Clusters,
		cfg.GetWindowSize(), cfg.GetWindowStride(),
	)
	if err != nil {
		return nil, err
	}
	windows, err := p.runFamily(windowF, trips, cfg.GetWorkers())
	if err != nil {
		return nil, err
	}

	p.Progress.Report(StageAssemble, 7, stageCount)
	m := Assemble(tripIDs, summary, outliers, windows)
	monitoring.Logf("[features] %d samples, %d kept, %d trips, %d columns",
		len(in.Samples), len(readings), len(m.Rows), len(m.Columns))
	return m, nil
}

// runFamily featurizes every trip. With more than one worker, trips are
// processed concurrently; each result lands in its own slot so the table
// is built in trip order either way.
func (p *Pipeline) runFamily(f Featurizer, trips []telematics.Trip, workers int) (*Table, error) {
	rows := make([][]float64, len(trips))

	if workers > 1 {
		var g errgroup.Group
		g.SetLimit(workers)
		for i := range trips {
			g.Go(func() error {
				row, err := f.Featurize(trips[i])
				rows[i] = row
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("%s features: %w", f.Name(), err)
		}
	} else {
		for i, trip := range trips {
			row, err := f.Featurize(trip)
			if err != nil {
				return nil, fmt.Errorf("%s features: %w", f.Name(), err)
			}
			rows[i] = row
		}
	}

	t := NewTable(f.Name(), f.Columns())
	for i, trip := range trips {
		if err := t.Set(trip.ID, rows[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}
