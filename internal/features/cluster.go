package features

import (
	"fmt"
	"math"
	"strconv"

	"github.com/banshee-data/trip.features/internal/params"
	"github.com/banshee-data/trip.features/internal/telematics"
)

// windowSignals is the signal order of the window vector.
var windowSignals = []signal{
	{SignalSpeed, func(d telematics.Derived) float64 { return d.Speed }},
	{SignalAcceleration, func(d telematics.Derived) float64 { return d.Acceleration }},
	{SignalGyro, func(d telematics.Derived) float64 { return d.Gyro }},
}

var windowStats = []string{StatMean, StatMedian, StatStd}

// WindowStatColumns returns the window statistic names in vector order:
// Speed_mean, Speed_median, Speed_std, acceleration_mean, ... gyro_std.
func WindowStatColumns() []string {
	cols := make([]string, 0, len(windowSignals)*len(windowStats))
	for _, sig := range windowSignals {
		for _, st := range windowStats {
			cols = append(cols, sig.name+"_"+st)
		}
	}
	return cols
}

// WindowClusterFeaturizer counts, per trip, the sliding windows assigned to
// each behaviour cluster.
type WindowClusterFeaturizer struct {
	size    int
	stride  int
	scalers []params.MeanStd
	model   params.ClusterModel
	columns []string
}

// NewWindowClusterFeaturizer resolves the standardisation table and checks
// the model against the window vector. Any mismatch is a
// *params.ConfigMismatchError.
func NewWindowClusterFeaturizer(stats params.WindowStats, model params.ClusterModel, size, stride int) (*WindowClusterFeaturizer, error) {
	if size < 2 || stride < 1 {
		return nil, fmt.Errorf("invalid window geometry size=%d stride=%d", size, stride)
	}
	if model == nil {
		return nil, &params.ConfigMismatchError{Table: "clusters", Reason: "no cluster model"}
	}
	statCols := WindowStatColumns()
	if err := stats.Require(statCols); err != nil {
		return nil, err
	}
	scalers := make([]params.MeanStd, len(statCols))
	for i, c := range statCols {
		scalers[i] = stats[c]
	}
	if model.Dims() != len(statCols) {
		return nil, &params.ConfigMismatchError{
			Table:  "clusters",
			Reason: fmt.Sprintf("model expects %d values, window vector has %d", model.Dims(), len(statCols)),
		}
	}
	k := model.NumClusters()
	if k <= 0 {
		return nil, &params.ConfigMismatchError{Table: "clusters", Reason: "no clusters"}
	}
	cols := make([]string, k)
	for i := range cols {
		cols[i] = strconv.Itoa(i)
	}
	return &WindowClusterFeaturizer{
		size:    size,
		stride:  stride,
		scalers: scalers,
		model:   model,
		columns: cols,
	}, nil
}

// Name returns the family name.
func (f *WindowClusterFeaturizer) Name() string { return "window" }

// Columns returns the cluster IDs "0" … "K-1".
func (f *WindowClusterFeaturizer) Columns() []string { return append([]string(nil), f.columns...) }

// Featurize slides over the trip, one window at a time, and returns the
// occurrence count of every cluster. Only one window vector is live at a
// time.
func (f *WindowClusterFeaturizer) Featurize(trip telematics.Trip) ([]float64, error) {
	counts := make([]float64, len(f.columns))
	if trip.Len() < f.size {
		return counts, nil
	}

	series := make([][]float64, len(windowSignals))
	for i, sig := range windowSignals {
		series[i] = trip.Column(sig.value)
	}
	vec := make([]float64, len(f.scalers))
	scratch := make([]float64, 0, f.size)

	for start := range WindowStarts(trip.Len(), f.size, f.stride) {
		if !f.windowVector(series, start, vec, scratch) {
			continue
		}
		id, err := f.model.Assign(vec)
		if err != nil {
			return nil, fmt.Errorf("assign window at %d of trip %d: %w", start, trip.ID, err)
		}
		if id < 0 || id >= len(counts) {
			return nil, &params.ConfigMismatchError{
				Table:  "clusters",
				Key:    strconv.Itoa(id),
				Reason: fmt.Sprintf("cluster ID outside [0, %d)", len(counts)),
			}
		}
		counts[id]++
	}
	return counts, nil
}

// windowVector fills vec with the standardised statistics of the window at
// start. It reports false if any statistic is undefined.
func (f *WindowClusterFeaturizer) windowVector(series [][]float64, start int, vec, scratch []float64) bool {
	j := 0
	for _, s := range series {
		w := s[start : start+f.size]
		raw := [3]float64{mean(w), median(w, scratch), stdDev(w)}
		for _, v := range raw {
			if math.IsNaN(v) {
				return false
			}
			vec[j] = f.scalers[j].Standardize(v)
			j++
		}
	}
	return true
}
