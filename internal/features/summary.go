package features

import "github.com/banshee-data/trip.features/internal/telematics"

// Signal names used in summary and window column names.
const (
	SignalAcceleration = "acceleration"
	SignalGyro         = "gyro"
	SignalSpeed        = telematics.FieldSpeed
	SignalSecond       = telematics.FieldSecond
)

type signal struct {
	name  string
	value func(telematics.Derived) float64
}

var summarySignals = []signal{
	{SignalAcceleration, func(d telematics.Derived) float64 { return d.Acceleration }},
	{SignalGyro, func(d telematics.Derived) float64 { return d.Gyro }},
	{SignalSpeed, func(d telematics.Derived) float64 { return d.Speed }},
	{SignalSecond, func(d telematics.Derived) float64 { return d.Second }},
}

var summaryStats = []string{StatMean, StatMedian, StatStd, StatDispersion}

// SummaryFeaturizer computes per-trip statistical aggregates.
type SummaryFeaturizer struct {
	columns []string
}

// NewSummaryFeaturizer returns the summary family featurizer.
func NewSummaryFeaturizer() *SummaryFeaturizer {
	cols := make([]string, 0, len(summarySignals)*len(summaryStats))
	for _, sig := range summarySignals {
		for _, st := range summaryStats {
			cols = append(cols, sig.name+"_"+st)
		}
	}
	return &SummaryFeaturizer{columns: cols}
}

// Name returns the family name.
func (f *SummaryFeaturizer) Name() string { return "summary" }

// Columns returns {signal}_{statistic} for every signal and statistic.
func (f *SummaryFeaturizer) Columns() []string { return append([]string(nil), f.columns...) }

// Featurize computes the aggregates. Undefined statistics are 0.
func (f *SummaryFeaturizer) Featurize(trip telematics.Trip) ([]float64, error) {
	out := make([]float64, 0, len(f.columns))
	scratch := make([]float64, 0, trip.Len())
	for _, sig := range summarySignals {
		vals := trip.Column(sig.value)
		out = append(out,
			finite(mean(vals)),
			finite(median(vals, scratch)),
			finite(stdDev(vals)),
			finite(dispersion(vals)),
		)
	}
	return out, nil
}
