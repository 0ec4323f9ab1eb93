package features

import (
	"github.com/banshee-data/trip.features/internal/params"
	"github.com/banshee-data/trip.features/internal/telematics"
)

type outlierRule struct {
	column   string
	value    func(telematics.Derived) float64
	twoSided bool
	bounds   params.Bounds
}

// Speed and elapsed time only have a meaningful upper bound; the six axis
// columns flag deviations in either direction.
var outlierRules = []outlierRule{
	{column: telematics.FieldSpeed, value: func(d telematics.Derived) float64 { return d.Speed }},
	{column: telematics.FieldSecond, value: func(d telematics.Derived) float64 { return d.Second }},
	{column: telematics.FieldAccelX, value: func(d telematics.Derived) float64 { return d.AccelX }, twoSided: true},
	{column: telematics.FieldAccelY, value: func(d telematics.Derived) float64 { return d.AccelY }, twoSided: true},
	{column: telematics.FieldAccelZ, value: func(d telematics.Derived) float64 { return d.AccelZ }, twoSided: true},
	{column: telematics.FieldGyroX, value: func(d telematics.Derived) float64 { return d.GyroX }, twoSided: true},
	{column: telematics.FieldGyroY, value: func(d telematics.Derived) float64 { return d.GyroY }, twoSided: true},
	{column: telematics.FieldGyroZ, value: func(d telematics.Derived) float64 { return d.GyroZ }, twoSided: true},
}

// OutlierColumns returns the IQR table keys the outlier family needs.
func OutlierColumns() []string {
	cols := make([]string, len(outlierRules))
	for i, r := range outlierRules {
		cols[i] = r.column
	}
	return cols
}

// OutlierFeaturizer counts per-trip threshold violations.
type OutlierFeaturizer struct {
	rules []outlierRule
}

// NewOutlierFeaturizer resolves every threshold up front. A missing table
// key is a *params.ConfigMismatchError.
func NewOutlierFeaturizer(iqr params.IQRTable) (*OutlierFeaturizer, error) {
	rules := make([]outlierRule, len(outlierRules))
	for i, r := range outlierRules {
		b, err := iqr.Lookup(r.column)
		if err != nil {
			return nil, err
		}
		r.bounds = b
		rules[i] = r
	}
	return &OutlierFeaturizer{rules: rules}, nil
}

// Name returns the family name.
func (f *OutlierFeaturizer) Name() string { return "outlier" }

// Columns returns over_{column} for every monitored column.
func (f *OutlierFeaturizer) Columns() []string {
	cols := make([]string, len(f.rules))
	for i, r := range f.rules {
		cols[i] = "over_" + r.column
	}
	return cols
}

// Featurize counts violations. Comparisons are strict.
func (f *OutlierFeaturizer) Featurize(trip telematics.Trip) ([]float64, error) {
	out := make([]float64, len(f.rules))
	for i, r := range f.rules {
		var n int
		for _, s := range trip.Samples {
			v := r.value(s)
			if v > r.bounds.P75 || (r.twoSided && v < r.bounds.P25) {
				n++
			}
		}
		out[i] = float64(n)
	}
	return out, nil
}
