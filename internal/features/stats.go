package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistic names used in column names.
const (
	StatMean       = "mean"
	StatMedian     = "median"
	StatStd        = "std"
	StatDispersion = "dispersion"
)

// mean returns the arithmetic mean, 0 for no values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// median returns the middle value, averaging the two middle values for an
// even count. scratch is reused to avoid an allocation per call.
func median(values, scratch []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	s := append(scratch[:0], values...)
	sort.Float64s(s)
	if n%2 == 0 {
		return (s[n/2-1] + s[n/2]) / 2
	}
	return s[n/2]
}

// stdDev returns the sample (N-1) standard deviation. Fewer than two
// values, or all-identical values, give exactly 0.
func stdDev(values []float64) float64 {
	if len(values) < 2 || dispersion(values) == 0 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// dispersion returns max - min, 0 for no values.
func dispersion(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Max(values) - floats.Min(values)
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
