package params

import (
	"encoding/json"
	"fmt"
)

// Bounds is a (25th, 75th) percentile pair. JSON form: [p25, p75].
type Bounds struct {
	P25 float64
	P75 float64
}

// UnmarshalJSON decodes a two-element array.
func (b *Bounds) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("percentile bounds need 2 values, got %d", len(pair))
	}
	b.P25, b.P75 = pair[0], pair[1]
	return nil
}

// MarshalJSON encodes the bounds as [p25, p75].
func (b Bounds) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{b.P25, b.P75})
}

// IQRTable maps a telematics column to its training percentiles.
type IQRTable map[string]Bounds

// Lookup returns the bounds for col.
func (t IQRTable) Lookup(col string) (Bounds, error) {
	b, ok := t[col]
	if !ok {
		return Bounds{}, missingKey("iqr", col)
	}
	return b, nil
}

// MeanStd is a (mean, standard deviation) pair. JSON form: [mean, std].
type MeanStd struct {
	Mean float64
	Std  float64
}

// UnmarshalJSON decodes a two-element array.
func (m *MeanStd) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("mean/std pair needs 2 values, got %d", len(pair))
	}
	m.Mean, m.Std = pair[0], pair[1]
	return nil
}

// MarshalJSON encodes the pair as [mean, std].
func (m MeanStd) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{m.Mean, m.Std})
}

// Standardize returns (v - mean) / std. A zero std maps every value to 0
// so that constant training columns never produce Inf or NaN.
func (m MeanStd) Standardize(v float64) float64 {
	if m.Std == 0 {
		return 0
	}
	return (v - m.Mean) / m.Std
}

// WindowStats maps a window statistic column to its training mean and std.
type WindowStats map[string]MeanStd

// Lookup returns the pair for col.
func (w WindowStats) Lookup(col string) (MeanStd, error) {
	m, ok := w[col]
	if !ok {
		return MeanStd{}, missingKey("window_stats", col)
	}
	return m, nil
}

// Require checks that every column in cols is present.
func (w WindowStats) Require(cols []string) error {
	for _, c := range cols {
		if _, err := w.Lookup(c); err != nil {
			return err
		}
	}
	return nil
}
