package telematics

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
)

// SchemaError reports an input whose field set differs from RequiredFields.
type SchemaError struct {
	Missing    []string
	Unexpected []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, "unexpected "+strings.Join(e.Unexpected, ", "))
	}
	return fmt.Sprintf("input fields mismatched (%s); expected %v", strings.Join(parts, "; "), RequiredFields)
}

// ValidateFields checks that fields is exactly the required field set,
// ignoring order. Duplicate names are a mismatch.
func ValidateFields(fields []string) error {
	got := slices.Clone(fields)
	want := slices.Clone(RequiredFields)
	sort.Strings(got)
	sort.Strings(want)
	if slices.Equal(got, want) {
		return nil
	}

	seen := make(map[string]int, len(fields))
	for _, f := range fields {
		seen[f]++
	}
	e := &SchemaError{}
	for _, f := range RequiredFields {
		if seen[f] == 0 {
			e.Missing = append(e.Missing, f)
		}
		if seen[f] > 1 {
			e.Unexpected = append(e.Unexpected, f)
		}
		delete(seen, f)
	}
	for f := range seen {
		e.Unexpected = append(e.Unexpected, f)
	}
	sort.Strings(e.Unexpected)
	return e
}

// CheckOrdering rejects samples whose second or Speed is NaN or infinite.
// Sorting and the speed sentinel comparison are undefined for them.
func CheckOrdering(s Sample) error {
	for _, f := range []struct {
		name string
		v    float64
	}{{FieldSecond, s.Second}, {FieldSpeed, s.Speed}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("trip %d: %s is not finite: %v", s.TripID, f.name, f.v)
		}
	}
	return nil
}

// Normalize returns a copy of samples sorted by (trip, second), keeping
// the original order of ties.
func Normalize(samples []Sample) []Sample {
	out := slices.Clone(samples)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TripID != out[j].TripID {
			return out[i].TripID < out[j].TripID
		}
		return out[i].Second < out[j].Second
	})
	return out
}

// TripIDs returns the distinct trip identifiers in order of first appearance.
func TripIDs(samples []Sample) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, s := range samples {
		if _, ok := seen[s.TripID]; ok {
			continue
		}
		seen[s.TripID] = struct{}{}
		ids = append(ids, s.TripID)
	}
	return ids
}
