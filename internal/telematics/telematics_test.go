package telematics

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateFields(t *testing.T) {
	shuffled := []string{
		"gyro_z", "Speed", "bookingID", "Accuracy", "Bearing", "second",
		"acceleration_x", "acceleration_y", "acceleration_z", "gyro_x", "gyro_y",
	}
	if err := ValidateFields(shuffled); err != nil {
		t.Fatalf("ValidateFields(shuffled) = %v, want nil", err)
	}

	tests := []struct {
		name           string
		fields         []string
		wantMissing    []string
		wantUnexpected []string
	}{
		{
			name:        "missing bearing",
			fields:      without(RequiredFields, FieldBearing),
			wantMissing: []string{FieldBearing},
		},
		{
			name:           "extra field",
			fields:         append(append([]string(nil), RequiredFields...), "altitude"),
			wantUnexpected: []string{"altitude"},
		},
		{
			name:           "duplicate field",
			fields:         append(without(RequiredFields, FieldGyroZ), FieldGyroY),
			wantMissing:    []string{FieldGyroZ},
			wantUnexpected: []string{FieldGyroY},
		},
		{
			name:        "empty",
			fields:      nil,
			wantMissing: RequiredFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFields(tt.fields)
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("ValidateFields() = %v, want *SchemaError", err)
			}
			if diff := cmp.Diff(tt.wantMissing, se.Missing); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantUnexpected, se.Unexpected); diff != "" {
				t.Errorf("Unexpected mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func without(fields []string, drop string) []string {
	var out []string
	for _, f := range fields {
		if f != drop {
			out = append(out, f)
		}
	}
	return out
}

func TestNormalizeStableSort(t *testing.T) {
	in := []Sample{
		{TripID: 2, Second: 1, Speed: 1},
		{TripID: 1, Second: 5, Speed: 2},
		{TripID: 2, Second: 0, Speed: 3},
		{TripID: 1, Second: 5, Speed: 4}, // tie with the second sample
		{TripID: 1, Second: 2, Speed: 5},
	}
	got := Normalize(in)

	wantSpeeds := []float64{5, 2, 4, 3, 1}
	for i, s := range got {
		if s.Speed != wantSpeeds[i] {
			t.Errorf("position %d: speed %v, want %v", i, s.Speed, wantSpeeds[i])
		}
	}
	if in[0].TripID != 2 {
		t.Error("Normalize modified its input")
	}
}

func TestTripIDsFirstAppearance(t *testing.T) {
	in := []Sample{{TripID: 9}, {TripID: 3}, {TripID: 9}, {TripID: 1}, {TripID: 3}}
	if diff := cmp.Diff([]int64{9, 3, 1}, TripIDs(in)); diff != "" {
		t.Errorf("TripIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestCleaner(t *testing.T) {
	c := NewCleaner()
	in := []Sample{
		{TripID: 1, Accuracy: 16, Speed: 3},    // boundary accuracy is kept
		{TripID: 1, Accuracy: 16.01, Speed: 3}, // poor fix
		{TripID: 1, Accuracy: 3, Speed: -1},    // invalid speed
		{TripID: 1, Accuracy: 3, Speed: 0, GyroY: 0.5},
	}
	got := c.Clean(in)
	if len(got) != 2 {
		t.Fatalf("Clean() kept %d samples, want 2", len(got))
	}
	if got[1].GyroY != 0.5 {
		t.Errorf("Clean() lost gyro values: %+v", got[1])
	}
}

type fixedProjector struct{}

func (fixedProjector) Project(gx, gy, gz float64) (float64, error) { return gx + 2*gy + 3*gz, nil }

type failingProjector struct{}

func (failingProjector) Project(gx, gy, gz float64) (float64, error) {
	return 0, errors.New("boom")
}

func TestTransform(t *testing.T) {
	tr := NewTransformer(fixedProjector{})
	got, err := tr.Transform([]Reading{
		{TripID: 1, AccelX: 3, AccelY: 4, GyroX: 1, GyroY: 1, GyroZ: 1, Speed: 36},
		{TripID: 1, AccelX: -1, AccelY: -2, AccelZ: -2},
	})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got[0].Acceleration != 5 || got[1].Acceleration != 3 {
		t.Errorf("acceleration magnitudes = %v, %v; want 5, 3", got[0].Acceleration, got[1].Acceleration)
	}
	if got[0].Gyro != 6 {
		t.Errorf("gyro component = %v, want 6", got[0].Gyro)
	}
	if got[0].Speed != 36 {
		t.Errorf("speed converted without units configured: %v", got[0].Speed)
	}

	empty, err := tr.Transform(nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("Transform(nil) = %v, %v; want empty, nil", empty, err)
	}
}

func TestTransformSpeedUnits(t *testing.T) {
	tr := NewTransformer(fixedProjector{})
	tr.SpeedFrom, tr.SpeedTo = "kmph", "mps"
	got, err := tr.Transform([]Reading{{TripID: 1, Speed: 36}})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if math.Abs(got[0].Speed-10) > 1e-9 {
		t.Errorf("converted speed = %v, want 10", got[0].Speed)
	}
}

func TestTransformProjectionError(t *testing.T) {
	_, err := NewTransformer(failingProjector{}).Transform([]Reading{{TripID: 7}})
	if err == nil || !strings.Contains(err.Error(), "trip 7") {
		t.Errorf("Transform() error = %v, want error naming trip 7", err)
	}
}

func TestGroupTrips(t *testing.T) {
	d := []Derived{
		{Reading: Reading{TripID: 1}},
		{Reading: Reading{TripID: 1}},
		{Reading: Reading{TripID: 4}},
		{Reading: Reading{TripID: 5}},
		{Reading: Reading{TripID: 5}},
		{Reading: Reading{TripID: 5}},
	}
	trips := GroupTrips(d)
	if len(trips) != 3 {
		t.Fatalf("GroupTrips() = %d trips, want 3", len(trips))
	}
	wantLens := map[int64]int{1: 2, 4: 1, 5: 3}
	for _, tr := range trips {
		if tr.Len() != wantLens[tr.ID] {
			t.Errorf("trip %d has %d samples, want %d", tr.ID, tr.Len(), wantLens[tr.ID])
		}
	}
	if GroupTrips(nil) != nil {
		t.Error("GroupTrips(nil) should be empty")
	}
}

func TestReadCSV(t *testing.T) {
	body := "second,Speed,bookingID,Accuracy,Bearing,acceleration_x,acceleration_y,acceleration_z,gyro_x,gyro_y,gyro_z\n" +
		"1,12.5,1202590843006.0,3,180,0.1,0.2,9.7,0.01,0.02,0.03\n" +
		"0,-1,7,20,0,0,0,0,0,0,0\n"
	in, err := ReadCSV(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	want := []Sample{
		{TripID: 1202590843006, Accuracy: 3, Bearing: 180, Second: 1, Speed: 12.5,
			AccelX: 0.1, AccelY: 0.2, AccelZ: 9.7, GyroX: 0.01, GyroY: 0.02, GyroZ: 0.03},
		{TripID: 7, Accuracy: 20, Second: 0, Speed: -1},
	}
	if diff := cmp.Diff(want, in.Samples); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
	if err := ValidateFields(in.Fields); err != nil {
		t.Errorf("returned fields do not validate: %v", err)
	}
}

func TestReadCSVSchemaError(t *testing.T) {
	body := "bookingID,Accuracy,second,Speed,acceleration_x,acceleration_y,acceleration_z,gyro_x,gyro_y,gyro_z\n" +
		"not-a-number,x,x,x,x,x,x,x,x,x\n"
	in, err := ReadCSV(strings.NewReader(body))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("ReadCSV() error = %v, want *SchemaError", err)
	}
	if len(in.Samples) != 0 {
		t.Errorf("ReadCSV() returned %d samples alongside a schema error", len(in.Samples))
	}
	if !strings.Contains(err.Error(), "Bearing") {
		t.Errorf("error %q should name the missing field", err)
	}
}

func TestReadCSVBadValue(t *testing.T) {
	body := strings.Join(RequiredFields, ",") + "\n" +
		"1.5,3,0,0,0,0,0,0,0,0,0\n"
	if _, err := ReadCSV(strings.NewReader(body)); err == nil {
		t.Error("ReadCSV() accepted a fractional trip id")
	}
}

func TestReadCSVNonFiniteOrdering(t *testing.T) {
	header := strings.Join(RequiredFields, ",") + "\n"
	tests := []struct {
		name string
		row  string
	}{
		{"nan second", "1,3,0,NaN,10,0,0,0,0,0,0\n"},
		{"inf second", "1,3,0,+Inf,10,0,0,0,0,0,0\n"},
		{"nan speed", "1,3,0,2,nan,0,0,0,0,0,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := ReadCSV(strings.NewReader(header + "1,3,0,0,10,0,0,0,0,0,0\n" + tt.row))
			if err == nil {
				t.Fatalf("ReadCSV() accepted %q", tt.row)
			}
			if !strings.Contains(err.Error(), "line 3") {
				t.Errorf("error %q should name the line", err)
			}
			if len(in.Samples) != 0 {
				t.Errorf("ReadCSV() returned %d samples alongside an error", len(in.Samples))
			}
		})
	}
}

func TestCheckOrdering(t *testing.T) {
	if err := CheckOrdering(Sample{TripID: 1, Second: 3, Speed: -1}); err != nil {
		t.Errorf("CheckOrdering() on a finite sample = %v", err)
	}
	err := CheckOrdering(Sample{TripID: 9, Second: math.NaN()})
	if err == nil || !strings.Contains(err.Error(), FieldSecond) {
		t.Errorf("CheckOrdering() with NaN second = %v, want an error naming %s", err, FieldSecond)
	}
}
