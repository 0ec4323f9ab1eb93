// Package testutil provides shared test utilities and fixtures.
//
// This package centralises trip and parameter builders so feature, store
// and CLI tests describe inputs the same way.
package testutil

import (
	"fmt"
	"testing"

	"github.com/banshee-data/trip.features/internal/params"
	"github.com/banshee-data/trip.features/internal/telematics"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Sample returns a clean sample: good GPS fix, gravity on the z axis and
// no rotation.
func Sample(tripID int64, second, speed float64) telematics.Sample {
	return telematics.Sample{
		TripID:   tripID,
		Accuracy: 4,
		Bearing:  90,
		Second:   second,
		Speed:    speed,
		AccelZ:   9.8,
	}
}

// SteadyTrip returns n clean samples one second apart at a constant speed.
func SteadyTrip(tripID int64, n int, speed float64) []telematics.Sample {
	out := make([]telematics.Sample, n)
	for i := range out {
		out[i] = Sample(tripID, float64(i), speed)
	}
	return out
}

// RampTrip returns n clean samples one second apart whose speed rises by
// step each second.
func RampTrip(tripID int64, n int, step float64) []telematics.Sample {
	out := make([]telematics.Sample, n)
	for i := range out {
		out[i] = Sample(tripID, float64(i), float64(i)*step)
	}
	return out
}

// Concat joins sample slices.
func Concat(parts ...[]telematics.Sample) []telematics.Sample {
	var out []telematics.Sample
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// WindowStatKeys is the window statistic table key set, in vector order.
var WindowStatKeys = []string{
	"Speed_mean", "Speed_median", "Speed_std",
	"acceleration_mean", "acceleration_median", "acceleration_std",
	"gyro_mean", "gyro_median", "gyro_std",
}

// BundleFile returns a parameter bundle description with k clusters whose
// centroids lie on the Speed_mean axis at 0, 10, 20, ... with unit
// standardisation, so a window's cluster is its mean speed rounded to the
// nearest ten. The gyro projection picks gyro_x.
func BundleFile(k int) params.BundleFile {
	iqr := params.IQRTable{
		telematics.FieldSpeed:  {P25: 0, P75: 20},
		telematics.FieldSecond: {P25: 0, P75: 600},
		telematics.FieldAccelX: {P25: -1, P75: 1},
		telematics.FieldAccelY: {P25: -1, P75: 1},
		telematics.FieldAccelZ: {P25: 9, P75: 10.5},
		telematics.FieldGyroX:  {P25: -0.1, P75: 0.1},
		telematics.FieldGyroY:  {P25: -0.1, P75: 0.1},
		telematics.FieldGyroZ:  {P25: -0.1, P75: 0.1},
	}
	ws := params.WindowStats{}
	for _, key := range WindowStatKeys {
		ws[key] = params.MeanStd{Mean: 0, Std: 1}
	}
	centroids := make([][]float64, k)
	for i := range centroids {
		c := make([]float64, len(WindowStatKeys))
		c[0] = float64(i * 10)
		c[1] = float64(i * 10)
		c[3] = 9.8
		c[4] = 9.8
		centroids[i] = c
	}
	return params.BundleFile{
		SpeedUnit:   "mps",
		IQR:         iqr,
		WindowStats: ws,
		GyroPCA: params.PCAConfig{
			Mean:       []float64{0, 0, 0},
			Components: [][]float64{{1, 0, 0}},
		},
		Clusters: params.ClustersConfig{Centroids: centroids},
	}
}

// Bundle builds BundleFile(k), failing the test on error.
func Bundle(t testing.TB, k int) *params.Bundle {
	t.Helper()
	b, err := params.NewBundle(BundleFile(k))
	if err != nil {
		t.Fatalf("failed to build test bundle: %v", err)
	}
	return b
}

// CSV renders samples as a raw table with the canonical header.
func CSV(samples []telematics.Sample) string {
	s := "bookingID,Accuracy,Bearing,acceleration_x,acceleration_y,acceleration_z,gyro_x,gyro_y,gyro_z,second,Speed\n"
	for _, x := range samples {
		s += fmt.Sprintf("%d,%g,%g,%g,%g,%g,%g,%g,%g,%g,%g\n",
			x.TripID, x.Accuracy, x.Bearing, x.AccelX, x.AccelY, x.AccelZ,
			x.GyroX, x.GyroY, x.GyroZ, x.Second, x.Speed)
	}
	return s
}
