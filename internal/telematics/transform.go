package telematics

import (
	"fmt"
	"math"

	"github.com/banshee-data/trip.features/internal/units"
)

// Projector maps a gyroscope 3-vector to its first principal component.
type Projector interface {
	Project(gx, gy, gz float64) (float64, error)
}

// Transformer derives the scalar acceleration magnitude and gyro component.
type Transformer struct {
	Gyro Projector

	// SpeedFrom and SpeedTo convert input speeds into the unit the
	// parameter tables were trained in. Empty means no conversion.
	SpeedFrom string
	SpeedTo   string
}

// NewTransformer returns a Transformer using the given projection.
func NewTransformer(gyro Projector) *Transformer {
	return &Transformer{Gyro: gyro}
}

// AccelerationMagnitude returns sqrt(ax²+ay²+az²).
func AccelerationMagnitude(ax, ay, az float64) float64 {
	return math.Sqrt(ax*ax + ay*ay + az*az)
}

// Transform derives scalars for every reading. An empty input yields an
// empty result.
func (t *Transformer) Transform(readings []Reading) ([]Derived, error) {
	out := make([]Derived, len(readings))
	for i, r := range readings {
		g, err := t.Gyro.Project(r.GyroX, r.GyroY, r.GyroZ)
		if err != nil {
			return nil, fmt.Errorf("project gyro for trip %d: %w", r.TripID, err)
		}
		if t.SpeedFrom != "" && t.SpeedTo != "" {
			r.Speed = units.Convert(r.Speed, t.SpeedFrom, t.SpeedTo)
		}
		out[i] = Derived{
			Reading:      r,
			Acceleration: AccelerationMagnitude(r.AccelX, r.AccelY, r.AccelZ),
			Gyro:         g,
		}
	}
	return out, nil
}

// GroupTrips splits trip-ordered derived samples into trips. Input must
// already be sorted by trip (see Normalize).
func GroupTrips(derived []Derived) []Trip {
	var trips []Trip
	start := 0
	for i := 1; i <= len(derived); i++ {
		if i < len(derived) && derived[i].TripID == derived[start].TripID {
			continue
		}
		if i > start {
			trips = append(trips, Trip{ID: derived[start].TripID, Samples: derived[start:i:i]})
		}
		start = i
	}
	return trips
}
