package features

import "github.com/banshee-data/trip.features/internal/telematics"

// Featurizer computes one feature family for a single trip. Featurize must
// be safe to call concurrently for different trips.
type Featurizer interface {
	Name() string
	Columns() []string
	Featurize(trip telematics.Trip) ([]float64, error)
}
