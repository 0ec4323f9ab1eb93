package params

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ClusterModel assigns a standardised window vector to a behaviour cluster.
// Implementations must be deterministic and safe for concurrent use.
type ClusterModel interface {
	// Assign returns a cluster ID in [0, NumClusters()).
	Assign(vec []float64) (int, error)
	NumClusters() int
	Dims() int
}

// CentroidModel is a nearest-centroid (k-means style) cluster model.
type CentroidModel struct {
	centroids [][]float64
	dims      int
}

// NewCentroidModel validates and copies the centroids.
func NewCentroidModel(centroids [][]float64) (*CentroidModel, error) {
	if len(centroids) == 0 {
		return nil, &ConfigMismatchError{Table: "clusters", Reason: "no centroids"}
	}
	dims := len(centroids[0])
	cp := make([][]float64, len(centroids))
	for i, c := range centroids {
		if len(c) != dims || dims == 0 {
			return nil, &ConfigMismatchError{
				Table:  "clusters",
				Key:    fmt.Sprint(i),
				Reason: fmt.Sprintf("centroid has %d values, want %d", len(c), dims),
			}
		}
		cp[i] = append([]float64(nil), c...)
	}
	return &CentroidModel{centroids: cp, dims: dims}, nil
}

// NumClusters returns K.
func (m *CentroidModel) NumClusters() int { return len(m.centroids) }

// Dims returns the centroid dimension.
func (m *CentroidModel) Dims() int { return m.dims }

// Centroid returns a copy of centroid i.
func (m *CentroidModel) Centroid(i int) []float64 {
	return append([]float64(nil), m.centroids[i]...)
}

// Assign returns the nearest centroid by Euclidean distance. Ties go to
// the lowest cluster ID.
func (m *CentroidModel) Assign(vec []float64) (int, error) {
	if len(vec) != m.dims {
		return 0, &ConfigMismatchError{
			Table:  "clusters",
			Reason: fmt.Sprintf("window vector has %d values, centroids have %d", len(vec), m.dims),
		}
	}
	best := 0
	bestDist := floats.Distance(m.centroids[0], vec, 2)
	for i := 1; i < len(m.centroids); i++ {
		if d := floats.Distance(m.centroids[i], vec, 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}
