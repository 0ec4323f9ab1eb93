package params

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// GyroDims is the dimension of the gyroscope vector.
const GyroDims = 3

// GyroProjector reduces a gyroscope vector to one scalar. Implementations
// must be safe for concurrent use.
type GyroProjector interface {
	Project(gx, gy, gz float64) (float64, error)
}

// PCAProjection applies a fitted first principal component:
// (x - mean) · component, optionally whitened by sqrt(explained variance).
type PCAProjection struct {
	mean      *mat.VecDense
	component *mat.VecDense
	scale     float64
}

// NewPCAProjection builds a projection from fitted PCA parameters.
// variance is only consulted when whiten is set.
func NewPCAProjection(mean, component []float64, variance float64, whiten bool) (*PCAProjection, error) {
	if len(mean) != GyroDims {
		return nil, &ConfigMismatchError{Table: "gyro_pca", Key: "mean", Reason: "expected 3 values"}
	}
	if len(component) != GyroDims {
		return nil, &ConfigMismatchError{Table: "gyro_pca", Key: "components", Reason: "expected 3 values in the first component"}
	}
	scale := 1.0
	if whiten {
		if variance <= 0 {
			return nil, &ConfigMismatchError{Table: "gyro_pca", Key: "explained_variance", Reason: "whitening needs a positive variance"}
		}
		scale = 1 / math.Sqrt(variance)
	}
	return &PCAProjection{
		mean:      mat.NewVecDense(GyroDims, append([]float64(nil), mean...)),
		component: mat.NewVecDense(GyroDims, append([]float64(nil), component...)),
		scale:     scale,
	}, nil
}

// Project maps (gx, gy, gz) to the first principal component score.
func (p *PCAProjection) Project(gx, gy, gz float64) (float64, error) {
	x := mat.NewVecDense(GyroDims, []float64{gx, gy, gz})
	x.SubVec(x, p.mean)
	return mat.Dot(p.component, x) * p.scale, nil
}
