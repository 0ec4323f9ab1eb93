package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trip.features/internal/units"
)

// maxBundleSize bounds the parameter file read from disk.
const maxBundleSize = 8 * 1024 * 1024 // 8MB

// PCAConfig is the serialised form of a fitted PCA model.
type PCAConfig struct {
	Mean              []float64   `json:"mean"`
	Components        [][]float64 `json:"components"`
	ExplainedVariance []float64   `json:"explained_variance,omitempty"`
	Whiten            bool        `json:"whiten,omitempty"`
}

// ClustersConfig is the serialised form of a nearest-centroid model.
type ClustersConfig struct {
	Centroids [][]float64 `json:"centroids"`
}

// BundleFile is the on-disk JSON layout of a parameter bundle.
type BundleFile struct {
	SpeedUnit   string         `json:"speed_unit,omitempty"`
	IQR         IQRTable       `json:"iqr"`
	WindowStats WindowStats    `json:"window_stats"`
	GyroPCA     PCAConfig      `json:"gyro_pca"`
	Clusters    ClustersConfig `json:"clusters"`
}

// Bundle is a validated, ready-to-use set of trained parameters. Gyro and
// Clusters may be replaced with any fitted projection or cluster model.
type Bundle struct {
	SpeedUnit   string
	IQR         IQRTable
	WindowStats WindowStats
	Gyro        GyroProjector
	Clusters    ClusterModel
}

// NewBundle validates a BundleFile and builds its projection and model.
func NewBundle(f BundleFile) (*Bundle, error) {
	if f.SpeedUnit != "" && !units.IsValid(f.SpeedUnit) {
		return nil, fmt.Errorf("invalid speed_unit %q, must be one of: %s", f.SpeedUnit, units.GetValidUnitsString())
	}
	if len(f.GyroPCA.Components) == 0 {
		return nil, &ConfigMismatchError{Table: "gyro_pca", Key: "components", Reason: "no components"}
	}
	var variance float64
	if len(f.GyroPCA.ExplainedVariance) > 0 {
		variance = f.GyroPCA.ExplainedVariance[0]
	}
	gyro, err := NewPCAProjection(f.GyroPCA.Mean, f.GyroPCA.Components[0], variance, f.GyroPCA.Whiten)
	if err != nil {
		return nil, err
	}
	clusters, err := NewCentroidModel(f.Clusters.Centroids)
	if err != nil {
		return nil, err
	}
	return &Bundle{
		SpeedUnit:   f.SpeedUnit,
		IQR:         f.IQR,
		WindowStats: f.WindowStats,
		Gyro:        gyro,
		Clusters:    clusters,
	}, nil
}

// LoadBundle reads a parameter bundle from a JSON file.
func LoadBundle(path string) (*Bundle, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("params file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat params file: %w", err)
	}
	if fileInfo.Size() > maxBundleSize {
		return nil, fmt.Errorf("params file too large: %d bytes (max %d)", fileInfo.Size(), maxBundleSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	var f BundleFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse params JSON: %w", err)
	}

	b, err := NewBundle(f)
	if err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	return b, nil
}
