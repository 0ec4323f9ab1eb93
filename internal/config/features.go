package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/trip.features/internal/units"
)

// DefaultConfigPath is the path to the canonical feature defaults file.
const DefaultConfigPath = "config/features.defaults.json"

// FeatureConfig holds the tunable parameters of feature extraction.
// Nil fields fall back to the defaults returned by the Get* methods.
type FeatureConfig struct {
	// Cleaning
	MaxAccuracyM *float64 `json:"max_accuracy_m,omitempty"`
	InvalidSpeed *float64 `json:"invalid_speed,omitempty"`

	// Sliding windows
	WindowSize   *int `json:"window_size,omitempty"`
	WindowStride *int `json:"window_stride,omitempty"`

	// Execution
	Workers *int `json:"workers,omitempty"`

	// Unit of the Speed column in the input. Empty means the input is
	// already in the parameter bundle's unit.
	InputSpeedUnit *string `json:"input_speed_unit,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// DefaultFeatureConfig returns a FeatureConfig with every field set to its default.
func DefaultFeatureConfig() *FeatureConfig {
	return &FeatureConfig{
		MaxAccuracyM:   ptrFloat64(16),
		InvalidSpeed:   ptrFloat64(-1),
		WindowSize:     ptrInt(8),
		WindowStride:   ptrInt(4),
		Workers:        ptrInt(1),
		InputSpeedUnit: ptrString(""),
	}
}

// LoadFeatureConfig loads a FeatureConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadFeatureConfig(path string) (*FeatureConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &FeatureConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *FeatureConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // from cmd/<tool>/ or deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadFeatureConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *FeatureConfig) Validate() error {
	if c.MaxAccuracyM != nil && *c.MaxAccuracyM < 0 {
		return fmt.Errorf("max_accuracy_m must be non-negative, got %f", *c.MaxAccuracyM)
	}
	if c.WindowSize != nil && *c.WindowSize < 2 {
		return fmt.Errorf("window_size must be at least 2, got %d", *c.WindowSize)
	}
	if c.WindowStride != nil && *c.WindowStride < 1 {
		return fmt.Errorf("window_stride must be positive, got %d", *c.WindowStride)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.InputSpeedUnit != nil && *c.InputSpeedUnit != "" && !units.IsValid(*c.InputSpeedUnit) {
		return fmt.Errorf("invalid input_speed_unit '%s', must be one of: %s", *c.InputSpeedUnit, units.GetValidUnitsString())
	}
	return nil
}

// GetMaxAccuracyM returns the max_accuracy_m value or the default.
func (c *FeatureConfig) GetMaxAccuracyM() float64 {
	if c.MaxAccuracyM == nil {
		return 16
	}
	return *c.MaxAccuracyM
}

// GetInvalidSpeed returns the invalid_speed sentinel or the default.
func (c *FeatureConfig) GetInvalidSpeed() float64 {
	if c.InvalidSpeed == nil {
		return -1
	}
	return *c.InvalidSpeed
}

// GetWindowSize returns the window_size value or the default.
func (c *FeatureConfig) GetWindowSize() int {
	if c.WindowSize == nil {
		return 8
	}
	return *c.WindowSize
}

// GetWindowStride returns the window_stride value or the default.
func (c *FeatureConfig) GetWindowStride() int {
	if c.WindowStride == nil {
		return 4
	}
	return *c.WindowStride
}

// GetWorkers returns the workers value or the default. 0 and 1 both run
// the pipeline on the calling goroutine.
func (c *FeatureConfig) GetWorkers() int {
	if c.Workers == nil {
		return 1
	}
	return *c.Workers
}

// GetInputSpeedUnit returns the input_speed_unit value or the default.
func (c *FeatureConfig) GetInputSpeedUnit() string {
	if c.InputSpeedUnit == nil {
		return ""
	}
	return *c.InputSpeedUnit
}
