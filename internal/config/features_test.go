package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFeatureConfig(t *testing.T) {
	cfg := DefaultFeatureConfig()

	if cfg.MaxAccuracyM == nil || *cfg.MaxAccuracyM != 16 {
		t.Errorf("Expected MaxAccuracyM 16, got %v", cfg.MaxAccuracyM)
	}
	if cfg.WindowSize == nil || *cfg.WindowSize != 8 {
		t.Errorf("Expected WindowSize 8, got %v", cfg.WindowSize)
	}
	if cfg.WindowStride == nil || *cfg.WindowStride != 4 {
		t.Errorf("Expected WindowStride 4, got %v", cfg.WindowStride)
	}

	if cfg.GetInvalidSpeed() != -1 {
		t.Errorf("GetInvalidSpeed() = %f, want -1", cfg.GetInvalidSpeed())
	}
	if cfg.GetWorkers() != 1 {
		t.Errorf("GetWorkers() = %d, want 1", cfg.GetWorkers())
	}
	if cfg.GetInputSpeedUnit() != "" {
		t.Errorf("GetInputSpeedUnit() = %q, want empty", cfg.GetInputSpeedUnit())
	}
}

func TestEmptyConfigGetters(t *testing.T) {
	cfg := &FeatureConfig{}
	if cfg.GetMaxAccuracyM() != 16 {
		t.Errorf("GetMaxAccuracyM() = %f, want 16", cfg.GetMaxAccuracyM())
	}
	if cfg.GetWindowSize() != 8 {
		t.Errorf("GetWindowSize() = %d, want 8", cfg.GetWindowSize())
	}
	if cfg.GetWindowStride() != 4 {
		t.Errorf("GetWindowStride() = %d, want 4", cfg.GetWindowStride())
	}
	if cfg.GetWorkers() != 1 {
		t.Errorf("GetWorkers() = %d, want 1", cfg.GetWorkers())
	}
}

func TestLoadFeatureConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "max_accuracy_m": 20,
  "window_stride": 8,
  "workers": 4,
  "input_speed_unit": "kmph"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadFeatureConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetMaxAccuracyM() != 20 {
		t.Errorf("GetMaxAccuracyM() = %f, want 20", cfg.GetMaxAccuracyM())
	}
	if cfg.GetWindowStride() != 8 {
		t.Errorf("GetWindowStride() = %d, want 8", cfg.GetWindowStride())
	}
	if cfg.GetWorkers() != 4 {
		t.Errorf("GetWorkers() = %d, want 4", cfg.GetWorkers())
	}
	if cfg.GetInputSpeedUnit() != "kmph" {
		t.Errorf("GetInputSpeedUnit() = %q, want kmph", cfg.GetInputSpeedUnit())
	}
	// Omitted fields keep defaults
	if cfg.GetWindowSize() != 8 {
		t.Errorf("GetWindowSize() = %d, want 8", cfg.GetWindowSize())
	}
}

func TestLoadFeatureConfigMissing(t *testing.T) {
	_, err := LoadFeatureConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadFeatureConfigWrongExtension(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	if _, err := LoadFeatureConfig(configPath); err == nil {
		t.Error("Expected error for non-.json config, got nil")
	}
}

func TestLoadFeatureConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.json")

	invalidJSON := `{
  "window_size": "eight"
`
	if err := os.WriteFile(configPath, []byte(invalidJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadFeatureConfig(configPath); err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	def := DefaultFeatureConfig()

	if cfg.GetMaxAccuracyM() != def.GetMaxAccuracyM() {
		t.Errorf("defaults file max_accuracy_m = %f, want %f", cfg.GetMaxAccuracyM(), def.GetMaxAccuracyM())
	}
	if cfg.GetWindowSize() != def.GetWindowSize() || cfg.GetWindowStride() != def.GetWindowStride() {
		t.Errorf("defaults file window = %d/%d, want %d/%d",
			cfg.GetWindowSize(), cfg.GetWindowStride(), def.GetWindowSize(), def.GetWindowStride())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *FeatureConfig
		wantErr bool
	}{
		{name: "valid config", cfg: DefaultFeatureConfig(), wantErr: false},
		{name: "empty config is valid", cfg: &FeatureConfig{}, wantErr: false},
		{name: "negative accuracy", cfg: &FeatureConfig{MaxAccuracyM: ptrFloat64(-1)}, wantErr: true},
		{name: "window too small", cfg: &FeatureConfig{WindowSize: ptrInt(1)}, wantErr: true},
		{name: "zero stride", cfg: &FeatureConfig{WindowStride: ptrInt(0)}, wantErr: true},
		{name: "negative workers", cfg: &FeatureConfig{Workers: ptrInt(-2)}, wantErr: true},
		{name: "zero workers", cfg: &FeatureConfig{Workers: ptrInt(0)}, wantErr: false},
		{name: "unknown speed unit", cfg: &FeatureConfig{InputSpeedUnit: ptrString("knots")}, wantErr: true},
		{name: "known speed unit", cfg: &FeatureConfig{InputSpeedUnit: ptrString("mph")}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
