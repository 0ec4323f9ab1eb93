package params

import "fmt"

// ConfigMismatchError reports a parameter table that does not match what
// the feature computation needs: a missing key or a wrong dimension.
type ConfigMismatchError struct {
	Table  string // "iqr", "window_stats", "gyro_pca", "clusters"
	Key    string // offending key, empty for structural mismatches
	Reason string
}

func (e *ConfigMismatchError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s table mismatch for %q: %s", e.Table, e.Key, e.Reason)
	}
	return fmt.Sprintf("%s table mismatch: %s", e.Table, e.Reason)
}

func missingKey(table, key string) *ConfigMismatchError {
	return &ConfigMismatchError{Table: table, Key: key, Reason: "key not present"}
}
