package telematics

// Default cleaning thresholds.
const (
	DefaultMaxAccuracy  = 16.0 // metres; worse fixes are dropped
	DefaultInvalidSpeed = -1.0 // sentinel speed for an invalid reading
)

// Cleaner drops inaccurate and invalid samples.
type Cleaner struct {
	MaxAccuracy  float64
	InvalidSpeed float64
}

// NewCleaner returns a Cleaner with the default thresholds.
func NewCleaner() *Cleaner {
	return &Cleaner{
		MaxAccuracy:  DefaultMaxAccuracy,
		InvalidSpeed: DefaultInvalidSpeed,
	}
}

// Keep reports whether a sample survives cleaning.
func (c *Cleaner) Keep(s Sample) bool {
	return s.Accuracy <= c.MaxAccuracy && s.Speed != c.InvalidSpeed
}

// Clean returns the surviving samples as readings, preserving order.
func (c *Cleaner) Clean(samples []Sample) []Reading {
	out := make([]Reading, 0, len(samples))
	for _, s := range samples {
		if !c.Keep(s) {
			continue
		}
		out = append(out, Reading{
			TripID: s.TripID,
			Second: s.Second,
			Speed:  s.Speed,
			AccelX: s.AccelX,
			AccelY: s.AccelY,
			AccelZ: s.AccelZ,
			GyroX:  s.GyroX,
			GyroY:  s.GyroY,
			GyroZ:  s.GyroZ,
		})
	}
	return out
}
