// Package units provides shared constants and conversion for speed units
package units

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, mph, kmph, kph"
}

// toMPS is the factor converting one unit of each speed to m/s.
var toMPS = map[string]float64{
	MPS:  1,
	MPH:  1 / 2.2369362920544,
	KMPH: 1 / 3.6,
	KPH:  1 / 3.6,
}

// ToMPS converts a speed in the given units to meters per second.
// Unknown units are treated as m/s.
func ToMPS(speed float64, fromUnits string) float64 {
	if f, ok := toMPS[fromUnits]; ok {
		return speed * f
	}
	return speed
}

// ConvertSpeed converts a speed from meters per second to the target units
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	if f, ok := toMPS[targetUnits]; ok {
		return speedMPS / f
	}
	return speedMPS
}

// Convert converts a speed between any two units.
func Convert(speed float64, fromUnits, toUnits string) float64 {
	if fromUnits == toUnits {
		return speed
	}
	return ConvertSpeed(ToMPS(speed, fromUnits), toUnits)
}
