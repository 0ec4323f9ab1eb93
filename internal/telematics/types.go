package telematics

// Field names of the raw telematics table.
const (
	FieldTripID   = "bookingID"
	FieldAccuracy = "Accuracy"
	FieldBearing  = "Bearing"
	FieldSecond   = "second"
	FieldSpeed    = "Speed"
	FieldAccelX   = "acceleration_x"
	FieldAccelY   = "acceleration_y"
	FieldAccelZ   = "acceleration_z"
	FieldGyroX    = "gyro_x"
	FieldGyroY    = "gyro_y"
	FieldGyroZ    = "gyro_z"
)

// RequiredFields is the exact field set of a raw telematics table, in the
// canonical column order.
var RequiredFields = []string{
	FieldTripID, FieldAccuracy, FieldBearing, FieldSecond, FieldSpeed,
	FieldAccelX, FieldAccelY, FieldAccelZ,
	FieldGyroX, FieldGyroY, FieldGyroZ,
}

// Sample is one raw sensor reading.
type Sample struct {
	TripID   int64
	Accuracy float64 // GPS accuracy (m)
	Bearing  float64 // degrees, unused after cleaning
	Second   float64 // elapsed time within the trip (s)
	Speed    float64 // -1 marks an invalid reading
	AccelX   float64
	AccelY   float64
	AccelZ   float64
	GyroX    float64
	GyroY    float64
	GyroZ    float64
}

// Reading is a cleaned sample. Accuracy and bearing are not carried.
type Reading struct {
	TripID int64
	Second float64
	Speed  float64
	AccelX float64
	AccelY float64
	AccelZ float64
	GyroX  float64
	GyroY  float64
	GyroZ  float64
}

// Derived is a cleaned reading with its scalar transforms.
type Derived struct {
	Reading
	Acceleration float64 // sqrt(ax²+ay²+az²)
	Gyro         float64 // first principal component of (gx, gy, gz)
}

// Trip is the time-ordered derived samples sharing a trip identifier.
type Trip struct {
	ID      int64
	Samples []Derived
}

// Len returns the number of samples in the trip.
func (t Trip) Len() int { return len(t.Samples) }

// Column extracts one per-sample value into a new slice.
func (t Trip) Column(f func(Derived) float64) []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = f(s)
	}
	return out
}

// Input is a raw table: the field names it declared and its samples.
type Input struct {
	Fields  []string
	Samples []Sample
}

// NewInput returns an Input declaring the canonical field set.
func NewInput(samples []Sample) Input {
	return Input{Fields: append([]string(nil), RequiredFields...), Samples: samples}
}
