// Package telematics owns the raw and derived sample model for trip
// telematics: schema validation, ordering, cleaning, and the scalar
// transforms (acceleration magnitude and gyro principal component) that
// feature extraction consumes.
//
// Dependency rule: telematics may depend on params and units.
// Feature computation lives in the features package.
package telematics
