// Package features turns cleaned, transformed trips into a fixed-width
// feature vector per trip.
//
// Three independent families are computed:
//
//   - summary: mean, median, std and dispersion of acceleration, gyro,
//     speed and elapsed time
//   - outlier: counts of samples outside trained percentile thresholds
//   - window: sliding-window statistics, standardised and assigned to a
//     trained behaviour cluster, counted per cluster
//
// The Assembler left-joins every family onto the trip identifiers of the
// original input and fills absent values with 0.
//
// Dependency rule: features may depend on telematics, params, config and
// monitoring. No SQL or file formats other than CSV live here.
package features
