// Package params holds the externally trained parameters consumed by
// feature extraction: the IQR threshold table, the window standardisation
// table, the gyroscope PCA projection, and the window cluster model.
//
// Everything here is read-only once loaded and safe to share between
// goroutines. Training these parameters is out of scope.
package params
