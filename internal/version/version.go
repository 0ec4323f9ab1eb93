// Package version holds build metadata for trip-features, set at link
// time with -ldflags "-X github.com/banshee-data/trip.features/internal/version.Version=...".
package version

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)
