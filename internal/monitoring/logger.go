// Package monitoring carries the diagnostic logger and stage progress
// reporting shared by the feature pipeline and its tools.
package monitoring

import (
	"log"
	"time"

	"github.com/banshee-data/trip.features/internal/timeutil"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Progress is notified as each pipeline stage starts. index is 1-based.
type Progress func(stage string, index, total int)

// LogProgress returns a Progress that reports stages through Logf and the
// elapsed time of the previous stage.
func LogProgress(component string) Progress {
	return LogProgressClock(component, timeutil.RealClock{})
}

// LogProgressClock is LogProgress with stage timing read from clock.
func LogProgressClock(component string, clock timeutil.Clock) Progress {
	var last time.Time
	var lastStage string
	return func(stage string, index, total int) {
		now := clock.Now()
		if lastStage != "" {
			Logf("[%s] %s done in %s", component, lastStage, now.Sub(last).Round(time.Millisecond))
		}
		Logf("[%s] (%d/%d) %s ...", component, index, total, stage)
		last, lastStage = now, stage
	}
}

// Report calls p if it is non-nil.
func (p Progress) Report(stage string, index, total int) {
	if p != nil {
		p(stage, index, total)
	}
}
