package features

import "iter"

// Default sliding window geometry: 8 samples, 50% overlap.
const (
	DefaultWindowSize   = 8
	DefaultWindowStride = 4
)

// WindowStarts yields the start offset of every full window of size
// samples over a sequence of n samples, advancing by stride. The sequence
// is finite and may be ranged over any number of times.
func WindowStarts(n, size, stride int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if size <= 0 || stride <= 0 {
			return
		}
		for start := 0; start+size <= n; start += stride {
			if !yield(start) {
				return
			}
		}
	}
}

// WindowCount returns max(0, floor((n-size)/stride)+1).
func WindowCount(n, size, stride int) int {
	if size <= 0 || stride <= 0 || n < size {
		return 0
	}
	return (n-size)/stride + 1
}
