package timeutil

import (
	"sync"
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	if d := clock.Since(past); d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestMockClock(t *testing.T) {
	start := time.Date(2019, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("Now() = %v, want %v", got, start)
	}
	if got := clock.Now(); !got.Equal(start) {
		t.Errorf("Now() moved without Advance: %v", got)
	}

	clock.Advance(90 * time.Second)
	if got := clock.Since(start); got != 90*time.Second {
		t.Errorf("Since() = %v, want 90s", got)
	}

	later := start.Add(time.Hour)
	clock.Set(later)
	if got := clock.Now(); !got.Equal(later) {
		t.Errorf("Now() after Set = %v, want %v", got, later)
	}
}

func TestSteppingClock(t *testing.T) {
	start := time.Unix(100, 0)
	clock := NewSteppingClock(start, time.Millisecond)

	first, second := clock.Now(), clock.Now()
	if !second.After(first) {
		t.Errorf("readings not ordered: %v then %v", first, second)
	}
	if d := second.Sub(first); d != time.Millisecond {
		t.Errorf("step = %v, want 1ms", d)
	}
	if d := clock.Since(start); d != 2*time.Millisecond {
		t.Errorf("Since() = %v, want 2ms", d)
	}
}

func TestMockClock_Concurrent(t *testing.T) {
	clock := NewSteppingClock(time.Unix(0, 0), time.Nanosecond)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				clock.Now()
			}
		}()
	}
	wg.Wait()
	if d := clock.Since(time.Unix(0, 0)); d != 800*time.Nanosecond {
		t.Errorf("Since() = %v, want 800ns", d)
	}
}
