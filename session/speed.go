package session

import (
	"math"
	"time"
)

// Speed is the coarse pacing setting a caller picks for live consumption.
// Higher is faster. Arbitrary values are accepted and snapped to the
// nearest named speed.
type Speed float64

// Named speeds.
const (
	SpeedFastest Speed = 1.0
	SpeedFast    Speed = 0.8
	SpeedNormal  Speed = 0.6
	SpeedSlow    Speed = 0.4
	SpeedSlowest Speed = 0.2
)

// Fixed mapping from speed to the delay inserted after each non-final epoch.
var speedDelays = []struct {
	speed Speed
	delay time.Duration
}{
	{SpeedFastest, 100 * time.Millisecond},
	{SpeedFast, 300 * time.Millisecond},
	{SpeedNormal, 600 * time.Millisecond},
	{SpeedSlow, time.Second},
	{SpeedSlowest, 1500 * time.Millisecond},
}

// Delay returns the per-epoch pacing delay for the speed, matching by
// smallest absolute difference against the fixed table.
func (s Speed) Delay() time.Duration {
	best := speedDelays[0]
	for _, entry := range speedDelays[1:] {
		if math.Abs(float64(entry.speed-s)) < math.Abs(float64(best.speed-s)) {
			best = entry
		}
	}
	return best.delay
}
