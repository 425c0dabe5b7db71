package analysis

import (
	"math"
	"time"
)

// Window describes where a project sits in its planned schedule.
type Window struct {
	TotalDays        int
	ElapsedDays      int
	RemainingDays    int
	ExpectedProgress float64
}

// ComputeWindow derives elapsed/remaining days and the expected progress
// under a linear schedule. It returns ErrInvalidSchedule when end <= start.
func ComputeWindow(start, end, now time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidSchedule
	}

	total := ceilDays(end.Sub(start))
	if total < 1 {
		total = 1
	}
	elapsed := ceilDays(now.Sub(start))
	remaining := ceilDays(end.Sub(now))
	if remaining < 0 {
		remaining = 0
	}

	expected := clamp(float64(elapsed)/float64(total)*100, 0, 100)

	return Window{
		TotalDays:        total,
		ElapsedDays:      elapsed,
		RemainingDays:    remaining,
		ExpectedProgress: expected,
	}, nil
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
