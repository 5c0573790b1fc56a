package timer

import "time"

// Timer is the cancel handle for a single scheduled fire.
type Timer interface {
	Stop() bool
}

// Clock schedules a function to run once after a delay. It abstracts the
// standard library timer so tests can drive fires deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the Clock backed by the standard library.
//
//nolint:gochecknoglobals // Stateless default shared by all timers.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
