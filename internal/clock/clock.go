// Package clock abstracts one-shot timer scheduling so timer-driven code
// can be tested with a deterministic fake.
package clock

import "time"

// Timer is a pending AfterFunc callback.
type Timer interface {
	// Stop prevents the timer from firing. It returns false if the timer
	// has already fired or been stopped.
	Stop() bool
}

// Clock schedules one-shot callbacks.
type Clock interface {
	// AfterFunc calls fn in its own goroutine after d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

// System is the Clock used outside of tests.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
