// Package clock supplies "now" to the planner so builds are reproducible in tests.
package clock

import "time"

// Clock returns the current local time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in the local time zone.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }
