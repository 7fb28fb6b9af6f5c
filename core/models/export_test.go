package models

import "time"

// SetClock replaces the change log clock and returns a restore func.
func SetClock(fn func() time.Time) func() {
	prev := now
	now = fn
	return func() { now = prev }
}
