package services

import "time"

// Clock supplies the current time. Injected so date validation and promotion
// window checks are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used in production
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}
