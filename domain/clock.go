package domain

import "time"

// Clock supplies the timestamps used for message times and liveness
// comparisons. It is injected rather than read from ambient globals so that
// liveness boundaries can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the operating system clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
