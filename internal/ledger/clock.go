package ledger

import (
	"time"
)

// Clock supplies the current time. The ledger and the reset scheduler never
// call time.Now directly, so tests can substitute a controllable clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by the wall clock
func SystemClock() Clock {
	return systemClock{}
}
