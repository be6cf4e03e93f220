package clock

import "time"

// Clock tells the current time. Caches read "today" from a Clock so tests can move the calendar.
type Clock interface {
	Now() time.Time
}

// System the wall clock
var System Clock = Func(time.Now)

// Func adapts a function to a Clock
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}
