package clock

import "time"

type Clock interface {
	Now() time.Time
}

type System struct{}

func NewSystem() System {
	return System{}
}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant. Used by jobs replaying a known "now"
// and by tests.
type Fixed struct {
	at time.Time
}

func NewFixed(at time.Time) *Fixed {
	return &Fixed{at: at}
}

func (f *Fixed) Now() time.Time {
	return f.at
}

func (f *Fixed) Set(at time.Time) {
	f.at = at
}

func (f *Fixed) Advance(d time.Duration) {
	f.at = f.at.Add(d)
}
