package booking

import "time"

// Clock abstracts "now" so tests can pin the current time.  The
// engine never calls time.Now directly; cutoff classification and
// daily scoping both go through the injected clock.
type Clock interface {
	Now() time.Time
}

// systemClock is the production Clock backed by time.Now.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock that reads the wall clock.
func SystemClock() Clock { return systemClock{} }

// Cutoff is the daily time that separates auto-approval mode from
// staff-approval mode.  Requests starting strictly before the cutoff
// on their own calendar date are auto-approved; requests at or after
// it start out pending.
type Cutoff struct {
	Hour   int
	Minute int
}

// DefaultCutoff is 16:30, the historical lab policy boundary.
var DefaultCutoff = Cutoff{Hour: 16, Minute: 30}

// ParseCutoff parses a "HH:MM" string into a Cutoff.  It falls back
// to DefaultCutoff when the string is empty or malformed so a missing
// env var cannot silently disable the policy.
func ParseCutoff(s string) Cutoff {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return DefaultCutoff
	}
	return Cutoff{Hour: t.Hour(), Minute: t.Minute()}
}

// On returns the cutoff instant on the calendar date of t, in t's
// location.
func (c Cutoff) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour, c.Minute, 0, 0, t.Location())
}

// Before reports whether t falls strictly before the cutoff on its
// own calendar date.  This is the mode of a booking request.
func (c Cutoff) Before(t time.Time) bool {
	return t.Before(c.On(t))
}
