package engine

import (
	"time"

	"github.com/loopdesk/escalate/internal/types"
)

/*
 * Evaluation context construction.
 *
 * Derives the time-of-day facts (hour, off-hours flag) from the turn's
 * timestamp and the tenant's configured business-hours window. The window
 * lives in configuration, not in the evaluator: by the time a condition is
 * scored, the context already carries the resolved facts.
 */

// BusinessHours describes the support team's working window. Hours are in
// Location's wall clock; the window is [Start, End) and wraps past midnight
// when Start > End, mirroring between's interval semantics.
type BusinessHours struct {
	Start    int            // first working hour, 0-23
	End      int            // first non-working hour, 0-23
	Location *time.Location // nil means UTC
}

// Contains reports whether t falls inside the working window.
func (b BusinessHours) Contains(t time.Time) bool {
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	hour := t.In(loc).Hour()
	if b.Start > b.End {
		return hour >= b.Start || hour < b.End
	}
	return hour >= b.Start && hour < b.End
}

// BuildContext finalizes a caller-assembled context: normalizes the
// timestamp to UTC and derives the hour-of-day and off-hours facts from the
// business-hours window. A zero timestamp is stamped with the current time
// so ad-hoc preview contexts behave sensibly.
func BuildContext(c types.Context, hours BusinessHours) types.Context {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}
	c.Timestamp = c.Timestamp.UTC()

	loc := hours.Location
	if loc == nil {
		loc = time.UTC
	}
	c.Hour = c.Timestamp.In(loc).Hour()
	c.OffHours = !hours.Contains(c.Timestamp)
	return c
}
