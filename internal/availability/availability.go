// Package availability decides whether a seat can take a new subscription
// for a requested date range.  Everything here is pure: callers load the
// existing bookings and pass them in.
//
// Ranges are calendar dates, inclusive on both ends.  A booking starting on
// the expiry date of another booking of the same type overlaps it.
package availability

import (
	"time"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
)

// PeriodDays maps a subscription period to its length in days.  Unknown
// periods map to zero.
func PeriodDays(p model.SubscriptionPeriod) int {
	switch p {
	case model.HalfMonth:
		return 15
	case model.OneMonth:
		return 30
	}
	return 0
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Expiry returns start + PeriodDays(p).  Plain day arithmetic, so a
// OneMonth booking starting 2024-01-01 expires 2024-01-31.
func Expiry(start time.Time, p model.SubscriptionPeriod) time.Time {
	return Day(start).AddDate(0, 0, PeriodDays(p))
}

// Window is an inclusive [Start, End] date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds the window covered by a subscription.
func NewWindow(start time.Time, p model.SubscriptionPeriod) Window {
	return Window{Start: Day(start), End: Expiry(start, p)}
}

// Overlaps reports whether a and b share at least one date.
func Overlaps(a, b Window) bool {
	return !(a.End.Before(b.Start) || a.Start.After(b.End))
}

// IsAvailable reports whether requested overlaps none of existing.  The
// caller is responsible for passing only active bookings of the same
// duration type on the same seat.
func IsAvailable(requested Window, existing []Window) bool {
	for _, w := range existing {
		if Overlaps(requested, w) {
			return false
		}
	}
	return true
}

// Conflicts returns the windows in existing that overlap requested.
func Conflicts(requested Window, existing []Window) []Window {
	var out []Window
	for _, w := range existing {
		if Overlaps(requested, w) {
			out = append(out, w)
		}
	}
	return out
}
