// Package scheduler decides when periodic summaries are due and fans the
// resulting jobs out across the configured users.
//
// Dueness checking uses the strategy pattern: each cadence implements its
// own checker so the tick loop stays cadence-agnostic.
package scheduler

import "time"

// DuenessChecker decides whether a summary should fire at the given instant,
// knowing when it last fired for the same user.
type DuenessChecker interface {
	IsDue(lastRun, now time.Time) bool
}

// WeeklyChecker fires once on a fixed weekday at or after a fixed hour.
type WeeklyChecker struct {
	Day  time.Weekday
	Hour int
}

func (c WeeklyChecker) IsDue(lastRun, now time.Time) bool {
	if now.Weekday() != c.Day || now.Hour() < c.Hour {
		return false
	}
	return !sameDay(lastRun, now)
}

// MonthEndChecker fires once on the last calendar day of the month at or
// after a fixed hour. The last day is computed per month, so February and
// leap years need no special casing.
type MonthEndChecker struct {
	Hour int
}

func (c MonthEndChecker) IsDue(lastRun, now time.Time) bool {
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	if now.Day() != lastDay || now.Hour() < c.Hour {
		return false
	}
	return !sameDay(lastRun, now)
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
