package entities

import "time"

// CivilDate truncates t to midnight of its calendar day as seen from loc.
func CivilDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DateOnly keeps the calendar fields of t as written and pins them to loc.
// A delivery date of 2026-03-10 stays 2026-03-10 whatever zone it was parsed in.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
