// Package domain holds the pure types and rules of the vault automations:
// calendar arithmetic, cycle windows, note naming and the shared errors.
package domain

import "time"

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextWeekday returns the next occurrence of wd strictly after t. When t
// already falls on wd the result is seven days out, matching the planning
// scripts that always prepare the following week.
func NextWeekday(t time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(t.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return DateOnly(t).AddDate(0, 0, days)
}

// WeekdayOnOrAfter returns the next occurrence of wd on or after t. Used by
// the weekly map, which targets the current Sunday when run on a Sunday.
func WeekdayOnOrAfter(t time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(t.Weekday()) + 7) % 7
	return DateOnly(t).AddDate(0, 0, days)
}

// WeekEnding returns the Sunday that closes the week containing tomorrow,
// i.e. the next Sunday strictly after t.
func WeekEnding(t time.Time) time.Time {
	return NextWeekday(t, time.Sunday)
}

// NewsletterSunday returns the Sunday after next, the publish date the
// newsletter draft is prepared for.
func NewsletterSunday(t time.Time) time.Time {
	return WeekEnding(t).AddDate(0, 0, 7)
}

// WeeklyMapSunday returns the Sunday after the on-or-after Sunday, the date
// a weekly map is drawn for.
func WeeklyMapSunday(t time.Time) time.Time {
	return WeekdayOnOrAfter(t, time.Sunday).AddDate(0, 0, 7)
}

// HealthReviewWindow returns the Wednesday-to-Tuesday span the next weekly
// health review covers: the next Wednesday strictly after t, plus six days.
func HealthReviewWindow(t time.Time) (start, end time.Time) {
	start = NextWeekday(t, time.Wednesday)
	return start, start.AddDate(0, 0, 6)
}
