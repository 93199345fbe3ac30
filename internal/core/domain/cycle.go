package domain

import "time"

// Cycle period lengths. A six-week cycle spans 42 days inclusive, a cooling
// period 14 days inclusive, and both recur on an eight-week rhythm.
const (
	SixWeekSpanDays = 7*6 - 1
	CoolingSpanDays = 13
	RecurrenceDays  = 7 * 8
)

// Window is an inclusive date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, endpoints included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Overlaps reports whether either endpoint of one window falls inside the
// other.
func (w Window) Overlaps(o Window) bool {
	return w.Contains(o.Start) || w.Contains(o.End) ||
		o.Contains(w.Start) || o.Contains(w.End)
}

// Schedule is a period's current window plus the next occurrence.
type Schedule struct {
	Current Window
	Next    Window
}

// NewSixWeekSchedule derives a six-week cycle schedule from its start date.
func NewSixWeekSchedule(start time.Time) Schedule {
	start = DateOnly(start)
	next := start.AddDate(0, 0, RecurrenceDays)
	return Schedule{
		Current: Window{Start: start, End: start.AddDate(0, 0, SixWeekSpanDays)},
		Next:    Window{Start: next, End: next.AddDate(0, 0, SixWeekSpanDays)},
	}
}

// NewCoolingSchedule derives a two-week cooling-period schedule from its
// start date.
func NewCoolingSchedule(start time.Time) Schedule {
	start = DateOnly(start)
	next := start.AddDate(0, 0, RecurrenceDays)
	return Schedule{
		Current: Window{Start: start, End: start.AddDate(0, 0, CoolingSpanDays)},
		Next:    Window{Start: next, End: next.AddDate(0, 0, CoolingSpanDays)},
	}
}

// PeriodKind names which period a resolution reschedules.
type PeriodKind int

const (
	PeriodNone PeriodKind = iota
	PeriodSixWeek
	PeriodCooling
)

func (k PeriodKind) String() string {
	switch k {
	case PeriodSixWeek:
		return "6-week cycle"
	case PeriodCooling:
		return "2-week cooling period"
	default:
		return "none"
	}
}

// Resolution describes what the cycle resolver decided: which period to
// reschedule (if any), its new start date, and a human-readable reason.
type Resolution struct {
	Reschedule PeriodKind
	NewStart   time.Time
	Reason     string
}

// ResolvePlan inspects today's position relative to the stored cooling and
// cycle windows and decides which period, if either, must be rescheduled so
// the two alternate without overlapping.
func ResolvePlan(today time.Time, cooling, cycle Window) Resolution {
	today = DateOnly(today)
	inCooling := cooling.Contains(today)
	inCycle := cycle.Contains(today)

	switch {
	case inCooling && cycle.End.Before(today):
		return Resolution{
			Reschedule: PeriodSixWeek,
			NewStart:   cooling.End.AddDate(0, 0, 1),
			Reason:     "in cooling period and the 6-week cycle has ended",
		}

	case inCycle && cooling.End.Before(today):
		return Resolution{
			Reschedule: PeriodCooling,
			NewStart:   cycle.End.AddDate(0, 0, 1),
			Reason:     "in 6-week cycle and the cooling period has ended",
		}

	case inCooling && cooling.Overlaps(cycle):
		return Resolution{
			Reschedule: PeriodSixWeek,
			NewStart:   cooling.End.AddDate(0, 0, 1),
			Reason:     "6-week cycle overlaps the active cooling period",
		}

	case inCycle && cooling.Overlaps(cycle):
		return Resolution{
			Reschedule: PeriodCooling,
			NewStart:   cycle.End.AddDate(0, 0, 1),
			Reason:     "cooling period overlaps the active 6-week cycle",
		}

	case inCooling || inCycle:
		return Resolution{Reason: "no overlap with the active period"}

	case cooling.End.Before(today) && cycle.End.Before(today):
		// Both ended: restart the counterpart of whichever finished last,
		// never starting in the past.
		if cooling.End.After(cycle.End) {
			return Resolution{
				Reschedule: PeriodSixWeek,
				NewStart:   clampToTomorrow(cooling.End.AddDate(0, 0, 1), today),
				Reason:     "both periods ended; cooling period ended most recently",
			}
		}
		return Resolution{
			Reschedule: PeriodCooling,
			NewStart:   clampToTomorrow(cycle.End.AddDate(0, 0, 1), today),
			Reason:     "both periods ended; 6-week cycle ended most recently",
		}

	case cooling.Start.After(today) && cycle.Start.After(today):
		return Resolution{Reason: "both periods start in the future"}

	default:
		return Resolution{Reason: "dates need manual adjustment"}
	}
}

func clampToTomorrow(start, today time.Time) time.Time {
	if start.Before(today) {
		return today.AddDate(0, 0, 1)
	}
	return start
}
