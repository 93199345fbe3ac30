package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func window(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

func TestNewSixWeekSchedule(t *testing.T) {
	s := NewSixWeekSchedule(date(2024, time.March, 4))

	assert.Equal(t, date(2024, time.March, 4), s.Current.Start)
	assert.Equal(t, date(2024, time.April, 14), s.Current.End)
	assert.Equal(t, date(2024, time.April, 29), s.Next.Start)
	assert.Equal(t, date(2024, time.June, 9), s.Next.End)

	// 42 inclusive days, recurring every 8 weeks.
	assert.Equal(t, 41*24*time.Hour, s.Current.End.Sub(s.Current.Start))
	assert.Equal(t, 56*24*time.Hour, s.Next.Start.Sub(s.Current.Start))
}

func TestNewCoolingSchedule(t *testing.T) {
	s := NewCoolingSchedule(date(2024, time.April, 15))

	assert.Equal(t, date(2024, time.April, 15), s.Current.Start)
	assert.Equal(t, date(2024, time.April, 28), s.Current.End)
	assert.Equal(t, date(2024, time.June, 10), s.Next.Start)
	assert.Equal(t, date(2024, time.June, 23), s.Next.End)
}

func TestWindowContains(t *testing.T) {
	w := window(date(2024, time.March, 4), date(2024, time.March, 10))

	assert.True(t, w.Contains(date(2024, time.March, 4)))
	assert.True(t, w.Contains(date(2024, time.March, 10)))
	assert.True(t, w.Contains(date(2024, time.March, 7)))
	assert.False(t, w.Contains(date(2024, time.March, 3)))
	assert.False(t, w.Contains(date(2024, time.March, 11)))
}

func TestWindowOverlaps(t *testing.T) {
	a := window(date(2024, time.March, 1), date(2024, time.March, 14))
	b := window(date(2024, time.March, 10), date(2024, time.April, 20))
	c := window(date(2024, time.March, 20), date(2024, time.April, 30))

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
	// Containment counts as overlap.
	inner := window(date(2024, time.March, 5), date(2024, time.March, 6))
	assert.True(t, a.Overlaps(inner))
	assert.True(t, inner.Overlaps(a))
}

func TestResolvePlan(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		cooling  Window
		cycle    Window
		wantKind PeriodKind
		wantNew  time.Time
	}{
		{
			name:     "in cooling and cycle ended starts new cycle after cooling",
			today:    date(2024, time.April, 20),
			cooling:  window(date(2024, time.April, 15), date(2024, time.April, 28)),
			cycle:    window(date(2024, time.March, 4), date(2024, time.April, 14)),
			wantKind: PeriodSixWeek,
			wantNew:  date(2024, time.April, 29),
		},
		{
			name:     "in cycle and cooling ended starts new cooling after cycle",
			today:    date(2024, time.May, 10),
			cooling:  window(date(2024, time.April, 15), date(2024, time.April, 28)),
			cycle:    window(date(2024, time.April, 29), date(2024, time.June, 9)),
			wantKind: PeriodCooling,
			wantNew:  date(2024, time.June, 10),
		},
		{
			name:     "in cooling with overlapping cycle pushes cycle out",
			today:    date(2024, time.April, 20),
			cooling:  window(date(2024, time.April, 15), date(2024, time.April, 28)),
			cycle:    window(date(2024, time.April, 22), date(2024, time.June, 2)),
			wantKind: PeriodSixWeek,
			wantNew:  date(2024, time.April, 29),
		},
		{
			name:     "in cycle with overlapping cooling pushes cooling out",
			today:    date(2024, time.May, 1),
			cooling:  window(date(2024, time.June, 5), date(2024, time.June, 18)),
			cycle:    window(date(2024, time.April, 29), date(2024, time.June, 9)),
			wantKind: PeriodCooling,
			wantNew:  date(2024, time.June, 10),
		},
		{
			name:     "in cycle with future non-overlapping cooling is a no-op",
			today:    date(2024, time.May, 1),
			cooling:  window(date(2024, time.June, 10), date(2024, time.June, 23)),
			cycle:    window(date(2024, time.April, 29), date(2024, time.June, 9)),
			wantKind: PeriodNone,
		},
		{
			name:     "both ended cooling most recent restarts cycle",
			today:    date(2024, time.July, 1),
			cooling:  window(date(2024, time.April, 15), date(2024, time.April, 28)),
			cycle:    window(date(2024, time.March, 4), date(2024, time.April, 14)),
			wantKind: PeriodSixWeek,
			wantNew:  date(2024, time.July, 2), // April 29 is past, clamp to tomorrow
		},
		{
			name:     "both ended cycle most recent restarts cooling",
			today:    date(2024, time.June, 15),
			cooling:  window(date(2024, time.April, 15), date(2024, time.April, 28)),
			cycle:    window(date(2024, time.April, 29), date(2024, time.June, 9)),
			wantKind: PeriodCooling,
			wantNew:  date(2024, time.June, 16), // June 10 is past, clamp to tomorrow
		},
		{
			name:     "both ended with day-after still ahead keeps it",
			today:    date(2024, time.June, 10),
			cooling:  window(date(2024, time.April, 15), date(2024, time.April, 28)),
			cycle:    window(date(2024, time.April, 29), date(2024, time.June, 9)),
			wantKind: PeriodCooling,
			wantNew:  date(2024, time.June, 10),
		},
		{
			name:     "both in the future is a no-op",
			today:    date(2024, time.February, 1),
			cooling:  window(date(2024, time.April, 15), date(2024, time.April, 28)),
			cycle:    window(date(2024, time.March, 4), date(2024, time.April, 14)),
			wantKind: PeriodNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolvePlan(tt.today, tt.cooling, tt.cycle)
			assert.Equal(t, tt.wantKind, res.Reschedule)
			if tt.wantKind != PeriodNone {
				assert.Equal(t, tt.wantNew, res.NewStart)
			}
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestPeriodKindString(t *testing.T) {
	assert.Equal(t, "6-week cycle", PeriodSixWeek.String())
	assert.Equal(t, "2-week cooling period", PeriodCooling.String())
	assert.Equal(t, "none", PeriodNone.String())
}
