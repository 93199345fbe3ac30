package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
)

// mockCycleResolver implements driving.CycleResolver for testing.
type mockCycleResolver struct {
	res *driving.CycleResult
	err error
}

func (m *mockCycleResolver) Resolve(_ context.Context, _ time.Time) (*driving.CycleResult, error) {
	return m.res, m.err
}

func setupCycleTest(mock *mockCycleResolver) func() {
	old := cycleResolver
	cycleResolver = mock
	return func() {
		cycleResolver = old
		todayFlag = ""
	}
}

func TestCycleResolveCmd_Reschedules(t *testing.T) {
	cleanup := setupCycleTest(&mockCycleResolver{res: &driving.CycleResult{
		Resolution: domain.Resolution{
			Reschedule: domain.PeriodSixWeek,
			NewStart:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		CreatedFiles: []string{
			"/vault/11_cycles/_6-Week-Cycles/6-Week Cycle (2024.03.15 - 2024.04.25).md",
		},
	}})
	defer cleanup()

	out, err := executeCommand("cycle", "resolve")

	assert.NoError(t, err)
	assert.Contains(t, out, "rescheduled six-week cycle")
	assert.Contains(t, out, "2024-03-15")
	assert.Contains(t, out, "6-Week Cycle (2024.03.15 - 2024.04.25).md")
}

func TestCycleResolveCmd_NoChange(t *testing.T) {
	cleanup := setupCycleTest(&mockCycleResolver{res: &driving.CycleResult{}})
	defer cleanup()

	out, err := executeCommand("cycle", "resolve")

	assert.NoError(t, err)
	assert.Contains(t, out, "dates unchanged")
}

func TestCycleResolveCmd_Error(t *testing.T) {
	cleanup := setupCycleTest(&mockCycleResolver{err: domain.ErrCycleDatesUnset})
	defer cleanup()

	_, err := executeCommand("cycle", "resolve")

	assert.ErrorIs(t, err, domain.ErrCycleDatesUnset)
}
