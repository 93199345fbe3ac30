package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
)

// mockReflector implements driving.Reflector for testing.
type mockReflector struct {
	reflectionRes *driving.ReflectionResult
	digestRes     *driving.DigestResult
	err           error

	gotCount int
}

func (m *mockReflector) Morning(_ context.Context, _ time.Time) (*driving.ReflectionResult, error) {
	return m.reflectionRes, m.err
}

func (m *mockReflector) Evening(_ context.Context, _ time.Time) (*driving.ReflectionResult, error) {
	return m.reflectionRes, m.err
}

func (m *mockReflector) TweetIdeas(_ context.Context, _ time.Time) (*driving.ReflectionResult, error) {
	return m.reflectionRes, m.err
}

func (m *mockReflector) EssayIdeas(_ context.Context, _ time.Time) (*driving.ReflectionResult, error) {
	return m.reflectionRes, m.err
}

func (m *mockReflector) WeeklyPrayer(_ context.Context, _ time.Time) (*driving.ReflectionResult, error) {
	return m.reflectionRes, m.err
}

func (m *mockReflector) WritingDigest(_ context.Context, count int) (*driving.DigestResult, error) {
	m.gotCount = count
	return m.digestRes, m.err
}

func setupReflectTest(mock *mockReflector) func() {
	old := reflector
	reflector = mock
	return func() {
		reflector = old
		todayFlag = ""
	}
}

func TestReflectMorningCmd(t *testing.T) {
	cleanup := setupReflectTest(&mockReflector{reflectionRes: &driving.ReflectionResult{
		Subject:    "Daily Vision AM Check In (03/04/2024)",
		SourcePath: "/vault/03_daily/_daily-action/da 2024-03-04.md",
	}})
	defer cleanup()

	out, err := executeCommand("reflect", "morning")

	assert.NoError(t, err)
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "Daily Vision AM Check In (03/04/2024)")
	assert.Contains(t, out, "da 2024-03-04.md")
}

func TestReflectEveningCmd(t *testing.T) {
	cleanup := setupReflectTest(&mockReflector{reflectionRes: &driving.ReflectionResult{
		Subject: "Daily Vision PM Check In (03/04/2024)",
	}})
	defer cleanup()

	out, err := executeCommand("reflect", "evening")

	assert.NoError(t, err)
	assert.Contains(t, out, "Daily Vision PM Check In (03/04/2024)")
}

func TestReflectTweetsCmd(t *testing.T) {
	cleanup := setupReflectTest(&mockReflector{reflectionRes: &driving.ReflectionResult{
		Subject:    "Tweet Ideas (03/04/2024)",
		SourcePath: "/vault/03_daily/_journal/mar 4, 2024.md",
	}})
	defer cleanup()

	out, err := executeCommand("reflect", "tweets")

	assert.NoError(t, err)
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "Tweet Ideas (03/04/2024)")
	assert.Contains(t, out, "mar 4, 2024.md")
}

func TestReflectEssaysCmd(t *testing.T) {
	cleanup := setupReflectTest(&mockReflector{reflectionRes: &driving.ReflectionResult{
		Subject: "Essay Ideas & Reading List (03/04/2024)",
	}})
	defer cleanup()

	out, err := executeCommand("reflect", "essays")

	assert.NoError(t, err)
	assert.Contains(t, out, "Essay Ideas & Reading List (03/04/2024)")
}

func TestReflectPrayerCmd(t *testing.T) {
	cleanup := setupReflectTest(&mockReflector{reflectionRes: &driving.ReflectionResult{
		Subject:    "Weekly Prayer & Reflection (03/04/2024)",
		SourcePath: "/vault/09_weekly/_weekly-maps/weekly map 2024-03-10.md",
	}})
	defer cleanup()

	out, err := executeCommand("reflect", "prayer")

	assert.NoError(t, err)
	assert.Contains(t, out, "Weekly Prayer & Reflection (03/04/2024)")
	assert.Contains(t, out, "weekly map 2024-03-10.md")
}

func TestReflectWritingCmd(t *testing.T) {
	mock := &mockReflector{digestRes: &driving.DigestResult{
		Subject: "Daily Writing Selection (03/04/2024)",
		Notes:   []string{"On Focus", "Drafts Note"},
	}}
	cleanup := setupReflectTest(mock)
	defer cleanup()

	out, err := executeCommand("reflect", "writing", "--count", "3")

	assert.NoError(t, err)
	assert.Contains(t, out, "Daily Writing Selection (03/04/2024)")
	assert.Contains(t, out, "On Focus")
	assert.Equal(t, 3, mock.gotCount)
}
