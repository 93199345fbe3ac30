package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
)

// mockJournalManager implements driving.JournalManager for testing.
type mockJournalManager struct {
	noteRes   *driving.NoteResult
	relateRes *driving.RelateResult
	err       error

	gotToday    time.Time
	gotLookback time.Duration
}

func (m *mockJournalManager) CreateTomorrow(_ context.Context, today time.Time) (*driving.NoteResult, error) {
	m.gotToday = today
	return m.noteRes, m.err
}

func (m *mockJournalManager) UpdateTodayProperties(_ context.Context, today time.Time) (*driving.NoteResult, error) {
	m.gotToday = today
	return m.noteRes, m.err
}

func (m *mockJournalManager) RelateExperiences(_ context.Context, today time.Time, lookback time.Duration) (*driving.RelateResult, error) {
	m.gotToday = today
	m.gotLookback = lookback
	return m.relateRes, m.err
}

func (m *mockJournalManager) CreateDailyAction(_ context.Context, today time.Time) (*driving.NoteResult, error) {
	m.gotToday = today
	return m.noteRes, m.err
}

func (m *mockJournalManager) AddDailyReview(_ context.Context, today time.Time) (*driving.NoteResult, error) {
	m.gotToday = today
	return m.noteRes, m.err
}

func setupJournalTest(mock *mockJournalManager) func() {
	old := journalService
	journalService = mock
	return func() {
		journalService = old
		todayFlag = ""
	}
}

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestJournalCreateCmd(t *testing.T) {
	mock := &mockJournalManager{noteRes: &driving.NoteResult{
		Path: "/vault/03_daily/_journal/Mar 5, 2024.md", Created: true,
	}}
	cleanup := setupJournalTest(mock)
	defer cleanup()

	out, err := executeCommand("journal", "create", "--today", "2024-03-04")

	assert.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "Mar 5, 2024.md")
	assert.Equal(t, "2024-03-04", mock.gotToday.Format("2006-01-02"))
}

func TestJournalCreateCmd_AlreadyExists(t *testing.T) {
	mock := &mockJournalManager{noteRes: &driving.NoteResult{
		Path: "/vault/03_daily/_journal/Mar 5, 2024.md",
	}}
	cleanup := setupJournalTest(mock)
	defer cleanup()

	out, err := executeCommand("journal", "create")

	assert.NoError(t, err)
	assert.Contains(t, out, "exists")
}

func TestJournalCreateCmd_BadTodayFlag(t *testing.T) {
	cleanup := setupJournalTest(&mockJournalManager{})
	defer cleanup()

	_, err := executeCommand("journal", "create", "--today", "04/03/2024")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestJournalPropertiesCmd(t *testing.T) {
	mock := &mockJournalManager{noteRes: &driving.NoteResult{
		Path: "/vault/03_daily/_journal/Mar 4, 2024.md", Updated: true,
	}}
	cleanup := setupJournalTest(mock)
	defer cleanup()

	out, err := executeCommand("journal", "update-properties")

	assert.NoError(t, err)
	assert.Contains(t, out, "updated")
}

func TestJournalRelateCmd(t *testing.T) {
	mock := &mockJournalManager{relateRes: &driving.RelateResult{
		JournalPath: "/vault/03_daily/_journal/Mar 4, 2024.md",
		Linked:      []string{"Lunch Meeting"},
		Skipped:     []string{"Old Note"},
	}}
	cleanup := setupJournalTest(mock)
	defer cleanup()

	out, err := executeCommand("journal", "relate", "--lookback", "48h")

	assert.NoError(t, err)
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "Lunch Meeting")
	assert.Contains(t, out, "Old Note")
	assert.Equal(t, 48*time.Hour, mock.gotLookback)
}

func TestJournalRelateCmd_NothingToRelate(t *testing.T) {
	mock := &mockJournalManager{relateRes: &driving.RelateResult{}}
	cleanup := setupJournalTest(mock)
	defer cleanup()

	out, err := executeCommand("journal", "relate")

	assert.NoError(t, err)
	assert.Contains(t, out, "No recently modified notes")
}

func TestJournalActionCmd(t *testing.T) {
	mock := &mockJournalManager{noteRes: &driving.NoteResult{
		Path: "/vault/03_daily/_daily-action/DA 2024-03-05.md", Created: true,
	}}
	cleanup := setupJournalTest(mock)
	defer cleanup()

	out, err := executeCommand("journal", "action")

	assert.NoError(t, err)
	assert.Contains(t, out, "DA 2024-03-05.md")
}

func TestJournalReviewCmd(t *testing.T) {
	mock := &mockJournalManager{noteRes: &driving.NoteResult{
		Path: "/vault/03_daily/_daily-action/DA 2024-03-04.md", Updated: true,
	}}
	cleanup := setupJournalTest(mock)
	defer cleanup()

	out, err := executeCommand("journal", "review")

	assert.NoError(t, err)
	assert.Contains(t, out, "added review section")
}
