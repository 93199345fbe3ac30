package driving

import (
	"context"
	"time"
)

// NoteResult reports what a note operation did.
type NoteResult struct {
	// Path is the vault path of the note.
	Path string

	// Created is true when the note was newly created.
	Created bool

	// Updated is true when an existing note was modified.
	Updated bool
}

// JournalManager drives the daily journal and daily-action automations.
type JournalManager interface {
	// CreateTomorrow creates tomorrow's empty journal note.
	CreateTomorrow(ctx context.Context, today time.Time) (*NoteResult, error)

	// UpdateTodayProperties patches today's journal front matter with the
	// Date and Day of Week properties.
	UpdateTodayProperties(ctx context.Context, today time.Time) (*NoteResult, error)

	// RelateExperiences links recently modified experience notes into the
	// matching day's journal.
	RelateExperiences(ctx context.Context, today time.Time, lookback time.Duration) (*RelateResult, error)

	// CreateDailyAction creates tomorrow's daily-action note from the
	// structured template.
	CreateDailyAction(ctx context.Context, today time.Time) (*NoteResult, error)

	// AddDailyReview prepends the daily-review section to today's
	// daily-action note.
	AddDailyReview(ctx context.Context, today time.Time) (*NoteResult, error)
}

// RelateResult reports which experience notes were linked into a journal.
type RelateResult struct {
	// JournalPath is the journal note that received the links.
	JournalPath string

	// Linked lists the note names that were added.
	Linked []string

	// Skipped lists the note names already present.
	Skipped []string
}
