package driving

import "context"

// MoveProposal suggests a destination for a loose vault-root note.
type MoveProposal struct {
	// Name is the note's file name.
	Name string

	// FromPath is the note's current vault path.
	FromPath string

	// ToPath is the proposed destination path.
	ToPath string

	// Category names the rule that matched, e.g. "journal", "weekly".
	Category string
}

// Organiser drives the vault-root tidy-up.
type Organiser interface {
	// Plan lists loose Markdown files at the vault root with proposed
	// destinations. Pattern filters by glob; limit caps the count
	// (0 means no cap).
	Plan(ctx context.Context, limit int, pattern string) ([]MoveProposal, error)

	// Apply executes one proposal.
	Apply(ctx context.Context, p MoveProposal) error
}
