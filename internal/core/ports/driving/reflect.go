package driving

import (
	"context"
	"time"
)

// ReflectionResult reports a reflection email.
type ReflectionResult struct {
	// Subject is the subject line of the sent email.
	Subject string

	// SourcePath is the vault note the reflection was drawn from.
	SourcePath string
}

// DigestResult reports a writing digest email.
type DigestResult struct {
	// Subject is the subject line of the sent email.
	Subject string

	// Notes lists the note names included in the digest.
	Notes []string
}

// Reflector drives the GPT-assisted reflection emails.
type Reflector interface {
	// Morning emails a plan for the day drawn from the latest
	// daily-action note's vision objective.
	Morning(ctx context.Context, today time.Time) (*ReflectionResult, error)

	// Evening emails an end-of-day reflection on the same objective.
	Evening(ctx context.Context, today time.Time) (*ReflectionResult, error)

	// TweetIdeas emails tweet ideas drawn from today's journal entry.
	TweetIdeas(ctx context.Context, today time.Time) (*ReflectionResult, error)

	// EssayIdeas emails essay ideas and book recommendations drawn from
	// today's journal entry.
	EssayIdeas(ctx context.Context, today time.Time) (*ReflectionResult, error)

	// WeeklyPrayer emails a prayer composed from this week's weekly map.
	WeeklyPrayer(ctx context.Context, today time.Time) (*ReflectionResult, error)

	// WritingDigest emails links to randomly chosen writing notes.
	WritingDigest(ctx context.Context, count int) (*DigestResult, error)
}
