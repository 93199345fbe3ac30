package driving

import (
	"context"
	"time"
)

// WeeklyPlanner drives the weekly planning note automations.
type WeeklyPlanner interface {
	// CreateWeek creates the week note for the next Sunday.
	CreateWeek(ctx context.Context, today time.Time) (*NoteResult, error)

	// CreateNewsletter creates the newsletter draft for the Sunday after
	// next.
	CreateNewsletter(ctx context.Context, today time.Time) (*NoteResult, error)

	// CreateWeeklyMap creates the weekly map from its template.
	CreateWeeklyMap(ctx context.Context, today time.Time) (*NoteResult, error)

	// CreateHealthReview creates the next numbered weekly health review.
	CreateHealthReview(ctx context.Context, today time.Time) (*NoteResult, error)
}
