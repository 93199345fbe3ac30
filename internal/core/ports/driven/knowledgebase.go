package driven

import (
	"context"
	"time"
)

// HubPage is a page in the Notion Knowledge Hub database.
type HubPage struct {
	// ID is the Notion page identifier.
	ID string

	// Title is the page's Name property.
	Title string

	// URL is the page's URL property, when set.
	URL string

	// Created is the page creation time.
	Created time.Time
}

// KnowledgeBase provides access to the Notion Knowledge Hub database.
type KnowledgeBase interface {
	// PagesCreatedAfter returns pages created after the given instant,
	// oldest first.
	PagesCreatedAfter(ctx context.Context, after time.Time) ([]HubPage, error)

	// PageMarkdown renders a page's block tree to Markdown.
	PageMarkdown(ctx context.Context, pageID string) (string, error)

	// URLExists reports whether any page in the database already carries
	// the given URL property.
	URLExists(ctx context.Context, url string) (bool, error)

	// CreateBookmark adds a page with a Name and URL property.
	CreateBookmark(ctx context.Context, title, url string) error
}
