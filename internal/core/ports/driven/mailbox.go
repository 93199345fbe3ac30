package driven

import (
	"context"
	"time"
)

// EmailMessage is a single message returned from a mailbox search.
type EmailMessage struct {
	// ID is the provider's message identifier.
	ID string

	// Subject is the decoded Subject header.
	Subject string

	// Snippet is the provider's short plain-text preview of the body.
	Snippet string

	// Received is when the message arrived.
	Received time.Time
}

// Mailbox searches an email account. Implemented by the Gmail connector.
type Mailbox interface {
	// Search returns the messages matching a provider query string,
	// e.g. `from:x subject:y after:2024/03/01`.
	Search(ctx context.Context, query string) ([]EmailMessage, error)
}
