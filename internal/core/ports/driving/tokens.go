package driving

import "context"

// TokenRefresher drives the OAuth token refresh automations.
type TokenRefresher interface {
	// RefreshDropbox refreshes the Dropbox access token and stores it.
	RefreshDropbox(ctx context.Context) error

	// RefreshGmail refreshes the Gmail access token and stores it.
	RefreshGmail(ctx context.Context) error
}
