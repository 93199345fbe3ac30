package driven

import "context"

// TokenProvider performs OAuth refresh-token grants against the providers'
// token endpoints.
type TokenProvider interface {
	// RefreshDropbox exchanges the long-lived Dropbox refresh token for a
	// fresh short-lived access token.
	RefreshDropbox(ctx context.Context) (string, error)

	// RefreshGmail exchanges a Gmail refresh token for a fresh access
	// token using the installed-app client credentials.
	RefreshGmail(ctx context.Context, refreshToken string) (string, error)
}
