// Package google adapts the Redis-held Gmail access token to the oauth2
// TokenSource the Google API clients expect.
package google

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
)

// TokenSourceAdapter serves the access token the cron token refresher
// keeps in the cache. It never refreshes: cron owns the refresh schedule.
type TokenSourceAdapter struct {
	cache driven.Cache
	key   string
	ctx   context.Context
}

// NewTokenSource creates an oauth2.TokenSource reading the access token
// stored under key. Use it with option.WithTokenSource() when creating
// Google API services.
func NewTokenSource(ctx context.Context, cache driven.Cache, key string) oauth2.TokenSource {
	return &TokenSourceAdapter{cache: cache, key: key, ctx: ctx}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.cache.Get(t.ctx, t.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no token under %s", domain.ErrAuthRequired, t.key)
		}
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
