package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Ensure TokenService implements the interface.
var _ driving.TokenRefresher = (*TokenService)(nil)

// TokenService refreshes the short-lived OAuth access tokens and stores
// them in the cache, where every other automation reads them.
type TokenService struct {
	provider driven.TokenProvider
	cache    driven.Cache
}

// NewTokenService creates a token refresher.
func NewTokenService(provider driven.TokenProvider, cache driven.Cache) *TokenService {
	return &TokenService{provider: provider, cache: cache}
}

// RefreshDropbox refreshes the Dropbox access token.
func (s *TokenService) RefreshDropbox(ctx context.Context) error {
	token, err := s.provider.RefreshDropbox(ctx)
	if err != nil {
		return fmt.Errorf("refreshing Dropbox token: %w", err)
	}
	if err := s.cache.Set(ctx, domain.KeyDropboxAccessToken, token); err != nil {
		return fmt.Errorf("storing %s: %w", domain.KeyDropboxAccessToken, err)
	}
	logger.Info("stored refreshed Dropbox access token")
	return nil
}

// RefreshGmail refreshes the Gmail access token using the stored refresh
// token. A missing refresh token means the one-time authorisation was never
// seeded.
func (s *TokenService) RefreshGmail(ctx context.Context) error {
	refreshToken, err := s.cache.Get(ctx, domain.KeyGmailRefreshToken)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrAuthRequired, domain.KeyGmailRefreshToken)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", domain.KeyGmailRefreshToken, err)
	}

	token, err := s.provider.RefreshGmail(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("refreshing Gmail token: %w", err)
	}
	if err := s.cache.Set(ctx, domain.KeyGmailAccessToken, token); err != nil {
		return fmt.Errorf("storing %s: %w", domain.KeyGmailAccessToken, err)
	}
	logger.Info("stored refreshed Gmail access token")
	return nil
}
