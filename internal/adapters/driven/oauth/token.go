// Package oauth performs refresh-token grants against the Dropbox and
// Google token endpoints.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

const (
	// DropboxTokenURL is the Dropbox OAuth2 token endpoint.
	DropboxTokenURL = "https://api.dropbox.com/oauth2/token"

	// GoogleTokenURL is the Google OAuth2 token endpoint.
	GoogleTokenURL = "https://oauth2.googleapis.com/token"
)

// TokenResponse holds the response from a token grant.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	Expiry      time.Time `json:"-"`
}

// Provider implements driven.TokenProvider. The Dropbox app credentials
// come from the environment; the Google installed-app credentials from a
// downloaded JSON file.
type Provider struct {
	dropboxKey          string
	dropboxSecret       string
	dropboxRefreshToken string

	googleCredentialsPath string

	// Endpoints are fields so tests can point at a local server.
	DropboxURL string
	GoogleURL  string

	client *http.Client
}

// NewProvider creates a Provider with the production token endpoints.
func NewProvider(dropboxKey, dropboxSecret, dropboxRefreshToken, googleCredentialsPath string) *Provider {
	return &Provider{
		dropboxKey:            dropboxKey,
		dropboxSecret:         dropboxSecret,
		dropboxRefreshToken:   dropboxRefreshToken,
		googleCredentialsPath: googleCredentialsPath,
		DropboxURL:            DropboxTokenURL,
		GoogleURL:             GoogleTokenURL,
		client:                &http.Client{Timeout: 30 * time.Second},
	}
}

// RefreshDropbox exchanges the long-lived refresh token for a fresh access
// token.
func (p *Provider) RefreshDropbox(ctx context.Context) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", p.dropboxRefreshToken)
	data.Set("client_id", p.dropboxKey)
	data.Set("client_secret", p.dropboxSecret)

	token, err := p.grant(ctx, p.DropboxURL, data)
	if err != nil {
		return "", fmt.Errorf("dropbox: %w", err)
	}
	logger.Info("refreshed Dropbox access token (expires in %ds)", token.ExpiresIn)
	return token.AccessToken, nil
}

// RefreshGmail exchanges a Gmail refresh token for a fresh access token
// using the installed-app client credentials.
func (p *Provider) RefreshGmail(ctx context.Context, refreshToken string) (string, error) {
	creds, err := LoadInstalledCredentials(p.googleCredentialsPath)
	if err != nil {
		return "", fmt.Errorf("gmail: %w", err)
	}

	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", creds.ClientID)
	data.Set("client_secret", creds.ClientSecret)

	token, err := p.grant(ctx, p.GoogleURL, data)
	if err != nil {
		return "", fmt.Errorf("gmail: %w", err)
	}
	logger.Info("refreshed Gmail access token (expires in %ds)", token.ExpiresIn)
	return token.AccessToken, nil
}

func (p *Provider) grant(ctx context.Context, tokenURL string, data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%w: %s - %s", domain.ErrTokenRefreshFailed, errResp.Error, errResp.Description)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrTokenRefreshFailed, resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token", domain.ErrTokenRefreshFailed)
	}

	if tokenResp.ExpiresIn > 0 {
		tokenResp.Expiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	}
	return &tokenResp, nil
}

// InstalledCredentials is the client block of a Google installed-app
// credentials file.
type InstalledCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// LoadInstalledCredentials reads the "installed" block from a downloaded
// Google credentials JSON file.
func LoadInstalledCredentials(path string) (*InstalledCredentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	var file struct {
		Installed *InstalledCredentials `json:"installed"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing credentials file %s: %w", path, err)
	}
	if file.Installed == nil || file.Installed.ClientID == "" {
		return nil, fmt.Errorf("credentials file %s has no installed client", path)
	}
	return file.Installed, nil
}
