// Package gmail implements the mailbox port on the Gmail API.
package gmail

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

const (
	userID       = "me"
	pageSize     = 100
	formatHeader = "metadata"
)

// Client implements driven.Mailbox on the Gmail API.
type Client struct {
	svc *gmailapi.Service
}

// New creates a Client authenticated by the given token source.
func New(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Search returns messages matching a Gmail query string, draining
// pagination. Each hit is fetched with metadata format to decode the
// Subject header and arrival time.
func (c *Client) Search(ctx context.Context, query string) ([]driven.EmailMessage, error) {
	var out []driven.EmailMessage
	pageToken := ""
	for {
		call := c.svc.Users.Messages.List(userID).
			Q(query).MaxResults(pageSize).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		res, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("searching gmail for %q: %w", query, err)
		}

		for _, ref := range res.Messages {
			msg, err := c.svc.Users.Messages.Get(userID, ref.Id).
				Format(formatHeader).MetadataHeaders("Subject").Context(ctx).Do()
			if err != nil {
				return nil, fmt.Errorf("fetching message %s: %w", ref.Id, err)
			}
			out = append(out, ToEmailMessage(msg))
		}

		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	logger.Debug("gmail search %q returned %d messages", query, len(out))
	return out, nil
}
