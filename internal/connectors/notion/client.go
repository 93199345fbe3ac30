// Package notion implements the Knowledge Hub port on the Notion API.
package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Property names in the Knowledge Hub database.
const (
	propName = "Name"
	propURL  = "URL"
)

// Client implements driven.KnowledgeBase against one Notion database.
type Client struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
}

// New creates a Client for the given integration token and database.
func New(token, databaseID string) *Client {
	return &Client{
		api:        notionapi.NewClient(notionapi.Token(token)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// PagesCreatedAfter returns pages created after the given instant, oldest
// first, draining pagination.
func (c *Client) PagesCreatedAfter(ctx context.Context, after time.Time) ([]driven.HubPage, error) {
	req := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.TimestampFilter{
			Timestamp: notionapi.TimestampCreated,
			CreatedTime: &notionapi.DateFilterCondition{
				After: (*notionapi.Date)(&after),
			},
		},
		Sorts: []notionapi.SortObject{
			{Timestamp: notionapi.TimestampCreated, Direction: notionapi.SortOrderASC},
		},
	}

	var pages []driven.HubPage
	for {
		res, err := c.api.Database.Query(ctx, c.databaseID, req)
		if err != nil {
			return nil, fmt.Errorf("querying knowledge hub: %w", err)
		}
		for i := range res.Results {
			pages = append(pages, toHubPage(&res.Results[i]))
		}
		if !res.HasMore {
			break
		}
		req.StartCursor = res.NextCursor
	}

	logger.Debug("found %d knowledge hub pages created after %s",
		len(pages), after.Format(time.RFC3339))
	return pages, nil
}

// urlPropertyFilter marshals the url filter condition the client library
// does not model. Embedding PropertyFilter keeps the Filter interface
// satisfied and inlines the property name.
type urlPropertyFilter struct {
	notionapi.PropertyFilter
	URL *notionapi.TextFilterCondition `json:"url,omitempty"`
}

// URLExists reports whether any page already carries the given URL.
func (c *Client) URLExists(ctx context.Context, url string) (bool, error) {
	res, err := c.api.Database.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: urlPropertyFilter{
			PropertyFilter: notionapi.PropertyFilter{Property: propURL},
			URL:            &notionapi.TextFilterCondition{Equals: url},
		},
		PageSize: 1,
	})
	if err != nil {
		return false, fmt.Errorf("querying knowledge hub by URL: %w", err)
	}
	return len(res.Results) > 0, nil
}

// CreateBookmark adds a page with Name and URL properties.
func (c *Client) CreateBookmark(ctx context.Context, title, url string) error {
	_, err := c.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: c.databaseID,
		},
		Properties: notionapi.Properties{
			propName: notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: title}},
				},
			},
			propURL: notionapi.URLProperty{URL: url},
		},
	})
	if err != nil {
		return fmt.Errorf("creating knowledge hub page %q: %w", title, err)
	}
	logger.Info("created knowledge hub page %q", title)
	return nil
}

// PageMarkdown renders a page's block tree to Markdown.
func (c *Client) PageMarkdown(ctx context.Context, pageID string) (string, error) {
	md, err := renderBlocks(ctx, c, notionapi.BlockID(pageID), 0)
	if err != nil {
		return "", fmt.Errorf("rendering page %s: %w", pageID, err)
	}
	return md, nil
}

// children lists a block's child blocks, draining pagination.
func (c *Client) children(ctx context.Context, id notionapi.BlockID) ([]notionapi.Block, error) {
	var blocks []notionapi.Block
	pagination := &notionapi.Pagination{PageSize: 100}
	for {
		res, err := c.api.Block.GetChildren(ctx, id, pagination)
		if err != nil {
			return nil, fmt.Errorf("fetching children of block %s: %w", id, err)
		}
		blocks = append(blocks, res.Results...)
		if !res.HasMore {
			return blocks, nil
		}
		pagination.StartCursor = notionapi.Cursor(res.NextCursor)
	}
}

func toHubPage(p *notionapi.Page) driven.HubPage {
	page := driven.HubPage{
		ID:      p.ID.String(),
		Created: p.CreatedTime,
	}
	if title, ok := p.Properties[propName].(*notionapi.TitleProperty); ok {
		page.Title = plainText(title.Title)
	}
	if url, ok := p.Properties[propURL].(*notionapi.URLProperty); ok {
		page.URL = url.URL
	}
	return page
}

func plainText(rts []notionapi.RichText) string {
	var out string
	for _, rt := range rts {
		out += rt.PlainText
	}
	return out
}
