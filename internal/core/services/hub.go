package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Ensure HubService implements the interface.
var _ driving.HubSynchroniser = (*HubService)(nil)

// hubSyncDefaultLookback is used when no last-run timestamp is stored yet.
const hubSyncDefaultLookback = 24 * time.Hour

var (
	// youtubeSubject strips the wrapper Gmail puts around shared video
	// titles: `Watch "Title" on YouTube`.
	youtubeSubject = regexp.MustCompile(`^Watch "(.+)" on YouTube$`)

	// firstURLPattern finds the share URL inside a message snippet.
	firstURLPattern = regexp.MustCompile(`https?://\S+`)
)

// HubService keeps the vault's _Knowledge-Hub folder and the Notion
// Knowledge Hub database in step: Notion pages become vault notes, and
// YouTube-share emails become Notion bookmarks.
type HubService struct {
	vault        driven.VaultStore
	kb           driven.KnowledgeBase
	mailbox      driven.Mailbox
	cache        driven.Cache
	vaultPath    string
	savesAddress string
	loc          *time.Location

	now func() time.Time
}

// NewHubService creates a Knowledge Hub synchroniser. savesAddress is the
// sender of the YouTube share emails.
func NewHubService(vault driven.VaultStore, kb driven.KnowledgeBase, mailbox driven.Mailbox, cache driven.Cache, vaultPath, savesAddress string, loc *time.Location) *HubService {
	return &HubService{
		vault:        vault,
		kb:           kb,
		mailbox:      mailbox,
		cache:        cache,
		vaultPath:    vaultPath,
		savesAddress: savesAddress,
		loc:          loc,
		now:          time.Now,
	}
}

// SyncNotion copies Knowledge Hub pages created since the last run into the
// vault as Markdown notes, then advances the last-run timestamp. Notes that
// already exist are skipped, so re-running after a partial failure only
// fills the gaps.
func (s *HubService) SyncNotion(ctx context.Context) (*driving.HubSyncResult, error) {
	hub, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderHub)
	if err != nil {
		return nil, err
	}

	after := s.lastTimestamp(ctx, domain.KeyHubLastRunAt)
	logger.Info("syncing Knowledge Hub pages created after %s", after.Format(time.RFC3339))

	pages, err := s.kb.PagesCreatedAfter(ctx, after)
	if err != nil {
		return nil, fmt.Errorf("querying Knowledge Hub: %w", err)
	}

	// Pages arrive oldest first. Track the creation time of the last page
	// handled so a failure only advances the timestamp past the pages that
	// made it, keeping the failed page in scope for the next run.
	var handled time.Time
	result := &driving.HubSyncResult{}
	for _, page := range pages {
		path := hub.Path + "/" + domain.SanitiseFilename(page.Title) + ".md"
		exists, err := s.vault.Exists(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("probing %s: %w", path, err)
		}
		if exists {
			logger.Info("note for %q already exists, skipping", page.Title)
			result.Skipped = append(result.Skipped, page.Title)
			handled = page.Created
			continue
		}

		body, err := s.kb.PageMarkdown(ctx, page.ID)
		if err != nil {
			if !handled.IsZero() {
				if serr := s.setTimestamp(ctx, domain.KeyHubLastRunAt, handled); serr != nil {
					logger.Warn("%v", serr)
				}
			}
			return result, fmt.Errorf("rendering page %s (%q): %w", page.ID, page.Title, err)
		}
		if err := s.vault.Upload(ctx, path, []byte(s.composeHubNote(page, body)), true); err != nil {
			return nil, fmt.Errorf("uploading %s: %w", path, err)
		}
		logger.Info("synced %q to %s", page.Title, path)
		result.Synced = append(result.Synced, path)
		handled = page.Created
	}

	if err := s.bumpTimestamp(ctx, domain.KeyHubLastRunAt); err != nil {
		return nil, err
	}
	return result, nil
}

// HarvestYouTube turns YouTube-share emails into Knowledge Hub bookmarks,
// deduplicating on the video URL, then advances the last-checked timestamp.
func (s *HubService) HarvestYouTube(ctx context.Context) (*driving.HarvestResult, error) {
	if s.savesAddress == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_SAVES_EMAIL_ADDRESS", domain.ErrMissingEnv)
	}

	last, haveLast := s.storedTimestamp(ctx, domain.KeyYouTubeLastCheckedAt)

	query := fmt.Sprintf("from:%s subject:Watch", s.savesAddress)
	if haveLast {
		// Gmail's after: operator has day granularity; the Received check
		// below does the fine filtering.
		query += " after:" + last.UTC().Format("2006/01/02")
	}
	logger.Info("searching mailbox: %s", query)

	messages, err := s.mailbox.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching mailbox: %w", err)
	}

	result := &driving.HarvestResult{}
	for _, msg := range messages {
		if haveLast && !msg.Received.After(last) {
			continue
		}

		title := cleanYouTubeSubject(msg.Subject)
		url := firstURLPattern.FindString(msg.Snippet)
		if url == "" {
			logger.Warn("no URL in snippet for %q, skipping", title)
			continue
		}

		exists, err := s.kb.URLExists(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", url, err)
		}
		if exists {
			logger.Info("%q already bookmarked, skipping", title)
			result.Skipped = append(result.Skipped, title)
			continue
		}

		if err := s.kb.CreateBookmark(ctx, title, url); err != nil {
			return nil, fmt.Errorf("bookmarking %q: %w", title, err)
		}
		logger.Info("bookmarked %q", title)
		result.Added = append(result.Added, title)
	}

	if err := s.bumpTimestamp(ctx, domain.KeyYouTubeLastCheckedAt); err != nil {
		return nil, err
	}
	return result, nil
}

// composeHubNote wraps a rendered page in the vault's Knowledge Hub front
// matter, linking it to today's journal.
func (s *HubService) composeHubNote(page driven.HubPage, body string) string {
	now := s.now()
	stamp := now.UTC().Format(time.RFC3339)
	journal := now.In(s.loc).Format("Jan 2, 2006")

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "Journal:\n  - \"[[%s]]\"\n", journal)
	fmt.Fprintf(&b, "created time: %s\n", stamp)
	fmt.Fprintf(&b, "modified time: %s\n", stamp)
	b.WriteString("key words:\n")
	b.WriteString("People:\n")
	fmt.Fprintf(&b, "URL: %s\n", page.URL)
	b.WriteString("Notes+Ideas:\n")
	b.WriteString("Experiences:\n")
	b.WriteString("Tags:\n")
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "## %s\n\n%s\n", page.Title, body)
	return b.String()
}

// lastTimestamp reads a stored RFC 3339 timestamp, defaulting to the
// standard lookback when unset or unparseable.
func (s *HubService) lastTimestamp(ctx context.Context, key string) time.Time {
	if t, ok := s.storedTimestamp(ctx, key); ok {
		return t
	}
	fallback := s.now().UTC().Add(-hubSyncDefaultLookback)
	logger.Info("no %s stored, defaulting to %s", key, fallback.Format(time.RFC3339))
	return fallback
}

func (s *HubService) storedTimestamp(ctx context.Context, key string) (time.Time, bool) {
	value, err := s.cache.Get(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return time.Time{}, false
	}
	if err != nil {
		logger.Warn("reading %s: %v", key, err)
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		logger.Warn("parsing %s=%q: %v", key, value, err)
		return time.Time{}, false
	}
	return t, true
}

func (s *HubService) bumpTimestamp(ctx context.Context, key string) error {
	return s.setTimestamp(ctx, key, s.now())
}

func (s *HubService) setTimestamp(ctx context.Context, key string, t time.Time) error {
	stamp := t.UTC().Format(time.RFC3339)
	if err := s.cache.Set(ctx, key, stamp); err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	logger.Debug("advanced %s to %s", key, stamp)
	return nil
}

// cleanYouTubeSubject unwraps the shared video title from the Gmail
// subject, returning the subject unchanged when it does not match.
func cleanYouTubeSubject(subject string) string {
	if m := youtubeSubject.FindStringSubmatch(subject); m != nil {
		return m[1]
	}
	return subject
}
