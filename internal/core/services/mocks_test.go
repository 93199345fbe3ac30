package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
)

// fakeEntry backs one path in the fake vault.
type fakeEntry struct {
	name     string // display name, cased
	folder   bool
	content  []byte
	modified time.Time
	link     string
}

// fakeVault is an in-memory VaultStore. Keys are lowercased the way Dropbox
// reports path_lower, and lookups normalise the same way, matching the real
// store's case-insensitive paths.
type fakeVault struct {
	entries map[string]*fakeEntry
	moves   [][2]string
	uploads []string
}

func newFakeVault(root string) *fakeVault {
	v := &fakeVault{entries: make(map[string]*fakeEntry)}
	v.addFolder(root)
	return v
}

func (v *fakeVault) addFolder(p string) {
	v.entries[strings.ToLower(p)] = &fakeEntry{name: path.Base(p), folder: true}
}

func (v *fakeVault) addFile(p, content string, modified time.Time) {
	v.entries[strings.ToLower(p)] = &fakeEntry{
		name:     path.Base(p),
		content:  []byte(content),
		modified: modified,
	}
}

func (v *fakeVault) content(p string) string {
	e := v.entries[strings.ToLower(p)]
	if e == nil {
		return ""
	}
	return string(e.content)
}

func (v *fakeVault) has(p string) bool {
	_, ok := v.entries[strings.ToLower(p)]
	return ok
}

func (v *fakeVault) toEntry(key string) driven.Entry {
	e := v.entries[key]
	return driven.Entry{
		Name:        e.name,
		Path:        key,
		PathDisplay: key,
		IsFolder:    e.folder,
		Modified:    e.modified,
	}
}

func (v *fakeVault) ListFolder(_ context.Context, p string) ([]driven.Entry, error) {
	p = strings.ToLower(p)
	parent, ok := v.entries[p]
	if !ok || !parent.folder {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	var out []driven.Entry
	for key := range v.entries {
		if strings.HasPrefix(key, p+"/") && !strings.Contains(key[len(p)+1:], "/") {
			out = append(out, v.toEntry(key))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (v *fakeVault) ListFolderRecursive(_ context.Context, p string) ([]driven.Entry, error) {
	p = strings.ToLower(p)
	parent, ok := v.entries[p]
	if !ok || !parent.folder {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	var out []driven.Entry
	for key := range v.entries {
		if strings.HasPrefix(key, p+"/") {
			out = append(out, v.toEntry(key))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (v *fakeVault) Exists(_ context.Context, p string) (bool, error) {
	return v.has(p), nil
}

func (v *fakeVault) Download(_ context.Context, p string) ([]byte, error) {
	e, ok := v.entries[strings.ToLower(p)]
	if !ok || e.folder {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	return append([]byte(nil), e.content...), nil
}

func (v *fakeVault) Upload(_ context.Context, p string, content []byte, overwrite bool) error {
	key := strings.ToLower(p)
	if _, ok := v.entries[key]; ok && !overwrite {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, p)
	}
	v.entries[key] = &fakeEntry{
		name:     path.Base(p),
		content:  append([]byte(nil), content...),
		modified: time.Now(),
	}
	v.uploads = append(v.uploads, key)
	return nil
}

func (v *fakeVault) CreateFolder(_ context.Context, p string) error {
	key := strings.ToLower(p)
	if e, ok := v.entries[key]; ok && !e.folder {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, p)
	}
	v.entries[key] = &fakeEntry{name: path.Base(p), folder: true}
	return nil
}

func (v *fakeVault) Move(_ context.Context, fromPath, toPath string) error {
	from := strings.ToLower(fromPath)
	e, ok := v.entries[from]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, fromPath)
	}
	delete(v.entries, from)
	moved := *e
	moved.name = path.Base(toPath)
	v.entries[strings.ToLower(toPath)] = &moved
	v.moves = append(v.moves, [2]string{from, strings.ToLower(toPath)})
	return nil
}

func (v *fakeVault) SharedLink(_ context.Context, p string) (string, error) {
	key := strings.ToLower(p)
	e, ok := v.entries[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, p)
	}
	if e.link == "" {
		e.link = "https://www.dropbox.com/s/fake/" + path.Base(key)
	}
	return e.link, nil
}

// fakeCache is an in-memory Cache.
type fakeCache struct {
	values map[string]string
	locked map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), locked: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key, value string) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) AcquireLock(_ context.Context, key string, _ time.Duration) (string, error) {
	if _, held := c.locked[key]; held {
		return "", fmt.Errorf("%w: %s", domain.ErrLockHeld, key)
	}
	c.locked[key] = "token-" + key
	return c.locked[key], nil
}

func (c *fakeCache) ReleaseLock(_ context.Context, key, token string) error {
	if c.locked[key] == token {
		delete(c.locked, key)
	}
	return nil
}

// fakeKB is an in-memory KnowledgeBase.
type fakeKB struct {
	pages     []driven.HubPage
	markdown  map[string]string
	urls      map[string]bool
	bookmarks []driven.HubPage
	gotAfter  time.Time
}

func newFakeKB() *fakeKB {
	return &fakeKB{markdown: make(map[string]string), urls: make(map[string]bool)}
}

func (k *fakeKB) PagesCreatedAfter(_ context.Context, after time.Time) ([]driven.HubPage, error) {
	k.gotAfter = after
	var out []driven.HubPage
	for _, p := range k.pages {
		if p.Created.After(after) || p.Created.IsZero() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (k *fakeKB) PageMarkdown(_ context.Context, pageID string) (string, error) {
	md, ok := k.markdown[pageID]
	if !ok {
		return "", fmt.Errorf("%w: page %s", domain.ErrNotFound, pageID)
	}
	return md, nil
}

func (k *fakeKB) URLExists(_ context.Context, url string) (bool, error) {
	return k.urls[url], nil
}

func (k *fakeKB) CreateBookmark(_ context.Context, title, url string) error {
	k.bookmarks = append(k.bookmarks, driven.HubPage{Title: title, URL: url})
	k.urls[url] = true
	return nil
}

// fakeMailbox returns canned search results.
type fakeMailbox struct {
	messages []driven.EmailMessage
	gotQuery string
}

func (m *fakeMailbox) Search(_ context.Context, query string) ([]driven.EmailMessage, error) {
	m.gotQuery = query
	return m.messages, nil
}

// fakeLLM returns a canned reply and records requests across calls.
type fakeLLM struct {
	reply       string
	err         error
	gotMessages []driven.ChatMessage
	gotOpts     driven.ChatOptions
}

func (l *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	l.gotMessages = append(l.gotMessages, messages...)
	l.gotOpts = opts
	return l.reply, l.err
}

func (l *fakeLLM) Ping(context.Context) error { return nil }

// fakeMailer records sent mail.
type fakeMailer struct {
	sent []driven.Email
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg driven.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// fakePrompts serves prompt templates from a map.
type fakePrompts struct {
	prompts map[string]string
}

func newFakePrompts() *fakePrompts {
	return &fakePrompts{prompts: map[string]string{
		driven.PromptMorningCheckIn:      "Plan the day for:\n%s",
		driven.PromptEveningCheckIn:      "Reflect on the day for:\n%s",
		driven.PromptTweetIdeas:          "Tweet ideas from:\n%s",
		driven.PromptEssayIdeas:          "Essay ideas from:\n%s",
		driven.PromptBookRecommendations: "Books to pair with:\n%s",
		driven.PromptWeeklyPrayer:        "A prayer over:\n%s",
	}}
}

func (p *fakePrompts) Load(name string) (string, error) {
	tpl, ok := p.prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return tpl, nil
}

func (p *fakePrompts) Reload() {}

// fakeTokenProvider returns canned tokens.
type fakeTokenProvider struct {
	dropboxToken    string
	gmailToken      string
	err             error
	gotRefreshToken string
}

func (p *fakeTokenProvider) RefreshDropbox(context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.dropboxToken, nil
}

func (p *fakeTokenProvider) RefreshGmail(_ context.Context, refreshToken string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.gotRefreshToken = refreshToken
	return p.gmailToken, nil
}
