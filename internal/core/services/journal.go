package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/frontmatter"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Ensure JournalService implements the interface.
var _ driving.JournalManager = (*JournalService)(nil)

// experiencesProperty is the journal front-matter list that links the day's
// experience notes.
const experiencesProperty = "_Experiences / Events / Meetings / Sessions"

// dailyActionTemplate seeds tomorrow's daily action note with the morning
// prompts.
const dailyActionTemplate = "Vision Objective 1:\n" +
	"Vision Objective 2:\n" +
	"Vision Objective 3:\n\n" +
	"One thing that you can do to improve today:\n\n" +
	"Mindset Objective:\n" +
	"Body Objective:\n" +
	"Social Objective:\n\n" +
	"Gratitude:\n\n" +
	"---\n\n" +
	"What is the highest leverage thing that you can do today to move the ball forward on what you need to?\n" +
	"If you only had 2 hours to work today, what would you need to get done to move forward towards your goals or master vision?"

// dailyReviewSection is prepended to the daily action note in the evening.
const dailyReviewSection = "Daily Review:\n\n" +
	"Win 1:\n\n" +
	"Win 2 (What part of today was easiest, most enjoyable, and most effective in the direction of my dream reality?):\n\n" +
	"Win 3 (What proof from today demonstrates that my Master Vision is unfolding before my eyes? And how did I create this win for myself?):\n\n" +
	"What did not go well today...\n" +
	"Be as brief or as detailed as you like:\n\n" +
	"What concrete steps will you take to improve and make your life easier?\n\n" +
	"Lastly, what are a few things you are grateful for?\n" +
	"Think of something new or different than usual!\n\n" +
	"---\n\n"

// JournalService manages the daily journal and daily action notes.
type JournalService struct {
	vault     driven.VaultStore
	vaultPath string
	loc       *time.Location
}

// NewJournalService creates a journal service rooted at the vault path.
// Dates are interpreted in loc, the vault owner's timezone.
func NewJournalService(vault driven.VaultStore, vaultPath string, loc *time.Location) *JournalService {
	return &JournalService{vault: vault, vaultPath: vaultPath, loc: loc}
}

// CreateTomorrow creates tomorrow's empty journal note under
// _Daily/_Journal. A journal that already exists is left untouched.
func (s *JournalService) CreateTomorrow(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	folder, err := s.journalFolder(ctx)
	if err != nil {
		return nil, err
	}

	tomorrow := domain.DateOnly(today.In(s.loc)).AddDate(0, 0, 1)
	path := folder.Path + "/" + domain.JournalFilename(tomorrow)

	exists, err := s.vault.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", path, err)
	}
	if exists {
		logger.Info("journal %s already exists", path)
		return &driving.NoteResult{Path: path}, nil
	}

	if err := s.vault.Upload(ctx, path, nil, false); err != nil {
		return nil, fmt.Errorf("creating journal: %w", err)
	}
	logger.Info("created journal %s", path)
	return &driving.NoteResult{Path: path, Created: true}, nil
}

// UpdateTodayProperties patches today's journal front matter with the Date
// and Day of Week properties, preserving key order and unknown keys.
func (s *JournalService) UpdateTodayProperties(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	day := domain.DateOnly(today.In(s.loc))
	entry, err := s.findJournal(ctx, day)
	if err != nil {
		return nil, err
	}

	raw, err := s.vault.Download(ctx, entry.Path)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", entry.Path, err)
	}
	doc, err := frontmatter.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", entry.Path, err)
	}

	date := day.Format("2006-01-02")
	weekday := day.Weekday().String()
	curDate, _ := doc.Get("Date")
	curDay, _ := doc.Get("Day of Week")
	if curDate == date && curDay == weekday {
		logger.Info("journal %s already carries today's properties", entry.Path)
		return &driving.NoteResult{Path: entry.Path}, nil
	}

	doc.Set("Date", date)
	doc.Set("Day of Week", weekday)
	out, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", entry.Path, err)
	}
	if err := s.vault.Upload(ctx, entry.Path, []byte(out), true); err != nil {
		return nil, fmt.Errorf("updating %s: %w", entry.Path, err)
	}
	logger.Info("updated journal properties on %s", entry.Path)
	return &driving.NoteResult{Path: entry.Path, Updated: true}, nil
}

// RelateExperiences links experience notes modified inside the lookback
// window into today's journal front matter.
func (s *JournalService) RelateExperiences(ctx context.Context, today time.Time, lookback time.Duration) (*driving.RelateResult, error) {
	experiences, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderExperiences)
	if err != nil {
		return nil, err
	}
	entries, err := s.vault.ListFolder(ctx, experiences.Path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", experiences.Path, err)
	}

	cutoff := today.In(s.loc).Add(-lookback)
	var recent []driven.Entry
	for _, e := range markdownFiles(entries) {
		if !e.Modified.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	if len(recent) == 0 {
		logger.Info("no experience notes modified since %s", cutoff.Format(time.RFC3339))
		return &driving.RelateResult{}, nil
	}

	day := domain.DateOnly(today.In(s.loc))
	journal, err := s.findJournal(ctx, day)
	if err != nil {
		return nil, err
	}
	raw, err := s.vault.Download(ctx, journal.Path)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", journal.Path, err)
	}
	doc, err := frontmatter.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", journal.Path, err)
	}
	if !hasKey(doc, experiencesProperty) {
		return nil, fmt.Errorf("%w: %q in %s", domain.ErrPropertyMissing, experiencesProperty, journal.Path)
	}

	result := &driving.RelateResult{JournalPath: journal.Path}
	for _, e := range recent {
		name := strings.TrimSuffix(e.Name, ".md")
		if doc.AppendToList(experiencesProperty, "[["+name+"]]") {
			result.Linked = append(result.Linked, name)
		} else {
			result.Skipped = append(result.Skipped, name)
		}
	}
	if len(result.Linked) == 0 {
		logger.Info("all recent experience notes already linked in %s", journal.Path)
		return result, nil
	}

	out, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", journal.Path, err)
	}
	if err := s.vault.Upload(ctx, journal.Path, []byte(out), true); err != nil {
		return nil, fmt.Errorf("updating %s: %w", journal.Path, err)
	}
	logger.Info("linked %d experience note(s) into %s", len(result.Linked), journal.Path)
	return result, nil
}

// CreateDailyAction creates tomorrow's daily action note from the
// structured template.
func (s *JournalService) CreateDailyAction(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	folder, err := s.dailyActionFolder(ctx)
	if err != nil {
		return nil, err
	}

	tomorrow := domain.DateOnly(today.In(s.loc)).AddDate(0, 0, 1)
	path := folder.Path + "/" + domain.DailyActionFilename(tomorrow)

	exists, err := s.vault.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", path, err)
	}
	if exists {
		logger.Info("daily action note %s already exists", path)
		return &driving.NoteResult{Path: path}, nil
	}

	if err := s.vault.Upload(ctx, path, []byte(dailyActionTemplate), false); err != nil {
		return nil, fmt.Errorf("creating daily action note: %w", err)
	}
	logger.Info("created daily action note %s", path)
	return &driving.NoteResult{Path: path, Created: true}, nil
}

// AddDailyReview prepends the daily review section to today's daily action
// note. A note that already opens with the section is left untouched, so an
// accidental second run cannot double it.
func (s *JournalService) AddDailyReview(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	folder, err := s.dailyActionFolder(ctx)
	if err != nil {
		return nil, err
	}

	day := domain.DateOnly(today.In(s.loc))
	path := folder.Path + "/" + domain.DailyActionFilename(day)
	raw, err := s.vault.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("downloading today's daily action note: %w", err)
	}

	content := string(raw)
	if strings.HasPrefix(content, "Daily Review:") {
		logger.Info("daily review section already present in %s", path)
		return &driving.NoteResult{Path: path}, nil
	}

	if err := s.vault.Upload(ctx, path, []byte(dailyReviewSection+content), true); err != nil {
		return nil, fmt.Errorf("updating %s: %w", path, err)
	}
	logger.Info("added daily review section to %s", path)
	return &driving.NoteResult{Path: path, Updated: true}, nil
}

// journalFolder resolves _Daily/_Journal.
func (s *JournalService) journalFolder(ctx context.Context) (driven.Entry, error) {
	daily, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderDaily)
	if err != nil {
		return driven.Entry{}, err
	}
	return findVaultFolder(ctx, s.vault, daily.Path, domain.FolderJournal)
}

// dailyActionFolder resolves _Daily/_Daily-Action.
func (s *JournalService) dailyActionFolder(ctx context.Context) (driven.Entry, error) {
	daily, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderDaily)
	if err != nil {
		return driven.Entry{}, err
	}
	return findVaultFolder(ctx, s.vault, daily.Path, domain.FolderDailyAction)
}

// findJournal locates the journal note for day, matching its filename
// case-insensitively so hand-renamed notes still resolve.
func (s *JournalService) findJournal(ctx context.Context, day time.Time) (driven.Entry, error) {
	folder, err := s.journalFolder(ctx)
	if err != nil {
		return driven.Entry{}, err
	}
	entries, err := s.vault.ListFolder(ctx, folder.Path)
	if err != nil {
		return driven.Entry{}, fmt.Errorf("listing %s: %w", folder.Path, err)
	}
	entry, ok := fileNamed(entries, domain.JournalFilename(day))
	if !ok {
		return driven.Entry{}, fmt.Errorf("%w: journal for %s under %s",
			domain.ErrNotFound, day.Format("2006-01-02"), folder.Path)
	}
	return entry, nil
}

// hasKey reports whether the front matter carries key, as a scalar or a
// sequence.
func hasKey(doc *frontmatter.Doc, key string) bool {
	if _, ok := doc.Get(key); ok {
		return true
	}
	return doc.List(key) != nil
}
