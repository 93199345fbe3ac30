package services

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Ensure ReflectionService implements the interface.
var _ driving.Reflector = (*ReflectionService)(nil)

// Models per reflection. The morning plan is cheap and formulaic; the
// evening reflection and the writing ideas get the stronger model, and the
// weekly prayer the small one.
const (
	morningModel = "gpt-3.5-turbo"
	eveningModel = "gpt-4o"
	ideasModel   = "gpt-4o"
	prayerModel  = "gpt-4o-mini"
)

// DefaultDigestCount is how many writing notes a digest includes when the
// caller does not say.
const DefaultDigestCount = 5

// visionSection matches the daily action note's objective block, from the
// first vision objective through the closing rule.
var visionSection = regexp.MustCompile(`(?s)Vision Objective 1:.*?---`)

// ReflectionService emails GPT-assisted check-ins drawn from the latest
// daily action note, plus the random writing digest.
type ReflectionService struct {
	vault     driven.VaultStore
	llm       driven.LLMService
	mailer    driven.Mailer
	prompts   driven.PromptStore
	vaultPath string
	vaultName string
	loc       *time.Location

	now func() time.Time
}

// NewReflectionService creates a reflector. vaultName is the Obsidian vault
// name used in deep links.
func NewReflectionService(vault driven.VaultStore, llm driven.LLMService, mailer driven.Mailer, prompts driven.PromptStore, vaultPath, vaultName string, loc *time.Location) *ReflectionService {
	return &ReflectionService{
		vault:     vault,
		llm:       llm,
		mailer:    mailer,
		prompts:   prompts,
		vaultPath: vaultPath,
		vaultName: vaultName,
		loc:       loc,
		now:       time.Now,
	}
}

// Morning emails a plan for the day drawn from the latest daily action
// note's vision objectives.
func (s *ReflectionService) Morning(ctx context.Context, today time.Time) (*driving.ReflectionResult, error) {
	return s.checkIn(ctx, today, driven.PromptMorningCheckIn, morningModel, "AM")
}

// Evening emails an end-of-day reflection on the same objectives.
func (s *ReflectionService) Evening(ctx context.Context, today time.Time) (*driving.ReflectionResult, error) {
	return s.checkIn(ctx, today, driven.PromptEveningCheckIn, eveningModel, "PM")
}

func (s *ReflectionService) checkIn(ctx context.Context, today time.Time, promptName, model, meridiem string) (*driving.ReflectionResult, error) {
	source, content, err := s.latestDailyAction(ctx)
	if err != nil {
		return nil, err
	}
	section, err := extractVisionSection(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source.Path, err)
	}

	reply, err := s.promptedChat(ctx, promptName, model, section)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Daily Vision %s Check In (%s)",
		meridiem, today.In(s.loc).Format("01/02/2006"))
	if err := s.mailer.Send(ctx, driven.Email{
		Subject:  subject,
		HTMLBody: checkInBody(section, reply),
	}); err != nil {
		return nil, err
	}
	return &driving.ReflectionResult{Subject: subject, SourcePath: source.Path}, nil
}

// TweetIdeas emails tweet ideas drawn from today's journal entry.
func (s *ReflectionService) TweetIdeas(ctx context.Context, today time.Time) (*driving.ReflectionResult, error) {
	source, entry, err := s.todayJournal(ctx, today)
	if err != nil {
		return nil, err
	}

	ideas, err := s.promptedChat(ctx, driven.PromptTweetIdeas, ideasModel, entry)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Tweet Ideas (%s)", today.In(s.loc).Format("01/02/2006"))
	body := "<h2>Tweet Ideas</h2>" + htmlParagraphs(ideas)
	if err := s.mailer.Send(ctx, driven.Email{Subject: subject, HTMLBody: body}); err != nil {
		return nil, err
	}
	return &driving.ReflectionResult{Subject: subject, SourcePath: source.Path}, nil
}

// EssayIdeas emails essay ideas and book recommendations drawn from today's
// journal entry.
func (s *ReflectionService) EssayIdeas(ctx context.Context, today time.Time) (*driving.ReflectionResult, error) {
	source, entry, err := s.todayJournal(ctx, today)
	if err != nil {
		return nil, err
	}

	essays, err := s.promptedChat(ctx, driven.PromptEssayIdeas, ideasModel, entry)
	if err != nil {
		return nil, err
	}
	books, err := s.promptedChat(ctx, driven.PromptBookRecommendations, ideasModel, entry)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Essay Ideas & Reading List (%s)",
		today.In(s.loc).Format("01/02/2006"))
	body := "<h2>Essay Ideas</h2>" + htmlParagraphs(essays) +
		"<h2>Recommended Reading</h2>" + htmlParagraphs(books)
	if err := s.mailer.Send(ctx, driven.Email{Subject: subject, HTMLBody: body}); err != nil {
		return nil, err
	}
	return &driving.ReflectionResult{Subject: subject, SourcePath: source.Path}, nil
}

// WeeklyPrayer emails a prayer composed from the weekly map for the week
// ending this Sunday, with the map content attached below it.
func (s *ReflectionService) WeeklyPrayer(ctx context.Context, today time.Time) (*driving.ReflectionResult, error) {
	weekly, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderWeekly)
	if err != nil {
		return nil, err
	}
	maps, err := findVaultFolder(ctx, s.vault, weekly.Path, domain.FolderWeeklyMaps)
	if err != nil {
		return nil, err
	}
	entries, err := s.vault.ListFolder(ctx, maps.Path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", maps.Path, err)
	}

	sunday := domain.WeekdayOnOrAfter(today.In(s.loc), time.Sunday)
	marker := strings.ToLower(strings.TrimSuffix(domain.WeeklyMapFilename(sunday), ".md"))
	var mapFile driven.Entry
	found := false
	for _, f := range markdownFiles(entries) {
		if strings.Contains(strings.ToLower(f.Name), marker) {
			mapFile = f
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: no weekly map for %s under %s",
			domain.ErrNotFound, sunday.Format("2006-01-02"), maps.Path)
	}

	content, err := s.vault.Download(ctx, mapFile.Path)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", mapFile.Path, err)
	}

	prayer, err := s.promptedChat(ctx, driven.PromptWeeklyPrayer, prayerModel, string(content))
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("Weekly Prayer & Reflection (%s)",
		today.In(s.loc).Format("01/02/2006"))
	body := "<h2>Weekly Prayer</h2>" + strings.ReplaceAll(prayer, "\n", "<br>") +
		"<br><hr><br>" +
		"<h3>Weekly Map Content</h3><pre>" + string(content) + "</pre>"
	if err := s.mailer.Send(ctx, driven.Email{Subject: subject, HTMLBody: body}); err != nil {
		return nil, err
	}
	return &driving.ReflectionResult{Subject: subject, SourcePath: mapFile.Path}, nil
}

// WritingDigest emails the contents of count randomly chosen notes from the
// _Writing tree, each with a Dropbox shared link and an Obsidian deep link.
func (s *ReflectionService) WritingDigest(ctx context.Context, count int) (*driving.DigestResult, error) {
	if count <= 0 {
		count = DefaultDigestCount
	}

	writing, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderWriting)
	if err != nil {
		return nil, err
	}
	entries, err := s.vault.ListFolderRecursive(ctx, writing.Path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", writing.Path, err)
	}
	files := markdownFiles(entries)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no markdown files under %s", domain.ErrNotFound, writing.Path)
	}

	picks := files
	if len(files) > count {
		rand.Shuffle(len(files), func(i, j int) { files[i], files[j] = files[j], files[i] })
		picks = files[:count]
	}
	logger.Info("selected %d of %d writing notes", len(picks), len(files))

	date := s.now().In(s.loc).Format("01/02/2006")
	subject := fmt.Sprintf("Daily Writing Selection (%s)", date)

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Your Daily Writing Selection - %s</h2>", date)
	b.WriteString("<p><em>Randomly selected from your writing collection</em></p><hr>")

	result := &driving.DigestResult{Subject: subject}
	for i, file := range picks {
		name := strings.TrimSuffix(file.Name, ".md")
		result.Notes = append(result.Notes, name)

		fmt.Fprintf(&b, "<h3>%d. %s</h3>", i+1, file.Name)
		fmt.Fprintf(&b, "<p><em>%s</em></p>", file.Path)

		b.WriteString("<p>")
		fmt.Fprintf(&b, `<a href="%s">Open in Obsidian</a>`, s.obsidianLink(file.Path))
		if link, err := s.vault.SharedLink(ctx, file.Path); err != nil {
			logger.Warn("shared link for %s: %v", file.Path, err)
		} else {
			fmt.Fprintf(&b, ` | <a href="%s">Open in Dropbox</a>`, link)
		}
		b.WriteString("</p>")

		content, err := s.vault.Download(ctx, file.Path)
		if err != nil {
			logger.Warn("downloading %s: %v", file.Path, err)
			b.WriteString("<p><em>Could not download this note.</em></p>")
		} else {
			fmt.Fprintf(&b, "<div>%s</div>",
				strings.ReplaceAll(string(content), "\n", "<br>"))
		}
		if i < len(picks)-1 {
			b.WriteString("<hr>")
		}
	}

	if err := s.mailer.Send(ctx, driven.Email{Subject: subject, HTMLBody: b.String()}); err != nil {
		return nil, err
	}
	return result, nil
}

// promptedChat loads a template, fills it with content and runs one chat
// completion.
func (s *ReflectionService) promptedChat(ctx context.Context, promptName, model, content string) (string, error) {
	template, err := s.prompts.Load(promptName)
	if err != nil {
		return "", fmt.Errorf("loading prompt %q: %w", promptName, err)
	}
	reply, err := s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: fmt.Sprintf(template, content)},
	}, driven.ChatOptions{Model: model})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return reply, nil
}

// todayJournal returns today's journal note in _Daily/_Journal with its
// contents.
func (s *ReflectionService) todayJournal(ctx context.Context, today time.Time) (driven.Entry, string, error) {
	daily, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderDaily)
	if err != nil {
		return driven.Entry{}, "", err
	}
	journal, err := findVaultFolder(ctx, s.vault, daily.Path, domain.FolderJournal)
	if err != nil {
		return driven.Entry{}, "", err
	}
	entries, err := s.vault.ListFolder(ctx, journal.Path)
	if err != nil {
		return driven.Entry{}, "", fmt.Errorf("listing %s: %w", journal.Path, err)
	}

	name := domain.JournalFilename(today.In(s.loc))
	entry, ok := fileNamed(entries, name)
	if !ok {
		return driven.Entry{}, "", fmt.Errorf("%w: %s under %s",
			domain.ErrNotFound, name, journal.Path)
	}

	content, err := s.vault.Download(ctx, entry.Path)
	if err != nil {
		return driven.Entry{}, "", fmt.Errorf("downloading %s: %w", entry.Path, err)
	}
	return entry, string(content), nil
}

// latestDailyAction returns the most recently modified note in
// _Daily/_Daily-Action with its contents.
func (s *ReflectionService) latestDailyAction(ctx context.Context) (driven.Entry, string, error) {
	daily, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderDaily)
	if err != nil {
		return driven.Entry{}, "", err
	}
	actions, err := findVaultFolder(ctx, s.vault, daily.Path, domain.FolderDailyAction)
	if err != nil {
		return driven.Entry{}, "", err
	}
	entries, err := s.vault.ListFolder(ctx, actions.Path)
	if err != nil {
		return driven.Entry{}, "", fmt.Errorf("listing %s: %w", actions.Path, err)
	}
	files := markdownFiles(entries)
	if len(files) == 0 {
		return driven.Entry{}, "", fmt.Errorf("%w: no notes under %s", domain.ErrNotFound, actions.Path)
	}

	latest := files[0]
	for _, f := range files[1:] {
		if f.Modified.After(latest.Modified) {
			latest = f
		}
	}

	content, err := s.vault.Download(ctx, latest.Path)
	if err != nil {
		return driven.Entry{}, "", fmt.Errorf("downloading %s: %w", latest.Path, err)
	}
	return latest, string(content), nil
}

// obsidianLink builds a deep link that opens the note in the Obsidian app.
func (s *ReflectionService) obsidianLink(path string) string {
	rel := strings.TrimPrefix(path, strings.ToLower(s.vaultPath))
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.TrimSuffix(rel, ".md")
	return "obsidian://open?vault=" + url.QueryEscape(s.vaultName) +
		"&file=" + url.QueryEscape(rel)
}

// extractVisionSection pulls the objective block out of a daily action
// note.
func extractVisionSection(content string) (string, error) {
	section := visionSection.FindString(content)
	if section == "" {
		return "", fmt.Errorf("%w: vision objective section", domain.ErrPropertyMissing)
	}
	return strings.TrimSpace(section), nil
}

// htmlParagraphs turns a plain-text model reply into simple HTML, keeping
// paragraph breaks.
func htmlParagraphs(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n\n", "</p><p>")
	text = strings.ReplaceAll(text, "\n", "<br>")
	return "<p>" + text + "</p>"
}

// checkInBody formats the objective block and the model's reply as the
// email body.
func checkInBody(section, reply string) string {
	return "<h3>Today's Plan:</h3>" + strings.ReplaceAll(section, "\n", "<br>") +
		"<br><hr><br>" +
		"<h3>Reflection:</h3>" + strings.ReplaceAll(reply, "\n", "<br>")
}
