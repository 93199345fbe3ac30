package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Ensure OrganiserService implements the interface.
var _ driving.Organiser = (*OrganiserService)(nil)

// organiseRule maps filename keywords to a vault destination.
type organiseRule struct {
	category string
	keywords []string
	folder   string
}

// organiseRules are tried in order; first keyword match wins.
var organiseRules = []organiseRule{
	{category: "experience", folder: domain.FolderExperiences,
		keywords: []string{"meeting", "event", "session", "call", "hangout"}},
	{category: "writing", folder: domain.FolderWriting,
		keywords: []string{"essay", "draft", "thought", "sketch"}},
	{category: "knowledge", folder: domain.FolderHub,
		keywords: []string{"article", "paper", "research", "book", "course"}},
	{category: "weekly", folder: domain.FolderWeekly,
		keywords: []string{"week"}},
}

// defaultOrganiseRule catches everything else.
var defaultOrganiseRule = organiseRule{category: "note", folder: domain.FolderNotesIdeas}

// OrganiserService proposes destinations for the loose Markdown notes that
// accumulate at the vault root, and moves them on confirmation.
type OrganiserService struct {
	vault     driven.VaultStore
	vaultPath string

	now func() time.Time
}

// NewOrganiserService creates an organiser rooted at the vault path.
func NewOrganiserService(vault driven.VaultStore, vaultPath string) *OrganiserService {
	return &OrganiserService{vault: vault, vaultPath: vaultPath, now: time.Now}
}

// Plan lists loose Markdown files at the vault root with proposed
// destinations. Pattern filters filenames by glob; limit caps the count
// (0 means no cap).
func (s *OrganiserService) Plan(ctx context.Context, limit int, pattern string) ([]driving.MoveProposal, error) {
	entries, err := s.vault.ListFolder(ctx, s.vaultPath)
	if err != nil {
		return nil, fmt.Errorf("listing vault root: %w", err)
	}

	var proposals []driving.MoveProposal
	for _, file := range markdownFiles(entries) {
		if strings.HasPrefix(file.Name, ".") {
			continue
		}
		if pattern != "" {
			ok, err := path.Match(pattern, file.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}

		rule := classify(file.Name)
		dest := s.destinationFolder(entries, rule.folder)
		proposals = append(proposals, driving.MoveProposal{
			Name:     file.Name,
			FromPath: file.Path,
			ToPath:   dest + "/" + file.Name,
			Category: rule.category,
		})
		if limit > 0 && len(proposals) == limit {
			break
		}
	}
	logger.Info("planned %d move(s) from the vault root", len(proposals))
	return proposals, nil
}

// Apply executes one proposal. A name collision at the destination renames
// the incoming file with a timestamp suffix rather than overwriting.
func (s *OrganiserService) Apply(ctx context.Context, p driving.MoveProposal) error {
	if err := s.vault.CreateFolder(ctx, path.Dir(p.ToPath)); err != nil {
		return fmt.Errorf("ensuring %s: %w", path.Dir(p.ToPath), err)
	}

	toPath := p.ToPath
	exists, err := s.vault.Exists(ctx, toPath)
	if err != nil {
		return fmt.Errorf("probing %s: %w", toPath, err)
	}
	if exists {
		ext := path.Ext(toPath)
		toPath = strings.TrimSuffix(toPath, ext) +
			"_" + s.now().Format("20060102_150405") + ext
		logger.Warn("destination exists, renaming to %s", path.Base(toPath))
	}

	if err := s.vault.Move(ctx, p.FromPath, toPath); err != nil {
		return fmt.Errorf("moving %s: %w", p.Name, err)
	}
	logger.Info("moved %s -> %s", p.Name, toPath)
	return nil
}

// classify picks the first rule whose keyword appears in the filename.
func classify(name string) organiseRule {
	lower := strings.ToLower(strings.TrimSuffix(name, ".md"))
	for _, rule := range organiseRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule
			}
		}
	}
	return defaultOrganiseRule
}

// destinationFolder resolves a rule folder against the actual vault
// listing, so numbered prefixes ("07_Experiences...") are honoured. A
// folder the vault does not have yet lands under the root unprefixed.
func (s *OrganiserService) destinationFolder(entries []driven.Entry, folder string) string {
	if e, ok := folderWithSuffix(entries, folder); ok {
		return e.Path
	}
	return s.vaultPath + "/" + folder
}
