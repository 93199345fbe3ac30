package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mhersey/vaultkeeper/internal/core/domain"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/core/ports/driving"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Ensure PlannerService implements the interface.
var _ driving.WeeklyPlanner = (*PlannerService)(nil)

// PlannerService creates the weekly planning notes under _Weekly. The
// subfolders are part of the vault's fixed structure, so a missing one is
// an error rather than something to silently create.
type PlannerService struct {
	vault     driven.VaultStore
	vaultPath string
	loc       *time.Location
}

// NewPlannerService creates a weekly planner rooted at the vault path.
func NewPlannerService(vault driven.VaultStore, vaultPath string, loc *time.Location) *PlannerService {
	return &PlannerService{vault: vault, vaultPath: vaultPath, loc: loc}
}

// CreateWeek creates the week note for the next Sunday in _Weekly/_Weeks.
func (s *PlannerService) CreateWeek(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	weeks, err := s.weeklySubfolder(ctx, domain.FolderWeeks)
	if err != nil {
		return nil, err
	}
	sunday := domain.WeekEnding(domain.DateOnly(today.In(s.loc)))
	return s.createEmpty(ctx, weeks.Path+"/"+domain.WeekFilename(sunday))
}

// CreateNewsletter creates the newsletter draft for the Sunday after next
// in _Weekly/_Newsletters.
func (s *PlannerService) CreateNewsletter(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	newsletters, err := s.weeklySubfolder(ctx, domain.FolderNewsletters)
	if err != nil {
		return nil, err
	}
	sunday := domain.NewsletterSunday(domain.DateOnly(today.In(s.loc)))
	return s.createEmpty(ctx, newsletters.Path+"/"+domain.NewsletterFilename(sunday))
}

// CreateWeeklyMap creates the weekly map note from the vault template in
// _Weekly/_Weekly-Maps.
func (s *PlannerService) CreateWeeklyMap(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	templates, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderTemplates)
	if err != nil {
		return nil, err
	}
	template, err := s.vault.Download(ctx, templates.Path+"/"+domain.WeeklyMapTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("fetching weekly map template: %w", err)
	}

	maps, err := s.weeklySubfolder(ctx, domain.FolderWeeklyMaps)
	if err != nil {
		return nil, err
	}

	sunday := domain.WeeklyMapSunday(domain.DateOnly(today.In(s.loc)))
	path := maps.Path + "/" + domain.WeeklyMapFilename(sunday)
	exists, err := s.vault.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", path, err)
	}
	if exists {
		logger.Info("weekly map %s already exists", path)
		return &driving.NoteResult{Path: path}, nil
	}

	if err := s.vault.Upload(ctx, path, template, false); err != nil {
		return nil, fmt.Errorf("creating weekly map: %w", err)
	}
	logger.Info("created weekly map %s", path)
	return &driving.NoteResult{Path: path, Created: true}, nil
}

// CreateHealthReview creates the next numbered weekly health review,
// covering the next Wednesday through the following Tuesday. A review whose
// filename already names that date range counts as existing.
func (s *PlannerService) CreateHealthReview(ctx context.Context, today time.Time) (*driving.NoteResult, error) {
	reviews, err := s.weeklySubfolder(ctx, domain.FolderHealth)
	if err != nil {
		return nil, err
	}
	entries, err := s.vault.ListFolder(ctx, reviews.Path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", reviews.Path, err)
	}

	start, end := domain.HealthReviewWindow(domain.DateOnly(today.In(s.loc)))
	rangeLabel := fmt.Sprintf("(%s - %s)", start.Format("Jan. 02"), end.Format("Jan. 02, 2006"))

	highest := 0
	for _, e := range entries {
		if strings.Contains(e.Name, rangeLabel) {
			logger.Info("health review for %s already exists: %s", rangeLabel, e.Path)
			return &driving.NoteResult{Path: e.Path}, nil
		}
		if n := domain.ParseHealthReviewNumber(e.Name); n > highest {
			highest = n
		}
	}

	path := reviews.Path + "/" + domain.HealthReviewFilename(highest+1, start, end)
	content := fmt.Sprintf("Start Date: %s\nEnd Date: %s\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err := s.vault.Upload(ctx, path, []byte(content), false); err != nil {
		return nil, fmt.Errorf("creating health review: %w", err)
	}
	logger.Info("created health review %s", path)
	return &driving.NoteResult{Path: path, Created: true}, nil
}

// weeklySubfolder resolves a subfolder of _Weekly, erroring when it does
// not exist.
func (s *PlannerService) weeklySubfolder(ctx context.Context, name string) (driven.Entry, error) {
	weekly, err := findVaultFolder(ctx, s.vault, s.vaultPath, domain.FolderWeekly)
	if err != nil {
		return driven.Entry{}, err
	}
	return findVaultFolder(ctx, s.vault, weekly.Path, name)
}

// createEmpty uploads an empty note at path unless it already exists.
func (s *PlannerService) createEmpty(ctx context.Context, path string) (*driving.NoteResult, error) {
	exists, err := s.vault.Exists(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", path, err)
	}
	if exists {
		logger.Info("note %s already exists", path)
		return &driving.NoteResult{Path: path}, nil
	}
	if err := s.vault.Upload(ctx, path, nil, false); err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	logger.Info("created %s", path)
	return &driving.NoteResult{Path: path, Created: true}, nil
}
