package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Vault folder names. Top-level folders are matched by name so numeric
// prefixes ("3_Daily") survive reorganisation.
const (
	FolderDaily       = "_Daily"
	FolderJournal     = "_Journal"
	FolderDailyAction = "_Daily-Action"
	FolderWeekly      = "_Weekly"
	FolderWeeks       = "_Weeks"
	FolderNewsletters = "_Newsletters"
	FolderWeeklyMaps  = "_Weekly-Maps"
	FolderHealth      = "_Weekly-Health-Review"
	FolderCycles      = "_Cycles"
	FolderSixWeek     = "_6-Week-Cycles"
	FolderHub         = "_Knowledge-Hub"
	FolderTemplates   = "_Templates"
	FolderWriting     = "_Writing"
	FolderExperiences = "_Experiences+Events+Meetings+Sessions"
	FolderNotesIdeas  = "_Notes+Ideas"
)

// WeeklyMapTemplatePath is the template fetched when drawing a weekly map,
// relative to the templates folder.
const WeeklyMapTemplatePath = "weekly-templates/weekly_map_template_w_placeholder.md"

var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// SanitiseFilename replaces characters Dropbox and Obsidian reject in file
// names with underscores.
func SanitiseFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// JournalFilename names a daily journal note, e.g. "Mar 4, 2024.md".
func JournalFilename(day time.Time) string {
	return day.Format("Jan 2, 2006") + ".md"
}

// DailyActionFilename names a daily action note, e.g. "DA 2024-03-04.md".
func DailyActionFilename(day time.Time) string {
	return "DA " + day.Format("2006-01-02") + ".md"
}

// WeekFilename names a week note for its closing Sunday.
func WeekFilename(sunday time.Time) string {
	return "Week-Ending-" + sunday.Format("2006-01-02") + ".md"
}

// NewsletterFilename names a newsletter draft, e.g.
// "Weekly Newsletter Mar. 17, 2024.md".
func NewsletterFilename(sunday time.Time) string {
	return "Weekly Newsletter " + sunday.Format("Jan. 02, 2006") + ".md"
}

// WeeklyMapFilename names a weekly map note.
func WeeklyMapFilename(sunday time.Time) string {
	return "Weekly Map " + sunday.Format("2006-01-02") + ".md"
}

// HealthReviewFilename names a numbered weekly health review, e.g.
// "Weekly Health Review 12 (Mar. 06 - Mar. 12, 2024).md".
func HealthReviewFilename(n int, start, end time.Time) string {
	return fmt.Sprintf("Weekly Health Review %d (%s - %s).md",
		n, start.Format("Jan. 02"), end.Format("Jan. 02, 2006"))
}

// healthReviewNumber captures the N in "Weekly Health Review N (...)".
var healthReviewNumber = regexp.MustCompile(`^Weekly Health Review (\d+) `)

// ParseHealthReviewNumber extracts the review number from a health-review
// filename, or 0 if the name does not match.
func ParseHealthReviewNumber(filename string) int {
	m := healthReviewNumber.FindStringSubmatch(filename)
	if m == nil {
		return 0
	}
	var n int
	fmt.Sscanf(m[1], "%d", &n)
	return n
}

// SixWeekCycleFilename names a six-week cycle note, e.g.
// "6-Week Cycle (2024.03.04 - 2024.04.14).md".
func SixWeekCycleFilename(w Window) string {
	return fmt.Sprintf("6-Week Cycle (%s - %s).md",
		w.Start.Format("2006.01.02"), w.End.Format("2006.01.02"))
}

// CoolingPeriodFilename names a two-week cooling-period note.
func CoolingPeriodFilename(w Window) string {
	return fmt.Sprintf("2-Week Cooling Period (%s - %s).md",
		w.Start.Format("2006.01.02"), w.End.Format("2006.01.02"))
}
