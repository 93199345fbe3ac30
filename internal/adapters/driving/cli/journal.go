package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
)

// relateLookback mirrors the one-day window the relate cron ran with.
const relateLookback = 24 * time.Hour

var relateLookbackFlag time.Duration

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Manage daily journal and daily-action notes",
	Long: `Creates and maintains the vault's daily notes.

Journal notes live under _Daily/_Journal and daily-action notes under
_Daily/_Daily-Action. Each subcommand is one former cron job.`,
}

var journalCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create tomorrow's journal note",
	RunE:  runJournalCreate,
}

var journalPropertiesCmd = &cobra.Command{
	Use:   "update-properties",
	Short: "Set Date and Day of Week on today's journal",
	RunE:  runJournalProperties,
}

var journalRelateCmd = &cobra.Command{
	Use:   "relate",
	Short: "Link recent experience notes into today's journal",
	Long: `Finds notes modified recently in the experiences folder and appends
wiki links to them under today's journal properties.`,
	RunE: runJournalRelate,
}

var journalActionCmd = &cobra.Command{
	Use:   "action",
	Short: "Create tomorrow's daily-action note",
	RunE:  runJournalAction,
}

var journalReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Prepend the daily-review section to today's daily-action note",
	RunE:  runJournalReview,
}

func init() {
	journalCmd.PersistentFlags().StringVar(&todayFlag, "today", "",
		"override today's date (YYYY-MM-DD) for backfills")
	journalRelateCmd.Flags().DurationVar(&relateLookbackFlag, "lookback",
		relateLookback, "how far back to look for modified notes")

	journalCmd.AddCommand(journalCreateCmd)
	journalCmd.AddCommand(journalPropertiesCmd)
	journalCmd.AddCommand(journalRelateCmd)
	journalCmd.AddCommand(journalActionCmd)
	journalCmd.AddCommand(journalReviewCmd)
	rootCmd.AddCommand(journalCmd)
}

func runJournalCreate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initJournal(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := journalService.CreateTomorrow(ctx, today)
	if err != nil {
		return fmt.Errorf("creating journal: %w", err)
	}
	printResult(cmd, res.Created, res.Path)
	return nil
}

func runJournalProperties(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initJournal(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := journalService.UpdateTodayProperties(ctx, today)
	if err != nil {
		return fmt.Errorf("updating journal properties: %w", err)
	}
	if res.Updated {
		cmd.Println(styles.Updated("updated"), res.Path)
	} else {
		cmd.Println(styles.Skipped("unchanged"), res.Path)
	}
	return nil
}

func runJournalRelate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initJournal(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := journalService.RelateExperiences(ctx, today, relateLookbackFlag)
	if err != nil {
		return fmt.Errorf("relating experiences: %w", err)
	}
	for _, name := range res.Linked {
		cmd.Println(styles.Created("linked"), name)
	}
	for _, name := range res.Skipped {
		cmd.Println(styles.Skipped("already linked"), name)
	}
	if len(res.Linked) == 0 && len(res.Skipped) == 0 {
		cmd.Println("No recently modified notes to relate.")
	}
	return nil
}

func runJournalAction(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initJournal(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := journalService.CreateDailyAction(ctx, today)
	if err != nil {
		return fmt.Errorf("creating daily action: %w", err)
	}
	printResult(cmd, res.Created, res.Path)
	return nil
}

func runJournalReview(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initJournal(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := journalService.AddDailyReview(ctx, today)
	if err != nil {
		return fmt.Errorf("adding daily review: %w", err)
	}
	if res.Updated {
		cmd.Println(styles.Updated("added review section"), res.Path)
	} else {
		cmd.Println(styles.Skipped("review already present"), res.Path)
	}
	return nil
}
