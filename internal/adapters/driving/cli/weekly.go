package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Create weekly planning notes",
	Long: `Creates the recurring weekly notes under the _Weekly folder:
the week note, the newsletter draft, the weekly map and the numbered
health review. Each subcommand is one former cron job.`,
}

var weekCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the week note for the coming Sunday",
	RunE:  runWeekCreate,
}

var weekNewsletterCmd = &cobra.Command{
	Use:   "newsletter",
	Short: "Create the newsletter draft for the Sunday after next",
	RunE:  runWeekNewsletter,
}

var weekMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Create the weekly map from its template",
	RunE:  runWeekMap,
}

var weekHealthReviewCmd = &cobra.Command{
	Use:   "health-review",
	Short: "Create the next numbered weekly health review",
	RunE:  runWeekHealthReview,
}

func init() {
	weekCmd.PersistentFlags().StringVar(&todayFlag, "today", "",
		"override today's date (YYYY-MM-DD) for backfills")

	weekCmd.AddCommand(weekCreateCmd)
	weekCmd.AddCommand(weekNewsletterCmd)
	weekCmd.AddCommand(weekMapCmd)
	weekCmd.AddCommand(weekHealthReviewCmd)
	rootCmd.AddCommand(weekCmd)
}

func runWeekCreate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initPlanner(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := plannerService.CreateWeek(ctx, today)
	if err != nil {
		return fmt.Errorf("creating week note: %w", err)
	}
	printResult(cmd, res.Created, res.Path)
	return nil
}

func runWeekNewsletter(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initPlanner(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := plannerService.CreateNewsletter(ctx, today)
	if err != nil {
		return fmt.Errorf("creating newsletter: %w", err)
	}
	printResult(cmd, res.Created, res.Path)
	return nil
}

func runWeekMap(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initPlanner(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := plannerService.CreateWeeklyMap(ctx, today)
	if err != nil {
		return fmt.Errorf("creating weekly map: %w", err)
	}
	printResult(cmd, res.Created, res.Path)
	return nil
}

func runWeekHealthReview(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initPlanner(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := plannerService.CreateHealthReview(ctx, today)
	if err != nil {
		return fmt.Errorf("creating health review: %w", err)
	}
	printResult(cmd, res.Created, res.Path)
	return nil
}
