package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
	"github.com/mhersey/vaultkeeper/internal/core/services"
)

var digestCount int

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Email GPT reflections and writing digests",
	Long: `Sends the reflection emails: a morning plan and an evening review
drawn from the latest daily-action note's vision objective, tweet and essay
ideas drawn from today's journal entry, a prayer composed from the week's
weekly map, and a digest of randomly chosen notes from the _Writing folder.`,
}

var reflectMorningCmd = &cobra.Command{
	Use:   "morning",
	Short: "Email the morning plan for the day",
	RunE:  runReflectMorning,
}

var reflectEveningCmd = &cobra.Command{
	Use:   "evening",
	Short: "Email the end-of-day reflection",
	RunE:  runReflectEvening,
}

var reflectTweetsCmd = &cobra.Command{
	Use:   "tweets",
	Short: "Email tweet ideas drawn from today's journal",
	RunE:  runReflectTweets,
}

var reflectEssaysCmd = &cobra.Command{
	Use:   "essays",
	Short: "Email essay ideas and book recommendations from today's journal",
	RunE:  runReflectEssays,
}

var reflectPrayerCmd = &cobra.Command{
	Use:   "prayer",
	Short: "Email a prayer composed from this week's weekly map",
	RunE:  runReflectPrayer,
}

var reflectWritingCmd = &cobra.Command{
	Use:   "writing",
	Short: "Email a digest of random writing notes",
	RunE:  runReflectWriting,
}

func init() {
	reflectCmd.PersistentFlags().StringVar(&todayFlag, "today", "",
		"override today's date (YYYY-MM-DD)")
	reflectWritingCmd.Flags().IntVar(&digestCount, "count",
		services.DefaultDigestCount, "how many notes to include")

	reflectCmd.AddCommand(reflectMorningCmd)
	reflectCmd.AddCommand(reflectEveningCmd)
	reflectCmd.AddCommand(reflectTweetsCmd)
	reflectCmd.AddCommand(reflectEssaysCmd)
	reflectCmd.AddCommand(reflectPrayerCmd)
	reflectCmd.AddCommand(reflectWritingCmd)
	rootCmd.AddCommand(reflectCmd)
}

func runReflectMorning(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initReflector(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := reflector.Morning(ctx, today)
	if err != nil {
		return fmt.Errorf("sending morning reflection: %w", err)
	}
	cmd.Println(styles.Created("sent"), res.Subject)
	cmd.Println(styles.Path("from " + res.SourcePath))
	return nil
}

func runReflectEvening(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initReflector(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := reflector.Evening(ctx, today)
	if err != nil {
		return fmt.Errorf("sending evening reflection: %w", err)
	}
	cmd.Println(styles.Created("sent"), res.Subject)
	cmd.Println(styles.Path("from " + res.SourcePath))
	return nil
}

func runReflectTweets(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initReflector(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := reflector.TweetIdeas(ctx, today)
	if err != nil {
		return fmt.Errorf("sending tweet ideas: %w", err)
	}
	cmd.Println(styles.Created("sent"), res.Subject)
	cmd.Println(styles.Path("from " + res.SourcePath))
	return nil
}

func runReflectEssays(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initReflector(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := reflector.EssayIdeas(ctx, today)
	if err != nil {
		return fmt.Errorf("sending essay ideas: %w", err)
	}
	cmd.Println(styles.Created("sent"), res.Subject)
	cmd.Println(styles.Path("from " + res.SourcePath))
	return nil
}

func runReflectPrayer(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initReflector(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := reflector.WeeklyPrayer(ctx, today)
	if err != nil {
		return fmt.Errorf("sending weekly prayer: %w", err)
	}
	cmd.Println(styles.Created("sent"), res.Subject)
	cmd.Println(styles.Path("from " + res.SourcePath))
	return nil
}

func runReflectWriting(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initReflector(ctx); err != nil {
		return err
	}

	res, err := reflector.WritingDigest(ctx, digestCount)
	if err != nil {
		return fmt.Errorf("sending writing digest: %w", err)
	}
	cmd.Println(styles.Created("sent"), res.Subject)
	for _, name := range res.Notes {
		cmd.Println("  -", name)
	}
	return nil
}
