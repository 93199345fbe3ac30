package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
)

var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Synchronise the Knowledge Hub",
	Long: `Keeps the vault's _Knowledge-Hub folder and the Notion Knowledge
Hub database in step: "sync" copies newly created Notion pages into the
vault as Markdown notes, "youtube" turns YouTube-share emails into
Notion bookmarks.`,
}

var hubSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy new Notion pages into the vault",
	RunE:  runHubSync,
}

var hubYouTubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Bookmark YouTube-share emails in Notion",
	RunE:  runHubYouTube,
}

func init() {
	hubCmd.AddCommand(hubSyncCmd)
	hubCmd.AddCommand(hubYouTubeCmd)
	rootCmd.AddCommand(hubCmd)
}

func runHubSync(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initHub(ctx, false); err != nil {
		return err
	}

	res, err := hubSynchroniser.SyncNotion(ctx)
	if err != nil {
		return fmt.Errorf("syncing knowledge hub: %w", err)
	}
	for _, path := range res.Synced {
		cmd.Println(styles.Created("synced"), path)
	}
	for _, title := range res.Skipped {
		cmd.Println(styles.Skipped("exists"), title)
	}
	if len(res.Synced) == 0 && len(res.Skipped) == 0 {
		cmd.Println("No new pages.")
	}
	return nil
}

func runHubYouTube(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initHub(ctx, true); err != nil {
		return err
	}

	res, err := hubSynchroniser.HarvestYouTube(ctx)
	if err != nil {
		return fmt.Errorf("harvesting youtube emails: %w", err)
	}
	for _, title := range res.Added {
		cmd.Println(styles.Created("bookmarked"), title)
	}
	for _, title := range res.Skipped {
		cmd.Println(styles.Skipped("already saved"), title)
	}
	if len(res.Added) == 0 && len(res.Skipped) == 0 {
		cmd.Println("No new videos.")
	}
	return nil
}
