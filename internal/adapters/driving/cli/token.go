package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Refresh API access tokens",
	Long: `Refreshes the short-lived Dropbox and Gmail access tokens and
stores them in Redis, where every other command reads them. Cron runs
these ahead of the automations that need them.`,
}

var tokenDropboxCmd = &cobra.Command{
	Use:   "dropbox",
	Short: "Refresh the Dropbox access token",
	RunE:  runTokenDropbox,
}

var tokenGmailCmd = &cobra.Command{
	Use:   "gmail",
	Short: "Refresh the Gmail access token",
	RunE:  runTokenGmail,
}

func init() {
	tokenCmd.AddCommand(tokenDropboxCmd)
	tokenCmd.AddCommand(tokenGmailCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenDropbox(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initTokenRefresher(true); err != nil {
		return err
	}

	if err := tokenRefresher.RefreshDropbox(ctx); err != nil {
		return fmt.Errorf("refreshing dropbox token: %w", err)
	}
	cmd.Println(styles.Created("refreshed"), "Dropbox access token")
	return nil
}

func runTokenGmail(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initTokenRefresher(false); err != nil {
		return err
	}

	if err := tokenRefresher.RefreshGmail(ctx); err != nil {
		return fmt.Errorf("refreshing gmail token: %w", err)
	}
	cmd.Println(styles.Created("refreshed"), "Gmail access token")
	return nil
}
