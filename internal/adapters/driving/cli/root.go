// Package cli provides the command-line interface for Vaultkeeper.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
	"github.com/mhersey/vaultkeeper/internal/config"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vaultkeeper",
	Short: "Second-brain vault automation",
	Long: `Vaultkeeper automates a Dropbox-hosted Obsidian vault.

Each subcommand runs one automation and exits, so cron owns all
recurrence. Journal and weekly notes are created ahead of time,
Notion Knowledge Hub pages and YouTube-share emails are synchronised,
six-week cycles are resolved against Redis, and GPT reflections and
writing digests go out by email.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadedConfig caches the environment configuration across a single
// invocation so multi-service commands read .env once.
var loadedConfig *config.Config

func loadConfig() (*config.Config, error) {
	if loadedConfig != nil {
		return loadedConfig, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	loadedConfig = cfg
	return cfg, nil
}

// todayFlag is the shared --today override for backfilling a past date.
var todayFlag string

// vaultLocation returns the configured vault timezone, or local time when
// no configuration has been loaded (mocked services in tests).
func vaultLocation() *time.Location {
	if loadedConfig != nil {
		return loadedConfig.Location
	}
	return time.Local
}

// resolveToday parses --today when given, otherwise returns now in the
// vault timezone.
func resolveToday() (time.Time, error) {
	loc := vaultLocation()
	if todayFlag == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", todayFlag, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", todayFlag)
	}
	return t, nil
}

// printResult renders a styled one-line outcome.
func printResult(cmd *cobra.Command, created bool, path string) {
	switch {
	case created:
		cmd.Println(styles.Created("created"), path)
	default:
		cmd.Println(styles.Skipped("exists"), path)
	}
}
