package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

var (
	logsDryRun   bool
	logsKeepDays int
	logsBackup   bool
	logsAll      bool
)

// logsNow is swappable so tests get stable backup directory names.
var logsNow = time.Now

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Manage cron log files",
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete old cron log files",
	Long: `Deletes *.log files from the cron-log directory to keep disk usage
down. By default every log file is deleted; --keep-days keeps recent
files, --backup copies the files into a timestamped subdirectory first.`,
	RunE: runLogsClear,
}

func init() {
	logsClearCmd.Flags().BoolVar(&logsDryRun, "dry-run", false,
		"show what would be deleted without deleting")
	logsClearCmd.Flags().IntVar(&logsKeepDays, "keep-days", 0,
		"keep logs modified in the last N days")
	logsClearCmd.Flags().BoolVar(&logsBackup, "backup", false,
		"copy logs into a timestamped backup directory before deletion")
	logsClearCmd.Flags().BoolVar(&logsAll, "all", false,
		"delete all log files regardless of age")

	logsCmd.AddCommand(logsClearCmd)
	rootCmd.AddCommand(logsCmd)
}

func runLogsClear(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logDir := cfg.LogDir()

	if logsAll && logsKeepDays > 0 {
		cmd.Println(styles.Warn("--all overrides --keep-days"))
	}

	logFiles, err := filepath.Glob(filepath.Join(logDir, "*.log"))
	if err != nil {
		return fmt.Errorf("listing %s: %w", logDir, err)
	}
	if len(logFiles) == 0 {
		cmd.Println("No log files found.")
		return nil
	}

	var toDelete []string
	if logsAll || logsKeepDays <= 0 {
		toDelete = logFiles
	} else {
		cutoff := logsNow().AddDate(0, 0, -logsKeepDays)
		for _, f := range logFiles {
			info, err := os.Stat(f)
			if err != nil {
				logger.Warn("statting %s: %v", f, err)
				continue
			}
			if info.ModTime().Before(cutoff) {
				toDelete = append(toDelete, f)
			}
		}
	}

	if len(toDelete) == 0 {
		cmd.Printf("No log files older than %d days.\n", logsKeepDays)
		return nil
	}

	cmd.Printf("Found %d log file(s) to delete:\n", len(toDelete))
	for _, f := range toDelete {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		cmd.Printf("  - %s (%d bytes, modified %s)\n", filepath.Base(f),
			info.Size(), info.ModTime().Format("2006-01-02 15:04:05"))
	}

	if logsDryRun {
		cmd.Println(styles.Warn("dry run: nothing deleted"))
		return nil
	}

	if logsBackup {
		backupDir := filepath.Join(logDir,
			"cron_logs_backup_"+logsNow().Format("20060102_150405"))
		if err := backupLogs(toDelete, backupDir); err != nil {
			return fmt.Errorf("backing up logs: %w", err)
		}
		cmd.Println("Backed up to", backupDir)
	}

	var deleted int
	var freed int64
	for _, f := range toDelete {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if err := os.Remove(f); err != nil {
			cmd.Println(styles.Error("failed to delete"), filepath.Base(f), err.Error())
			continue
		}
		deleted++
		freed += info.Size()
	}

	cmd.Printf("Deleted %d file(s), freed %.2f KB.\n", deleted, float64(freed)/1024)
	return nil
}

// backupLogs copies each file into backupDir, creating it first.
func backupLogs(files []string, backupDir string) error {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return err
	}
	for _, f := range files {
		if err := copyFile(f, filepath.Join(backupDir, filepath.Base(f))); err != nil {
			return fmt.Errorf("copying %s: %w", filepath.Base(f), err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
