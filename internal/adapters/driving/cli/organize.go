package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
)

var (
	organizeLimit   int
	organizePattern string
	organizeDryRun  bool
	organizeYes     bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "File loose notes from the vault root into their folders",
	Long: `Lists the Markdown files sitting at the vault root, proposes a
destination folder for each based on its name, and moves the confirmed
ones. Answer y to move a file, s to skip it, or q to stop.`,
	RunE: runOrganize,
}

func init() {
	organizeCmd.Flags().IntVar(&organizeLimit, "limit", 0,
		"cap the number of files considered (0 means no cap)")
	organizeCmd.Flags().StringVar(&organizePattern, "pattern", "",
		"only consider filenames matching this glob")
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false,
		"show the proposed moves without moving anything")
	organizeCmd.Flags().BoolVarP(&organizeYes, "yes", "y", false,
		"move every file without prompting")

	rootCmd.AddCommand(organizeCmd)
}

func runOrganize(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initOrganiser(ctx); err != nil {
		return err
	}

	proposals, err := organiser.Plan(ctx, organizeLimit, organizePattern)
	if err != nil {
		return fmt.Errorf("planning moves: %w", err)
	}
	if len(proposals) == 0 {
		cmd.Println("Vault root is tidy.")
		return nil
	}

	cmd.Printf("%d loose note(s) at the vault root:\n\n", len(proposals))

	reader := bufio.NewReader(cmd.InOrStdin())
	var moved, skipped int
	for _, p := range proposals {
		cmd.Printf("%s  %s\n", styles.Category("["+p.Category+"]"), p.Name)
		cmd.Printf("    %s\n", styles.Path("-> "+p.ToPath))

		if organizeDryRun {
			continue
		}

		if !organizeYes {
			cmd.Print("  move? [y/s/q] ")
			answer, err := reader.ReadString('\n')
			if err != nil {
				answer = "q"
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
				// fall through to the move
			case "q", "quit":
				cmd.Printf("\nStopped: %d moved, %d skipped.\n", moved, skipped)
				return nil
			default:
				skipped++
				continue
			}
		}

		if err := organiser.Apply(ctx, p); err != nil {
			return fmt.Errorf("moving %s: %w", p.Name, err)
		}
		cmd.Println("   ", styles.Created("moved"))
		moved++
	}

	if organizeDryRun {
		cmd.Println(styles.Warn("\ndry run: nothing moved"))
		return nil
	}
	cmd.Printf("\nDone: %d moved, %d skipped.\n", moved, skipped)
	return nil
}
