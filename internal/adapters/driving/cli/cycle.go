package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mhersey/vaultkeeper/internal/adapters/driving/cli/styles"
	"github.com/mhersey/vaultkeeper/internal/core/domain"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Manage six-week cycles and cooling periods",
}

var cycleResolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Reconcile cycle dates and create the cycle notes",
	Long: `Reads the stored six-week-cycle and cooling-period dates, decides
whether either window needs rescheduling for today, writes any new dates
back, and ensures the matching notes exist under _Cycles/_6-Week-Cycles.

Runs under a short-lived lock so overlapping cron invocations cannot
write conflicting dates.`,
	RunE: runCycleResolve,
}

func init() {
	cycleResolveCmd.Flags().StringVar(&todayFlag, "today", "",
		"override today's date (YYYY-MM-DD)")

	cycleCmd.AddCommand(cycleResolveCmd)
	rootCmd.AddCommand(cycleCmd)
}

func runCycleResolve(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	if err := initCycleResolver(ctx); err != nil {
		return err
	}
	today, err := resolveToday()
	if err != nil {
		return err
	}

	res, err := cycleResolver.Resolve(ctx, today)
	if err != nil {
		return fmt.Errorf("resolving cycle dates: %w", err)
	}

	switch res.Resolution.Reschedule {
	case domain.PeriodSixWeek:
		cmd.Println(styles.Updated("rescheduled six-week cycle"),
			"starting", res.Resolution.NewStart.Format("2006-01-02"))
	case domain.PeriodCooling:
		cmd.Println(styles.Updated("rescheduled cooling period"),
			"starting", res.Resolution.NewStart.Format("2006-01-02"))
	default:
		cmd.Println(styles.Skipped("dates unchanged"))
	}
	for _, path := range res.CreatedFiles {
		cmd.Println(styles.Created("created"), path)
	}
	return nil
}
