package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/scorecard/internal/cli"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent pipeline runs from the ledger",
		Long: `Show the most recent pipeline runs recorded in the run ledger, newest
first, with each run's seed, fold count, and selected model.

Examples:
  scorecard history
  scorecard history --limit 5`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "maximum number of runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	ledger, err := openLedger(ctx)
	if err != nil {
		return err
	}
	if ledger == nil {
		return fmt.Errorf("no ledger configured: set database.path to record runs")
	}
	defer closeLedger(ledger)

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := ledger.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println(cli.SubtleStyle.Render("No runs recorded yet."))
		return nil
	}

	cmd.Println(cli.FormatTitle("Run history"))
	header := fmt.Sprintf("  %-4s %-20s %-6s %-6s %-10s %-32s %-8s %s", "ID", "STARTED", "SEED", "FOLDS", "SELECTED", "PARAMS", "CVACC", "TRIALS")
	cmd.Println(cli.TableHeaderStyle.Render(header))
	for _, r := range runs {
		selected := r.Algorithm
		if selected == "" {
			selected = "-"
		}
		cmd.Printf("  %-4d %-20s %-6d %-6d %-10s %-32s %-8.4f %d\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Seed, r.Folds, selected, r.Params, r.Accuracy, r.Trials)
	}
	return nil
}
