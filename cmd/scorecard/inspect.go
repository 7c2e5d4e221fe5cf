package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/scorecard/internal/cli"
	"github.com/Veraticus/scorecard/internal/config"
	"github.com/Veraticus/scorecard/internal/dataset"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Validate a dataset against the schema and summarize it",
		Long: `Load a dataset against the credit schema and print per-column statistics.
Any malformed cell or undeclared categorical level fails the load with the
same error the pipeline would produce, so bad inputs surface before a run.

Examples:
  scorecard inspect train.csv
  scorecard inspect --scoring score.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	cmd.Flags().Bool("scoring", false, "treat the file as an unlabeled scoring dataset")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	scoring, _ := cmd.Flags().GetBool("scoring")
	kind := dataset.KindTraining
	if scoring {
		kind = dataset.KindScoring
	}

	path := config.ExpandPath(args[0])
	ds, err := dataset.Load(path, dataset.CreditSchema(), kind)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	cmd.Println(cli.FormatTitle(fmt.Sprintf("%s (%s, %d records)", path, ds.Kind(), ds.Len())))

	header := fmt.Sprintf("  %-12s %-14s %s", "COLUMN", "TYPE", "SUMMARY")
	cmd.Println(cli.TableHeaderStyle.Render(header))
	for _, s := range ds.Summarize() {
		if s.Categorical {
			cmd.Printf("  %-12s %-14s %s\n", s.Name, "categorical", levelSummary(s.LevelCounts))
			continue
		}
		cmd.Printf("  %-12s %-14s min=%.2f mean=%.2f max=%.2f\n", s.Name, "numeric", s.Min, s.Mean, s.Max)
	}

	if counts := ds.LabelCounts(); counts != nil {
		cmd.Println()
		cmd.Println(cli.FormatSuccess(fmt.Sprintf("Labels: %d non-default, %d default", counts[0], counts[1])))
	}
	return nil
}

// levelSummary renders level counts in declared-level order.
func levelSummary(counts map[string]int) string {
	levels := make([]string, 0, len(counts))
	for l := range counts {
		levels = append(levels, l)
	}
	sort.Strings(levels)

	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, fmt.Sprintf("%s:%d", l, counts[l]))
	}
	return strings.Join(parts, " ")
}
