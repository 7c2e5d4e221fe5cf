package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/scorecard/internal/cli"
	"github.com/Veraticus/scorecard/internal/pipeline"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Cross-validate the candidates without scoring",
		Long: `Run the cross-validated trials and print the comparison table, but skip the
final refit and prediction output. Useful for iterating on the training data.

Examples:
  scorecard compare --train train.csv
  scorecard compare --train train.csv --folds 5`,
		RunE: runCompare,
	}

	cmd.Flags().StringP("train", "t", "", "training dataset (.csv or .xlsx)")
	cmd.Flags().IntP("folds", "k", 10, "cross-validation fold count")
	cmd.Flags().Int64("seed", 123, "random seed for fold assignment and tree sampling")

	_ = viper.BindPFlag("data.train", cmd.Flags().Lookup("train"))
	_ = viper.BindPFlag("cv.folds", cmd.Flags().Lookup("folds"))
	_ = viper.BindPFlag("cv.seed", cmd.Flags().Lookup("seed"))

	return cmd
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	slog.Info("Starting trial comparison", "train", cfg.TrainPath, "folds", cfg.Folds, "seed", cfg.Seed)

	ledger, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger(ledger)

	var recorder pipeline.Ledger
	if ledger != nil {
		recorder = ledger
	}

	summary, err := pipeline.New(newRunner(cfg.Folds, cfg.Seed), recorder).Compare(ctx, cfg)
	if err != nil {
		return err
	}

	cmd.Println(cli.FormatTitle("Trial results"))
	cmd.Println(cli.RenderTrialTable(summary.Trials, summary.Selected))
	cmd.Println(cli.FormatSuccess("Best candidate: " + string(summary.Selected.Algorithm) +
		" (" + summary.Selected.Params.String() + ")"))
	return nil
}
