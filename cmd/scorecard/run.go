package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/scorecard/internal/cli"
	"github.com/Veraticus/scorecard/internal/common"
	"github.com/Veraticus/scorecard/internal/pipeline"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full model-selection pipeline",
		Long: `Cross-validate every candidate algorithm on the training data, select the
one with the lowest misclassification rate, refit it on the entire training
set, and write predicted default probabilities for the scoring file.

Examples:
  scorecard run --train train.csv --score score.csv --output predictions.csv
  scorecard run --train train.xlsx --score score.xlsx --seed 123 --folds 10`,
		RunE: runRun,
	}

	cmd.Flags().StringP("train", "t", "", "training dataset (.csv or .xlsx)")
	cmd.Flags().StringP("score", "s", "", "scoring dataset (.csv or .xlsx)")
	cmd.Flags().StringP("output", "o", "predictions.csv", "prediction output file")
	cmd.Flags().IntP("folds", "k", 10, "cross-validation fold count")
	cmd.Flags().Int64("seed", 123, "random seed for fold assignment and tree sampling")

	_ = viper.BindPFlag("data.train", cmd.Flags().Lookup("train"))
	_ = viper.BindPFlag("data.score", cmd.Flags().Lookup("score"))
	_ = viper.BindPFlag("output.path", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("cv.folds", cmd.Flags().Lookup("folds"))
	_ = viper.BindPFlag("cv.seed", cmd.Flags().Lookup("seed"))

	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	if cfg.ScorePath == "" {
		return common.NewUserError("scoring data path is required (--score or data.score)", common.ErrMissingConfig)
	}
	if cfg.OutputPath == "" {
		return common.NewUserError("output path is required (--output or output.path)", common.ErrMissingConfig)
	}

	slog.Info("Starting model-selection pipeline",
		"train", cfg.TrainPath,
		"score", cfg.ScorePath,
		"folds", cfg.Folds,
		"seed", cfg.Seed)

	ledger, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeLedger(ledger)

	var recorder pipeline.Ledger
	if ledger != nil {
		recorder = ledger
	}

	summary, err := pipeline.New(newRunner(cfg.Folds, cfg.Seed), recorder).Run(ctx, cfg)
	if err != nil {
		return err
	}

	cmd.Println(cli.FormatTitle("Trial results"))
	cmd.Println(cli.RenderTrialTable(summary.Trials, summary.Selected))
	cmd.Println(cli.RenderRunSummary(cli.SummaryView{
		Algorithm:         string(summary.Selected.Algorithm),
		Params:            summary.Selected.Params.String(),
		Misclassification: summary.Selected.Misclassification(),
		Records:           summary.Records,
		OutputPath:        summary.OutputPath,
		Duration:          summary.Duration.Round(time.Second).String(),
	}))
	return nil
}
