package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/Veraticus/scorecard/internal/cli"
	"github.com/Veraticus/scorecard/internal/common"
	"github.com/Veraticus/scorecard/internal/config"
	"github.com/Veraticus/scorecard/internal/dataset"
	"github.com/Veraticus/scorecard/internal/model"
	"github.com/Veraticus/scorecard/internal/pipeline"
	"github.com/Veraticus/scorecard/internal/storage"
	"github.com/Veraticus/scorecard/internal/trial"
)

// defaultCandidates returns the five candidates in their fixed evaluation
// order. The order matters: the selector breaks ties toward the earlier
// trial.
func defaultCandidates() []model.Candidate {
	return []model.Candidate{
		{Algorithm: model.AlgorithmLogistic},
		{Algorithm: model.AlgorithmLDA},
		{Algorithm: model.AlgorithmQDA},
		{Algorithm: model.AlgorithmForest, Grid: forestGrid()},
		{Algorithm: model.AlgorithmBoost, Grid: boostGrid()},
	}
}

// forestGrid sweeps features-per-split; the last value equals the total
// feature count, which degenerates to bagging.
func forestGrid() []model.Params {
	numFeatures := dataset.CreditSchema().NumFeatures()
	grid := make([]model.Params, 0, 4)
	for _, mtry := range []int{4, 8, 12, numFeatures} {
		grid = append(grid, model.Params{model.ParamMTry: float64(mtry)})
	}
	return grid
}

// boostGrid sweeps tree count, interaction depth, and shrinkage with a fixed
// minimum leaf size.
func boostGrid() []model.Params {
	var grid []model.Params
	for _, trees := range []float64{100, 200} {
		for _, depth := range []float64{1, 2, 3} {
			for _, shrinkage := range []float64{0.01, 0.1} {
				grid = append(grid, model.Params{
					model.ParamTrees:     trees,
					model.ParamDepth:     depth,
					model.ParamShrinkage: shrinkage,
					model.ParamMinLeaf:   10,
				})
			}
		}
	}
	return grid
}

// pipelineConfig assembles the pipeline config from viper settings.
func pipelineConfig() (pipeline.Config, error) {
	cfg := pipeline.Config{
		Schema:     dataset.CreditSchema(),
		TrainPath:  config.ExpandPath(viper.GetString("data.train")),
		ScorePath:  config.ExpandPath(viper.GetString("data.score")),
		OutputPath: config.ExpandPath(viper.GetString("output.path")),
		Candidates: defaultCandidates(),
		Seed:       viper.GetInt64("cv.seed"),
		Folds:      viper.GetInt("cv.folds"),
	}
	if cfg.Folds == 0 {
		cfg.Folds = 10
	}
	if cfg.Seed == 0 {
		cfg.Seed = 123
	}
	if cfg.TrainPath == "" {
		return pipeline.Config{}, common.NewUserError("training data path is required (--train or data.train)", common.ErrMissingConfig)
	}
	if cfg.Folds < 2 {
		return pipeline.Config{}, common.NewUserError("fold count must be at least 2", common.ErrInvalidConfig)
	}
	return cfg, nil
}

// newRunner builds the trial runner with a per-candidate progress bar.
func newRunner(folds int, seed int64) *trial.Runner {
	r := &trial.Runner{Folds: folds, Seed: seed}
	bar := cli.NewTrialProgress(os.Stderr, 1, "Cross-validating...")
	r.Progress = func(done, total int) {
		bar.ChangeMax(total)
		if err := bar.Set(done); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	return r
}

// openLedger opens the run ledger when a database path is configured.
// An empty path disables recording.
func openLedger(ctx context.Context) (*storage.SQLiteLedger, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		return nil, nil
	}

	ledger, err := storage.NewSQLiteLedger(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if err := ledger.Migrate(ctx); err != nil {
		_ = ledger.Close()
		return nil, fmt.Errorf("failed to migrate ledger: %w", err)
	}
	return ledger, nil
}

// closeLedger logs rather than fails on close errors.
func closeLedger(ledger *storage.SQLiteLedger) {
	if ledger == nil {
		return
	}
	if err := ledger.Close(); err != nil {
		slog.Error("Failed to close ledger", "error", err)
	}
}
