// Package pipeline orchestrates the batch model-selection flow: load the
// datasets, cross-validate every candidate, select the best by
// misclassification rate, refit it on the full training set, and write
// predicted default probabilities for the scoring records.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Veraticus/scorecard/internal/dataset"
	"github.com/Veraticus/scorecard/internal/export"
	"github.com/Veraticus/scorecard/internal/learn"
	"github.com/Veraticus/scorecard/internal/model"
	"github.com/Veraticus/scorecard/internal/trial"
)

// Config holds everything one pipeline invocation needs.
type Config struct {
	Schema     dataset.Schema
	TrainPath  string
	ScorePath  string
	OutputPath string
	Candidates []model.Candidate
	Seed       int64
	Folds      int
}

// Summary reports what a pipeline invocation did.
type Summary struct {
	Trials     []model.TrialResult
	Selected   model.TrialResult
	OutputPath string
	Records    int
	Duration   time.Duration
}

// Pipeline wires the trial runner and the optional run ledger together.
type Pipeline struct {
	runner TrialRunner
	ledger Ledger
}

// New creates a pipeline. A nil ledger disables run recording.
func New(runner TrialRunner, ledger Ledger) *Pipeline {
	return &Pipeline{runner: runner, ledger: ledger}
}

// Run executes the full pipeline and writes the prediction file.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (*Summary, error) {
	start := time.Now()

	train, err := dataset.Load(cfg.TrainPath, cfg.Schema, dataset.KindTraining)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	counts := train.LabelCounts()
	slog.Info("Loaded training data",
		"path", cfg.TrainPath,
		"records", train.Len(),
		"features", train.NumFeatures(),
		"defaults", counts[1],
		"non_defaults", counts[0])

	score, err := dataset.Load(cfg.ScorePath, cfg.Schema, dataset.KindScoring)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring data: %w", err)
	}
	slog.Info("Loaded scoring data", "path", cfg.ScorePath, "records", score.Len())

	trials, selected, runID, err := p.trials(ctx, train, cfg)
	if err != nil {
		return nil, err
	}

	preds, err := p.score(train, score, selected, cfg.Seed)
	if err != nil {
		return nil, err
	}

	if err := export.WritePredictions(cfg.OutputPath, preds); err != nil {
		return nil, fmt.Errorf("failed to write predictions: %w", err)
	}
	slog.Info("Wrote predictions", "path", cfg.OutputPath, "records", len(preds))

	if p.ledger != nil {
		if err := p.ledger.CompleteRun(ctx, runID, selected); err != nil {
			return nil, fmt.Errorf("failed to record selection: %w", err)
		}
	}

	return &Summary{
		Trials:     trials,
		Selected:   selected,
		OutputPath: cfg.OutputPath,
		Records:    len(preds),
		Duration:   time.Since(start),
	}, nil
}

// Compare runs the trials and selection without scoring or writing output.
func (p *Pipeline) Compare(ctx context.Context, cfg Config) (*Summary, error) {
	start := time.Now()

	train, err := dataset.Load(cfg.TrainPath, cfg.Schema, dataset.KindTraining)
	if err != nil {
		return nil, fmt.Errorf("failed to load training data: %w", err)
	}
	slog.Info("Loaded training data", "path", cfg.TrainPath, "records", train.Len())

	trials, selected, runID, err := p.trials(ctx, train, cfg)
	if err != nil {
		return nil, err
	}

	if p.ledger != nil {
		if err := p.ledger.CompleteRun(ctx, runID, selected); err != nil {
			return nil, fmt.Errorf("failed to record selection: %w", err)
		}
	}

	return &Summary{
		Trials:   trials,
		Selected: selected,
		Duration: time.Since(start),
	}, nil
}

// trials cross-validates every candidate in declared order and selects the
// winner, recording everything to the ledger when one is configured.
func (p *Pipeline) trials(ctx context.Context, train *dataset.Dataset, cfg Config) ([]model.TrialResult, model.TrialResult, int64, error) {
	if len(cfg.Candidates) == 0 {
		return nil, model.TrialResult{}, 0, fmt.Errorf("no candidate algorithms configured")
	}

	var runID int64
	if p.ledger != nil {
		var err error
		runID, err = p.ledger.BeginRun(ctx, model.RunInfo{
			StartedAt:    time.Now(),
			TrainingPath: cfg.TrainPath,
			Seed:         cfg.Seed,
			Folds:        cfg.Folds,
		})
		if err != nil {
			return nil, model.TrialResult{}, 0, fmt.Errorf("failed to begin ledger run: %w", err)
		}
	}

	results := make([]model.TrialResult, 0, len(cfg.Candidates))
	for _, cand := range cfg.Candidates {
		slog.Info("Running trial",
			"algorithm", cand.Algorithm,
			"grid_points", max(len(cand.Grid), 1),
			"folds", cfg.Folds)

		result, err := p.runner.Run(ctx, train, cand)
		if err != nil {
			return nil, model.TrialResult{}, 0, fmt.Errorf("trial %s failed: %w", cand.Algorithm, err)
		}
		results = append(results, result)

		if p.ledger != nil {
			if err := p.ledger.SaveTrial(ctx, runID, result); err != nil {
				return nil, model.TrialResult{}, 0, fmt.Errorf("failed to record trial: %w", err)
			}
		}
	}

	selected, err := trial.Select(results)
	if err != nil {
		return nil, model.TrialResult{}, 0, err
	}
	slog.Info("Selected model",
		"algorithm", selected.Algorithm,
		"params", selected.Params.String(),
		"misclassification", selected.Misclassification())

	return results, selected, runID, nil
}

// score refits the selected configuration on the entire training set, with no
// held-out folds, and predicts default probabilities in scoring-file order.
func (p *Pipeline) score(train, score *dataset.Dataset, selected model.TrialResult, seed int64) ([]model.Prediction, error) {
	rng := rand.New(rand.NewSource(seed))

	clf, err := learn.New(selected.Algorithm, selected.Params, rng)
	if err != nil {
		return nil, err
	}
	if err := clf.Fit(train.Matrix(), train.Labels()); err != nil {
		return nil, fmt.Errorf("failed to refit %s on full training set: %w", selected.Algorithm, err)
	}

	probs, err := clf.PredictProba(score.Matrix())
	if err != nil {
		return nil, fmt.Errorf("failed to score: %w", err)
	}

	ids := score.IDs()
	preds := make([]model.Prediction, len(probs))
	for i, prob := range probs {
		preds[i] = model.Prediction{ID: ids[i], Probability: prob}
	}
	return preds, nil
}
