package trial

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Veraticus/scorecard/internal/dataset"
	"github.com/Veraticus/scorecard/internal/learn"
	"github.com/Veraticus/scorecard/internal/model"
)

// Runner evaluates candidates under k-fold cross-validation. The RNG is
// re-seeded from Seed before every grid point, so fold assignment and any
// algorithm-internal sampling are reproducible per trial.
type Runner struct {
	// Progress, when set, is called after each completed fold with the
	// number of folds finished so far across the whole candidate.
	Progress func(done, total int)
	Folds    int
	Seed     int64
}

// Run sweeps the candidate's grid and returns the best grid point with its
// cross-validated accuracy. On ties the earlier grid point wins.
func (r *Runner) Run(ctx context.Context, ds *dataset.Dataset, cand model.Candidate) (model.TrialResult, error) {
	grid := cand.Grid
	if len(grid) == 0 {
		grid = []model.Params{nil}
	}

	total := len(grid) * r.Folds
	done := 0

	best := model.TrialResult{Algorithm: cand.Algorithm, Accuracy: -1, Folds: r.Folds, Seed: r.Seed}
	for _, params := range grid {
		select {
		case <-ctx.Done():
			return model.TrialResult{}, ctx.Err()
		default:
		}

		acc, err := r.crossValidate(ctx, ds, cand.Algorithm, params, &done, total)
		if err != nil {
			return model.TrialResult{}, fmt.Errorf("failed to cross-validate %s (%s): %w", cand.Algorithm, params, err)
		}

		slog.Debug("Grid point scored",
			"algorithm", cand.Algorithm,
			"params", params.String(),
			"cv_accuracy", acc)

		if acc > best.Accuracy {
			best.Params = params.Clone()
			best.Accuracy = acc
		}
	}

	slog.Info("Trial complete",
		"algorithm", best.Algorithm,
		"params", best.Params.String(),
		"cv_accuracy", best.Accuracy,
		"misclassification", best.Misclassification())
	return best, nil
}

// crossValidate fits the algorithm on each fold's training partition and
// scores its held-out partition, aggregating record-weighted accuracy.
func (r *Runner) crossValidate(ctx context.Context, ds *dataset.Dataset, alg model.Algorithm, params model.Params, done *int, total int) (float64, error) {
	rng := rand.New(rand.NewSource(r.Seed))

	folds, err := Folds(ds.Len(), r.Folds, rng)
	if err != nil {
		return 0, err
	}

	correct := 0
	scored := 0
	for _, held := range folds {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		trainDS, err := ds.Subset(complement(ds.Len(), held))
		if err != nil {
			return 0, err
		}
		heldDS, err := ds.Subset(held)
		if err != nil {
			return 0, err
		}

		clf, err := learn.New(alg, params, rng)
		if err != nil {
			return 0, err
		}
		if err := clf.Fit(trainDS.Matrix(), trainDS.Labels()); err != nil {
			return 0, err
		}

		probs, err := clf.PredictProba(heldDS.Matrix())
		if err != nil {
			return 0, err
		}

		labels := heldDS.Labels()
		for i, p := range probs {
			pred := 0
			if p >= 0.5 {
				pred = 1
			}
			if pred == labels[i] {
				correct++
			}
		}
		scored += len(probs)

		*done++
		if r.Progress != nil {
			r.Progress(*done, total)
		}
	}

	return float64(correct) / float64(scored), nil
}
