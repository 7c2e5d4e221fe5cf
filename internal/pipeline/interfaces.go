package pipeline

import (
	"context"

	"github.com/Veraticus/scorecard/internal/dataset"
	"github.com/Veraticus/scorecard/internal/model"
)

// TrialRunner evaluates one candidate under cross-validation.
type TrialRunner interface {
	Run(ctx context.Context, ds *dataset.Dataset, cand model.Candidate) (model.TrialResult, error)
}

// Ledger records runs and trial results for later inspection. The pipeline
// only ever appends; results never depend on previously recorded runs.
type Ledger interface {
	BeginRun(ctx context.Context, info model.RunInfo) (int64, error)
	SaveTrial(ctx context.Context, runID int64, result model.TrialResult) error
	CompleteRun(ctx context.Context, runID int64, selected model.TrialResult) error
}
