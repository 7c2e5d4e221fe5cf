package model

import "time"

// TrialResult records the cross-validated outcome of one candidate: the
// algorithm, the grid point that won the sweep, and its accuracy estimate.
type TrialResult struct {
	Algorithm Algorithm
	Params    Params
	Accuracy  float64
	Folds     int
	Seed      int64
}

// Misclassification returns the cross-validated misclassification rate,
// exactly one minus the accuracy estimate.
func (r TrialResult) Misclassification() float64 {
	return 1 - r.Accuracy
}

// RunInfo describes one pipeline invocation for the run ledger.
type RunInfo struct {
	StartedAt    time.Time
	TrainingPath string
	Seed         int64
	Folds        int
}
