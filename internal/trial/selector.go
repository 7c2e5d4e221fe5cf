package trial

import (
	"github.com/Veraticus/scorecard/internal/common"
	"github.com/Veraticus/scorecard/internal/model"
)

// Select returns the trial with the numerically smallest misclassification
// rate. Ties go to the first-encountered result, so with candidates evaluated
// in a fixed declared order the selection is deterministic.
func Select(results []model.TrialResult) (model.TrialResult, error) {
	if len(results) == 0 {
		return model.TrialResult{}, common.ErrNoTrials
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Misclassification() < best.Misclassification() {
			best = r
		}
	}
	return best, nil
}
