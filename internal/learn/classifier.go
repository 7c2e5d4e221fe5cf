// Package learn implements the candidate classifiers compared by the trial
// runner: logistic regression, linear and quadratic discriminant analysis,
// random forest (bagging in the degenerate case), and gradient boosting.
//
// Every classifier fits a binary target and emits class-1 probabilities;
// hard labels are never produced below the 0.5 thresholding in the trial
// runner. Numerical degeneracies (separable folds, near-singular
// covariances) degrade the estimates but are never fatal.
package learn

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/Veraticus/scorecard/internal/model"
)

// probEps keeps probabilities away from exact 0 and 1 so log-likelihoods and
// IRLS weights stay finite on separable data.
const probEps = 1e-12

// Classifier fits a binary target and predicts class-1 probabilities.
type Classifier interface {
	Fit(x *mat.Dense, y []int) error
	PredictProba(x *mat.Dense) ([]float64, error)
}

// New constructs the classifier for the given algorithm and grid point. The
// rng drives bootstrap and feature sampling where the algorithm uses any.
func New(alg model.Algorithm, params model.Params, rng *rand.Rand) (Classifier, error) {
	switch alg {
	case model.AlgorithmLogistic:
		return NewLogistic(), nil
	case model.AlgorithmLDA:
		return NewLDA(), nil
	case model.AlgorithmQDA:
		return NewQDA(), nil
	case model.AlgorithmForest:
		return NewForest(ForestConfig{
			Trees:   int(params.Get(model.ParamTrees, 300)),
			MTry:    int(params.Get(model.ParamMTry, 0)),
			MinLeaf: int(params.Get(model.ParamMinLeaf, 5)),
			Rand:    rng,
		}), nil
	case model.AlgorithmBoost:
		return NewBoost(BoostConfig{
			Trees:     int(params.Get(model.ParamTrees, 100)),
			Depth:     int(params.Get(model.ParamDepth, 3)),
			Shrinkage: params.Get(model.ParamShrinkage, 0.1),
			MinLeaf:   int(params.Get(model.ParamMinLeaf, 10)),
		}), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", alg)
	}
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

func clampProb(p float64) float64 {
	if p < probEps {
		return probEps
	}
	if p > 1-probEps {
		return 1 - probEps
	}
	return p
}

// checkTarget validates the shape and contents of a binary target.
func checkTarget(x *mat.Dense, y []int) error {
	n, _ := x.Dims()
	if n == 0 {
		return fmt.Errorf("no training rows")
	}
	if len(y) != n {
		return fmt.Errorf("have %d labels for %d rows", len(y), n)
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return fmt.Errorf("label at row %d is %d, want 0 or 1", i, v)
		}
	}
	return nil
}
