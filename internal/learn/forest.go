package learn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/Veraticus/scorecard/internal/common"
)

// ForestConfig controls random-forest training. MTry equal to the feature
// count (or zero) considers every feature at each split, which is bagging.
type ForestConfig struct {
	Rand    *rand.Rand
	Trees   int
	MTry    int
	MinLeaf int
	Depth   int
}

// Forest is a bootstrap-aggregated ensemble of CART trees. The predicted
// probability is the mean of per-tree leaf class fractions.
type Forest struct {
	cfg   ForestConfig
	trees []*treeNode
}

// NewForest returns a random-forest classifier, filling in defaults for any
// unset config fields.
func NewForest(cfg ForestConfig) *Forest {
	if cfg.Trees <= 0 {
		cfg.Trees = 300
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 5
	}
	if cfg.Depth <= 0 {
		cfg.Depth = 20
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	return &Forest{cfg: cfg}
}

// Fit grows the ensemble on bootstrap samples of x.
func (f *Forest) Fit(x *mat.Dense, y []int) error {
	if err := checkTarget(x, y); err != nil {
		return fmt.Errorf("forest fit: %w", err)
	}
	n, _ := x.Dims()

	target := make([]float64, n)
	for i, v := range y {
		target[i] = float64(v)
	}

	cfg := treeConfig{
		maxDepth: f.cfg.Depth,
		minLeaf:  f.cfg.MinLeaf,
		mtry:     f.cfg.MTry,
		rng:      f.cfg.Rand,
	}

	f.trees = make([]*treeNode, 0, f.cfg.Trees)
	rows := make([]int, n)
	for b := 0; b < f.cfg.Trees; b++ {
		for i := range rows {
			rows[i] = f.cfg.Rand.Intn(n)
		}
		f.trees = append(f.trees, buildTree(x, target, rows, cfg, 0))
	}
	return nil
}

// PredictProba returns class-1 probabilities averaged over the ensemble.
func (f *Forest) PredictProba(x *mat.Dense) ([]float64, error) {
	if f.trees == nil {
		return nil, common.ErrNotFitted
	}
	n, _ := x.Dims()

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for _, t := range f.trees {
			sum += t.predict(x, i)
		}
		out[i] = sum / float64(len(f.trees))
	}
	return out, nil
}
