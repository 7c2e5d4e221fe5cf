package learn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Veraticus/scorecard/internal/common"
)

// BoostConfig controls gradient boosting: the number of stages, the
// interaction depth of each stage's tree, the shrinkage (learning rate)
// applied to each stage's contribution, and the minimum records per leaf.
type BoostConfig struct {
	Trees     int
	Depth     int
	Shrinkage float64
	MinLeaf   int
}

// Boost is binomial-deviance gradient boosting: a constant log-odds start,
// then one shallow regression tree per stage fit to the residuals, with
// Newton leaf updates scaled by the shrinkage.
type Boost struct {
	cfg    BoostConfig
	f0     float64
	trees  []*treeNode
	fitted bool
}

// NewBoost returns a gradient-boosting classifier, filling in defaults for
// any unset config fields.
func NewBoost(cfg BoostConfig) *Boost {
	if cfg.Trees <= 0 {
		cfg.Trees = 100
	}
	if cfg.Depth <= 0 {
		cfg.Depth = 3
	}
	if cfg.Shrinkage <= 0 {
		cfg.Shrinkage = 0.1
	}
	if cfg.MinLeaf <= 0 {
		cfg.MinLeaf = 10
	}
	return &Boost{cfg: cfg}
}

// Fit runs the boosting stages on x and the binary target y.
func (b *Boost) Fit(x *mat.Dense, y []int) error {
	if err := checkTarget(x, y); err != nil {
		return fmt.Errorf("boost fit: %w", err)
	}
	n, _ := x.Dims()

	pos := 0
	for _, v := range y {
		pos += v
	}
	pbar := clampProb(float64(pos) / float64(n))
	b.f0 = math.Log(pbar / (1 - pbar))

	f := make([]float64, n)
	for i := range f {
		f[i] = b.f0
	}

	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}

	residual := make([]float64, n)
	prob := make([]float64, n)
	cfg := treeConfig{maxDepth: b.cfg.Depth, minLeaf: b.cfg.MinLeaf}

	b.trees = make([]*treeNode, 0, b.cfg.Trees)
	for m := 0; m < b.cfg.Trees; m++ {
		for i := 0; i < n; i++ {
			prob[i] = clampProb(sigmoid(f[i]))
			residual[i] = float64(y[i]) - prob[i]
		}

		tree := buildTree(x, residual, rows, cfg, 0)

		// Newton step per leaf: gamma = Σr / Σp(1−p) over the leaf's rows.
		num := make(map[*treeNode]float64)
		den := make(map[*treeNode]float64)
		for i := 0; i < n; i++ {
			leaf := tree.leafFor(x, i)
			num[leaf] += residual[i]
			den[leaf] += prob[i] * (1 - prob[i])
		}
		for leaf, d := range den {
			if d < probEps {
				d = probEps
			}
			leaf.value = num[leaf] / d
		}

		for i := 0; i < n; i++ {
			f[i] += b.cfg.Shrinkage * tree.predict(x, i)
		}
		b.trees = append(b.trees, tree)
	}

	b.fitted = true
	return nil
}

// PredictProba returns class-1 probabilities for each row of x.
func (b *Boost) PredictProba(x *mat.Dense) ([]float64, error) {
	if !b.fitted {
		return nil, common.ErrNotFitted
	}
	n, _ := x.Dims()

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f := b.f0
		for _, t := range b.trees {
			f += b.cfg.Shrinkage * t.predict(x, i)
		}
		out[i] = clampProb(sigmoid(f))
	}
	return out, nil
}
