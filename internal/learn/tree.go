package learn

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// treeConfig controls CART growth. The same builder serves both ensemble
// members: forest trees regress a 0/1 target (leaf value = class fraction,
// variance reduction ranks splits identically to gini for a binary target)
// and boosting trees regress residuals.
type treeConfig struct {
	maxDepth int
	minLeaf  int
	mtry     int // features considered per split; 0 means all
	rng      *rand.Rand
}

type treeNode struct {
	left      *treeNode
	right     *treeNode
	feature   int
	threshold float64
	value     float64
}

func (t *treeNode) isLeaf() bool {
	return t.left == nil
}

// leafFor walks the tree to the leaf covering row i of x.
func (t *treeNode) leafFor(x *mat.Dense, i int) *treeNode {
	node := t
	for !node.isLeaf() {
		if x.At(i, node.feature) <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node
}

func (t *treeNode) predict(x *mat.Dense, i int) float64 {
	return t.leafFor(x, i).value
}

// buildTree grows a regression tree on the given rows of x against target.
func buildTree(x *mat.Dense, target []float64, rows []int, cfg treeConfig, depth int) *treeNode {
	sum := 0.0
	for _, r := range rows {
		sum += target[r]
	}
	mean := sum / float64(len(rows))

	if depth >= cfg.maxDepth || len(rows) < 2*cfg.minLeaf || isConstant(target, rows) {
		return &treeNode{value: mean}
	}

	feature, threshold, ok := bestSplit(x, target, rows, cfg)
	if !ok {
		return &treeNode{value: mean}
	}

	var left, right []int
	for _, r := range rows {
		if x.At(r, feature) <= threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(x, target, left, cfg, depth+1),
		right:     buildTree(x, target, right, cfg, depth+1),
	}
}

func isConstant(target []float64, rows []int) bool {
	first := target[rows[0]]
	for _, r := range rows[1:] {
		if target[r] != first {
			return false
		}
	}
	return true
}

// bestSplit scans candidate features for the split minimizing total
// within-node squared error, honoring the minimum leaf size on both sides.
func bestSplit(x *mat.Dense, target []float64, rows []int, cfg treeConfig) (int, float64, bool) {
	_, p := x.Dims()
	features := candidateFeatures(p, cfg)

	type pair struct {
		v float64
		t float64
	}
	pairs := make([]pair, len(rows))

	bestFeature := -1
	bestThreshold := 0.0
	bestScore := math.Inf(1)

	for _, f := range features {
		for i, r := range rows {
			pairs[i] = pair{v: x.At(r, f), t: target[r]}
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].v < pairs[j].v })

		total := 0.0
		totalSq := 0.0
		for _, pr := range pairs {
			total += pr.t
			totalSq += pr.t * pr.t
		}

		leftSum := 0.0
		leftSq := 0.0
		n := len(pairs)
		for i := 0; i < n-1; i++ {
			leftSum += pairs[i].t
			leftSq += pairs[i].t * pairs[i].t
			if pairs[i].v == pairs[i+1].v {
				continue
			}
			nl := i + 1
			nr := n - nl
			if nl < cfg.minLeaf || nr < cfg.minLeaf {
				continue
			}
			// SSE = Σt² − (Σt)²/n, summed over both sides.
			score := (leftSq - leftSum*leftSum/float64(nl)) +
				((totalSq - leftSq) - (total-leftSum)*(total-leftSum)/float64(nr))
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = (pairs[i].v + pairs[i+1].v) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// candidateFeatures returns the feature indices to consider at a split:
// all of them, or an mtry-sized random sample without replacement.
func candidateFeatures(p int, cfg treeConfig) []int {
	if cfg.mtry <= 0 || cfg.mtry >= p || cfg.rng == nil {
		all := make([]int, p)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return cfg.rng.Perm(p)[:cfg.mtry]
}
