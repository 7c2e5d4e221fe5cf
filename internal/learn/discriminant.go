package learn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Veraticus/scorecard/internal/common"
)

// Discriminant implements Gaussian discriminant analysis. With a pooled
// within-class covariance it is LDA; with per-class covariances it is QDA.
type Discriminant struct {
	quadratic bool
	p         int
	logPrior  [2]float64
	means     [2][]float64
	chol      [2]*mat.Cholesky
	logDet    [2]float64
	fitted    bool
}

// NewLDA returns a linear discriminant analysis classifier.
func NewLDA() *Discriminant {
	return &Discriminant{quadratic: false}
}

// NewQDA returns a quadratic discriminant analysis classifier.
func NewQDA() *Discriminant {
	return &Discriminant{quadratic: true}
}

// Fit estimates class priors, means, and covariance factorizations.
func (d *Discriminant) Fit(x *mat.Dense, y []int) error {
	if err := checkTarget(x, y); err != nil {
		return fmt.Errorf("discriminant fit: %w", err)
	}
	n, p := x.Dims()
	d.p = p

	var classRows [2][]int
	for i, label := range y {
		classRows[label] = append(classRows[label], i)
	}
	for k := 0; k < 2; k++ {
		if len(classRows[k]) < 2 {
			return fmt.Errorf("discriminant fit: class %d has %d rows, need at least 2", k, len(classRows[k]))
		}
	}

	var cov [2]*mat.SymDense
	for k := 0; k < 2; k++ {
		nk := len(classRows[k])
		d.logPrior[k] = math.Log(float64(nk) / float64(n))

		sub := mat.NewDense(nk, p, nil)
		for i, r := range classRows[k] {
			for j := 0; j < p; j++ {
				sub.Set(i, j, x.At(r, j))
			}
		}

		mean := make([]float64, p)
		for j := 0; j < p; j++ {
			mean[j] = stat.Mean(mat.Col(nil, j, sub), nil)
		}
		d.means[k] = mean

		cov[k] = mat.NewSymDense(p, nil)
		stat.CovarianceMatrix(cov[k], sub, nil)
	}

	if !d.quadratic {
		// Pooled within-class covariance, shared by both classes.
		n0 := float64(len(classRows[0]))
		n1 := float64(len(classRows[1]))
		pooled := mat.NewSymDense(p, nil)
		for i := 0; i < p; i++ {
			for j := i; j < p; j++ {
				v := ((n0-1)*cov[0].At(i, j) + (n1-1)*cov[1].At(i, j)) / (float64(n) - 2)
				pooled.SetSym(i, j, v)
			}
		}
		cov[0] = pooled
		cov[1] = pooled
	}

	for k := 0; k < 2; k++ {
		if !d.quadratic && k == 1 {
			d.chol[1] = d.chol[0]
			d.logDet[1] = d.logDet[0]
			break
		}
		ch, err := factorize(cov[k])
		if err != nil {
			return fmt.Errorf("discriminant fit: class %d covariance: %w", k, err)
		}
		d.chol[k] = ch
		d.logDet[k] = ch.LogDet()
	}

	d.fitted = true
	return nil
}

// factorize Cholesky-decomposes sigma, adding an escalating diagonal jitter
// when the matrix is not positive definite (constant columns within a fold).
func factorize(sigma *mat.SymDense) (*mat.Cholesky, error) {
	p := sigma.SymmetricDim()

	trace := 0.0
	for i := 0; i < p; i++ {
		trace += sigma.At(i, i)
	}
	jitter := 1e-10 * (trace/float64(p) + 1)

	var ch mat.Cholesky
	if ch.Factorize(sigma) {
		return &ch, nil
	}
	for attempt := 0; attempt < 10; attempt++ {
		for i := 0; i < p; i++ {
			sigma.SetSym(i, i, sigma.At(i, i)+jitter)
		}
		if ch.Factorize(sigma) {
			return &ch, nil
		}
		jitter *= 10
	}
	return nil, fmt.Errorf("covariance matrix is not positive definite")
}

// PredictProba returns class-1 posterior probabilities for each row of x.
func (d *Discriminant) PredictProba(x *mat.Dense) ([]float64, error) {
	if !d.fitted {
		return nil, common.ErrNotFitted
	}
	n, p := x.Dims()
	if p != d.p {
		return nil, fmt.Errorf("discriminant predict: have %d features, model has %d", p, d.p)
	}

	out := make([]float64, n)
	diff := mat.NewVecDense(p, nil)
	var solved mat.VecDense
	for i := 0; i < n; i++ {
		var ll [2]float64
		for k := 0; k < 2; k++ {
			for j := 0; j < p; j++ {
				diff.SetVec(j, x.At(i, j)-d.means[k][j])
			}
			if err := d.chol[k].SolveVecTo(&solved, diff); err != nil {
				return nil, fmt.Errorf("discriminant predict: %w", err)
			}
			ll[k] = d.logPrior[k] - 0.5*d.logDet[k] - 0.5*mat.Dot(diff, &solved)
		}
		out[i] = clampProb(1 / (1 + math.Exp(ll[0]-ll[1])))
	}
	return out, nil
}
