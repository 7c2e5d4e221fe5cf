package learn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Veraticus/scorecard/internal/common"
)

// Logistic is binomial logistic regression fit by iteratively reweighted
// least squares. Perfectly separable data drives coefficients toward
// infinity and the deviance toward zero; the iteration cap and probability
// clamp make that a degraded fit rather than an error.
type Logistic struct {
	coef    []float64 // intercept first
	maxIter int
	tol     float64
}

// NewLogistic returns a logistic regression classifier with the usual
// IRLS iteration cap and convergence tolerance.
func NewLogistic() *Logistic {
	return &Logistic{maxIter: 25, tol: 1e-8}
}

// Fit estimates the coefficients on x and the binary target y.
func (l *Logistic) Fit(x *mat.Dense, y []int) error {
	if err := checkTarget(x, y); err != nil {
		return fmt.Errorf("logistic fit: %w", err)
	}
	n, p := x.Dims()

	// Design matrix with an intercept column.
	xd := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		xd.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			xd.Set(i, j+1, x.At(i, j))
		}
	}

	beta := make([]float64, p+1)
	eta := make([]float64, n)
	prob := make([]float64, n)
	prevDev := math.Inf(1)

	// Weighted least squares buffers: a = sqrt(w)·X, b = sqrt(w)·z.
	a := mat.NewDense(n, p+1, nil)
	b := mat.NewVecDense(n, nil)

	for iter := 0; iter < l.maxIter; iter++ {
		dev := 0.0
		for i := 0; i < n; i++ {
			prob[i] = clampProb(sigmoid(eta[i]))
			w := prob[i] * (1 - prob[i])
			sw := math.Sqrt(w)
			z := eta[i] + (float64(y[i])-prob[i])/w
			for j := 0; j <= p; j++ {
				a.Set(i, j, sw*xd.At(i, j))
			}
			b.SetVec(i, sw*z)
			if y[i] == 1 {
				dev -= 2 * math.Log(prob[i])
			} else {
				dev -= 2 * math.Log(1-prob[i])
			}
		}

		var next mat.VecDense
		if err := next.SolveVec(a, b); err != nil {
			// Rank deficiency from vanishing weights on a separable
			// fold; keep the last solvable coefficients.
			break
		}
		for j := 0; j <= p; j++ {
			beta[j] = next.AtVec(j)
		}
		for i := 0; i < n; i++ {
			eta[i] = mat.Dot(xd.RowView(i), &next)
		}

		if math.Abs(prevDev-dev) < l.tol*(math.Abs(dev)+0.1) {
			break
		}
		prevDev = dev
	}

	l.coef = beta
	return nil
}

// PredictProba returns class-1 probabilities for each row of x.
func (l *Logistic) PredictProba(x *mat.Dense) ([]float64, error) {
	if l.coef == nil {
		return nil, common.ErrNotFitted
	}
	n, p := x.Dims()
	if p+1 != len(l.coef) {
		return nil, fmt.Errorf("logistic predict: have %d features, model has %d", p, len(l.coef)-1)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		eta := l.coef[0]
		for j := 0; j < p; j++ {
			eta += l.coef[j+1] * x.At(i, j)
		}
		out[i] = clampProb(sigmoid(eta))
	}
	return out, nil
}
