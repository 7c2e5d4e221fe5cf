package learn

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// logOf guards against the exact-zero probabilities the clamp prevents.
func logOf(p float64) float64 {
	return math.Log(clampProb(p))
}

// blobs builds a two-class dataset of Gaussian clusters centered at
// (-2,-2,...) and (2,2,...), alternating labels for balance.
func blobs(n, features int, seed int64) (*mat.Dense, []int) {
	rng := rand.New(rand.NewSource(seed))
	x := mat.NewDense(n, features, nil)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		y[i] = i % 2
		center := -2.0
		if y[i] == 1 {
			center = 2.0
		}
		for j := 0; j < features; j++ {
			x.Set(i, j, center+rng.NormFloat64())
		}
	}
	return x, y
}

// accuracy scores probabilities against labels at the 0.5 threshold.
func accuracy(t *testing.T, probs []float64, y []int) float64 {
	t.Helper()
	correct := 0
	for i, p := range probs {
		pred := 0
		if p >= 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(probs))
}

// assertProbBounds fails if any probability leaves the closed unit interval.
func assertProbBounds(t *testing.T, probs []float64) {
	t.Helper()
	for i, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("probability %d = %v outside [0,1]", i, p)
		}
	}
}
