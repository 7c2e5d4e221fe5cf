// Package trial runs cross-validated training trials over candidate
// algorithms and selects the best performer by misclassification rate.
package trial

import (
	"fmt"
	"math/rand"

	"github.com/Veraticus/scorecard/internal/common"
)

// Folds partitions n record indices into k held-out folds: a seeded shuffle
// dealt round-robin, so every record lands in exactly one fold and the
// assignment is bit-for-bit reproducible for a given rng state.
func Folds(n, k int, rng *rand.Rand) ([][]int, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: need at least 2 folds, got %d", common.ErrFoldsRange, k)
	}
	if n < k {
		return nil, fmt.Errorf("%w: %d records cannot fill %d folds", common.ErrFoldsRange, n, k)
	}

	folds := make([][]int, k)
	for i, r := range rng.Perm(n) {
		folds[i%k] = append(folds[i%k], r)
	}
	return folds, nil
}

// complement returns all indices in [0,n) not present in held.
func complement(n int, held []int) []int {
	in := make([]bool, n)
	for _, r := range held {
		in[r] = true
	}
	out := make([]int, 0, n-len(held))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}
