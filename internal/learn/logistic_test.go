package learn

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/scorecard/internal/common"
)

func TestLogistic_SeparatesBlobs(t *testing.T) {
	x, y := blobs(200, 3, 42)

	clf := NewLogistic()
	require.NoError(t, clf.Fit(x, y))

	probs, err := clf.PredictProba(x)
	require.NoError(t, err)
	assertProbBounds(t, probs)
	assert.Greater(t, accuracy(t, probs, y), 0.95)
}

func TestLogistic_ToleratesPerfectSeparation(t *testing.T) {
	// One feature that determines the label exactly: the classic
	// degenerate case where coefficients diverge.
	x := mat.NewDense(10, 1, []float64{-5, -4, -3, -2, -1, 1, 2, 3, 4, 5})
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}

	clf := NewLogistic()
	require.NoError(t, clf.Fit(x, y))

	probs, err := clf.PredictProba(x)
	require.NoError(t, err)
	assertProbBounds(t, probs)
	// Estimates are saturated but still ordered correctly.
	assert.Equal(t, 1.0, accuracy(t, probs, y))
}

func TestLogistic_PredictBeforeFit(t *testing.T) {
	clf := NewLogistic()
	_, err := clf.PredictProba(mat.NewDense(1, 2, []float64{1, 2}))
	assert.ErrorIs(t, err, common.ErrNotFitted)
}

func TestLogistic_RejectsBadTarget(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{1, 2})

	clf := NewLogistic()
	assert.Error(t, clf.Fit(x, []int{0}))
	assert.Error(t, clf.Fit(x, []int{0, 2}))
}

func TestLogistic_FeatureCountMismatch(t *testing.T) {
	x, y := blobs(50, 2, 7)
	clf := NewLogistic()
	require.NoError(t, clf.Fit(x, y))

	_, err := clf.PredictProba(mat.NewDense(1, 3, []float64{1, 2, 3}))
	assert.Error(t, err)
}
