package learn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/scorecard/internal/common"
)

func TestForest_SeparatesBlobs(t *testing.T) {
	x, y := blobs(200, 4, 31)

	clf := NewForest(ForestConfig{Trees: 50, MTry: 2, Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, clf.Fit(x, y))

	probs, err := clf.PredictProba(x)
	require.NoError(t, err)
	assertProbBounds(t, probs)
	assert.Greater(t, accuracy(t, probs, y), 0.95)
}

func TestForest_DeterministicGivenSeed(t *testing.T) {
	x, y := blobs(120, 4, 5)

	fit := func() []float64 {
		clf := NewForest(ForestConfig{Trees: 25, MTry: 2, Rand: rand.New(rand.NewSource(77))})
		require.NoError(t, clf.Fit(x, y))
		probs, err := clf.PredictProba(x)
		require.NoError(t, err)
		return probs
	}

	assert.Equal(t, fit(), fit())
}

func TestForest_BaggingUsesAllFeatures(t *testing.T) {
	// MTry equal to the feature count degenerates to bagging and must
	// still fit cleanly.
	x, y := blobs(100, 4, 13)

	clf := NewForest(ForestConfig{Trees: 25, MTry: 4, Rand: rand.New(rand.NewSource(3))})
	require.NoError(t, clf.Fit(x, y))

	probs, err := clf.PredictProba(x)
	require.NoError(t, err)
	assert.Greater(t, accuracy(t, probs, y), 0.9)
}

func TestForest_PredictBeforeFit(t *testing.T) {
	x, _ := blobs(10, 2, 1)
	_, err := NewForest(ForestConfig{}).PredictProba(x)
	assert.ErrorIs(t, err, common.ErrNotFitted)
}
