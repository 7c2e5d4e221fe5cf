package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_String(t *testing.T) {
	tests := []struct {
		params Params
		name   string
		want   string
	}{
		{
			name:   "nil params render as defaults",
			params: nil,
			want:   "defaults",
		},
		{
			name:   "empty params render as defaults",
			params: Params{},
			want:   "defaults",
		},
		{
			name:   "keys are sorted",
			params: Params{ParamTrees: 200, ParamDepth: 3, ParamShrinkage: 0.01},
			want:   "depth=3 shrinkage=0.01 trees=200",
		},
		{
			name:   "single param",
			params: Params{ParamMTry: 17},
			want:   "mtry=17",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.String())
		})
	}
}

func TestParams_Get(t *testing.T) {
	p := Params{ParamDepth: 2}
	assert.Equal(t, 2.0, p.Get(ParamDepth, 3))
	assert.Equal(t, 0.1, p.Get(ParamShrinkage, 0.1))

	var nilParams Params
	assert.Equal(t, 5.0, nilParams.Get(ParamMinLeaf, 5))
}

func TestParams_Clone(t *testing.T) {
	p := Params{ParamMTry: 4}
	c := p.Clone()
	c[ParamMTry] = 8

	assert.Equal(t, 4.0, p[ParamMTry])
	assert.Nil(t, Params(nil).Clone())
}

func TestTrialResult_Misclassification(t *testing.T) {
	for _, acc := range []float64{0, 0.196, 0.5, 0.804, 1} {
		r := TrialResult{Algorithm: AlgorithmLogistic, Accuracy: acc}
		require.Equal(t, 1-acc, r.Misclassification())
	}
}
