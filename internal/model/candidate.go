// Package model defines the core domain types used throughout the application.
package model

import (
	"fmt"
	"sort"
	"strings"
)

// Algorithm identifies one of the candidate classification algorithms.
type Algorithm string

// Candidate algorithm constants.
const (
	AlgorithmLogistic Algorithm = "logistic"
	AlgorithmLDA      Algorithm = "lda"
	AlgorithmQDA      Algorithm = "qda"
	AlgorithmForest   Algorithm = "forest"
	AlgorithmBoost    Algorithm = "boost"
)

// Hyperparameter keys shared between the grid definitions and the learners.
const (
	ParamMTry      = "mtry"
	ParamTrees     = "trees"
	ParamDepth     = "depth"
	ParamShrinkage = "shrinkage"
	ParamMinLeaf   = "min_leaf"
)

// Params holds the hyperparameter values of a single grid point. A nil map
// means the algorithm's defaults.
type Params map[string]float64

// Get returns the value for key, or def when the key is absent.
func (p Params) Get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Clone returns an independent copy of the params.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String renders the params as "key=value" pairs in sorted key order, so the
// same grid point always prints and persists identically.
func (p Params) String() string {
	if len(p) == 0 {
		return "defaults"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, p[k]))
	}
	return strings.Join(parts, " ")
}

// Candidate pairs an algorithm with the hyperparameter grid to sweep during
// cross-validation. An empty grid means a single run with default params.
type Candidate struct {
	Algorithm Algorithm
	Grid      []Params
}
