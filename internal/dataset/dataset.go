package dataset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Kind distinguishes labeled training data from unlabeled scoring data.
type Kind int

// Dataset kinds.
const (
	KindTraining Kind = iota
	KindScoring
)

func (k Kind) String() string {
	if k == KindScoring {
		return "scoring"
	}
	return "training"
}

// Dataset is an immutable, schema-typed collection of records. Numeric
// features are stored as parsed floats; categorical features as their level
// index, so the encoding is identical for any two datasets sharing a Schema.
type Dataset struct {
	schema Schema
	kind   Kind
	ids    []string
	labels []int
	x      []float64 // row-major, Len() x NumFeatures()
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d.schema.NumFeatures() == 0 {
		return 0
	}
	return len(d.x) / d.schema.NumFeatures()
}

// NumFeatures returns the number of feature columns.
func (d *Dataset) NumFeatures() int {
	return d.schema.NumFeatures()
}

// Schema returns the schema the dataset was loaded against.
func (d *Dataset) Schema() Schema {
	return d.schema
}

// Kind reports whether the dataset carries labels.
func (d *Dataset) Kind() Kind {
	return d.kind
}

// Matrix returns the encoded feature matrix as a fresh dense copy.
func (d *Dataset) Matrix() *mat.Dense {
	data := make([]float64, len(d.x))
	copy(data, d.x)
	return mat.NewDense(d.Len(), d.NumFeatures(), data)
}

// Labels returns a copy of the class labels. Nil for scoring datasets.
func (d *Dataset) Labels() []int {
	if d.labels == nil {
		return nil
	}
	out := make([]int, len(d.labels))
	copy(out, d.labels)
	return out
}

// IDs returns a copy of the record ids in file order. Nil when the file
// carried no id column.
func (d *Dataset) IDs() []string {
	if d.ids == nil {
		return nil
	}
	out := make([]string, len(d.ids))
	copy(out, d.ids)
	return out
}

// Subset returns a new dataset containing the given rows, in the given order.
func (d *Dataset) Subset(rows []int) (*Dataset, error) {
	p := d.NumFeatures()
	sub := &Dataset{
		schema: d.schema,
		kind:   d.kind,
		x:      make([]float64, 0, len(rows)*p),
	}
	if d.labels != nil {
		sub.labels = make([]int, 0, len(rows))
	}
	if d.ids != nil {
		sub.ids = make([]string, 0, len(rows))
	}

	n := d.Len()
	for _, r := range rows {
		if r < 0 || r >= n {
			return nil, fmt.Errorf("row %d out of range [0,%d)", r, n)
		}
		sub.x = append(sub.x, d.x[r*p:(r+1)*p]...)
		if d.labels != nil {
			sub.labels = append(sub.labels, d.labels[r])
		}
		if d.ids != nil {
			sub.ids = append(sub.ids, d.ids[r])
		}
	}
	return sub, nil
}

// ColumnSummary holds per-column statistics for operator inspection.
type ColumnSummary struct {
	Name        string
	Categorical bool
	Min         float64
	Max         float64
	Mean        float64
	LevelCounts map[string]int
}

// Summarize computes per-column statistics: min/mean/max for numeric columns
// and per-level record counts for categorical columns.
func (d *Dataset) Summarize() []ColumnSummary {
	n := d.Len()
	p := d.NumFeatures()
	out := make([]ColumnSummary, 0, p)

	col := make([]float64, n)
	for j, c := range d.schema.Columns {
		for i := 0; i < n; i++ {
			col[i] = d.x[i*p+j]
		}
		s := ColumnSummary{Name: c.Name, Categorical: c.Categorical()}
		if n == 0 {
			s.Min, s.Max, s.Mean = math.NaN(), math.NaN(), math.NaN()
			out = append(out, s)
			continue
		}
		if c.Categorical() {
			s.LevelCounts = make(map[string]int, len(c.Levels))
			for _, l := range c.Levels {
				s.LevelCounts[l] = 0
			}
			for i := 0; i < n; i++ {
				s.LevelCounts[c.Levels[int(col[i])]]++
			}
		} else {
			s.Min = floats.Min(col)
			s.Max = floats.Max(col)
			s.Mean = stat.Mean(col, nil)
		}
		out = append(out, s)
	}
	return out
}

// LabelCounts returns the number of records per class. Nil for scoring data.
func (d *Dataset) LabelCounts() []int {
	if d.labels == nil {
		return nil
	}
	counts := make([]int, 2)
	for _, y := range d.labels {
		counts[y]++
	}
	return counts
}
