// Package dataset loads delimited credit data into typed, immutable datasets.
//
// The column schema is an explicit artifact passed to every load. Training and
// scoring files are read independently, so the only way to guarantee that
// categorical level orderings agree between them is to hand both loads the
// same Schema value; levels are never inferred from file contents.
package dataset

import "fmt"

// Column describes one feature column. A nil Levels slice means the column is
// numeric; a non-nil slice declares a closed, ordered categorical enumeration.
// Level position is meaningful and becomes the encoded feature value.
type Column struct {
	Name   string
	Levels []string
}

// Categorical reports whether the column is a declared enumeration.
func (c Column) Categorical() bool {
	return c.Levels != nil
}

// levelIndex returns the position of value in the declared level set.
func (c Column) levelIndex(value string) (int, bool) {
	for i, l := range c.Levels {
		if l == value {
			return i, true
		}
	}
	return 0, false
}

// Schema declares the columns of a dataset: an id column (scoring files), a
// two-level label column (training files), and the ordered feature columns.
type Schema struct {
	IDColumn    string
	LabelColumn string
	LabelLevels [2]string
	Columns     []Column
}

// NumFeatures returns the number of feature columns.
func (s Schema) NumFeatures() int {
	return len(s.Columns)
}

// FeatureNames returns the feature column names in schema order.
func (s Schema) FeatureNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// labelIndex returns the class index (0 or 1) for a raw label value.
func (s Schema) labelIndex(value string) (int, error) {
	for i, l := range s.LabelLevels {
		if l == value {
			return i, nil
		}
	}
	return 0, fmt.Errorf("label %q is not one of %v", value, s.LabelLevels)
}

// CreditSchema returns the schema for the credit-default datasets: credit
// limit, demographics, six monthly bill amounts, six monthly payment amounts,
// and a binary default label. The declared level orderings are part of the
// contract and must match the published data dictionary.
func CreditSchema() Schema {
	return Schema{
		IDColumn:    "ID",
		LabelColumn: "default",
		LabelLevels: [2]string{"0", "1"},
		Columns: []Column{
			{Name: "LIMIT_BAL"},
			{Name: "SEX", Levels: []string{"1", "2"}},
			{Name: "EDUCATION", Levels: []string{"1", "2", "3", "4"}},
			{Name: "MARRIAGE", Levels: []string{"1", "2", "3"}},
			{Name: "AGE"},
			{Name: "BILL_AMT1"},
			{Name: "BILL_AMT2"},
			{Name: "BILL_AMT3"},
			{Name: "BILL_AMT4"},
			{Name: "BILL_AMT5"},
			{Name: "BILL_AMT6"},
			{Name: "PAY_AMT1"},
			{Name: "PAY_AMT2"},
			{Name: "PAY_AMT3"},
			{Name: "PAY_AMT4"},
			{Name: "PAY_AMT5"},
			{Name: "PAY_AMT6"},
		},
	}
}
