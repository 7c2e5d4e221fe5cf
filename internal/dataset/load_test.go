package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/scorecard/internal/common"
)

// testSchema is a small schema exercising every column type.
func testSchema() Schema {
	return Schema{
		IDColumn:    "ID",
		LabelColumn: "default",
		LabelLevels: [2]string{"0", "1"},
		Columns: []Column{
			{Name: "LIMIT_BAL"},
			{Name: "SEX", Levels: []string{"1", "2"}},
			{Name: "AGE"},
		},
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCSV_Training(t *testing.T) {
	path := writeCSV(t, "LIMIT_BAL,SEX,AGE,default\n20000,2,24,1\n120000,1,26,0\n")

	ds, err := LoadCSV(path, testSchema(), KindTraining)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 3, ds.NumFeatures())
	assert.Equal(t, []int{1, 0}, ds.Labels())

	// SEX is encoded by declared level position, not face value.
	m := ds.Matrix()
	assert.Equal(t, 20000.0, m.At(0, 0))
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(1, 1))
	assert.Equal(t, 26.0, m.At(1, 2))
}

func TestLoadCSV_ScoringRequiresID(t *testing.T) {
	path := writeCSV(t, "LIMIT_BAL,SEX,AGE\n20000,2,24\n")

	_, err := LoadCSV(path, testSchema(), KindScoring)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingColumn)
}

func TestLoadCSV_Scoring(t *testing.T) {
	path := writeCSV(t, "ID,LIMIT_BAL,SEX,AGE\n101,20000,2,24\n102,120000,1,26\n103,90000,2,34\n")

	ds, err := LoadCSV(path, testSchema(), KindScoring)
	require.NoError(t, err)

	assert.Equal(t, []string{"101", "102", "103"}, ds.IDs())
	assert.Nil(t, ds.Labels())
	assert.Equal(t, KindScoring, ds.Kind())
}

func TestLoadCSV_Errors(t *testing.T) {
	tests := []struct {
		check   func(t *testing.T, err error)
		name    string
		content string
	}{
		{
			name:    "missing declared column",
			content: "LIMIT_BAL,AGE,default\n20000,24,1\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, common.ErrMissingColumn)
			},
		},
		{
			name:    "non-numeric value in numeric column",
			content: "LIMIT_BAL,SEX,AGE,default\nlots,2,24,1\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "LIMIT_BAL")
				assert.Contains(t, err.Error(), "not numeric")
			},
		},
		{
			name:    "categorical value outside declared levels",
			content: "LIMIT_BAL,SEX,AGE,default\n20000,3,24,1\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, common.ErrUnknownLevel)
				assert.Contains(t, err.Error(), `"3"`)
			},
		},
		{
			name:    "invalid label value",
			content: "LIMIT_BAL,SEX,AGE,default\n20000,2,24,2\n",
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "label")
			},
		},
		{
			name:    "missing label column on training data",
			content: "LIMIT_BAL,SEX,AGE\n20000,2,24\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, common.ErrMissingColumn)
			},
		},
		{
			name:    "header only",
			content: "LIMIT_BAL,SEX,AGE,default\n",
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, common.ErrEmptyDataset)
			},
		},
		{
			name:    "short row",
			content: "LIMIT_BAL,SEX,AGE,default\n20000,2\n",
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)
			_, err := LoadCSV(path, testSchema(), KindTraining)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLoadCSV_ErrorNamesRow(t *testing.T) {
	path := writeCSV(t, "LIMIT_BAL,SEX,AGE,default\n20000,2,24,1\n30000,9,30,0\n")

	_, err := LoadCSV(path, testSchema(), KindTraining)
	require.Error(t, err)
	// Header is row 1, so the bad record is row 3.
	assert.Contains(t, err.Error(), "row 3")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), testSchema(), KindTraining)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSubset(t *testing.T) {
	path := writeCSV(t, "ID,LIMIT_BAL,SEX,AGE,default\n1,10,1,20,0\n2,20,2,30,1\n3,30,1,40,0\n")

	ds, err := LoadCSV(path, testSchema(), KindTraining)
	require.NoError(t, err)

	sub, err := ds.Subset([]int{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []int{0, 0}, sub.Labels())
	assert.Equal(t, []string{"3", "1"}, sub.IDs())
	assert.Equal(t, 30.0, sub.Matrix().At(0, 0))

	_, err = ds.Subset([]int{5})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	path := writeCSV(t, "LIMIT_BAL,SEX,AGE,default\n10000,1,20,0\n30000,2,40,1\n20000,2,30,0\n")

	ds, err := LoadCSV(path, testSchema(), KindTraining)
	require.NoError(t, err)

	summaries := ds.Summarize()
	require.Len(t, summaries, 3)

	limit := summaries[0]
	assert.Equal(t, 10000.0, limit.Min)
	assert.Equal(t, 30000.0, limit.Max)
	assert.InDelta(t, 20000.0, limit.Mean, 1e-9)

	sex := summaries[1]
	require.True(t, sex.Categorical)
	assert.Equal(t, 1, sex.LevelCounts["1"])
	assert.Equal(t, 2, sex.LevelCounts["2"])

	assert.Equal(t, []int{2, 1}, ds.LabelCounts())
}
