package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/scorecard/internal/common"
)

func writeXLSX(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"LIMIT_BAL", "SEX", "AGE", "default"},
		{20000, "2", 24, "0"},
		{120000, "1", 26, "1"},
	})

	ds, err := LoadXLSX(path, testSchema(), KindTraining)
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []int{0, 1}, ds.Labels())
	assert.Equal(t, 120000.0, ds.Matrix().At(1, 0))
}

func TestLoadXLSX_UnknownLevel(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"LIMIT_BAL", "SEX", "AGE", "default"},
		{20000, "7", 24, "0"},
	})

	_, err := LoadXLSX(path, testSchema(), KindTraining)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownLevel)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"LIMIT_BAL", "SEX", "AGE", "default"},
		{20000, "2", 24, "0"},
		{9000, "1", 31, "1"},
	})

	ds, err := Load(path, testSchema(), KindTraining)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}
