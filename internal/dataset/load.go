package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/scorecard/internal/common"
)

// Load reads a dataset from path, dispatching on the file extension:
// .xlsx files go through the spreadsheet reader, everything else is
// treated as delimited text with a header row.
func Load(path string, schema Schema, kind Kind) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path, schema, kind)
	}
	return LoadCSV(path, schema, kind)
}

// LoadCSV reads a comma-delimited file with a header row against the schema.
func LoadCSV(path string, schema Schema, kind Kind) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, common.ErrEmptyDataset)
	}
	return fromRows(path, rows[0], rows[1:], schema, kind)
}

// fromRows converts a header and raw string rows into an encoded Dataset.
// Any malformed cell is a fatal input error; no partial dataset is returned.
func fromRows(source string, header []string, rows [][]string, schema Schema, kind Kind) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", source, common.ErrEmptyDataset)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	featureIdx := make([]int, len(schema.Columns))
	for i, c := range schema.Columns {
		idx, ok := colIdx[c.Name]
		if !ok {
			return nil, fmt.Errorf("%s: column %q: %w", source, c.Name, common.ErrMissingColumn)
		}
		featureIdx[i] = idx
	}

	labelIdx := -1
	if kind == KindTraining {
		idx, ok := colIdx[schema.LabelColumn]
		if !ok {
			return nil, fmt.Errorf("%s: label column %q: %w", source, schema.LabelColumn, common.ErrMissingColumn)
		}
		labelIdx = idx
	}

	idIdx := -1
	if idx, ok := colIdx[schema.IDColumn]; ok {
		idIdx = idx
	} else if kind == KindScoring {
		return nil, fmt.Errorf("%s: id column %q: %w", source, schema.IDColumn, common.ErrMissingColumn)
	}

	ds := &Dataset{
		schema: schema,
		kind:   kind,
		x:      make([]float64, 0, len(rows)*len(schema.Columns)),
	}
	if kind == KindTraining {
		ds.labels = make([]int, 0, len(rows))
	}
	if idIdx >= 0 {
		ds.ids = make([]string, 0, len(rows))
	}

	for rowNum, row := range rows {
		// Header is row 1 in operator-facing messages.
		line := rowNum + 2

		for i, c := range schema.Columns {
			cell, err := cellAt(row, featureIdx[i])
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", source, line, c.Name, err)
			}
			if c.Categorical() {
				level, ok := c.levelIndex(cell)
				if !ok {
					return nil, fmt.Errorf("%s row %d column %q: value %q not in declared levels %v: %w",
						source, line, c.Name, cell, c.Levels, common.ErrUnknownLevel)
				}
				ds.x = append(ds.x, float64(level))
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %q is not numeric", source, line, c.Name, cell)
			}
			ds.x = append(ds.x, v)
		}

		if labelIdx >= 0 {
			cell, err := cellAt(row, labelIdx)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", source, line, schema.LabelColumn, err)
			}
			y, err := schema.labelIndex(cell)
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", source, line, err)
			}
			ds.labels = append(ds.labels, y)
		}

		if idIdx >= 0 {
			cell, err := cellAt(row, idIdx)
			if err != nil {
				return nil, fmt.Errorf("%s row %d column %q: %w", source, line, schema.IDColumn, err)
			}
			ds.ids = append(ds.ids, cell)
		}
	}

	return ds, nil
}

func cellAt(row []string, idx int) (string, error) {
	if idx >= len(row) {
		return "", fmt.Errorf("row has %d cells, need at least %d", len(row), idx+1)
	}
	cell := strings.TrimSpace(row[idx])
	if cell == "" {
		return "", fmt.Errorf("cell is empty")
	}
	return cell, nil
}
