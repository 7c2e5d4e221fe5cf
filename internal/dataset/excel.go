package dataset

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/scorecard/internal/common"
)

// LoadXLSX reads the first sheet of a spreadsheet against the schema. The
// published credit-default dataset ships as a workbook, so the loader accepts
// it directly instead of requiring a CSV conversion step.
func LoadXLSX(path string, schema Schema, kind Kind) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close workbook", "path", path, "error", closeErr)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, common.ErrEmptyDataset)
	}

	// GetRows trims trailing empty cells; pad so column lookups stay valid
	// and empty cells fail with the loader's own message.
	header := rows[0]
	body := rows[1:]
	for i, row := range body {
		for len(row) < len(header) {
			row = append(row, "")
		}
		body[i] = row
	}

	return fromRows(path, header, body, schema, kind)
}
