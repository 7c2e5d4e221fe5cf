// Package export persists prediction output to delimited files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Veraticus/scorecard/internal/config"
	"github.com/Veraticus/scorecard/internal/model"
)

// WritePredictions persists (id, probability) pairs, in order, to a CSV file
// with a header row. The file is written to a temporary sibling and renamed
// into place, so a failed write never leaves a partial output file behind.
func WritePredictions(path string, preds []model.Prediction) (err error) {
	if err = config.EnsureParentDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write([]string{"ID", "probability"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range preds {
		record := []string{p.ID, strconv.FormatFloat(p.Probability, 'f', 6, 64)}
		if err = w.Write(record); err != nil {
			return fmt.Errorf("failed to write prediction for %s: %w", p.ID, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("failed to flush predictions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move predictions into place: %w", err)
	}
	return nil
}
