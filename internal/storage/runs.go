package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/scorecard/internal/model"
)

// RunRecord is one row of run history for operator display.
type RunRecord struct {
	StartedAt    time.Time
	CompletedAt  *time.Time
	TrainingPath string
	Algorithm    string
	Params       string
	ID           int64
	Seed         int64
	Accuracy     float64
	Folds        int
	Trials       int
}

// BeginRun inserts a new run row and returns its id.
func (s *SQLiteLedger) BeginRun(ctx context.Context, info model.RunInfo) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, training_path, seed, folds) VALUES (?, ?, ?, ?)`,
		info.StartedAt.UTC(), info.TrainingPath, info.Seed, info.Folds)
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return id, nil
}

// SaveTrial appends one trial result to the run.
func (s *SQLiteLedger) SaveTrial(ctx context.Context, runID int64, result model.TrialResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trials (run_id, algorithm, params, accuracy, misclassification)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, string(result.Algorithm), result.Params.String(),
		result.Accuracy, result.Misclassification())
	if err != nil {
		return fmt.Errorf("failed to save trial: %w", err)
	}
	return nil
}

// CompleteRun records the final selection on the run row.
func (s *SQLiteLedger) CompleteRun(ctx context.Context, runID int64, selected model.TrialResult) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET selected_algorithm = ?, selected_params = ?, selected_accuracy = ?, completed_at = ?
		 WHERE id = ?`,
		string(selected.Algorithm), selected.Params.String(), selected.Accuracy, time.Now().UTC(), runID)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check run update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("run %d not found", runID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteLedger) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.started_at, r.completed_at, r.training_path, r.seed, r.folds,
		        COALESCE(r.selected_algorithm, ''), COALESCE(r.selected_params, ''),
		        COALESCE(r.selected_accuracy, 0),
		        (SELECT COUNT(*) FROM trials t WHERE t.run_id = r.id)
		 FROM runs r
		 ORDER BY r.started_at DESC, r.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.CompletedAt, &r.TrainingPath,
			&r.Seed, &r.Folds, &r.Algorithm, &r.Params, &r.Accuracy, &r.Trials); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return out, nil
}
