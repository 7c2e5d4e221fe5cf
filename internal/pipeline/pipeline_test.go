package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/scorecard/internal/dataset"
	"github.com/Veraticus/scorecard/internal/model"
	"github.com/Veraticus/scorecard/internal/trial"
)

// writeCreditCSV generates a deterministic credit file where defaulters carry
// high bills and low payments, so every candidate has real signal to find.
func writeCreditCSV(t *testing.T, path string, n int, labeled bool) {
	t.Helper()

	var b strings.Builder
	b.WriteString("ID,LIMIT_BAL,SEX,EDUCATION,MARRIAGE,AGE")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, ",BILL_AMT%d", i)
	}
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&b, ",PAY_AMT%d", i)
	}
	if labeled {
		b.WriteString(",default")
	}
	b.WriteString("\n")

	for i := 0; i < n; i++ {
		label := i % 2
		bill := 1000 + i*37
		pay := 900 - i*11
		if label == 1 {
			bill += 50000
			pay = 50 + i
		}

		fmt.Fprintf(&b, "%d,%d,%d,%d,%d,%d",
			i+1, 20000+i*1000, 1+i%2, 1+i%4, 1+i%3, 25+i)
		for j := 0; j < 6; j++ {
			fmt.Fprintf(&b, ",%d", bill+j*13)
		}
		for j := 0; j < 6; j++ {
			fmt.Fprintf(&b, ",%d", pay+j*7)
		}
		if labeled {
			fmt.Fprintf(&b, ",%d", label)
		}
		b.WriteString("\n")
	}

	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
}

func testConfig(t *testing.T) Config {
	t.Helper()

	dir := t.TempDir()
	trainPath := filepath.Join(dir, "train.csv")
	scorePath := filepath.Join(dir, "score.csv")
	writeCreditCSV(t, trainPath, 10, true)
	writeCreditCSV(t, scorePath, 3, false)

	return Config{
		Schema:     dataset.CreditSchema(),
		TrainPath:  trainPath,
		ScorePath:  scorePath,
		OutputPath: filepath.Join(dir, "predictions.csv"),
		Candidates: []model.Candidate{
			{Algorithm: model.AlgorithmLogistic},
			{Algorithm: model.AlgorithmForest, Grid: []model.Params{
				{model.ParamMTry: 2, model.ParamTrees: 25},
			}},
		},
		Seed:  123,
		Folds: 5,
	}
}

func newTestPipeline(cfg Config) *Pipeline {
	return New(&trial.Runner{Folds: cfg.Folds, Seed: cfg.Seed}, nil)
}

func TestPipeline_Run(t *testing.T) {
	cfg := testConfig(t)

	summary, err := newTestPipeline(cfg).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, summary.Trials, 2)
	assert.Equal(t, 3, summary.Records)
	assert.Equal(t, cfg.OutputPath, summary.OutputPath)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,probability", lines[0])
	for i, line := range lines[1:] {
		fields := strings.Split(line, ",")
		require.Len(t, fields, 2)
		assert.Equal(t, fmt.Sprint(i+1), fields[0])

		var p float64
		_, err := fmt.Sscanf(fields[1], "%f", &p)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestPipeline_Run_DeterministicGivenSeed(t *testing.T) {
	cfg := testConfig(t)

	run := func() []byte {
		_, err := newTestPipeline(cfg).Run(context.Background(), cfg)
		require.NoError(t, err)
		data, err := os.ReadFile(cfg.OutputPath)
		require.NoError(t, err)
		return data
	}

	assert.Equal(t, run(), run())
}

func TestPipeline_Compare_WritesNoOutput(t *testing.T) {
	cfg := testConfig(t)

	summary, err := newTestPipeline(cfg).Compare(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, summary.Trials, 2)
	assert.Zero(t, summary.Records)
	_, err = os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(err))
}

func TestPipeline_NoCandidates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Candidates = nil

	_, err := newTestPipeline(cfg).Run(context.Background(), cfg)
	assert.Error(t, err)
}

func TestPipeline_MissingTrainingFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.TrainPath = filepath.Join(t.TempDir(), "missing.csv")

	_, err := newTestPipeline(cfg).Run(context.Background(), cfg)
	assert.Error(t, err)
}

// fakeLedger records the calls the pipeline makes against it.
type fakeLedger struct {
	begun     int
	trials    []model.TrialResult
	completed []model.TrialResult
}

func (f *fakeLedger) BeginRun(_ context.Context, _ model.RunInfo) (int64, error) {
	f.begun++
	return 42, nil
}

func (f *fakeLedger) SaveTrial(_ context.Context, runID int64, result model.TrialResult) error {
	if runID != 42 {
		return fmt.Errorf("unexpected run id %d", runID)
	}
	f.trials = append(f.trials, result)
	return nil
}

func (f *fakeLedger) CompleteRun(_ context.Context, runID int64, selected model.TrialResult) error {
	if runID != 42 {
		return fmt.Errorf("unexpected run id %d", runID)
	}
	f.completed = append(f.completed, selected)
	return nil
}

func TestPipeline_RecordsRunToLedger(t *testing.T) {
	cfg := testConfig(t)
	ledger := &fakeLedger{}
	p := New(&trial.Runner{Folds: cfg.Folds, Seed: cfg.Seed}, ledger)

	summary, err := p.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, ledger.begun)
	require.Len(t, ledger.trials, 2)
	require.Len(t, ledger.completed, 1)
	assert.Equal(t, summary.Selected.Algorithm, ledger.completed[0].Algorithm)
}
