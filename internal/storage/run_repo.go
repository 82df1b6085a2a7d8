package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"buildlens/internal/models"
)

// RunRepo persists orchestrated full-analysis runs and their final report
// aggregates.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) CreateRun(ctx context.Context, runID, recipeFilename, manifestFilename string) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO analysis_runs (run_id, recipe_filename, manifest_filename, status)
VALUES ($1, $2, $3, 'pending')`, runID, recipeFilename, manifestFilename)
	if err != nil {
		return fmt.Errorf("create analysis run: %w", err)
	}
	return nil
}

func (r *RunRepo) UpdateRunStatus(ctx context.Context, runID, status string) error {
	_, err := r.db.Pool.Exec(ctx, `
UPDATE analysis_runs SET status=$2, updated_at=now() WHERE run_id=$1`, runID, status)
	if err != nil {
		return fmt.Errorf("update analysis run: %w", err)
	}
	return nil
}

func (r *RunRepo) SaveReport(ctx context.Context, runID string, report models.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode analysis report: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, `
UPDATE analysis_runs SET report=$2::jsonb, updated_at=now() WHERE run_id=$1`, runID, string(payload))
	if err != nil {
		return fmt.Errorf("save analysis report: %w", err)
	}
	return nil
}

func (r *RunRepo) GetRun(ctx context.Context, runID string) (models.AnalysisRun, error) {
	var run models.AnalysisRun
	err := r.db.Pool.QueryRow(ctx, `
SELECT run_id, recipe_filename, manifest_filename, status, created_at, updated_at
FROM analysis_runs WHERE run_id=$1`, runID).
		Scan(&run.RunID, &run.RecipeFilename, &run.ManifestFilename, &run.Status, &run.CreatedAt, &run.UpdatedAt)
	if err != nil {
		return models.AnalysisRun{}, fmt.Errorf("get analysis run: %w", err)
	}
	return run, nil
}

// GetReport returns the stored aggregate, the run status, and whether a
// report has been saved yet.
func (r *RunRepo) GetReport(ctx context.Context, runID string) (models.AnalysisReport, string, bool, error) {
	var payload []byte
	var status string
	err := r.db.Pool.QueryRow(ctx, `
SELECT COALESCE(report::text, ''), status FROM analysis_runs WHERE run_id=$1`, runID).
		Scan(&payload, &status)
	if err != nil {
		return models.AnalysisReport{}, "", false, fmt.Errorf("get analysis report: %w", err)
	}
	if len(payload) == 0 {
		return models.AnalysisReport{}, status, false, nil
	}
	var report models.AnalysisReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return models.AnalysisReport{}, "", false, fmt.Errorf("decode analysis report: %w", err)
	}
	return report, status, true, nil
}
