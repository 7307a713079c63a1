package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunOverview is one row of v_run_overview.
type RunOverview struct {
	RunID     string
	Benchmark string
	Kind      string
	Model     string
	StartedAt time.Time
	Samples   int
	Failed    int
}

// TaskAccuracy is one row of v_task_accuracy.
type TaskAccuracy struct {
	TaskType    string
	Samples     int
	APISuccess  int
	TextCorrect int
	AvgANLS     sql.NullFloat64
	AvgE2E      sql.NullFloat64
}

// ListRuns returns stored runs, newest first, optionally limited to one
// benchmark.
func ListRuns(ctx context.Context, db *sql.DB, benchmark string) ([]RunOverview, error) {
	query := `SELECT run_id, benchmark, kind, COALESCE(model, ''), started_at, samples, failed
		FROM v_run_overview`
	var args []any
	if benchmark != "" {
		query += " WHERE benchmark = ?"
		args = append(args, benchmark)
	}
	query += " ORDER BY run_id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var out []RunOverview
	for rows.Next() {
		var row RunOverview
		var started sql.NullTime
		if err := rows.Scan(&row.RunID, &row.Benchmark, &row.Kind, &row.Model, &started, &row.Samples, &row.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		row.StartedAt = started.Time
		out = append(out, row)
	}
	return out, rows.Err()
}

// TaskAccuracyForRun breaks an OCR run down by task type.
func TaskAccuracyForRun(ctx context.Context, db *sql.DB, runID string) ([]TaskAccuracy, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT COALESCE(task_type, ''), samples, api_success, text_correct, avg_anls, avg_e2e
		 FROM v_task_accuracy WHERE run_id = ? ORDER BY task_type`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("task accuracy: %w", err)
	}
	defer rows.Close()
	var out []TaskAccuracy
	for rows.Next() {
		var row TaskAccuracy
		if err := rows.Scan(&row.TaskType, &row.Samples, &row.APISuccess, &row.TextCorrect, &row.AvgANLS, &row.AvgE2E); err != nil {
			return nil, fmt.Errorf("scan task accuracy: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Statistic reads one stored aggregate. ok is false when the aggregate is
// stored as NULL.
func Statistic(ctx context.Context, db *sql.DB, runID, metric string) (value float64, ok bool, err error) {
	var v sql.NullFloat64
	if err := db.QueryRowContext(ctx,
		"SELECT value FROM run_statistics WHERE run_id = ? AND metric = ?",
		runID, metric,
	).Scan(&v); err != nil {
		return 0, false, fmt.Errorf("statistic %s: %w", metric, err)
	}
	return v.Float64, v.Valid, nil
}
