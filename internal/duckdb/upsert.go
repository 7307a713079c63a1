package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"omnibench/internal/dataset"
	"omnibench/internal/report"
	"omnibench/internal/runner"
)

// IngestResult reports what IngestRun did.
type IngestResult struct {
	RunID   string
	Samples int
	// Skipped is set when the stored run already has identical content.
	Skipped bool
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// IngestRun loads a finished run into the warehouse. Re-ingesting a run
// with identical content is a no-op; changed content replaces the stored
// rows.
func IngestRun(ctx context.Context, db *sql.DB, run report.Run) (IngestResult, error) {
	if ctx == nil {
		return IngestResult{}, errors.New("duckdb: context is nil")
	}
	if db == nil {
		return IngestResult{}, errors.New("duckdb: db is nil")
	}
	manifest := run.Manifest
	if manifest.RunID == "" {
		return IngestResult{}, errors.New("duckdb: run_id is required")
	}
	payload, samples, kind := runPayload(run.Results)
	if payload == nil {
		return IngestResult{}, fmt.Errorf("duckdb: run %s has no results", manifest.RunID)
	}
	if manifest.Kind == "" {
		manifest.Kind = string(kind)
	}
	key, err := FingerprintJSON(map[string]any{"manifest": manifest, "results": payload})
	if err != nil {
		return IngestResult{}, err
	}
	result := IngestResult{RunID: manifest.RunID, Samples: samples}

	existing, found, err := lookupString(ctx, db, "runs", "content_key", "run_id", manifest.RunID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("lookup run: %w", err)
	}
	if found && existing == key {
		result.Skipped = true
		return result, nil
	}
	if found {
		if err := deleteRun(ctx, db, manifest.RunID); err != nil {
			return IngestResult{}, err
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return IngestResult{}, fmt.Errorf("begin ingest: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRun(ctx, tx, manifest, key); err != nil {
		return IngestResult{}, err
	}
	switch {
	case run.Results.OCR != nil:
		err = insertOCR(ctx, tx, manifest.RunID, *run.Results.OCR)
	case run.Results.STT != nil:
		err = insertSTT(ctx, tx, manifest.RunID, *run.Results.STT)
	}
	if err != nil {
		return IngestResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return IngestResult{}, fmt.Errorf("commit ingest: %w", err)
	}
	return result, nil
}

func runPayload(results report.Results) (any, int, dataset.Kind) {
	switch {
	case results.OCR != nil:
		return results.OCR, len(results.OCR.Results), dataset.KindOCR
	case results.STT != nil:
		return results.STT, len(results.STT.Results), dataset.KindSTT
	}
	return nil, 0, ""
}

// deleteRun removes a run and its rows in a transaction of its own.
func deleteRun(ctx context.Context, db *sql.DB, runID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, table := range []string{"ocr_samples", "stt_samples", "run_statistics", "runs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE run_id = ?", runID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

func insertRun(ctx context.Context, tx execer, manifest runner.RunManifest, key string) error {
	canonical, err := CanonicalJSON(manifest)
	if err != nil {
		return err
	}
	var commit, branch string
	var dirty any
	if manifest.Repo != nil {
		commit, branch, dirty = manifest.Repo.Commit, manifest.Repo.Branch, manifest.Repo.Dirty
	}
	query := fmt.Sprintf(
		`INSERT INTO runs (
		  run_id, benchmark, kind, model, dataset, workers, sample_limit, task_filter, task_counts,
		  repo_commit, repo_branch, repo_dirty, started_at, finished_at, manifest, content_key, ingested_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, %s, ?, ?, ?, ?, ?, ?, ?, now())`,
		mapExpression(manifest.TaskCounts),
	)
	if _, err := tx.ExecContext(ctx, query,
		manifest.RunID,
		manifest.Benchmark,
		manifest.Kind,
		nullableString(manifest.Model),
		nullableString(manifest.Dataset),
		manifest.Workers,
		manifest.Limit,
		nullableString(manifest.TaskFilter),
		nullableString(commit),
		nullableString(branch),
		dirty,
		nullableTime(manifest.StartedAt),
		nullableTime(manifest.FinishedAt),
		string(canonical),
		key,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func insertOCR(ctx context.Context, tx execer, runID string, payload runner.OCRReport) error {
	for i, result := range payload.Results {
		answers, err := CanonicalJSON(result.Answers)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ocr_samples (
			  row_id, run_id, ordinal, dataset_name, task_type, sample_id, question, answers, predict,
			  api_success, text_match, teds_score, iou_score, vqa_anls, bleu_score, f_measure, avg_anls,
			  error, ttft, end_to_end
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), runID, i,
			result.DatasetName, result.Type, result.ID, result.Question, string(answers), result.Predict,
			result.APISuccess, result.TextMatch,
			result.TEDSScore, result.IoUScore, result.VQAANLS, result.BLEUScore, result.FMeasure, result.AvgANLS,
			nullableString(result.Error), result.TTFT, result.EndToEnd,
		); err != nil {
			return fmt.Errorf("insert ocr sample %d: %w", i, err)
		}
	}
	s := payload.Statistics
	return insertStatistics(ctx, tx, runID, []statistic{
		{"total_samples", float64(s.TotalSamples)},
		{"api_success", float64(s.APISuccess)},
		{"api_failed", float64(s.APIFailed)},
		{"text_correct", float64(s.TextCorrect)},
		{"api_success_rate", s.APISuccessRate},
		{"text_accuracy", s.TextAccuracy},
		{"avg_teds", nullableValue(s.AvgTEDS)},
		{"avg_iou", nullableValue(s.AvgIoU)},
		{"avg_vqa_anls", nullableValue(s.AvgVQAANLS)},
		{"avg_bleu", nullableValue(s.AvgBLEU)},
		{"avg_f_measure", nullableValue(s.AvgFMeasure)},
		{"avg_anls", nullableValue(s.AvgANLS)},
		{"avg_ttft", s.AvgTTFT},
		{"avg_e2e", s.AvgE2E},
		{"p50_e2e", s.P50E2E},
		{"p95_e2e", s.P95E2E},
		{"p99_e2e", s.P99E2E},
	})
}

func insertSTT(ctx context.Context, tx execer, runID string, payload runner.STTReport) error {
	for i, result := range payload.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stt_samples (
			  row_id, run_id, ordinal, sample_id, reference_text, predicted_text, cer, wer,
			  api_success, error, ttft, end_to_end
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), runID, i,
			result.SampleID, result.ReferenceText, result.PredictedText, result.CER, result.WER,
			result.APISuccess, nullableString(result.Error), result.TTFT, result.EndToEnd,
		); err != nil {
			return fmt.Errorf("insert stt sample %d: %w", i, err)
		}
	}
	s := payload.Summary
	return insertStatistics(ctx, tx, runID, []statistic{
		{"samples", float64(s.Samples)},
		{"failed", float64(s.Failed)},
		{"cer_mean", s.CERMean},
		{"cer_std", s.CERStd},
		{"wer_mean", s.WERMean},
		{"wer_std", s.WERStd},
		{"ttft_p50", s.TTFTP50},
		{"ttft_p95", s.TTFTP95},
		{"ttft_p99", s.TTFTP99},
		{"e2e_p50", s.E2EP50},
		{"e2e_p95", s.E2EP95},
		{"e2e_p99", s.E2EP99},
	})
}

type statistic struct {
	metric string
	value  any
}

func insertStatistics(ctx context.Context, tx execer, runID string, rows []statistic) error {
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_statistics (run_id, metric, value) VALUES (?, ?, ?)",
			runID, row.metric, row.value,
		); err != nil {
			return fmt.Errorf("insert statistic %s: %w", row.metric, err)
		}
	}
	return nil
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC()
}
