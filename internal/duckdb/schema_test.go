package duckdb_test

import (
	"path/filepath"
	"testing"

	"omnibench/internal/duckdb"
	"omnibench/internal/testutil"
)

// TestSchemaObjectsExist verifies core tables and views are created.
func TestSchemaObjectsExist(t *testing.T) {
	db, ctx := openTestDB(t)
	for _, table := range []string{"runs", "ocr_samples", "stt_samples", "run_statistics"} {
		count := queryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?", table)
		if count != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	for _, view := range []string{"v_task_accuracy", "v_run_overview"} {
		count := queryInt(t, ctx, db, "SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ? AND table_type = 'VIEW'", view)
		if count != 1 {
			t.Fatalf("expected view %s to exist", view)
		}
	}
}

// TestSchemaIsReapplicable verifies the DDL can run against an existing warehouse.
func TestSchemaIsReapplicable(t *testing.T) {
	db, _ := openTestDB(t)
	if err := duckdb.EnsureSchema(db); err != nil {
		t.Fatalf("reapply schema: %v", err)
	}
}

func TestOpenCreatesWarehouseFile(t *testing.T) {
	ctx := testutil.Context(t, testTimeout)
	path := filepath.Join(t.TempDir(), "nested", "warehouse.duckdb")
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		t.Fatalf("open warehouse: %v", err)
	}
	defer db.Close()
	if count := queryInt(t, ctx, db, "SELECT COUNT(*) FROM runs"); count != 0 {
		t.Fatalf("expected empty runs table, got %d", count)
	}
}
