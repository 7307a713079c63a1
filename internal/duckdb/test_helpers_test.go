package duckdb_test

import (
	"context"
	"database/sql"
	"testing"

	"omnibench/internal/duckdb/testing"
)

func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	return duckdbtesting.OpenWarehouse(t, "")
}

func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) int {
	t.Helper()
	return duckdbtesting.QueryInt(t, ctx, db, query, args...)
}
