// Package duckdbtesting opens throwaway warehouses for tests.
package duckdbtesting

import (
	"context"
	"database/sql"
	"testing"

	"omnibench/internal/duckdb"
	"omnibench/internal/testutil"
)

// OpenWarehouse opens the warehouse at path with the schema applied. An empty
// path opens an in-memory warehouse. The connection is closed when the test ends.
func OpenWarehouse(t testing.TB, path string) (*sql.DB, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		t.Fatalf("open warehouse: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, ctx
}

// QueryInt returns a single integer value from the warehouse.
func QueryInt(t testing.TB, ctx context.Context, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return out
}
