package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"omnibench/internal/stats"
)

// nullableString converts an empty string into a SQL NULL.
func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// nullableValue converts an undefined aggregate into a SQL NULL.
func nullableValue(value stats.Value) any {
	if !value.Valid {
		return nil
	}
	return value.Float
}

// mapExpression builds a map constructor expression for SQL literals.
func mapExpression(counts map[string]int) string {
	if counts == nil {
		return "NULL"
	}
	if len(counts) == 0 {
		return "map([], [])"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	keyLiterals := make([]string, 0, len(keys))
	valLiterals := make([]string, 0, len(keys))
	for _, k := range keys {
		keyLiterals = append(keyLiterals, quoteLiteral(k))
		valLiterals = append(valLiterals, fmt.Sprintf("%d", counts[k]))
	}
	return fmt.Sprintf("map([%s], [%s]::INTEGER[])", strings.Join(keyLiterals, ", "), strings.Join(valLiterals, ", "))
}

// quoteLiteral escapes a string for SQL literal use.
func quoteLiteral(value string) string {
	escaped := strings.ReplaceAll(value, "'", "''")
	return "'" + escaped + "'"
}

// lookupString fetches a single column value for a row keyed by keyColumn.
func lookupString(ctx context.Context, db *sql.DB, table, column, keyColumn, key string) (string, bool, error) {
	query := fmt.Sprintf("SELECT CAST(%s AS VARCHAR) FROM %s WHERE %s = ?", column, table, keyColumn)
	var value string
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
