// Package db builds the SQL statements shared by the gateway drivers. The
// same table specs produce postgres ($n placeholders) and sqlite (?) text.
package db

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Dialect selects the placeholder style.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) placeholder(i int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

// BuildUpsert returns an INSERT ... ON CONFLICT (keys) DO UPDATE statement
// updating every non-key column from EXCLUDED.
func BuildUpsert(d Dialect, table string, columns, conflictKeys []string) string {
	conflictSet := make(map[string]bool, len(conflictKeys))
	for _, k := range conflictKeys {
		conflictSet[k] = true
	}

	var setClauses []string
	for _, c := range columns {
		if !conflictSet[c] {
			setClauses = append(setClauses, fmt.Sprintf("%s = EXCLUDED.%s", quote(c), quote(c)))
		}
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s)",
		quote(table),
		quoteAndJoin(columns),
		placeholders(d, len(columns)),
		quoteAndJoin(conflictKeys),
	)
	if len(setClauses) == 0 {
		return sql + " DO NOTHING"
	}
	return sql + " DO UPDATE SET " + strings.Join(setClauses, ", ")
}

// BuildInsert returns a plain INSERT statement.
func BuildInsert(d Dialect, table string, columns []string) string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quote(table),
		quoteAndJoin(columns),
		placeholders(d, len(columns)),
	)
}

// BuildDelete returns a DELETE statement keyed by the given columns.
func BuildDelete(d Dialect, table string, keyColumns []string) string {
	var preds []string
	for i, c := range keyColumns {
		preds = append(preds, fmt.Sprintf("%s = %s", quote(c), d.placeholder(i+1)))
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s", quote(table), strings.Join(preds, " AND "))
}

func placeholders(d Dialect, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = d.placeholder(i + 1)
	}
	return strings.Join(parts, ", ")
}

// quote sanitizes an identifier, handling schema-qualified names.
func quote(ident string) string {
	parts := strings.SplitN(ident, ".", 2)
	if len(parts) == 2 {
		return pgx.Identifier{parts[0], parts[1]}.Sanitize()
	}
	return pgx.Identifier{ident}.Sanitize()
}

func quoteAndJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}
