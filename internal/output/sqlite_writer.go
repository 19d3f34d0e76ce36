package output

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"tres-rdc/internal/logging"
	"tres-rdc/internal/rdc"
)

// SQLiteWriter stores the table in a fresh SQLite database.
type SQLiteWriter struct {
	path  string
	table string
}

// NewSQLiteWriter creates a SQLiteWriter writing table into the database at path.
func NewSQLiteWriter(path, table string) *SQLiteWriter {
	return &SQLiteWriter{path: path, table: table}
}

func (w *SQLiteWriter) String() string { return w.path + "#" + w.table }

// WriteTable replaces the database file and inserts every record in a single
// transaction.
func (w *SQLiteWriter) WriteTable(ctx context.Context, t *rdc.Table) error {
	if err := os.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("replace output: %w", err)
	}
	db, err := sql.Open("sqlite", w.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTableSQL(w.table, t.Columns)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL(w.table, t.Columns))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for i, rec := range t.Records {
		for j, col := range t.Columns {
			args[j], _ = rec.Get(col)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logging.FromContext(ctx).Info("table written",
		zap.String("sink", w.String()),
		zap.Int("rows", t.Len()),
	)
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// sqliteAliases renames columns whose names differ from another column only
// in case; SQLite compares identifiers case-insensitively.
var sqliteAliases = map[string]string{
	rdc.ColBinaryomega: "Binary_omega",
}

// sqliteColumnNames returns the SQLite identifier of every column, in order.
// Names still colliding after sqliteAliases get a numeric suffix.
func sqliteColumnNames(columns []string) []string {
	names := make([]string, len(columns))
	seen := make(map[string]bool, len(columns))
	for i, col := range columns {
		name := col
		if alias, ok := sqliteAliases[col]; ok {
			name = alias
		}
		for n := 2; seen[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%d", col, n)
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}

func createTableSQL(table string, columns []string) string {
	names := sqliteColumnNames(columns)
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteIdent(table))
	for i, col := range columns {
		typ := "REAL"
		if rdc.ColumnKind(col) == rdc.KindInt {
			typ = "INTEGER"
		}
		sep := ","
		if i == len(columns)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  %s %s%s\n", quoteIdent(names[i]), typ, sep)
	}
	b.WriteString(")")
	return b.String()
}

func insertSQL(table string, columns []string) string {
	names := sqliteColumnNames(columns)
	marks := make([]string, len(columns))
	for i := range columns {
		names[i] = quoteIdent(names[i])
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(marks, ", "))
}
