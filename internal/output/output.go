// Package output writes a reduced table to its sinks: delimited text,
// JSON Lines, SQLite and GreptimeDB.
package output

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"tres-rdc/internal/rdc"
)

// TableWriter writes a complete table.
type TableWriter interface {
	WriteTable(ctx context.Context, t *rdc.Table) error
}

// Format controls how values are rendered by the delimited text writer.
type Format struct {
	Delimiter   rune
	FloatFormat byte
	// Precision is passed to strconv.FormatFloat; -1 is the shortest
	// representation that round-trips.
	Precision int
}

// DefaultFormat is comma separated with shortest round-trip floats.
var DefaultFormat = Format{Delimiter: ',', FloatFormat: 'g', Precision: -1}

// Validate checks that the format can be written.
func (f Format) Validate() error {
	switch f.FloatFormat {
	case 'e', 'E', 'f', 'g', 'G':
	default:
		return fmt.Errorf("invalid float format %q", f.FloatFormat)
	}
	if f.Precision < -1 {
		return fmt.Errorf("invalid precision %d", f.Precision)
	}
	switch f.Delimiter {
	case 0, '"', '\r', '\n', 0xFFFD:
		return fmt.Errorf("invalid delimiter %q", f.Delimiter)
	}
	return nil
}

// Value renders a record value.
func (f Format) Value(v any) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		switch {
		case math.IsNaN(n):
			return ""
		case math.IsInf(n, 1):
			return "inf"
		case math.IsInf(n, -1):
			return "-inf"
		}
		return strconv.FormatFloat(n, f.FloatFormat, f.Precision, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// Options configures the file sinks built by New.
type Options struct {
	Format Format
	// Table is the SQLite table name.
	Table string
	// Stdout receives the table when the path is "-".
	Stdout io.Writer
}

// DefaultTable is the SQLite table written when Options.Table is empty.
const DefaultTable = "rdc"

// New returns the file sink for path, chosen by extension.
func New(path string, opts Options) (TableWriter, error) {
	if err := opts.Format.Validate(); err != nil {
		return nil, err
	}
	if path == "-" {
		return NewCSVWriter(opts.Stdout, opts.Format), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return NewJSONLWriter(path), nil
	case ".db", ".sqlite":
		table := opts.Table
		if table == "" {
			table = DefaultTable
		}
		return NewSQLiteWriter(path, table), nil
	case ".tsv":
		f := opts.Format
		f.Delimiter = '\t'
		return NewCSVFileWriter(path, f), nil
	}
	return NewCSVFileWriter(path, opts.Format), nil
}
