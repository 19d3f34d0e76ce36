package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"tres-rdc/internal/logging"
	"tres-rdc/internal/rdc"
)

// CSVWriter writes the table as delimited text: a header row, then one row
// per record. There is no index column.
type CSVWriter struct {
	path   string
	out    io.Writer
	format Format
}

// NewCSVWriter writes to out.
func NewCSVWriter(out io.Writer, format Format) *CSVWriter {
	return &CSVWriter{out: out, format: format}
}

// NewCSVFileWriter creates (or truncates) path on every WriteTable.
func NewCSVFileWriter(path string, format Format) *CSVWriter {
	return &CSVWriter{path: path, format: format}
}

func (w *CSVWriter) String() string {
	if w.path == "" {
		return "stdout"
	}
	return w.path
}

// WriteTable writes t in full.
func (w *CSVWriter) WriteTable(ctx context.Context, t *rdc.Table) error {
	out := w.out
	if w.path != "" {
		f, err := os.Create(w.path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if out == nil {
		out = os.Stdout
	}

	cw := &countingWriter{w: out}
	enc := csv.NewWriter(cw)
	enc.Comma = w.format.Delimiter
	if err := enc.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for i, rec := range t.Records {
		for j, col := range t.Columns {
			v, _ := rec.Get(col)
			row[j] = w.format.Value(v)
		}
		if err := enc.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	enc.Flush()
	if err := enc.Error(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if c, ok := out.(io.Closer); ok && w.path != "" {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close output: %w", err)
		}
	}

	logging.FromContext(ctx).Info("table written",
		zap.String("sink", w.String()),
		zap.Int("rows", t.Len()),
		zap.String("size", humanize.Bytes(uint64(cw.n))),
	)
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
