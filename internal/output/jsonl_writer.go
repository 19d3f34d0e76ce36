package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"tres-rdc/internal/logging"
	"tres-rdc/internal/rdc"
)

// JSONLWriter writes one JSON object per record, keys in column order.
type JSONLWriter struct {
	path string
}

// NewJSONLWriter creates a JSONLWriter for path.
func NewJSONLWriter(path string) *JSONLWriter {
	return &JSONLWriter{path: path}
}

func (w *JSONLWriter) String() string { return w.path }

// WriteTable replaces path with the records of t.
func (w *JSONLWriter) WriteTable(ctx context.Context, t *rdc.Table) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	cw := &countingWriter{w: f}
	enc := json.NewEncoder(cw)
	for i, rec := range t.Records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	logging.FromContext(ctx).Info("table written",
		zap.String("sink", w.path),
		zap.Int("rows", t.Len()),
		zap.String("size", humanize.Bytes(uint64(cw.n))),
	)
	return nil
}
