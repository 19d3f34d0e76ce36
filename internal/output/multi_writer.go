package output

import (
	"context"
	"fmt"

	"tres-rdc/internal/rdc"
)

// MultiWriter fans a table out to multiple writers, in order. It stops at
// the first failure.
type MultiWriter struct {
	writers []TableWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...TableWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Writers returns the wrapped writers.
func (mw *MultiWriter) Writers() []TableWriter {
	return mw.writers
}

// WriteTable sends the table to all writers.
func (mw *MultiWriter) WriteTable(ctx context.Context, t *rdc.Table) error {
	for _, w := range mw.writers {
		if err := w.WriteTable(ctx, t); err != nil {
			if s, ok := w.(fmt.Stringer); ok {
				return fmt.Errorf("%s: %w", s, err)
			}
			return err
		}
	}
	return nil
}
