package rdc

import (
	"context"
	"fmt"
	"iter"

	"go.uber.org/zap"

	"tres-rdc/internal/logging"
	"tres-rdc/internal/triple"
)

// Reduce flattens every snapshot of history in stored order. There is no
// filtering, reordering or deduplication: record i is snapshot i.
func Reduce(ctx context.Context, history iter.Seq2[*triple.Snapshot, error], f *Flattener) (*Table, error) {
	log := logging.FromContext(ctx)
	if f.Layout() == LayoutLegacy {
		log.Warn("legacy layout: the outer star's core mass overwrites the inner secondary's in "+ColMCore2MSun,
			zap.String("lost_column", ColMCore3MSun))
	}

	t := &Table{Columns: f.Columns()}
	i := 0
	for s, err := range history {
		if err != nil {
			return nil, fmt.Errorf("read snapshot %d: %w", i, err)
		}
		rec, err := f.Flatten(s)
		if err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", i, err)
		}
		t.Records = append(t.Records, rec)
		i++
	}
	log.Debug("history reduced", zap.Int("snapshots", t.Len()), zap.String("layout", string(f.Layout())))
	return t, nil
}

// Slice adapts an in-memory history to Reduce.
func Slice(snapshots []*triple.Snapshot) iter.Seq2[*triple.Snapshot, error] {
	return func(yield func(*triple.Snapshot, error) bool) {
		for _, s := range snapshots {
			if !yield(s, nil) {
				return
			}
		}
	}
}
