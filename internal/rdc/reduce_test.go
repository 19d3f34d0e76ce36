package rdc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"tres-rdc/internal/logging"
	"tres-rdc/internal/triple"
)

func TestReducePreservesOrder(t *testing.T) {
	times := []float64{0, 1, 2, 5}
	var history []*triple.Snapshot
	for _, tm := range times {
		history = append(history, canonicalSnapshot(tm))
	}

	ctx := logging.NewContext(context.Background(), zap.NewNop())
	tbl, err := Reduce(ctx, Slice(history), NewFlattener(LayoutStandard))
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if tbl.Len() != len(times) {
		t.Fatalf("got %d records, want %d", tbl.Len(), len(times))
	}
	var got []float64
	for _, rec := range tbl.Records {
		v, _ := rec.Float(ColTimeMyr)
		got = append(got, v)
	}
	if diff := cmp.Diff(times, got); diff != "" {
		t.Fatalf("time order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(LayoutStandard.Columns(), tbl.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceKeepsDuplicates(t *testing.T) {
	s := canonicalSnapshot(3)
	tbl, err := Reduce(context.Background(), Slice([]*triple.Snapshot{s, s, s}), NewFlattener(LayoutLegacy))
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("got %d records, want 3", tbl.Len())
	}
}

func TestReduceEmpty(t *testing.T) {
	tbl, err := Reduce(context.Background(), Slice(nil), NewFlattener(LayoutStandard))
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if tbl.Len() != 0 || len(tbl.Columns) != 38 {
		t.Fatalf("unexpected empty table: %d records, %d columns", tbl.Len(), len(tbl.Columns))
	}
}

func TestReduceStopsAtFirstError(t *testing.T) {
	readErr := errors.New("truncated file")
	history := func(yield func(*triple.Snapshot, error) bool) {
		for i := 0; i < 5; i++ {
			if i == 2 {
				yield(nil, readErr)
				return
			}
			if !yield(canonicalSnapshot(float64(i)), nil) {
				return
			}
		}
	}
	_, err := Reduce(context.Background(), history, NewFlattener(LayoutStandard))
	if !errors.Is(err, readErr) {
		t.Fatalf("expected read error, got %v", err)
	}
	if !strings.Contains(err.Error(), "snapshot 2") {
		t.Fatalf("error should name the snapshot index: %v", err)
	}

	bad := canonicalSnapshot(1)
	bad.BinType = ptr("bogus")
	_, err = Reduce(context.Background(), Slice([]*triple.Snapshot{canonicalSnapshot(0), bad}), NewFlattener(LayoutStandard))
	if !errors.Is(err, ErrUnknownClassification) {
		t.Fatalf("expected ErrUnknownClassification, got %v", err)
	}
	if !strings.Contains(err.Error(), "snapshot 1: bin_type") {
		t.Fatalf("unexpected error text: %v", err)
	}
}
