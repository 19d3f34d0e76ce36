package history

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"os"

	"tres-rdc/internal/triple"
)

// JSONLStore reads one JSON snapshot per line.
type JSONLStore struct {
	path string
}

// Snapshots opens the file and decodes it snapshot by snapshot.
func (s *JSONLStore) Snapshots(ctx context.Context) iter.Seq2[*triple.Snapshot, error] {
	return func(yield func(*triple.Snapshot, error) bool) {
		f, err := os.Open(s.path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer f.Close()
		for snap, err := range DecodeJSONL(f) {
			if !yield(snap, err) || err != nil {
				return
			}
		}
	}
}

func (s *JSONLStore) Close() error { return nil }

// DecodeJSONL yields the snapshots of r until EOF or the first decode error.
func DecodeJSONL(r io.Reader) iter.Seq2[*triple.Snapshot, error] {
	return func(yield func(*triple.Snapshot, error) bool) {
		dec := json.NewDecoder(r)
		for {
			var snap triple.Snapshot
			if err := dec.Decode(&snap); err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(nil, err)
				return
			}
			if !yield(&snap, nil) {
				return
			}
		}
	}
}
