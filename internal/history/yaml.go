package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"tres-rdc/internal/triple"
)

// YAMLStore reads a multi-document YAML stream, one snapshot per document.
type YAMLStore struct {
	path string
}

func (s *YAMLStore) Snapshots(ctx context.Context) iter.Seq2[*triple.Snapshot, error] {
	return func(yield func(*triple.Snapshot, error) bool) {
		f, err := os.Open(s.path)
		if err != nil {
			yield(nil, err)
			return
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		for doc := 0; ; doc++ {
			var raw map[string]any
			if err := dec.Decode(&raw); err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(nil, fmt.Errorf("yaml document %d: %w", doc, err))
				return
			}
			if raw == nil {
				continue
			}
			snap, err := fromYAML(raw)
			if err != nil {
				yield(nil, fmt.Errorf("yaml document %d: %w", doc, err))
				return
			}
			if !yield(snap, nil) {
				return
			}
		}
	}
}

func (s *YAMLStore) Close() error { return nil }

// fromYAML reuses the JSON decoding rules so both stores accept the same
// quantity and flag encodings.
func fromYAML(raw map[string]any) (*triple.Snapshot, error) {
	if err := checkFinite("", raw); err != nil {
		return nil, err
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var snap triple.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// checkFinite reports the first NaN or infinite float under v by its
// attribute path; JSON has no encoding for them.
func checkFinite(path string, v any) error {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: non-finite value %v is not supported", path, v)
		}
	case map[string]any:
		for _, k := range slices.Sorted(maps.Keys(v)) {
			if err := checkFinite(joinPath(path, k), v[k]); err != nil {
				return err
			}
		}
	case []any:
		for i, e := range v {
			if err := checkFinite(joinPath(path, strconv.Itoa(i)), e); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
