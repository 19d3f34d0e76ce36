// Package history opens the snapshot history written by the evolution code
// and yields its triples in stored order.
package history

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	"tres-rdc/internal/triple"
)

var ErrUnsupportedFormat = errors.New("unsupported history format")

// Format identifies a store implementation.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
	FormatHDF    Format = "hdf"
)

var formatTags = map[string]Format{
	"hdf5":   FormatHDF,
	"hdf":    FormatHDF,
	"json":   FormatJSON,
	"jsonl":  FormatJSON,
	"ndjson": FormatJSON,
	"yaml":   FormatYAML,
	"yml":    FormatYAML,
	"sqlite": FormatSQLite,
	"db":     FormatSQLite,
}

// extensions lists tags whose file extension differs from the tag itself.
var extensions = map[string]string{
	"hdf5": "hdf",
}

// ParseFormat maps a format tag (as given on the command line) to a Format.
func ParseFormat(tag string) (Format, error) {
	f, ok := formatTags[strings.ToLower(tag)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, tag)
	}
	return f, nil
}

// Extension returns the file extension used for a format tag.
func Extension(tag string) string {
	tag = strings.ToLower(tag)
	if ext, ok := extensions[tag]; ok {
		return ext
	}
	return tag
}

// ResolvePath builds the history file name from a root and a format tag.
// The extension is not appended twice when root already carries it.
func ResolvePath(root, tag string) (string, Format, error) {
	f, err := ParseFormat(tag)
	if err != nil {
		return "", "", err
	}
	suffix := "." + Extension(tag)
	if strings.HasSuffix(root, suffix) {
		return root, f, nil
	}
	return root + suffix, f, nil
}

// Store is an opened history. Snapshots may be iterated more than once;
// every iteration starts at the first snapshot.
type Store interface {
	Snapshots(ctx context.Context) iter.Seq2[*triple.Snapshot, error]
	Close() error
}

// Open opens the history at path.
func Open(ctx context.Context, path string, format Format) (Store, error) {
	switch format {
	case FormatJSON, FormatYAML:
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		if format == FormatYAML {
			return &YAMLStore{path: path}, nil
		}
		return &JSONLStore{path: path}, nil
	case FormatSQLite:
		return OpenSQLite(ctx, path)
	case FormatHDF:
		return nil, fmt.Errorf("%w: %s: no HDF5 reader is built in; export the history to JSON Lines and use -F jsonl", ErrUnsupportedFormat, path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
