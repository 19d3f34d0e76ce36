package main

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tres-rdc/internal/config"
	"tres-rdc/internal/history"
	"tres-rdc/internal/logging"
	"tres-rdc/internal/output"
	"tres-rdc/internal/rdc"
)

type reduceOptions struct {
	printInit bool
	line      int
	stdout    io.Writer
}

// runReduce reads the history named by cfg, flattens every snapshot and
// writes the table to all configured sinks.
func runReduce(ctx context.Context, cfg *config.Config, opts reduceOptions) error {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.PrintStyle < 0 || cfg.PrintStyle > 2 {
		return fmt.Errorf("invalid print style %d (want 0, 1 or 2)", cfg.PrintStyle)
	}
	layout, err := rdc.ParseLayout(cfg.Output.Layout)
	if err != nil {
		return err
	}
	format, err := outputFormat(cfg.Output)
	if err != nil {
		return err
	}
	path, storeFormat, err := history.ResolvePath(cfg.Input.Root, cfg.Input.Format)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	start := time.Now().UTC()
	log = log.With(zap.String("run_id", runID))
	ctx = logging.NewContext(ctx, log)

	if opts.printInit {
		log.Warn("--print-init is not implemented; ignoring", zap.Int("line", opts.line))
	}

	log.Info("reading history", zap.String("path", path), zap.String("format", string(storeFormat)))
	store, err := history.Open(ctx, path, storeFormat)
	if err != nil {
		return err
	}
	defer store.Close()

	tbl, err := rdc.Reduce(ctx, store.Snapshots(ctx), rdc.NewFlattener(layout))
	if err != nil {
		return err
	}
	log.Info("history reduced",
		zap.Int("snapshots", tbl.Len()),
		zap.String("layout", string(layout)),
		zap.Int("columns", len(tbl.Columns)),
	)

	w, err := newWriters(cfg, format, runID, start, opts.stdout)
	if err != nil {
		return err
	}
	return w.WriteTable(ctx, tbl)
}

// outputFormat converts the configured rendering options.
func outputFormat(o config.Output) (output.Format, error) {
	f := output.DefaultFormat
	switch o.Delimiter {
	case "":
	case `\t`, "tab":
		f.Delimiter = '\t'
	default:
		r, size := utf8.DecodeRuneInString(o.Delimiter)
		if size != len(o.Delimiter) {
			return f, fmt.Errorf("delimiter must be a single character, got %q", o.Delimiter)
		}
		f.Delimiter = r
	}
	if o.FloatFormat != "" {
		if len(o.FloatFormat) != 1 {
			return f, fmt.Errorf("invalid float format %q", o.FloatFormat)
		}
		f.FloatFormat = o.FloatFormat[0]
	}
	f.Precision = o.Precision
	return f, f.Validate()
}
