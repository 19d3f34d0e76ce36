package main

import (
	"io"
	"time"

	"tres-rdc/internal/config"
	"tres-rdc/internal/output"
)

// newWriters sets up the table sinks: the primary output, every --also path
// and GreptimeDB when an endpoint is configured. Several sinks are wrapped in
// a MultiWriter.
func newWriters(cfg *config.Config, format output.Format, runID string, start time.Time, stdout io.Writer) (output.TableWriter, error) {
	opts := output.Options{Format: format, Table: cfg.Output.Table, Stdout: stdout}

	paths := append([]string{cfg.Output.Path}, cfg.Output.Also...)
	ws := make([]output.TableWriter, 0, len(paths)+1)
	for _, p := range paths {
		w, err := output.New(p, opts)
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}

	if cfg.Greptime.Endpoint != "" {
		gw, err := output.NewGreptimeDBWriter(cfg.Greptime.Endpoint, cfg.Greptime.Database, cfg.Greptime.Table, runID, start)
		if err != nil {
			return nil, err
		}
		ws = append(ws, gw)
	}

	if len(ws) == 1 {
		return ws[0], nil
	}
	return output.NewMultiWriter(ws...), nil
}
