package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"tres-rdc/internal/config"
	"tres-rdc/internal/output"
)

func TestNewWritersSingle(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Path = filepath.Join(t.TempDir(), "TRESRDC.csv")
	w, err := newWriters(cfg, output.DefaultFormat, "run", time.Now(), nil)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	if _, ok := w.(*output.CSVWriter); !ok {
		t.Fatalf("expected *output.CSVWriter, got %T", w)
	}
}

func TestNewWritersAlso(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Path = "-"
	cfg.Output.Also = []string{filepath.Join(dir, "rdc.jsonl"), filepath.Join(dir, "rdc.db")}
	w, err := newWriters(cfg, output.DefaultFormat, "run", time.Now(), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	mw, ok := w.(*output.MultiWriter)
	if !ok {
		t.Fatalf("expected *output.MultiWriter, got %T", w)
	}
	ws := mw.Writers()
	if len(ws) != 3 {
		t.Fatalf("expected 3 writers, got %d", len(ws))
	}
	if _, ok := ws[1].(*output.JSONLWriter); !ok {
		t.Fatalf("expected *output.JSONLWriter, got %T", ws[1])
	}
	if _, ok := ws[2].(*output.SQLiteWriter); !ok {
		t.Fatalf("expected *output.SQLiteWriter, got %T", ws[2])
	}
}

func TestNewWritersGreptimeEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Path = filepath.Join(t.TempDir(), "out.csv")
	cfg.Greptime.Endpoint = "db:port"
	if _, err := newWriters(cfg, output.DefaultFormat, "run", time.Now(), nil); err == nil {
		t.Fatalf("expected error for invalid endpoint")
	}
}

func TestOutputFormat(t *testing.T) {
	cases := []struct {
		in   config.Output
		want output.Format
	}{
		{config.Output{Precision: -1}, output.DefaultFormat},
		{config.Output{Delimiter: ";", FloatFormat: "f", Precision: 4}, output.Format{Delimiter: ';', FloatFormat: 'f', Precision: 4}},
		{config.Output{Delimiter: `\t`, Precision: -1}, output.Format{Delimiter: '\t', FloatFormat: 'g', Precision: -1}},
		{config.Output{Delimiter: "\t", Precision: -1}, output.Format{Delimiter: '\t', FloatFormat: 'g', Precision: -1}},
	}
	for _, tc := range cases {
		got, err := outputFormat(tc.in)
		if err != nil {
			t.Fatalf("outputFormat(%+v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("outputFormat(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []config.Output{
		{Delimiter: ";;", Precision: -1},
		{FloatFormat: "gg", Precision: -1},
		{FloatFormat: "q", Precision: -1},
	} {
		if _, err := outputFormat(bad); err == nil {
			t.Errorf("expected error for %+v", bad)
		}
	}
}
