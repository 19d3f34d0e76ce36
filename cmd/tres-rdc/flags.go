package main

import (
	"github.com/spf13/pflag"

	"tres-rdc/internal/config"
)

type runFlags struct {
	file       string
	format     string
	printStyle int
	output     string
	printInit  bool
	line       int
	also       []string
	layout     string
	precision  int
	configPath string
	schemaPath string
	logLevel   string
	logFormat  string
}

func (f *runFlags) bind(fs *pflag.FlagSet) {
	def := config.Default()
	fs.StringVarP(&f.file, "file", "f", def.Input.Root, "input file name root")
	fs.StringVarP(&f.format, "format", "F", def.Input.Format, "input format tag: hdf5, jsonl, yaml or sqlite")
	fs.IntVarP(&f.printStyle, "print-style", "S", def.PrintStyle, "print style preset 0, 1 or 2 (accepted, no effect)")
	fs.StringVarP(&f.output, "output", "E", def.Output.Path, "output table path, - for STDOUT")
	fs.BoolVar(&f.printInit, "print-init", false, "print the initial conditions of a line (not implemented)")
	fs.IntVarP(&f.line, "line", "l", 0, "line number used with --print-init")
	fs.StringArrayVar(&f.also, "also", nil, "additional output path (.csv, .tsv, .jsonl, .db); repeatable")
	fs.StringVar(&f.layout, "layout", def.Output.Layout, "column layout: standard or legacy")
	fs.IntVar(&f.precision, "precision", def.Output.Precision, "float precision, -1 for shortest round-trip")
	fs.StringVar(&f.configPath, "config", "", "path to a YAML run configuration")
	fs.StringVar(&f.schemaPath, "schema", "", "path to a CUE schema overriding the embedded one")
	fs.StringVar(&f.logLevel, "log-level", def.Log.Level, "log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", def.Log.Format, "log format: console or json")
}

// apply copies the flags given on the command line over cfg.
func (f *runFlags) apply(cfg *config.Config, fs *pflag.FlagSet) {
	if fs.Changed("file") {
		cfg.Input.Root = f.file
	}
	if fs.Changed("format") {
		cfg.Input.Format = f.format
	}
	if fs.Changed("print-style") {
		cfg.PrintStyle = f.printStyle
	}
	if fs.Changed("output") {
		cfg.Output.Path = f.output
	}
	if fs.Changed("also") {
		cfg.Output.Also = append([]string(nil), f.also...)
	}
	if fs.Changed("layout") {
		cfg.Output.Layout = f.layout
	}
	if fs.Changed("precision") {
		cfg.Output.Precision = f.precision
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
}
