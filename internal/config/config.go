// YAML run configuration loader with CUE validation integration
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration file does not satisfy the schema.
var ErrInvalid = errors.New("invalid configuration")

// Input addresses the snapshot history.
type Input struct {
	Root   string `yaml:"root"`
	Format string `yaml:"format"`
}

// Output describes the reduced table destinations and how values are rendered.
type Output struct {
	Path        string   `yaml:"path"`
	Also        []string `yaml:"also"`
	Delimiter   string   `yaml:"delimiter"`
	FloatFormat string   `yaml:"float_format"`
	Precision   int      `yaml:"precision"`
	Layout      string   `yaml:"layout"`
	Table       string   `yaml:"table"`
}

// Greptime configures the optional GreptimeDB sink. An empty endpoint
// disables it.
type Greptime struct {
	Endpoint string `yaml:"endpoint"`
	Database string `yaml:"database"`
	Table    string `yaml:"table"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the root run configuration.
type Config struct {
	Input      Input    `yaml:"input"`
	Output     Output   `yaml:"output"`
	PrintStyle int      `yaml:"print_style"`
	Greptime   Greptime `yaml:"greptime"`
	Log        Log      `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input: Input{Root: "TRES", Format: "hdf5"},
		Output: Output{
			Path:        "TRESRDC.csv",
			Delimiter:   ",",
			FloatFormat: "g",
			Precision:   -1,
			Layout:      "standard",
			Table:       "rdc",
		},
		PrintStyle: 2,
		Greptime:   Greptime{Database: "public", Table: "tres_rdc"},
		Log:        Log{Level: "info", Format: "console"},
	}
}

// Load reads a YAML config, validates it against the CUE schema and merges
// it over Default. An empty schemaPath selects the embedded schema.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	// Validate with CUE first
	if err := ValidateWithCue(configPath, data, cueSchemaPath); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal YAML config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides GreptimeDB settings from GREPTIMEDB_ENDPOINT,
// GREPTIMEDB_DATABASE and GREPTIMEDB_TABLE when they are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("GREPTIMEDB_ENDPOINT"); v != "" {
		c.Greptime.Endpoint = v
	}
	if v := getenv("GREPTIMEDB_DATABASE"); v != "" {
		c.Greptime.Database = v
	}
	if v := getenv("GREPTIMEDB_TABLE"); v != "" {
		c.Greptime.Table = v
	}
}
