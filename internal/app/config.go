package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LibraryPath string // directory (or single file) of .hcl library files
	ConfigPath  string // binding configuration file

	Target    string // simulator target for netlist output; empty prints the JSON report
	LogFormat string
	LogLevel  string
}

// NewConfig validates the required fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LibraryPath == "" {
		return nil, errors.New("LibraryPath is a required configuration field and cannot be empty")
	}
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
