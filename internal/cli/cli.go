// Package cli parses the command-line surface of the tool.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/hdlbind/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("hdlbind", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
hdlbind - resolves binding configurations for structural hardware designs.

Usage:
  hdlbind [options] -config CONFIG_FILE LIBRARY_PATH

Arguments:
  LIBRARY_PATH
    Path to a single .hcl library file or a directory containing .hcl
    library files (component and design_unit blocks).

Options:
`)
		flagSet.PrintDefaults()
	}

	libraryFlag := flagSet.String("library", "", "Path to the library file or directory.")
	lFlag := flagSet.String("l", "", "Path to the library file or directory (shorthand).")
	configFlag := flagSet.String("config", "", "Path to the binding configuration file.")
	cFlag := flagSet.String("c", "", "Path to the binding configuration file (shorthand).")
	targetFlag := flagSet.String("target", "", "Simulator target for netlist output (e.g. 'ngspice'). Empty prints the resolved graph as JSON.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	libraryPath := ""
	if *libraryFlag != "" {
		libraryPath = *libraryFlag
	} else if *lFlag != "" {
		libraryPath = *lFlag
	} else if flagSet.NArg() > 0 {
		libraryPath = flagSet.Arg(0)
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = *cFlag
	}

	if libraryPath == "" || configPath == "" {
		slog.Debug("Missing library or config path, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		LibraryPath: libraryPath,
		ConfigPath:  configPath,
		Target:      *targetFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
