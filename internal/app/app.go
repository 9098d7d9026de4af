package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/hdlbind/internal/ctxlog"
	"github.com/vk/hdlbind/internal/hcl"
	"github.com/vk/hdlbind/internal/library"
	"github.com/vk/hdlbind/internal/model"
)

// App encapsulates the tool's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	lib       *library.Library
	binding   *model.Configuration
	appConfig *Config
}

// NewApp is the constructor for the main application. It loads the design
// library and the binding configuration up front; a failure to load either
// is a fatal startup error and panics (main recovers and reports it).
// Reports and netlists go to outW, logs to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader *hcl.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	lib, err := loader.LoadLibrary(ctx, appConfig.LibraryPath)
	if err != nil {
		panic(fmt.Errorf("failed to load design library: %w", err))
	}

	binding, err := loader.LoadConfiguration(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load binding configuration: %w", err))
	}

	return &App{
		outW:      outW,
		logger:    logger,
		lib:       lib,
		binding:   binding,
		appConfig: appConfig,
	}
}

// Library returns the loaded design library. This is primarily for testing.
func (a *App) Library() *library.Library {
	return a.lib
}

// Binding returns the loaded binding configuration. This is primarily for testing.
func (a *App) Binding() *model.Configuration {
	return a.binding
}
