// Package testutil provides a standardized harness for end-to-end tests:
// it writes HCL fixtures to a temporary tree, runs the full load/resolve/
// validate pipeline, and captures both the report output and the logs.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/hdlbind/internal/app"
	"github.com/vk/hdlbind/internal/ctxlog"
	"github.com/vk/hdlbind/internal/hcl"
	"github.com/vk/hdlbind/internal/model"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Result holds the outcomes of an elaboration test run.
type Result struct {
	Output    string // JSON report or netlist written to stdout
	LogOutput string
	Graph     *model.ResolvedGraph
	Err       error
}

// RunElaboration writes the given library files and configuration into a
// temporary directory and runs the full pipeline against them. target
// selects netlist output; an empty target prints the JSON report.
func RunElaboration(t *testing.T, libFiles map[string]string, configHCL string, target string) *Result {
	t.Helper()

	tmpDir := t.TempDir()
	libDir := filepath.Join(tmpDir, "lib")
	require.NoError(t, os.MkdirAll(libDir, 0o755))
	for name, content := range libFiles {
		require.NoError(t, os.WriteFile(filepath.Join(libDir, name), []byte(content), 0o644))
	}
	configPath := filepath.Join(tmpDir, "config.hcl")
	require.NoError(t, os.WriteFile(configPath, []byte(configHCL), 0o644))

	appConfig, err := app.NewConfig(app.Config{
		LibraryPath: libDir,
		ConfigPath:  configPath,
		Target:      target,
		LogFormat:   "text",
		LogLevel:    "debug",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	var logBuf SafeBuffer
	res := &Result{}

	// NewApp panics on load failures; surface that as the run error.
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("startup error: %v", r)
			}
		}()
		a := app.NewApp(&out, &logBuf, appConfig, hcl.NewLoader())
		res.Err = a.Run(context.Background())
		if res.Err == nil {
			quiet := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
			res.Graph, _ = a.Elaborate(quiet)
		}
	}()

	res.Output = out.String()
	res.LogOutput = logBuf.String()
	return res
}
