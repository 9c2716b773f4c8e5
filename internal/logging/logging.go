// Package logging builds the file-backed zap logger for the orchestrator TUI.
// The TUI owns the terminal, so logs never go to stdout/stderr; they are
// written under the config directory's logs/ subdirectory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the single log file all categories write to.
const FileName = "orchestrator.log"

// New returns a production zap logger writing to dir/orchestrator.log.
// verbose lowers the level to debug.
func New(dir string, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(dir, FileName)}
	cfg.ErrorOutputPaths = []string{filepath.Join(dir, FileName)}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a no-op logger for tests and for degraded startup when the log
// directory is not writable.
func Nop() *zap.Logger { return zap.NewNop() }
