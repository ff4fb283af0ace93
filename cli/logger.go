// Package main provides the TransformX portal CLI.
//
// This file wires the debug logger. The TUI owns the terminal, so logs go
// to ~/.transformx/debug.log for troubleshooting portal operations.
package main

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

func initLogger(verbose bool) (*zap.Logger, error) {
	logDir := filepath.Join(os.Getenv("HOME"), ".transformx")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logPath := filepath.Join(logDir, "debug.log")
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}

	return cfg.Build()
}
