// Package logging builds the zap logger. Watch mode logs to a file so log
// lines never interleave with the live terminal display; everything else
// logs to stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

func New(level string) *zap.Logger {
	return build(level, "stderr")
}

func NewFile(level, path string) *zap.Logger {
	if path == "" {
		return New(level)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return New(level)
	}
	return build(level, path)
}

func build(level, out string) *zap.Logger {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{out}

	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
