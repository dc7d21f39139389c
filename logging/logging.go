// Package logging provides configurable zap logger creation for paperclip
// tools. The library core stays log-free; only the orchestration layer
// and the CLI log.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Style selects the log output format.
type Style string

const (
	// StyleTerminal is human-readable development output.
	StyleTerminal Style = "terminal"
	// StyleJSON is machine-readable production output.
	StyleJSON Style = "json"
	// StyleNoop discards all output.
	StyleNoop Style = "noop"
)

// New creates a zap logger for the given style and level. An empty style
// defaults to terminal, an empty level to info.
func New(style Style, level string) (*zap.Logger, error) {
	logLevel := zapcore.InfoLevel
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: invalid level %q: %w", level, err)
		}
		logLevel = lvl
	}

	switch style {
	case StyleNoop:
		return zap.NewNop(), nil

	case StyleJSON:
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
		if err != nil {
			return nil, fmt.Errorf("logging: failed to build logger: %w", err)
		}
		return logger, nil

	case StyleTerminal, "":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(logLevel)
		logger, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
		if err != nil {
			return nil, fmt.Errorf("logging: failed to build logger: %w", err)
		}
		return logger, nil

	default:
		return nil, fmt.Errorf("logging: invalid style %q: must be one of terminal, json, noop", style)
	}
}
