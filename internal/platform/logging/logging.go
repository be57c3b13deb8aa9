// Package logging builds the zap loggers used by commands.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Modes accepted by New.
const (
	ModeDev   = "dev"
	ModeDebug = "debug"
	ModeProd  = "prod"
	ModeOff   = "off"
)

// New builds a logger for mode. Every mode writes to stderr so stdout stays
// free for the game transcript.
//
//   - dev: console encoding, warnings and above
//   - debug: console encoding, everything
//   - prod: JSON encoding, info and above
//   - off: no output
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeDev:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case ModeDebug:
		cfg = zap.NewDevelopmentConfig()
	case ModeProd:
		cfg = zap.NewProductionConfig()
	case ModeOff:
		return zap.NewNop(), nil
	default:
		return nil, fmt.Errorf("unknown log mode %q", mode)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
