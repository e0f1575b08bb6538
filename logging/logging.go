package logging

import (
	"go.uber.org/zap"
)

// New builds the process logger: JSON production output by default,
// human-readable console output in debug mode.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

// NewNop returns a logger that discards everything; for tests.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
