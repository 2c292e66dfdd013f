package txt2png

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a production logger writing JSON lines to stderr. It
// logs warnings and errors, plus debug output when verbose is set.
func NewLogger(verbose bool) (*zap.Logger, error) {
	return loggerConfig(verbose).Build()
}

func loggerConfig(verbose bool) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	return cfg
}
