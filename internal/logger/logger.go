package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/csheth/quoteoftheday/internal/config"
)

// New builds the logger for env. Output goes to path, or to stdout when path
// is empty. An unknown env falls back to the prod settings with a warning.
func New(env, path string) (*zap.Logger, error) {
	output := "stdout"
	if path != "" {
		output = path
	}

	var cfg zap.Config
	known := true
	switch env {
	case config.EnvLocal:
		cfg = zap.NewDevelopmentConfig()
	case config.EnvDev:
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case config.EnvProd:
		cfg = zap.NewProductionConfig()
	default:
		known = false
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: build %q logger: %w", env, err)
	}
	if !known {
		log.Warn("invalid env, defaulting to prod logger settings", zap.String("configured_env", env))
	}
	return log.With(zap.String("env", env)), nil
}
