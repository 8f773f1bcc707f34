package logger

import (
	"fmt"
	"os"
	"time"

	"wiki-quiz/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "wiki-quiz"

var log = zap.NewNop()

// Initialize replaces the global logger. logger.env "production" writes
// sampled JSON; anything else writes colored console lines. Both go to
// stdout with internal zap errors on stderr.
func Initialize(loggerCfg config.LoggerConfig) error {
	level := zapcore.InfoLevel
	if loggerCfg.Level != "" {
		if err := level.Set(loggerCfg.Level); err != nil {
			return fmt.Errorf("invalid logger.level %q: %w", loggerCfg.Level, err)
		}
	}

	production := loggerCfg.Env == "production"
	encoderConfig := encoderConfig(production)

	var core zapcore.Core
	if production {
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.Lock(os.Stdout), level)
		// Same budget as zap.NewProductionConfig.
		core = zapcore.NewSamplerWithOptions(core, time.Second, 100, 100)
	} else {
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level)
	}

	log = zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	).Named(serviceName)
	return nil
}

func encoderConfig(production bool) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if !production {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeDuration = zapcore.StringDurationEncoder
	}
	return cfg
}

// Get returns the global logger instance. Before Initialize it is a no-op
// logger, which keeps packages usable from tests.
func Get() *zap.Logger {
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	return log.Sync()
}
