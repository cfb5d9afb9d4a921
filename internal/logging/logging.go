// Package logging wraps a process-wide zap logger.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level  string
	Format string
}

var (
	baseLogger *zap.Logger
	sugar      *zap.SugaredLogger
)

// callerOptions report the caller of the package-level helpers below.
var callerOptions = []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1)}

func init() {
	baseLogger = zap.NewNop()
	sugar = baseLogger.Sugar()
}

// ParseLevel converts a case-insensitive level string to a zap level.
// An empty string returns info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	if format == "" {
		format = "console"
	}

	var zapCfg zap.Config
	switch format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.DisableStacktrace = true
	default:
		return fmt.Errorf("invalid log format %q (want console|json)", cfg.Format)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build(callerOptions...)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	baseLogger = logger
	sugar = logger.Sugar()
	return nil
}

// Set replaces the process-wide logger. Tests use it with zaptest/observer.
func Set(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseLogger = logger.WithOptions(callerOptions...)
	sugar = baseLogger.Sugar()
}

func Sync() {
	if baseLogger != nil {
		// stderr sync fails with EINVAL on some terminals.
		if err := baseLogger.Sync(); err != nil && !isStdSyncErr(err) {
			fmt.Fprintf(os.Stderr, "log sync: %v\n", err)
		}
	}
}

func isStdSyncErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}

// With returns a sugared logger carrying the given key/value pairs. Its
// methods are called directly, so the helper frame skip is undone.
func With(args ...interface{}) *zap.SugaredLogger {
	return sugar.WithOptions(zap.AddCallerSkip(-1)).With(args...)
}

func Debugf(format string, args ...interface{}) {
	sugar.Debugf(format, args...)
}
