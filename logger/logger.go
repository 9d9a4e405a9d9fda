package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.SugaredLogger

func init() {
	// Initialize with a safe no-op logger at package load time
	// This prevents nil pointer panics if logger is used before Initialize() is called
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger. The level comes from the -v flag
// count via VerbosityToLevel; CINEGRAPH_LOG_LEVEL overrides it when set.
func Initialize(jsonOutput bool, verbosity int) error {
	level := effectiveLevel(verbosity)

	if jsonOutput {
		// JSON structured output for machine consumption
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err := config.Build()
		if err != nil {
			return err
		}
		Logger = zapLogger.Sugar()
		return nil
	}

	// Human-readable console output with minimal, calm formatting
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	zapLogger := zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		),
	)
	Logger = zapLogger.Sugar()
	return nil
}

// effectiveLevel resolves the log level for the given verbosity count,
// letting CINEGRAPH_LOG_LEVEL take precedence when set.
func effectiveLevel(verbosity int) zapcore.Level {
	switch os.Getenv("CINEGRAPH_LOG_LEVEL") {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return VerbosityToLevel(verbosity)
	}
}

// Named returns a child of the global logger with the given name.
// Safe to call before Initialize; the no-op logger absorbs everything.
func Named(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	if Logger != nil {
		// Sync errors on stdout are expected on some platforms; ignore them
		_ = Logger.Sync()
	}
}
