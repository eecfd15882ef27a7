package logger

import (
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// current is the process-wide logger. It is a no-op until Initialize runs,
	// so library code can log unconditionally. Swapping it is safe while other
	// goroutines log.
	current    atomic.Pointer[zap.SugaredLogger]
	jsonOutput atomic.Bool
)

func init() {
	current.Store(zap.NewNop().Sugar())
}

// L returns the process-wide logger.
func L() *zap.SugaredLogger {
	return current.Load()
}

// JSONOutput reports whether Initialize selected structured JSON output.
func JSONOutput() bool {
	return jsonOutput.Load()
}

// Initialize sets up the global logger. level is one of debug, info, warn, error;
// anything else falls back to info.
func Initialize(asJSON bool, level string) error {
	var zapLogger *zap.Logger
	var err error

	if asJSON {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(ParseLevel(level))
		zapLogger, err = config.Build()
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.TimeKey = ""
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapLogger = zap.New(
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(encoderConfig),
				zapcore.AddSync(os.Stderr),
				ParseLevel(level),
			),
		)
	}

	if err != nil {
		return err
	}

	current.Store(zapLogger.Sugar())
	jsonOutput.Store(asJSON)
	return nil
}

// Use replaces the global logger, e.g. with zaptest or zap.NewNop in tests.
func Use(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	current.Store(l)
}

// Named returns a child of the global logger tagged with a component name.
func Named(component string) *zap.SugaredLogger {
	return L().With(FieldComponent, component)
}

// ParseLevel maps a level name to a zapcore level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// Sync flushes buffered log entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = L().Sync()
}
