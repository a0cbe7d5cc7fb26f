package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is a no-op logger until Initialize is called
var Log = zap.NewNop()

// logFileName is the rotated file written under Config.LogDir
const logFileName = "persons-api.log"

// Config holds logger configuration
type Config struct {
	Level       string
	LogDir      string // production only; empty means stdout only
	Environment string
	ServiceName string
}

// Initialize sets up the global logger
func Initialize(cfg Config) error {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("invalid log level %s: %w", cfg.Level, err)
	}

	zcfg := baseConfig(cfg.Environment)
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stdout"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	opts := []zap.Option{
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	}

	if cfg.Environment == "production" && cfg.LogDir != "" {
		file, err := rotatedFileCore(cfg.LogDir, zcfg.EncoderConfig, zcfg.Level)
		if err != nil {
			return err
		}
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, file)
		}))
	}

	logger, err := zcfg.Build(opts...)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	// Added after Build so the file core gets the field too
	if cfg.ServiceName != "" {
		logger = logger.With(zap.String("service", cfg.ServiceName))
	}

	Log = logger
	return nil
}

// baseConfig is a colored console config in development and JSON elsewhere
func baseConfig(environment string) zap.Config {
	if environment == "development" {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zcfg
	}

	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg
}

// rotatedFileCore writes JSON to a size-rotated file in dir
func rotatedFileCore(dir string, enc zapcore.EncoderConfig, level zapcore.LevelEnabler) (zapcore.Core, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     14, // days
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(sink), level), nil
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	Log.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = Log.Sync() //nolint:errcheck // stdout sync fails on some terminals
}

// LogHTTPRequest logs a finished request at a level chosen by its status:
// 5xx as error, 4xx as warning, everything else as info.
func LogHTTPRequest(method, path string, statusCode int, duration float64, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", statusCode),
		zap.Float64("duration", duration),
	}, fields...)

	switch {
	case statusCode >= 500:
		Error("HTTP request failed", fields...)
	case statusCode >= 400:
		Warn("HTTP request client error", fields...)
	default:
		Info("HTTP request", fields...)
	}
}

// LogError logs err with additional context fields
func LogError(err error, msg string, fields ...zap.Field) {
	Error(msg, append([]zap.Field{zap.Error(err)}, fields...)...)
}
