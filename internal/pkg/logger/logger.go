package logger

import (
	"InfraDash/internal/pkg/config"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the global logger instance. It discards everything until Init
	// runs so packages can log from tests without setup.
	Log = zap.NewNop()
	// Sugar is the global sugared logger instance
	Sugar = Log.Sugar()
)

// Init initializes the global logger with configuration
func Init(cfg *config.Config) error {
	if !cfg.Logs.Enabled {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
		return nil
	}

	level, err := getLogLevel(cfg.Logs.Level)
	if err != nil {
		return err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Logs.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writers []zapcore.WriteSyncer

	if cfg.Logs.FilePath != "" {
		if err := os.MkdirAll(cfg.Logs.FilePath, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		logFile := filepath.Join(cfg.Logs.FilePath, fmt.Sprintf("%s.log", cfg.AppName))

		// Rotated by size; old files are gzipped
		writers = append(writers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}))
	}

	if cfg.Logs.Stdout {
		writers = append(writers, zapcore.AddSync(os.Stdout))
	}

	if len(writers) == 0 {
		Log = zap.NewNop()
		Sugar = Log.Sugar()
		return nil
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(writers...), zap.NewAtomicLevelAt(level))

	// CallerSkip(1) so the caller of the package-level helpers is reported
	Log = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("app", cfg.AppName))
	Sugar = Log.Sugar()

	Sugar.Infof("Logger initialized with level: %s, format: %s", cfg.Logs.Level, cfg.Logs.Format)

	return nil
}

// Sync flushes any buffered log entries
func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}

func getLogLevel(levelStr string) (zapcore.Level, error) {
	switch levelStr {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", levelStr)
	}
}

// Debug logs a message at DebugLevel with structured fields
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs a message at InfoLevel with structured fields
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a message at WarnLevel with structured fields
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs a message at ErrorLevel with structured fields
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}

// Field creation helpers
func String(key, value string) zap.Field {
	return zap.String(key, value)
}

func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

func Bool(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}

func Duration(key string, value time.Duration) zap.Field {
	return zap.Duration(key, value)
}
