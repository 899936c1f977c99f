// Package logger holds the process-wide zap logger
package logger

import (
	"os"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Options configures the global logger
type Options struct {
	Debug bool
	// File enables an additional JSON log rotated by size
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init initializes the global logger once. Later calls are no-ops.
func Init(opts Options) {
	once.Do(func() {
		log = build(opts)
	})
}

// build creates the logger: console on stderr, plus an optional rotated file
func build(opts Options) *zap.Logger {
	level := zapcore.InfoLevel
	encoderConfig := zap.NewProductionEncoderConfig()
	if opts.Debug {
		level = zapcore.DebugLevel
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// stdout may carry document output
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			level,
		),
	}

	if opts.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    orDefault(opts.MaxSizeMB, 50),
				MaxBackups: orDefault(opts.MaxBackups, 5),
				MaxAge:     orDefault(opts.MaxAgeDays, 30),
			}),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zapcore.ErrorLevel))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Get returns the global logger, initializing it at info level if needed
func Get() *zap.Logger {
	Init(Options{})
	return log
}

// Sync flushes any buffered log entries
func Sync() {
	if log != nil {
		log.Sync()
	}
}
