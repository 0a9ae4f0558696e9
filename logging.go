package main

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.LevelKey = "level"
	cfg.NameKey = "name"
	cfg.MessageKey = "msg"
	cfg.CallerKey = "caller"
	cfg.StacktraceKey = "stacktrace"
	return cfg
}

// SetupLogging is a helper function that initialize the logging module.
// In production all logs are saved to the defined file. In development
// the same logs are printed to standard output as well. It only adds
// stacktrace to error level logs. All logs come with commit & tag value.
func SetupLogging(config *Config, logFile *os.File) (*zap.Logger, func()) {
	zapConfig := encoderConfig()
	fileCore := zapcore.NewCore(zapcore.NewJSONEncoder(zapConfig), zapcore.AddSync(logFile), config.LogLevel)

	var zapCore zapcore.Core
	if config.IsProduction {
		zapCore = zapcore.NewTee(fileCore)
	} else {
		consoleEncoder := zapcore.NewConsoleEncoder(zapConfig)
		zapCore = zapcore.NewTee(
			fileCore,
			zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), config.LogLevel))
	}
	logger := zap.New(zapCore, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	logger = logger.With(zap.String("commit", config.GitCommit), zap.String("tag", config.GitTag))

	flusher := func() {
		if err := logger.Sync(); err != nil {
			log.Println("error during flushing any buffered log entries:", err)
		}
	}

	return logger, flusher
}
