package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// InitLogger builds the process logger. format "console" gives the
// human-readable development encoder; anything else logs JSON.
func InitLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	Logger = logger
	return logger, nil
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		if _, err := InitLogger("info", "json"); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	return Logger
}
