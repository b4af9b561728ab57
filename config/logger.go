package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the configuration for a zap.Logger.
type Logger struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Build creates a new zap.Logger.
func (c Logger) Build() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if c.Development {
		config = zap.NewDevelopmentConfig()
	}

	if c.Level != "" {
		level, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, err
		}

		config.Level = zap.NewAtomicLevelAt(level)
	}

	return config.Build()
}
