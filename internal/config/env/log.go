package env

import (
	"os"

	"tarot_slots/internal/config"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logDevEnvName   = "LOG_DEVELOPMENT"
)

type logConfig struct {
	level string
	dev   bool
}

func NewLogConfig() config.LogConfig {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}
	return &logConfig{
		level: level,
		dev:   os.Getenv(logDevEnvName) == "true",
	}
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Development() bool {
	return cfg.dev
}
