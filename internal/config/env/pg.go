package env

import (
	"os"

	"tarot_slots/internal/config"
)

const (
	dsnName = "PG_DSN"
)

type pgConfig struct {
	dsn string
}

// NewPGConfig пустой DSN допустим: журнал игр тогда хранится в памяти
func NewPGConfig() (config.PGConfig, error) {
	dsn := os.Getenv(dsnName)

	return &pgConfig{
		dsn: dsn,
	}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}

func (cfg *pgConfig) Enabled() bool {
	return len(cfg.dsn) > 0
}
