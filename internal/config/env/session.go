package env

import (
	"fmt"
	"os"

	"tarot_slots/internal/config"

	"github.com/shopspring/decimal"
)

const (
	startBalanceEnvName = "SESSION_START_BALANCE"
	defaultBetEnvName   = "SESSION_DEFAULT_BET"
)

var (
	defaultStartBalance = decimal.NewFromInt(100)
	defaultBet          = decimal.RequireFromString("0.20")
)

type sessionConfig struct {
	startBalance decimal.Decimal
	defaultBet   decimal.Decimal
}

func NewSessionConfig() (config.SessionConfig, error) {
	balance, err := decimalFromEnv(startBalanceEnvName, defaultStartBalance)
	if err != nil {
		return nil, err
	}
	bet, err := decimalFromEnv(defaultBetEnvName, defaultBet)
	if err != nil {
		return nil, err
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative", startBalanceEnvName)
	}
	if !bet.IsPositive() {
		return nil, fmt.Errorf("%s must be positive", defaultBetEnvName)
	}

	return &sessionConfig{
		startBalance: balance,
		defaultBet:   bet,
	}, nil
}

func (cfg *sessionConfig) StartBalance() decimal.Decimal {
	return cfg.startBalance
}

func (cfg *sessionConfig) DefaultBet() decimal.Decimal {
	return cfg.defaultBet
}

func decimalFromEnv(name string, def decimal.Decimal) (decimal.Decimal, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
