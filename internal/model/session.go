package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

// SessionState состояние игровой сессии
type SessionState struct {
	ID       string
	Balance  decimal.Decimal
	Bet      decimal.Decimal
	LastWin  decimal.Decimal
	Seed     uint32 // текущее состояние генератора
	Spinning bool
	Feature  FeatureType // активный отложенный бонус
}

// SessionOptions параметры открытия сессии
type SessionOptions struct {
	Balance decimal.Decimal
	Bet     decimal.Decimal
	Seed    uint32
}

// SessionRequest запрос на открытие сессии. nil - значение из конфигурации, 0 в Seed - случайный.
type SessionRequest struct {
	Balance *decimal.Decimal
	Bet     *decimal.Decimal
	Seed    uint32
}

// Session открытая сессия и токен доступа к ней
type Session struct {
	ID        string
	Token     string
	ExpiresAt time.Time
	State     SessionState
}

// SessionClaims содержимое токена сессии
type SessionClaims struct {
	jwt.RegisteredClaims
}
