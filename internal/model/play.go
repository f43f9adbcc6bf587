package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlayRecord завершенная игра (спин или бонус целиком) для журнала
type PlayRecord struct {
	ID          int64
	SessionID   string
	Seed        uint32 // состояние генератора до спина
	Bet         decimal.Decimal
	Win         decimal.Decimal
	Balance     decimal.Decimal // баланс после зачисления
	Feature     FeatureType
	Forced      bool
	Rounds      []RoundRecord
	CompletedAt time.Time
}

// RoundRecord раунд бонуса в журнале
type RoundRecord struct {
	Index  int
	Win    decimal.Decimal
	Detail []byte // JSON для повтора
}

// Stats агрегированная статистика RTP
type Stats struct {
	TotalPlays  int
	TotalBet    float64
	TotalPayout float64
	CurrentRTP  float64
	WindowRTP   float64
	WindowSize  int
	Triggers    map[string]int
}
