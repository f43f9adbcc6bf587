package config

import (
	"sort"
	"time"

	"tarot_slots/internal/model"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type GameConfig interface {
	Symbols() *model.SymbolSet
	Paylines() [][]int
	MinMatch() int
	WildSubstitution() bool
	TarotChance() float64
	TarotCountWeights() ([]int, []float64)
	MaxWinMultiplier() int
	Lovers() LoversSettings
	Priestess() PriestessSettings
	Death() DeathSettings
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	Enabled() bool
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
}

type SessionConfig interface {
	StartBalance() decimal.Decimal
	DefaultBet() decimal.Decimal
}

type LogConfig interface {
	Level() string
	Development() bool
}

// LoversSettings параметры влюбленных
type LoversSettings struct {
	Anchors [2]string // верхний левый, нижний правый
}

// PriestessSettings параметры жрицы
type PriestessSettings struct {
	Multiplier     int
	Rounds         map[int]int
	NewCells       []int
	NewCellWeights []float64
}

// RoundsFor количество раундов для числа колонок таро
func (p PriestessSettings) RoundsFor(count int) int {
	return ByCount(p.Rounds, count)
}

// DeathSettings параметры смерти
type DeathSettings struct {
	Rounds           map[int]int
	ClusterMin       int
	ClusterPays      map[int]decimal.Decimal
	StickyWildChance float64
	ReapThresholds   []int
	MaxCols          int
	MaxRows          int
	MaxCascades      int
}

// RoundsFor количество раундов для числа колонок таро
func (d DeathSettings) RoundsFor(count int) int {
	return ByCount(d.Rounds, count)
}

// ClusterPay выплата в ставках за кластер размера size (наибольший ключ <= size)
func (d DeathSettings) ClusterPay(size int) decimal.Decimal {
	best, found := 0, false
	for k := range d.ClusterPays {
		if k <= size && (!found || k > best) {
			best, found = k, true
		}
	}
	if !found {
		return decimal.Zero
	}
	return d.ClusterPays[best]
}

// ByCount значение для наибольшего ключа <= count, иначе для наименьшего ключа
func ByCount(table map[int]int, count int) int {
	if len(table) == 0 {
		return 0
	}
	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	value := table[keys[0]]
	for _, k := range keys {
		if k <= count {
			value = table[k]
		}
	}
	return value
}
