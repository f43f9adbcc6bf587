package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Tier группа символа
type Tier string

const (
	TierWild    Tier = "WILD"
	TierLow     Tier = "LOW"
	TierPremium Tier = "PREMIUM"
	TierTarot   Tier = "TAROT"
)

// ParseTier разбор уровня из конфигурации (регистр не важен)
func ParseTier(s string) (Tier, error) {
	switch t := Tier(strings.ToUpper(strings.TrimSpace(s))); t {
	case TierWild, TierLow, TierPremium, TierTarot:
		return t, nil
	}
	return "", fmt.Errorf("unknown symbol tier %q", s)
}

// Symbol описание символа. Неизменяемый, загружается один раз из конфигурации.
type Symbol struct {
	ID      string
	Tier    Tier
	Weight  float64
	Pays    map[int]decimal.Decimal // выплата по количеству совпадений
	Feature FeatureType             // только для таро
}

// IsTarot символ-маркер бонуса
func (s Symbol) IsTarot() bool {
	return s.Tier == TierTarot
}

// Pool набор символов с весами для WeightedChoice
type Pool struct {
	IDs     []string
	Weights []float64
}

// Len количество символов в пуле
func (p Pool) Len() int {
	return len(p.IDs)
}

// Without копия пула без указанных символов
func (p Pool) Without(ids ...string) Pool {
	skip := make(map[string]bool, len(ids))
	for _, id := range ids {
		skip[id] = true
	}
	var out Pool
	for i, id := range p.IDs {
		if skip[id] {
			continue
		}
		out.IDs = append(out.IDs, id)
		out.Weights = append(out.Weights, p.Weights[i])
	}
	return out
}

// SymbolSet индекс символов и готовые пулы для генерации
type SymbolSet struct {
	symbols []Symbol
	byID    map[string]Symbol
	wild    string
	tarots  map[FeatureType]string
}

// NewSymbolSet строит индекс и проверяет целостность набора
func NewSymbolSet(symbols []Symbol) (*SymbolSet, error) {
	set := &SymbolSet{
		symbols: make([]Symbol, len(symbols)),
		byID:    make(map[string]Symbol, len(symbols)),
		tarots:  make(map[FeatureType]string),
	}
	copy(set.symbols, symbols)

	for _, s := range symbols {
		if s.ID == "" {
			return nil, fmt.Errorf("symbol with empty id")
		}
		if _, ok := set.byID[s.ID]; ok {
			return nil, fmt.Errorf("duplicate symbol %q", s.ID)
		}
		if s.Weight <= 0 {
			return nil, fmt.Errorf("symbol %q: weight must be positive", s.ID)
		}
		set.byID[s.ID] = s

		switch s.Tier {
		case TierWild:
			if set.wild != "" {
				return nil, fmt.Errorf("more than one wild symbol: %q and %q", set.wild, s.ID)
			}
			set.wild = s.ID
		case TierTarot:
			if s.Feature == FeatureNone {
				return nil, fmt.Errorf("tarot symbol %q has no feature", s.ID)
			}
			if prev, ok := set.tarots[s.Feature]; ok {
				return nil, fmt.Errorf("feature %s bound to both %q and %q", s.Feature, prev, s.ID)
			}
			set.tarots[s.Feature] = s.ID
		}
	}

	if set.wild == "" {
		return nil, fmt.Errorf("wild symbol is not configured")
	}
	for _, ft := range FeaturePriority {
		if _, ok := set.tarots[ft]; !ok {
			return nil, fmt.Errorf("no tarot symbol for feature %s", ft)
		}
	}
	return set, nil
}

// Get символ по id
func (s *SymbolSet) Get(id string) (Symbol, bool) {
	sym, ok := s.byID[id]
	return sym, ok
}

// Has существует ли символ
func (s *SymbolSet) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Wild id вайлда
func (s *SymbolSet) Wild() string {
	return s.wild
}

// IsWild проверка на вайлд
func (s *SymbolSet) IsWild(id string) bool {
	return id == s.wild
}

// Tarot символ таро для бонуса
func (s *SymbolSet) Tarot(ft FeatureType) (string, bool) {
	id, ok := s.tarots[ft]
	return id, ok
}

// All все символы в порядке конфигурации
func (s *SymbolSet) All() []Symbol {
	out := make([]Symbol, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Pool пул символов указанных уровней в порядке конфигурации
func (s *SymbolSet) Pool(tiers ...Tier) Pool {
	want := make(map[Tier]bool, len(tiers))
	for _, t := range tiers {
		want[t] = true
	}
	var p Pool
	for _, sym := range s.symbols {
		if want[sym.Tier] {
			p.IDs = append(p.IDs, sym.ID)
			p.Weights = append(p.Weights, sym.Weight)
		}
	}
	return p
}

// BasePool обычные символы барабана (всё кроме таро)
func (s *SymbolSet) BasePool() Pool {
	return s.Pool(TierWild, TierLow, TierPremium)
}

// TarotPool символы таро
func (s *SymbolSet) TarotPool() Pool {
	return s.Pool(TierTarot)
}
