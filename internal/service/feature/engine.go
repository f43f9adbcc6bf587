package feature

import (
	"errors"

	"tarot_slots/internal/config"
	"tarot_slots/internal/model"
	"tarot_slots/internal/service/grid"
	"tarot_slots/internal/service/payline"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrSelectionOutOfRange = errors.New("selection index out of range")
	ErrNoPendingOffer      = errors.New("no pending lovers offer")
	ErrFeatureFinished     = errors.New("feature has no rounds left")
)

// Engine логика бонусов. Не хранит состояние: всё, что живет между раундами, лежит в State.
type Engine struct {
	cfg     config.GameConfig
	symbols *model.SymbolSet
	gen     *grid.Generator
	eval    *payline.Evaluator
	logger  *zap.Logger

	premium model.Pool
	low     model.Pool
	regular model.Pool // low + premium
}

func NewEngine(cfg config.GameConfig, gen *grid.Generator, eval *payline.Evaluator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := cfg.Symbols()
	return &Engine{
		cfg:     cfg,
		symbols: set,
		gen:     gen,
		eval:    eval,
		logger:  logger,
		premium: set.Pool(model.TierPremium),
		low:     set.Pool(model.TierLow),
		regular: set.Pool(model.TierLow, model.TierPremium),
	}
}

// State состояние отложенного бонуса между раундами.
// Реализации: *LoversState, *PriestessState, *DeathState.
type State interface {
	Type() model.FeatureType
	// Remaining сколько раундов осталось
	Remaining() int
	// Accumulated выигрыш за сыгранные раунды
	Accumulated() decimal.Decimal
	// Bet ставка спина, запустившего бонус
	Bet() decimal.Decimal

	sealed()
}

type base struct {
	trigger   model.FeatureTrigger
	bet       decimal.Decimal
	remaining int
	played    int
	win       decimal.Decimal
}

func (b *base) Remaining() int {
	return b.remaining
}

func (b *base) Accumulated() decimal.Decimal {
	return b.win
}

func (b *base) Bet() decimal.Decimal {
	return b.bet
}

func (b *base) Trigger() model.FeatureTrigger {
	return b.trigger
}

func (b *base) sealed() {}

// Start состояние для отложенного бонуса. Для Шута и Чаш возвращает nil.
func (e *Engine) Start(trigger model.FeatureTrigger, bet decimal.Decimal) State {
	switch trigger.Type {
	case model.FeatureLovers:
		return e.StartLovers(trigger, bet)
	case model.FeaturePriestess:
		return e.StartPriestess(trigger, bet)
	case model.FeatureDeath:
		return e.StartDeath(trigger, bet)
	}
	return nil
}
