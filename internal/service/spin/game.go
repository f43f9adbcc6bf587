package spin

import (
	"tarot_slots/internal/config"
	"tarot_slots/internal/model"
	"tarot_slots/internal/service/feature"
	"tarot_slots/internal/service/grid"
	"tarot_slots/internal/service/payline"

	"go.uber.org/zap"
)

// Game общие для всех сессий неизменяемые части движка
type Game struct {
	cfg    config.GameConfig
	gen    *grid.Generator
	eval   *payline.Evaluator
	engine *feature.Engine
	logger *zap.Logger
}

// NewGame собирает генератор, оценщик линий и движок бонусов из конфигурации
func NewGame(cfg config.GameConfig, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	values, weights := cfg.TarotCountWeights()
	gen := grid.NewGenerator(cfg.Symbols(), values, weights)
	eval := payline.NewEvaluator(cfg.Symbols(), cfg.Paylines(), cfg.MinMatch(), cfg.WildSubstitution(), logger)
	return &Game{
		cfg:    cfg,
		gen:    gen,
		eval:   eval,
		engine: feature.NewEngine(cfg, gen, eval, logger),
		logger: logger,
	}
}

// Symbols набор символов игры
func (g *Game) Symbols() *model.SymbolSet {
	return g.cfg.Symbols()
}
