package spin

import (
	"errors"
	"fmt"
	"sync"

	"tarot_slots/internal/model"
	"tarot_slots/internal/service/feature"
	"tarot_slots/internal/service/payline"
	"tarot_slots/pkg/rng"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrSpinInProgress    = errors.New("spin in progress")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoActiveFeature   = errors.New("no active feature")
	ErrFeatureMismatch   = errors.New("operation does not match active feature")
	ErrInvalidBet        = errors.New("bet must be positive")
)

// Controller одна игровая сессия: баланс, ставка, генератор и активный бонус.
// Флаг spinning держится, пока идет отложенный бонус.
type Controller struct {
	mu   sync.Mutex
	game *Game
	src  *rng.Source
	log  *zap.Logger

	id       string
	balance  decimal.Decimal
	bet      decimal.Decimal
	lastWin  decimal.Decimal
	spinning bool
	active   feature.State
	last     *model.SpinResult
}

// NewController новая сессия с собственным генератором
func (g *Game) NewController(id string, opts model.SessionOptions) *Controller {
	return &Controller{
		game:    g,
		src:     rng.New(opts.Seed),
		log:     g.logger.With(zap.String("session", id)),
		id:      id,
		balance: opts.Balance,
		bet:     opts.Bet,
		lastWin: decimal.Zero,
	}
}

// Spin обычный спин. При отказе возвращается предыдущий результат и ошибка, состояние не меняется.
func (c *Controller) Spin() (*model.SpinResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkSpin(); err != nil {
		return c.last, err
	}
	seed := c.src.State()
	board, tarots := c.game.gen.GenerateSpin(c.src, model.DefaultCols, model.DefaultRows, c.game.cfg.TarotChance())
	return c.play(seed, board, tarots, false), nil
}

// ForceTarotSpin спин с принудительными таро-колонками, дальше как обычный спин
func (c *Controller) ForceTarotSpin(ft model.FeatureType, columns []int) (*model.SpinResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkSpin(); err != nil {
		return c.last, err
	}
	seed := c.src.State()
	board, tarots, err := c.game.gen.GenerateSpinWithTarots(c.src, ft, columns, model.DefaultCols, model.DefaultRows)
	if err != nil {
		return c.last, err
	}
	return c.play(seed, board, tarots, true), nil
}

func (c *Controller) checkSpin() error {
	if c.spinning {
		c.log.Warn("spin rejected: previous play still in progress", zap.Stringer("feature", c.activeType()))
		return ErrSpinInProgress
	}
	if c.balance.LessThan(c.bet) {
		c.log.Warn("spin rejected: insufficient funds",
			zap.String("balance", c.balance.String()),
			zap.String("bet", c.bet.String()),
		)
		return ErrInsufficientFunds
	}
	return nil
}

// play списание, бонус, линии и начисление
func (c *Controller) play(seed uint32, board *model.Grid, tarots []model.TarotColumn, forced bool) *model.SpinResult {
	bet := c.bet
	c.balance = c.balance.Sub(bet)

	final := board.Clone()
	trigger := feature.DetectTrigger(tarots)

	res := &model.SpinResult{
		InitialGrid:  board,
		Grid:         final,
		TarotColumns: tarots,
		Trigger:      trigger,
		Multiplier:   1,
		LineWin:      decimal.Zero,
		TotalWin:     decimal.Zero,
		Bet:          bet,
		Seed:         seed,
		Forced:       forced,
	}

	switch {
	case trigger == nil:
		res.WinLines = c.game.eval.EvaluateAll(final, bet)
		res.LineWin = payline.Total(res.WinLines)
		res.TotalWin = res.LineWin

	case trigger.Type == model.FeatureFool:
		res.Fool = c.game.engine.Fool(c.src, final, *trigger)
		res.Multiplier = res.Fool.Multiplier
		res.WinLines = c.game.eval.EvaluateAll(final, bet)
		res.LineWin = payline.Total(res.WinLines)
		res.TotalWin = payline.Multiplied(res.WinLines, res.Multiplier)

	case trigger.Type == model.FeatureCups:
		res.Cups = c.game.engine.Cups(c.src, final, *trigger, bet)
		res.WinLines = c.game.eval.EvaluateAll(final, bet)
		res.LineWin = payline.Total(res.WinLines)
		// сбор чаш заменяет выигрыш спина
		res.TotalWin = res.Cups.Win

	default:
		c.active = c.game.engine.Start(*trigger, bet)
		c.spinning = true
		res.Deferred = true
	}

	if trigger != nil {
		c.log.Info("feature triggered",
			zap.Stringer("feature", trigger.Type),
			zap.Int("count", trigger.Count),
			zap.Ints("columns", trigger.Columns),
			zap.Bool("forced", forced),
		)
	}

	if !res.Deferred {
		res.TotalWin = payline.ApplyMaxPayout(res.TotalWin, bet, c.game.cfg.MaxWinMultiplier())
		c.balance = c.balance.Add(res.TotalWin)
		c.lastWin = res.TotalWin
	}
	res.Balance = c.balance
	c.last = res
	return res
}

// BeginLoversRound предложение символов связи для текущего раунда влюбленных
func (c *Controller) BeginLoversRound() (*model.LoversOffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.lovers()
	if err != nil {
		return nil, err
	}
	return c.game.engine.BeginRound(c.src, st)
}

// ApplyLoversSelection выбор кандидата и расчет раунда влюбленных
func (c *Controller) ApplyLoversSelection(index int) (*model.FeatureRound, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.lovers()
	if err != nil {
		return nil, err
	}
	round, err := c.game.engine.ApplySelection(c.src, st, index)
	if err != nil {
		return nil, err
	}
	return c.finishRound(&model.FeatureRound{Type: model.FeatureLovers, Lovers: round}), nil
}

// ApplyRound следующий раунд жрицы или смерти
func (c *Controller) ApplyRound() (*model.FeatureRound, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch st := c.active.(type) {
	case nil:
		return nil, ErrNoActiveFeature
	case *feature.PriestessState:
		round, err := c.game.engine.PlayPriestessRound(c.src, st)
		if err != nil {
			return nil, err
		}
		return c.finishRound(&model.FeatureRound{Type: model.FeaturePriestess, Priestess: round}), nil
	case *feature.DeathState:
		round, err := c.game.engine.PlayDeathRound(c.src, st)
		if err != nil {
			return nil, err
		}
		return c.finishRound(&model.FeatureRound{Type: model.FeatureDeath, Death: round}), nil
	default:
		return nil, fmt.Errorf("%w: %s requires a selection", ErrFeatureMismatch, st.Type())
	}
}

func (c *Controller) lovers() (*feature.LoversState, error) {
	switch st := c.active.(type) {
	case nil:
		return nil, ErrNoActiveFeature
	case *feature.LoversState:
		return st, nil
	default:
		return nil, fmt.Errorf("%w: active feature is %s", ErrFeatureMismatch, st.Type())
	}
}

// finishRound по завершении бонуса начисляет накопленный выигрыш и снимает флаг спина
func (c *Controller) finishRound(round *model.FeatureRound) *model.FeatureRound {
	st := c.active
	round.FeatureWin = st.Accumulated()

	if st.Remaining() == 0 {
		total := payline.ApplyMaxPayout(st.Accumulated(), st.Bet(), c.game.cfg.MaxWinMultiplier())
		c.balance = c.balance.Add(total)
		c.lastWin = total
		c.active = nil
		c.spinning = false

		round.Completed = true
		round.FeatureWin = total
		c.log.Info("feature completed", zap.Stringer("feature", round.Type), zap.String("win", total.String()))
	}
	round.Balance = c.balance
	return round
}

// Session снимок состояния сессии
func (c *Controller) Session() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.SessionState{
		ID:       c.id,
		Balance:  c.balance,
		Bet:      c.bet,
		LastWin:  c.lastWin,
		Seed:     c.src.State(),
		Spinning: c.spinning,
		Feature:  c.activeType(),
	}
}

// Last последний принятый спин
func (c *Controller) Last() *model.SpinResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// SetBet новая ставка. Во время бонуса ставка не меняется.
func (c *Controller) SetBet(bet decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !bet.IsPositive() {
		return ErrInvalidBet
	}
	if c.spinning {
		return ErrSpinInProgress
	}
	c.bet = bet
	return nil
}

// SetSeed сброс генератора для повтора. Во время бонуса запрещен.
func (c *Controller) SetSeed(seed uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.spinning {
		return ErrSpinInProgress
	}
	c.src.SetState(seed)
	return nil
}

func (c *Controller) activeType() model.FeatureType {
	if c.active == nil {
		return model.FeatureNone
	}
	return c.active.Type()
}
