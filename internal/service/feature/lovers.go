package feature

import (
	"fmt"

	"tarot_slots/internal/model"
	"tarot_slots/internal/service/payline"
	"tarot_slots/pkg/rng"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	loversCandidates = 3

	loversPremiumChance = 0.6
	loversLowChance     = 0.9 // накопленная: 0.6 премиум + 0.3 низкие
)

// areaTier размеры прямоугольника связи
type areaTier struct {
	name   string
	shapes [][2]int // ширина, высота
}

var (
	loversTiers = []areaTier{
		{name: "tiny", shapes: [][2]int{{1, 1}}},
		{name: "small", shapes: [][2]int{{2, 1}, {1, 2}}},
		{name: "medium", shapes: [][2]int{{2, 2}, {3, 2}}},
		{name: "large", shapes: [][2]int{{3, 3}, {4, 2}}},
		{name: "huge", shapes: [][2]int{{4, 3}, {5, 2}}},
		{name: "full", shapes: [][2]int{{5, 3}}},
	}
	loversTierWeights = []float64{5, 10, 35, 30, 15, 5}
)

// LoversState раунды влюбленных
type LoversState struct {
	base
	multiplier int
	offer      *model.LoversOffer
}

func (s *LoversState) Type() model.FeatureType {
	return model.FeatureLovers
}

// Multiplier множитель раундов
func (s *LoversState) Multiplier() int {
	return s.multiplier
}

// Pending текущее предложение, ожидающее выбора
func (s *LoversState) Pending() *model.LoversOffer {
	return s.offer
}

// StartLovers 2 колонки: 3 раунда x2, 3 и больше: 6 раундов x1
func (e *Engine) StartLovers(trigger model.FeatureTrigger, bet decimal.Decimal) *LoversState {
	st := &LoversState{
		base:       base{trigger: trigger, bet: bet, remaining: 3, win: decimal.Zero},
		multiplier: 2,
	}
	if trigger.Count >= 3 {
		st.remaining = 6
		st.multiplier = 1
	}
	return st
}

// BeginRound новое поле и три кандидата на символ связи.
// Повторный вызов до выбора возвращает то же предложение без обращений к генератору.
func (e *Engine) BeginRound(src *rng.Source, st *LoversState) (*model.LoversOffer, error) {
	if st.offer != nil {
		return st.offer, nil
	}
	if st.remaining <= 0 {
		return nil, ErrFeatureFinished
	}

	board := e.gen.Fill(src, model.DefaultCols, model.DefaultRows)

	anchors := e.cfg.Lovers().Anchors
	premium := e.premium.Without(anchors[:]...).IDs
	low := e.low.Without(anchors[:]...).IDs

	candidates := make([]string, loversCandidates)
	for i := range candidates {
		roll := src.NextFloat()
		switch {
		case roll < loversPremiumChance && len(premium) > 0:
			candidates[i] = rng.Choice(src, premium)
		case roll < loversLowChance && len(low) > 0:
			candidates[i] = rng.Choice(src, low)
		default:
			candidates[i] = e.symbols.Wild()
		}
	}

	st.offer = &model.LoversOffer{
		Round:          st.played + 1,
		Grid:           board,
		Candidates:     candidates,
		SpinsRemaining: st.remaining,
		Multiplier:     st.multiplier,
	}
	return st.offer, nil
}

// ApplySelection выбор кандидата по индексу с 0 и расчет раунда
func (e *Engine) ApplySelection(src *rng.Source, st *LoversState, index int) (*model.LoversRound, error) {
	if st.offer == nil {
		return nil, ErrNoPendingOffer
	}
	if index < 0 || index >= len(st.offer.Candidates) {
		e.logger.Warn("lovers selection out of range",
			zap.Int("index", index),
			zap.Int("candidates", len(st.offer.Candidates)),
		)
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrSelectionOutOfRange, index, len(st.offer.Candidates))
	}

	bond := st.offer.Candidates[index]
	board := st.offer.Grid.Clone()

	tier := rng.WeightedChoice(src, loversTiers, loversTierWeights)
	shape := rng.Choice(src, tier.shapes)
	w, h := min(shape[0], board.Cols), min(shape[1], board.Rows)
	area := model.Area{
		Col:    src.NextInt(0, board.Cols-w),
		Row:    src.NextInt(0, board.Rows-h),
		Width:  w,
		Height: h,
	}

	anchors := PlaceBond(board, area, e.cfg.Lovers().Anchors, bond)

	wins := e.eval.EvaluateAll(board, st.bet)
	win := payline.Multiplied(wins, st.multiplier)

	st.played++
	st.remaining--
	st.win = st.win.Add(win)
	st.offer = nil

	return &model.LoversRound{
		Round:          st.played,
		Bond:           bond,
		Tier:           tier.name,
		Area:           area,
		Anchors:        anchors,
		Grid:           board,
		WinLines:       wins,
		Multiplier:     st.multiplier,
		Win:            win,
		SpinsRemaining: st.remaining,
	}, nil
}

// PlaceBond якоря в верхний левый и нижний правый угол area, затем вся area заливается символом связи
func PlaceBond(board *model.Grid, area model.Area, anchorIDs [2]string, bond string) [2]model.Placement {
	topLeft := model.Position{Col: area.Col, Row: area.Row}
	bottomRight := model.Position{Col: area.Col + area.Width - 1, Row: area.Row + area.Height - 1}

	anchors := [2]model.Placement{
		{Position: topLeft, Symbol: anchorIDs[0]},
		{Position: bottomRight, Symbol: anchorIDs[1]},
	}
	board.Set(topLeft.Col, topLeft.Row, anchorIDs[0])
	board.Set(bottomRight.Col, bottomRight.Row, anchorIDs[1])

	for c := area.Col; c < area.Col+area.Width; c++ {
		for r := area.Row; r < area.Row+area.Height; r++ {
			board.Set(c, r, bond)
		}
	}
	return anchors
}
