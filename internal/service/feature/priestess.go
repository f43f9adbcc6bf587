package feature

import (
	"tarot_slots/internal/model"
	"tarot_slots/internal/service/payline"
	"tarot_slots/pkg/rng"

	"github.com/shopspring/decimal"
)

// PriestessState закрытые ячейки накапливаются до конца бонуса
type PriestessState struct {
	base
	multiplier int
	mystery    []model.Position
}

func (s *PriestessState) Type() model.FeatureType {
	return model.FeaturePriestess
}

// Mystery закрытые ячейки на текущий момент
func (s *PriestessState) Mystery() []model.Position {
	return append([]model.Position(nil), s.mystery...)
}

func (e *Engine) StartPriestess(trigger model.FeatureTrigger, bet decimal.Decimal) *PriestessState {
	settings := e.cfg.Priestess()
	return &PriestessState{
		base:       base{trigger: trigger, bet: bet, remaining: settings.RoundsFor(trigger.Count), win: decimal.Zero},
		multiplier: settings.Multiplier,
	}
}

// PlayPriestessRound новое поле, 1-3 новые закрытые ячейки и общий символ открытия для всех закрытых
func (e *Engine) PlayPriestessRound(src *rng.Source, st *PriestessState) (*model.PriestessRound, error) {
	if st.remaining <= 0 {
		return nil, ErrFeatureFinished
	}
	settings := e.cfg.Priestess()

	board := e.gen.Fill(src, model.DefaultCols, model.DefaultRows)

	covered := make(map[model.Position]bool, len(st.mystery))
	for _, p := range st.mystery {
		covered[p] = true
	}
	free := make([]model.Position, 0, board.Cols*board.Rows)
	for c := 0; c < board.Cols; c++ {
		for r := 0; r < board.Rows; r++ {
			if p := (model.Position{Col: c, Row: r}); !covered[p] {
				free = append(free, p)
			}
		}
	}

	n := rng.WeightedChoice(src, settings.NewCells, settings.NewCellWeights)
	rng.Shuffle(src, free)
	added := append([]model.Position(nil), free[:min(n, len(free))]...)
	st.mystery = append(st.mystery, added...)

	reveal := rng.WeightedChoice(src, e.regular.IDs, e.regular.Weights)

	revealed := board.Clone()
	for _, p := range st.mystery {
		cell := board.Cell(p.Col, p.Row)
		cell.Mystery = true
		board.SetCell(p.Col, p.Row, cell)
		revealed.Set(p.Col, p.Row, reveal)
	}

	wins := e.eval.EvaluateAll(revealed, st.bet)
	win := payline.Multiplied(wins, st.multiplier)

	st.played++
	st.remaining--
	st.win = st.win.Add(win)

	return &model.PriestessRound{
		Round:          st.played,
		Grid:           board,
		Revealed:       revealed,
		NewMystery:     added,
		Mystery:        st.Mystery(),
		RevealSymbol:   reveal,
		WinLines:       wins,
		Multiplier:     st.multiplier,
		Win:            win,
		SpinsRemaining: st.remaining,
	}, nil
}
