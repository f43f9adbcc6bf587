package feature

import (
	"math"

	"tarot_slots/internal/model"
	"tarot_slots/pkg/rng"

	"github.com/shopspring/decimal"
)

const (
	cupsLives        = 3
	cupsSamplesRound = 5
	cupsLandChance   = 0.5

	// cupsCellLimit защита от переполнения int: остается запас на удвоение и сумму 15 ячеек
	cupsCellLimit = math.MaxInt / 64
)

var (
	cupsSmallValues   = []int{2, 3}
	cupsBigValues     = []int{3, 5, 10}
	cupsLandingValues = []int{2, 3, 5, 10}
)

// Cups две фазы чаш: стартовые множители на колонках триггера и цикл сбора по всему полю.
// Выигрыш = bet * сумма значений доски, линии в нем не участвуют.
func (e *Engine) Cups(src *rng.Source, board *model.Grid, trigger model.FeatureTrigger, bet decimal.Decimal) *model.CupsOutcome {
	values := make([][]int, board.Cols)
	for c := range values {
		values[c] = make([]int, board.Rows)
	}

	// Фаза 1
	seedValues := cupsSmallValues
	if trigger.Count >= 3 {
		seedValues = cupsBigValues
	}
	for _, col := range trigger.Columns {
		var n int
		if trigger.Count >= 3 {
			n = src.NextInt(2, 3)
		} else {
			n = src.NextInt(1, 2)
		}
		rows := make([]int, board.Rows)
		for r := range rows {
			rows[r] = r
		}
		rng.Shuffle(src, rows)
		for _, r := range rows[:min(n, board.Rows)] {
			values[col][r] = rng.Choice(src, seedValues)
		}
	}

	out := &model.CupsOutcome{Initial: copyBoard(values)}

	positions := make([]model.Position, 0, board.Cols*board.Rows)
	for c := 0; c < board.Cols; c++ {
		for r := 0; r < board.Rows; r++ {
			positions = append(positions, model.Position{Col: c, Row: r})
		}
	}

	// Фаза 2
	lives := cupsLives
	for lives > 0 && !boardFull(values) {
		rng.Shuffle(src, positions)
		sampled := append([]model.Position(nil), positions[:min(cupsSamplesRound, len(positions))]...)

		round := model.CupsRound{Sampled: sampled}
		for _, p := range sampled {
			if src.NextFloat() >= cupsLandChance {
				continue
			}
			v := rng.Choice(src, cupsLandingValues)
			landing := model.CupsLanding{Position: p, Value: v}
			if cur := values[p.Col][p.Row]; cur > 0 {
				values[p.Col][p.Row] = StackCup(cur, v)
				landing.Stacked = true
			} else {
				values[p.Col][p.Row] = v
				round.NewLandings++
			}
			landing.Result = values[p.Col][p.Row]
			round.Landings = append(round.Landings, landing)
		}

		if round.NewLandings == 0 {
			lives--
		}
		round.LivesLeft = lives
		out.Rounds = append(out.Rounds, round)
	}

	if boardFull(values) {
		out.Filled = true
		out.Doubled = true
		for c := range values {
			for r := range values[c] {
				values[c][r] *= 2
			}
		}
	}

	for c := range values {
		for r := range values[c] {
			out.Sum += values[c][r]
		}
	}
	out.Board = values
	out.Win = bet.Mul(decimal.NewFromInt(int64(out.Sum)))
	return out
}

// StackCup значение ячейки после попадания множителя v в занятую ячейку
func StackCup(cur, v int) int {
	if cur > cupsCellLimit/v {
		return cupsCellLimit
	}
	return cur * v
}

func boardFull(values [][]int) bool {
	for c := range values {
		for r := range values[c] {
			if values[c][r] == 0 {
				return false
			}
		}
	}
	return true
}

func copyBoard(values [][]int) [][]int {
	out := make([][]int, len(values))
	for c := range values {
		out[c] = append([]int(nil), values[c]...)
	}
	return out
}
