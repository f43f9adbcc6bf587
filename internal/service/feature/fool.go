package feature

import (
	"tarot_slots/internal/model"
	"tarot_slots/pkg/rng"
)

const (
	// Максимум вайлдов шута за спин
	foolWildCap = 9

	foolMultiplierSmall = 3
	foolMultiplierBig   = 5
)

var (
	foolWildValues  = []int{1, 2, 3}
	foolWildWeights = []float64{20, 40, 40}
)

// Fool заменяет таро-колонки триггера вайлдами и премиум-символами. Поле меняется на месте.
func (e *Engine) Fool(src *rng.Source, board *model.Grid, trigger model.FeatureTrigger) *model.FoolOutcome {
	counts := make([]int, len(trigger.Columns))
	for i := range counts {
		if trigger.Count == 2 {
			counts[i] = src.NextInt(1, 3)
		} else {
			counts[i] = rng.WeightedChoice(src, foolWildValues, foolWildWeights)
		}
	}
	counts = TrimWildCounts(counts, foolWildCap)

	out := &model.FoolOutcome{
		WildCounts: counts,
		Multiplier: foolMultiplierSmall,
	}
	if trigger.Count >= 3 {
		out.Multiplier = foolMultiplierBig
	}

	wild := e.symbols.Wild()
	for i, col := range trigger.Columns {
		rows := make([]int, board.Rows)
		for r := range rows {
			rows[r] = r
		}
		rng.Shuffle(src, rows)

		n := min(counts[i], board.Rows)
		isWild := make([]bool, board.Rows)
		for _, r := range rows[:n] {
			isWild[r] = true
		}

		for r := 0; r < board.Rows; r++ {
			if isWild[r] {
				board.Set(col, r, wild)
				out.Wilds = append(out.Wilds, model.Position{Col: col, Row: r})
				continue
			}
			sym := rng.WeightedChoice(src, e.premium.IDs, e.premium.Weights)
			board.Set(col, r, sym)
			out.Premiums = append(out.Premiums, model.Placement{Position: model.Position{Col: col, Row: r}, Symbol: sym})
		}
	}
	return out
}

// TrimWildCounts срезает сумму до limit, начиная с последней колонки, не опуская колонку ниже 1
func TrimWildCounts(counts []int, limit int) []int {
	total := 0
	for _, c := range counts {
		total += c
	}
	for i := len(counts) - 1; i >= 0 && total > limit; i-- {
		if counts[i] <= 1 {
			continue
		}
		cut := min(counts[i]-1, total-limit)
		counts[i] -= cut
		total -= cut
	}
	return counts
}
