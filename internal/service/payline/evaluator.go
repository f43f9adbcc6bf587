package payline

import (
	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Evaluator подсчет выигрышных линий
type Evaluator struct {
	symbols          *model.SymbolSet
	paylines         [][]int
	minMatch         int
	wildSubstitution bool
	logger           *zap.Logger
}

// NewEvaluator paylines должны быть уже проверены при загрузке конфигурации
func NewEvaluator(symbols *model.SymbolSet, paylines [][]int, minMatch int, wildSubstitution bool, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		symbols:          symbols,
		paylines:         paylines,
		minMatch:         minMatch,
		wildSubstitution: wildSubstitution,
		logger:           logger,
	}
}

// Lines количество линий
func (e *Evaluator) Lines() int {
	return len(e.paylines)
}

// EvaluateAll все линии поля. Ставка на линию = bet / количество линий.
func (e *Evaluator) EvaluateAll(board *model.Grid, bet decimal.Decimal) []model.WinLine {
	var wins []model.WinLine
	for i := range e.paylines {
		if win, ok := e.EvaluatePayline(board, i, bet); ok {
			wins = append(wins, win)
		}
	}
	return wins
}

// EvaluatePayline одна линия по индексу (с 0)
func (e *Evaluator) EvaluatePayline(board *model.Grid, index int, bet decimal.Decimal) (model.WinLine, bool) {
	line := e.paylines[index]
	reels := min(len(line), board.Cols)
	if reels == 0 {
		return model.WinLine{}, false
	}

	original := make([]string, reels)
	for c := 0; c < reels; c++ {
		row := line[c]
		if row < 0 || row >= board.Rows {
			return model.WinLine{}, false
		}
		original[c] = board.At(c, row)
	}

	// Замена вайлдов на первый обычный символ линии
	symbols := append([]string(nil), original...)
	if e.wildSubstitution {
		base := model.Empty
		for _, sym := range symbols {
			if sym != model.Empty && !e.symbols.IsWild(sym) {
				base = sym
				break
			}
		}
		if base != model.Empty {
			for i, sym := range symbols {
				if e.symbols.IsWild(sym) {
					symbols[i] = base
				}
			}
		}
	}

	first := symbols[0]
	if first == model.Empty {
		return model.WinLine{}, false
	}
	count := 1
	for count < reels && symbols[count] == first {
		count++
	}
	if count < e.minMatch {
		return model.WinLine{}, false
	}

	// Выигрышный символ - первый не вайлд в совпавшей серии
	winner := first
	for _, sym := range original[:count] {
		if !e.symbols.IsWild(sym) {
			winner = sym
			break
		}
	}

	sym, ok := e.symbols.Get(winner)
	if !ok {
		e.logger.Warn("unknown symbol on payline", zap.Int("line", index+1), zap.String("symbol", winner))
		return model.WinLine{}, false
	}
	if sym.IsTarot() {
		return model.WinLine{}, false
	}
	pay, ok := sym.Pays[count]
	if !ok {
		e.logger.Warn("missing pay table entry",
			zap.Int("line", index+1),
			zap.String("symbol", winner),
			zap.Int("count", count),
		)
		return model.WinLine{}, false
	}
	if !pay.IsPositive() {
		return model.WinLine{}, false
	}

	cells := make([]model.Position, count)
	for c := 0; c < count; c++ {
		cells[c] = model.Position{Col: c, Row: line[c]}
	}

	return model.WinLine{
		Line:   index + 1,
		Symbol: winner,
		Count:  count,
		Payout: pay.Mul(bet).Div(decimal.NewFromInt(int64(len(e.paylines)))),
		Cells:  cells,
	}, true
}

// Total сумма выплат по линиям
func Total(wins []model.WinLine) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wins {
		total = total.Add(w.Payout)
	}
	return total
}

// Multiplied сумма линий с множителем бонуса. Сами линии остаются без множителя.
func Multiplied(wins []model.WinLine, multiplier int) decimal.Decimal {
	return Total(wins).Mul(decimal.NewFromInt(int64(multiplier)))
}

// ApplyMaxPayout ограничение выигрыша кратностью ставки. 0 отключает лимит.
func ApplyMaxPayout(amount, bet decimal.Decimal, maxMult int) decimal.Decimal {
	if maxMult <= 0 {
		return amount
	}
	maxPay := bet.Mul(decimal.NewFromInt(int64(maxMult)))
	if amount.GreaterThan(maxPay) {
		return maxPay
	}
	return amount
}
