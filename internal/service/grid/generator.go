package grid

import (
	"errors"
	"fmt"
	"sort"

	"tarot_slots/internal/model"
	"tarot_slots/pkg/rng"
)

var ErrInvalidColumns = errors.New("invalid tarot columns")

// Generator генерация игрового поля
type Generator struct {
	symbols      *model.SymbolSet
	base         model.Pool
	tarots       model.Pool
	countValues  []int
	countWeights []float64
}

// NewGenerator генератор по набору символов и весам количества таро-колонок
func NewGenerator(symbols *model.SymbolSet, countValues []int, countWeights []float64) *Generator {
	return &Generator{
		symbols:      symbols,
		base:         symbols.BasePool(),
		tarots:       symbols.TarotPool(),
		countValues:  countValues,
		countWeights: countWeights,
	}
}

// Symbols набор символов генератора
func (g *Generator) Symbols() *model.SymbolSet {
	return g.symbols
}

// GenerateSpin новое поле cols x rows. Порядок обращений к генератору:
// шанс таро, количество, перемешивание колонок, символ на каждую колонку, затем ячейки по колонкам.
func (g *Generator) GenerateSpin(src *rng.Source, cols, rows int, tarotChance float64) (*model.Grid, []model.TarotColumn) {
	var tarots []model.TarotColumn

	if src.NextFloat() < tarotChance && g.tarots.Len() > 0 {
		n := rng.WeightedChoice(src, g.countValues, g.countWeights)
		n = min(n, cols)

		indexes := make([]int, cols)
		for i := range indexes {
			indexes[i] = i
		}
		rng.Shuffle(src, indexes)
		chosen := indexes[:n]
		sort.Ints(chosen)

		for _, col := range chosen {
			id := rng.WeightedChoice(src, g.tarots.IDs, g.tarots.Weights)
			sym, _ := g.symbols.Get(id)
			tarots = append(tarots, model.TarotColumn{Column: col, Symbol: id, Type: sym.Feature})
		}
	}

	return g.fill(src, cols, rows, tarots), tarots
}

// GenerateSpinWithTarots поле с заданным таро на заданных колонках, без розыгрыша шанса
func (g *Generator) GenerateSpinWithTarots(src *rng.Source, ft model.FeatureType, columns []int, cols, rows int) (*model.Grid, []model.TarotColumn, error) {
	id, ok := g.symbols.Tarot(ft)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no tarot symbol for feature %s", ErrInvalidColumns, ft)
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("%w: empty column list", ErrInvalidColumns)
	}

	sorted := append([]int(nil), columns...)
	sort.Ints(sorted)
	tarots := make([]model.TarotColumn, 0, len(sorted))
	for i, col := range sorted {
		if col < 0 || col >= cols {
			return nil, nil, fmt.Errorf("%w: column %d out of [0,%d)", ErrInvalidColumns, col, cols)
		}
		if i > 0 && sorted[i-1] == col {
			return nil, nil, fmt.Errorf("%w: duplicate column %d", ErrInvalidColumns, col)
		}
		tarots = append(tarots, model.TarotColumn{Column: col, Symbol: id, Type: ft})
	}

	return g.fill(src, cols, rows, tarots), tarots, nil
}

// Fill поле без таро из обычного пула
func (g *Generator) Fill(src *rng.Source, cols, rows int) *model.Grid {
	return g.fill(src, cols, rows, nil)
}

// DrawBase один символ из обычного пула
func (g *Generator) DrawBase(src *rng.Source) string {
	return rng.WeightedChoice(src, g.base.IDs, g.base.Weights)
}

func (g *Generator) fill(src *rng.Source, cols, rows int, tarots []model.TarotColumn) *model.Grid {
	tarotAt := make(map[int]string, len(tarots))
	for _, t := range tarots {
		tarotAt[t.Column] = t.Symbol
	}

	board := model.NewGrid(cols, rows)
	for c := 0; c < cols; c++ {
		if id, ok := tarotAt[c]; ok {
			for r := 0; r < rows; r++ {
				board.Set(c, r, id)
			}
			continue
		}
		for r := 0; r < rows; r++ {
			board.Set(c, r, g.DrawBase(src))
		}
	}
	return board
}
