package model

import "fmt"

const (
	// Стандартное поле 5x3
	DefaultCols = 5
	DefaultRows = 3
)

// Empty пустая ячейка (после выбивания кластера)
const Empty = ""

// Position координата ячейки
type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Cell ячейка поля
type Cell struct {
	Col     int
	Row     int
	Symbol  string
	Locked  bool // липкий вайлд
	Mystery bool // закрытая ячейка жрицы
}

// Grid прямоугольное поле, Cells[col][row]
type Grid struct {
	Cols  int
	Rows  int
	Cells [][]Cell
}

// NewGrid пустое поле cols x rows
func NewGrid(cols, rows int) *Grid {
	g := &Grid{Cols: cols, Rows: rows, Cells: make([][]Cell, cols)}
	for c := 0; c < cols; c++ {
		g.Cells[c] = make([]Cell, rows)
		for r := 0; r < rows; r++ {
			g.Cells[c][r] = Cell{Col: c, Row: r}
		}
	}
	return g
}

// In внутри ли поля координата
func (g *Grid) In(col, row int) bool {
	return col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
}

// At символ ячейки
func (g *Grid) At(col, row int) string {
	return g.Cells[col][row].Symbol
}

// Cell ячейка целиком
func (g *Grid) Cell(col, row int) Cell {
	return g.Cells[col][row]
}

// Set ставит символ и сбрасывает флаги ячейки
func (g *Grid) Set(col, row int, symbol string) {
	g.Cells[col][row] = Cell{Col: col, Row: row, Symbol: symbol}
}

// SetCell ставит ячейку целиком (координаты берутся из аргументов)
func (g *Grid) SetCell(col, row int, cell Cell) {
	cell.Col, cell.Row = col, row
	g.Cells[col][row] = cell
}

// Clone глубокая копия
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := &Grid{Cols: g.Cols, Rows: g.Rows, Cells: make([][]Cell, g.Cols)}
	for c := range g.Cells {
		out.Cells[c] = make([]Cell, len(g.Cells[c]))
		copy(out.Cells[c], g.Cells[c])
	}
	return out
}

// Symbols матрица символов [col][row]
func (g *Grid) Symbols() [][]string {
	out := make([][]string, g.Cols)
	for c := 0; c < g.Cols; c++ {
		out[c] = make([]string, g.Rows)
		for r := 0; r < g.Rows; r++ {
			out[c][r] = g.Cells[c][r].Symbol
		}
	}
	return out
}

// Count сколько ячеек с символом
func (g *Grid) Count(symbol string) int {
	n := 0
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			if g.Cells[c][r].Symbol == symbol {
				n++
			}
		}
	}
	return n
}

// Validate размеры совпадают с заявленными, все символы известны набору
func (g *Grid) Validate(set *SymbolSet) error {
	if len(g.Cells) != g.Cols {
		return fmt.Errorf("grid has %d columns, declared %d", len(g.Cells), g.Cols)
	}
	for c, col := range g.Cells {
		if len(col) != g.Rows {
			return fmt.Errorf("grid column %d has %d rows, declared %d", c, len(col), g.Rows)
		}
		for r, cell := range col {
			if cell.Symbol == Empty {
				continue
			}
			if set != nil && !set.Has(cell.Symbol) {
				return fmt.Errorf("cell (%d,%d): unknown symbol %q", c, r, cell.Symbol)
			}
		}
	}
	return nil
}

// TarotColumn колонка целиком занятая символом таро
type TarotColumn struct {
	Column int
	Symbol string
	Type   FeatureType
}
