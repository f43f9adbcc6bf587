package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FeatureType тип бонуса
type FeatureType int

const (
	FeatureNone FeatureType = iota
	FeatureFool
	FeatureCups
	FeatureLovers
	FeaturePriestess
	FeatureDeath
)

// FeaturePriority порядок разрешения, если условия выполнены у нескольких типов сразу
var FeaturePriority = []FeatureType{
	FeatureDeath,
	FeaturePriestess,
	FeatureLovers,
	FeatureFool,
	FeatureCups,
}

func (f FeatureType) String() string {
	switch f {
	case FeatureFool:
		return "fool"
	case FeatureCups:
		return "cups"
	case FeatureLovers:
		return "lovers"
	case FeaturePriestess:
		return "priestess"
	case FeatureDeath:
		return "death"
	}
	return "none"
}

// Deferred бонус играется отдельной многораундовой серией
func (f FeatureType) Deferred() bool {
	return f == FeatureLovers || f == FeaturePriestess || f == FeatureDeath
}

// ParseFeatureType разбор из строки конфигурации или запроса
func ParseFeatureType(s string) (FeatureType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fool":
		return FeatureFool, nil
	case "cups":
		return FeatureCups, nil
	case "lovers":
		return FeatureLovers, nil
	case "priestess":
		return FeaturePriestess, nil
	case "death":
		return FeatureDeath, nil
	}
	return FeatureNone, fmt.Errorf("unknown feature %q", s)
}

// FeatureTrigger сработавший бонус. Вычисляется один раз за спин.
type FeatureTrigger struct {
	Type    FeatureType
	Count   int
	Columns []int // по возрастанию
}

// FoolOutcome результат шута
type FoolOutcome struct {
	WildCounts []int // по колонкам триггера, после обрезки
	Wilds      []Position
	Premiums   []Placement
	Multiplier int
}

// Placement символ в ячейке
type Placement struct {
	Position
	Symbol string
}

// CupsLanding попадание множителя в раунде сбора
type CupsLanding struct {
	Position
	Value   int
	Result  int  // значение ячейки после попадания
	Stacked bool // ячейка уже была занята
}

// CupsRound один раунд сбора
type CupsRound struct {
	Sampled     []Position
	Landings    []CupsLanding
	NewLandings int
	LivesLeft   int
}

// CupsOutcome результат чаш
type CupsOutcome struct {
	Initial [][]int // [col][row] после первой фазы
	Rounds  []CupsRound
	Board   [][]int // итоговая доска
	Filled  bool
	Doubled bool
	Sum     int
	Win     decimal.Decimal
}

// LoversOffer предложение трех символов связи
type LoversOffer struct {
	Round          int
	Grid           *Grid
	Candidates     []string
	SpinsRemaining int
	Multiplier     int
}

// Area прямоугольник на поле
type Area struct {
	Col    int `json:"col"`
	Row    int `json:"row"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains принадлежит ли ячейка прямоугольнику
func (a Area) Contains(col, row int) bool {
	return col >= a.Col && col < a.Col+a.Width && row >= a.Row && row < a.Row+a.Height
}

// LoversRound результат раунда влюбленных
type LoversRound struct {
	Round          int
	Bond           string
	Tier           string
	Area           Area
	Anchors        [2]Placement // верхний левый и нижний правый угол
	Grid           *Grid
	WinLines       []WinLine
	Multiplier     int
	Win            decimal.Decimal
	SpinsRemaining int
}

// PriestessRound результат раунда жрицы
type PriestessRound struct {
	Round          int
	Grid           *Grid // закрытые ячейки помечены Mystery
	Revealed       *Grid // поле, по которому считались линии
	NewMystery     []Position
	Mystery        []Position
	RevealSymbol   string
	WinLines       []WinLine
	Multiplier     int
	Win            decimal.Decimal
	SpinsRemaining int
}

// ClusterWin выплата за кластер
type ClusterWin struct {
	Symbol string
	Cells  []Position
	Size   int
	Payout decimal.Decimal
}

// DeathCascade один проход выбивания внутри раунда
type DeathCascade struct {
	Clusters       []ClusterWin
	Slashed        []Position
	ConsumedWilds  []Position
	Refills        []Placement
	NewStickyWilds []Position
	Win            decimal.Decimal
}

// DeathRound результат раунда смерти
type DeathRound struct {
	Round          int
	Cols           int
	Rows           int
	Grid           *Grid // начальное поле раунда с липкими вайлдами
	Cascades       []DeathCascade
	Final          *Grid
	StickyWilds    []Position
	Reap           int
	Expansions     int // сколько порогов пересечено в этом раунде
	Win            decimal.Decimal
	SpinsRemaining int
}

// FeatureRound результат раунда отложенного бонуса (заполнен ровно один вариант)
type FeatureRound struct {
	Type      FeatureType
	Lovers    *LoversRound
	Priestess *PriestessRound
	Death     *DeathRound

	Completed  bool
	FeatureWin decimal.Decimal // накоплено за бонус
	Balance    decimal.Decimal
}
