package env

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"tarot_slots/configs"
	"tarot_slots/internal/config"
	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	gameConfigEnvName = "GAME_CONFIG"

	paylineCount  = 25
	paylineLength = 5
	maxRowIndex   = 2
)

type symbolYAML struct {
	ID      string          `yaml:"id"`
	Tier    string          `yaml:"tier"`
	Weight  float64         `yaml:"weight"`
	Pays    map[int]float64 `yaml:"pays"`
	Feature string          `yaml:"feature"`
}

type gameYAML struct {
	MinMatch          int             `yaml:"min_match"`
	WildSubstitution  bool            `yaml:"wild_substitution"`
	TarotChance       float64         `yaml:"tarot_chance"`
	MaxWinMultiplier  int             `yaml:"max_win_multiplier"`
	TarotCountWeights map[int]float64 `yaml:"tarot_count_weights"`
	Symbols           []symbolYAML    `yaml:"symbols"`
	Paylines          [][]int         `yaml:"paylines"`
	Features          struct {
		Lovers struct {
			Anchors []string `yaml:"anchors"`
		} `yaml:"lovers"`
		Priestess struct {
			Multiplier int             `yaml:"multiplier"`
			Rounds     map[int]int     `yaml:"rounds"`
			NewCells   map[int]float64 `yaml:"new_cells"`
		} `yaml:"priestess"`
		Death struct {
			Rounds           map[int]int     `yaml:"rounds"`
			ClusterMin       int             `yaml:"cluster_min"`
			ClusterPays      map[int]float64 `yaml:"cluster_pays"`
			StickyWildChance float64         `yaml:"sticky_wild_chance"`
			ReapThresholds   []int           `yaml:"reap_thresholds"`
			MaxCols          int             `yaml:"max_cols"`
			MaxRows          int             `yaml:"max_rows"`
			MaxCascades      int             `yaml:"max_cascades"`
		} `yaml:"death"`
	} `yaml:"features"`
}

type gameConfig struct {
	symbols          *model.SymbolSet
	paylines         [][]int
	minMatch         int
	wildSubstitution bool
	tarotChance      float64
	maxWin           int
	countValues      []int
	countWeights     []float64
	lovers           config.LoversSettings
	priestess        config.PriestessSettings
	death            config.DeathSettings
}

// NewGameConfig читает файл из GAME_CONFIG, иначе встроенную конфигурацию
func NewGameConfig() (config.GameConfig, error) {
	path := os.Getenv(gameConfigEnvName)
	if len(path) == 0 {
		return NewGameConfigFromBytes(configs.Default)
	}
	return NewGameConfigFromYAML(path)
}

// NewGameConfigFromYAML конфигурация игры из файла
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}
	return NewGameConfigFromBytes(data)
}

// NewGameConfigFromBytes разбор и проверка конфигурации. Любая ошибка фатальна для запуска.
func NewGameConfigFromBytes(data []byte) (config.GameConfig, error) {
	var raw gameYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse game config: %w", err)
	}

	if err := validatePaylines(raw.Paylines); err != nil {
		return nil, err
	}
	if raw.MinMatch < 1 || raw.MinMatch > paylineLength {
		return nil, fmt.Errorf("min_match must be in [1,%d], got %d", paylineLength, raw.MinMatch)
	}
	if raw.TarotChance < 0 || raw.TarotChance > 1 {
		return nil, fmt.Errorf("tarot_chance must be in [0,1], got %v", raw.TarotChance)
	}

	symbols, err := parseSymbols(raw.Symbols)
	if err != nil {
		return nil, err
	}
	set, err := model.NewSymbolSet(symbols)
	if err != nil {
		return nil, fmt.Errorf("symbols: %w", err)
	}

	cfg := &gameConfig{
		symbols:          set,
		paylines:         raw.Paylines,
		minMatch:         raw.MinMatch,
		wildSubstitution: raw.WildSubstitution,
		tarotChance:      raw.TarotChance,
		maxWin:           raw.MaxWinMultiplier,
	}

	cfg.countValues, cfg.countWeights = sortedWeights(raw.TarotCountWeights)
	if len(cfg.countValues) == 0 {
		return nil, errors.New("tarot_count_weights must not be empty")
	}
	if err := positiveWeights("tarot_count_weights", raw.TarotCountWeights); err != nil {
		return nil, err
	}
	for _, n := range cfg.countValues {
		if n < 1 || n > paylineLength {
			return nil, fmt.Errorf("tarot column count %d out of range", n)
		}
	}

	if err := cfg.parseLovers(raw.Features.Lovers.Anchors); err != nil {
		return nil, err
	}

	p := raw.Features.Priestess
	cfg.priestess = config.PriestessSettings{Multiplier: p.Multiplier, Rounds: p.Rounds}
	cfg.priestess.NewCells, cfg.priestess.NewCellWeights = sortedWeights(p.NewCells)
	if p.Multiplier < 1 || len(p.Rounds) == 0 || len(cfg.priestess.NewCells) == 0 {
		return nil, errors.New("priestess: multiplier, rounds and new_cells are required")
	}
	if err := positiveValues("priestess.rounds", p.Rounds); err != nil {
		return nil, err
	}
	if err := positiveWeights("priestess.new_cells", p.NewCells); err != nil {
		return nil, err
	}

	if err := cfg.parseDeath(raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validatePaylines(lines [][]int) error {
	if len(lines) != paylineCount {
		return fmt.Errorf("expected %d paylines, got %d", paylineCount, len(lines))
	}
	for i, line := range lines {
		if len(line) != paylineLength {
			return fmt.Errorf("payline %d: expected %d rows, got %d", i+1, paylineLength, len(line))
		}
		for _, row := range line {
			if row < 0 || row > maxRowIndex {
				return fmt.Errorf("payline %d: row index %d out of [0,%d]", i+1, row, maxRowIndex)
			}
		}
	}
	return nil
}

func parseSymbols(raw []symbolYAML) ([]model.Symbol, error) {
	if len(raw) == 0 {
		return nil, errors.New("no symbols configured")
	}
	symbols := make([]model.Symbol, 0, len(raw))
	for _, s := range raw {
		tier, err := model.ParseTier(s.Tier)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", s.ID, err)
		}
		sym := model.Symbol{
			ID:     s.ID,
			Tier:   tier,
			Weight: s.Weight,
			Pays:   make(map[int]decimal.Decimal, len(s.Pays)),
		}
		for count, pay := range s.Pays {
			if count < 1 || count > paylineLength || pay < 0 {
				return nil, fmt.Errorf("symbol %q: invalid pay entry %d:%v", s.ID, count, pay)
			}
			sym.Pays[count] = decimal.NewFromFloat(pay)
		}
		if tier == model.TierTarot {
			ft, err := model.ParseFeatureType(s.Feature)
			if err != nil {
				return nil, fmt.Errorf("tarot symbol %q: %w", s.ID, err)
			}
			sym.Feature = ft
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

func (c *gameConfig) parseLovers(anchors []string) error {
	if len(anchors) != 2 || anchors[0] == anchors[1] {
		return errors.New("lovers.anchors must name two distinct symbols")
	}
	for _, id := range anchors {
		sym, ok := c.symbols.Get(id)
		if !ok {
			return fmt.Errorf("lovers anchor %q is not a configured symbol", id)
		}
		if sym.Tier != model.TierPremium && sym.Tier != model.TierLow {
			return fmt.Errorf("lovers anchor %q must be a premium or low symbol", id)
		}
	}
	c.lovers = config.LoversSettings{Anchors: [2]string{anchors[0], anchors[1]}}
	return nil
}

func (c *gameConfig) parseDeath(raw gameYAML) error {
	d := raw.Features.Death
	if len(d.Rounds) == 0 {
		return errors.New("death.rounds must not be empty")
	}
	if err := positiveValues("death.rounds", d.Rounds); err != nil {
		return err
	}
	if d.ClusterMin < 2 {
		return fmt.Errorf("death.cluster_min must be at least 2, got %d", d.ClusterMin)
	}
	if len(d.ClusterPays) == 0 {
		return errors.New("death.cluster_pays must not be empty")
	}
	if d.StickyWildChance < 0 || d.StickyWildChance >= 1 {
		return fmt.Errorf("death.sticky_wild_chance must be in [0,1), got %v", d.StickyWildChance)
	}
	for i := 1; i < len(d.ReapThresholds); i++ {
		if d.ReapThresholds[i] <= d.ReapThresholds[i-1] {
			return errors.New("death.reap_thresholds must be strictly increasing")
		}
	}
	if d.MaxCols < model.DefaultCols || d.MaxRows < model.DefaultRows {
		return fmt.Errorf("death grid limit %dx%d is smaller than the base grid", d.MaxCols, d.MaxRows)
	}
	if d.MaxCascades < 1 {
		return errors.New("death.max_cascades must be positive")
	}

	pays := make(map[int]decimal.Decimal, len(d.ClusterPays))
	for size, pay := range d.ClusterPays {
		if size < d.ClusterMin || pay < 0 {
			return fmt.Errorf("death.cluster_pays: invalid entry %d:%v", size, pay)
		}
		pays[size] = decimal.NewFromFloat(pay)
	}

	c.death = config.DeathSettings{
		Rounds:           d.Rounds,
		ClusterMin:       d.ClusterMin,
		ClusterPays:      pays,
		StickyWildChance: d.StickyWildChance,
		ReapThresholds:   d.ReapThresholds,
		MaxCols:          d.MaxCols,
		MaxRows:          d.MaxRows,
		MaxCascades:      d.MaxCascades,
	}
	return nil
}

func positiveValues(name string, table map[int]int) error {
	for k, v := range table {
		if k < 1 || v < 1 {
			return fmt.Errorf("%s: invalid entry %d:%d", name, k, v)
		}
	}
	return nil
}

// positiveWeights вес ноль или меньше ломает выборку
func positiveWeights(name string, table map[int]float64) error {
	for k, w := range table {
		if k < 1 || !(w > 0) {
			return fmt.Errorf("%s: weight for %d must be positive, got %v", name, k, w)
		}
	}
	return nil
}

// sortedWeights map значение->вес в параллельные срезы по возрастанию значения
func sortedWeights(table map[int]float64) ([]int, []float64) {
	values := make([]int, 0, len(table))
	for v := range table {
		values = append(values, v)
	}
	sort.Ints(values)
	weights := make([]float64, len(values))
	for i, v := range values {
		weights[i] = table[v]
	}
	return values, weights
}

func (c *gameConfig) Symbols() *model.SymbolSet {
	return c.symbols
}

func (c *gameConfig) Paylines() [][]int {
	return c.paylines
}

func (c *gameConfig) MinMatch() int {
	return c.minMatch
}

func (c *gameConfig) WildSubstitution() bool {
	return c.wildSubstitution
}

func (c *gameConfig) TarotChance() float64 {
	return c.tarotChance
}

func (c *gameConfig) TarotCountWeights() ([]int, []float64) {
	return c.countValues, c.countWeights
}

func (c *gameConfig) MaxWinMultiplier() int {
	return c.maxWin
}

func (c *gameConfig) Lovers() config.LoversSettings {
	return c.lovers
}

func (c *gameConfig) Priestess() config.PriestessSettings {
	return c.priestess
}

func (c *gameConfig) Death() config.DeathSettings {
	return c.death
}
