package payline

import (
	"testing"

	"tarot_slots/configs"
	"tarot_slots/internal/config"
	"tarot_slots/internal/config/env"
	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func loadConfig(t *testing.T) config.GameConfig {
	t.Helper()
	cfg, err := env.NewGameConfigFromBytes(configs.Default)
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	return cfg
}

// boardWithRow поле, где средний ряд задан, а остальные ряды не дают выигрышей
func boardWithRow(middle []string) *model.Grid {
	filler := [][]string{
		{"CHERRY", "BELL", "PLUM", "ORANGE", "LEMON"},
		{"SUN", "MOON", "STAR", "SUN", "MOON"},
	}
	g := model.NewGrid(5, 3)
	for c := 0; c < 5; c++ {
		g.Set(c, 0, filler[0][c])
		g.Set(c, 1, middle[c])
		g.Set(c, 2, filler[1][c])
	}
	return g
}

func TestEvaluatePaylineMiddleRow(t *testing.T) {
	cfg := loadConfig(t)
	e := NewEvaluator(cfg.Symbols(), cfg.Paylines(), cfg.MinMatch(), true, nil)
	bet := decimal.RequireFromString("0.20")

	tests := []struct {
		name   string
		row    []string
		win    bool
		symbol string
		count  int
		payout string
	}{
		{
			name:   "cherry with wild in run",
			row:    []string{"CHERRY", "CHERRY", "CHERRY", "WILD", "CHERRY"},
			win:    true,
			symbol: "CHERRY",
			count:  5,
			payout: "0.40",
		},
		{
			name:   "leading wilds report first real symbol",
			row:    []string{"WILD", "WILD", "BELL", "BELL", "PLUM"},
			win:    true,
			symbol: "BELL",
			count:  4,
			payout: "0.064",
		},
		{
			name:   "all wild pays wild",
			row:    []string{"WILD", "WILD", "WILD", "WILD", "WILD"},
			win:    true,
			symbol: "WILD",
			count:  5,
			payout: "2",
		},
		{
			name: "tarot base never pays",
			row:  []string{"WILD", "WILD", "WILD", "T_FOOL", "T_FOOL"},
		},
		{
			name: "two in a row",
			row:  []string{"PLUM", "PLUM", "LEMON", "PLUM", "PLUM"},
		},
		{
			name: "broken at second reel",
			row:  []string{"CHERRY", "BELL", "CHERRY", "CHERRY", "CHERRY"},
		},
		{
			name: "empty first cell",
			row:  []string{model.Empty, "CHERRY", "CHERRY", "CHERRY", "CHERRY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, ok := e.EvaluatePayline(boardWithRow(tt.row), 0, bet)
			if ok != tt.win {
				t.Fatalf("win = %v, want %v (%+v)", ok, tt.win, win)
			}
			if !tt.win {
				return
			}
			if win.Symbol != tt.symbol || win.Count != tt.count {
				t.Errorf("got %s x%d, want %s x%d", win.Symbol, win.Count, tt.symbol, tt.count)
			}
			if !win.Payout.Equal(decimal.RequireFromString(tt.payout)) {
				t.Errorf("payout = %s, want %s", win.Payout, tt.payout)
			}
			if win.Line != 1 || len(win.Cells) != tt.count {
				t.Errorf("line %d with %d cells", win.Line, len(win.Cells))
			}
			for c, pos := range win.Cells {
				if pos.Col != c || pos.Row != 1 {
					t.Errorf("cell %d = %+v", c, pos)
				}
			}
		})
	}
}

func TestEvaluatePaylineWithoutSubstitution(t *testing.T) {
	cfg := loadConfig(t)
	e := NewEvaluator(cfg.Symbols(), cfg.Paylines(), cfg.MinMatch(), false, nil)
	bet := decimal.RequireFromString("0.20")

	if _, ok := e.EvaluatePayline(boardWithRow([]string{"WILD", "CHERRY", "CHERRY", "CHERRY", "CHERRY"}), 0, bet); ok {
		t.Fatal("wild must not substitute when substitution is off")
	}
	win, ok := e.EvaluatePayline(boardWithRow([]string{"CHERRY", "CHERRY", "CHERRY", "WILD", "CHERRY"}), 0, bet)
	if !ok || win.Count != 3 {
		t.Fatalf("expected CHERRY x3, got %+v (ok=%v)", win, ok)
	}
}

func TestEvaluateAllUniformBoard(t *testing.T) {
	cfg := loadConfig(t)
	e := NewEvaluator(cfg.Symbols(), cfg.Paylines(), cfg.MinMatch(), true, nil)
	bet := decimal.NewFromInt(1)

	g := model.NewGrid(5, 3)
	for c := 0; c < 5; c++ {
		for r := 0; r < 3; r++ {
			g.Set(c, r, "LEMON")
		}
	}

	wins := e.EvaluateAll(g, bet)
	if len(wins) != 25 {
		t.Fatalf("got %d winning lines, want 25", len(wins))
	}
	// LEMON x5 = 15 на линию, 25 линий по 1/25 ставки
	if got := Total(wins); !got.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("total = %s, want 15", got)
	}
	if got := Multiplied(wins, 3); !got.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("multiplied = %s, want 45", got)
	}
}

func TestEvaluatePaylineMissingPayEntry(t *testing.T) {
	symbols := []model.Symbol{
		{ID: "WILD", Tier: model.TierWild, Weight: 1, Pays: map[int]decimal.Decimal{}},
		{ID: "ODD", Tier: model.TierLow, Weight: 1, Pays: map[int]decimal.Decimal{5: decimal.NewFromInt(10)}},
	}
	for _, ft := range model.FeaturePriority {
		symbols = append(symbols, model.Symbol{ID: "T_" + ft.String(), Tier: model.TierTarot, Weight: 1, Feature: ft})
	}
	set, err := model.NewSymbolSet(symbols)
	if err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	lines := [][]int{{0, 0, 0, 0, 0}}
	e := NewEvaluator(set, lines, 3, true, zap.New(core))

	g := model.NewGrid(5, 1)
	for c, sym := range []string{"ODD", "ODD", "ODD", "WILD", "T_fool"} {
		g.Set(c, 0, sym)
	}

	if _, ok := e.EvaluatePayline(g, 0, decimal.NewFromInt(1)); ok {
		t.Fatal("missing pay entry must not produce a win")
	}
	if logs.FilterMessage("missing pay table entry").Len() != 1 {
		t.Fatalf("expected one warning, got %v", logs.All())
	}
}

func TestApplyMaxPayout(t *testing.T) {
	bet := decimal.RequireFromString("0.20")
	tests := []struct {
		name   string
		amount string
		mult   int
		want   string
	}{
		{name: "below cap", amount: "10", mult: 100, want: "10"},
		{name: "capped", amount: "50", mult: 100, want: "20"},
		{name: "disabled", amount: "5000", mult: 0, want: "5000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyMaxPayout(decimal.RequireFromString(tt.amount), bet, tt.mult)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}
