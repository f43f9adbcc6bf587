package feature

import (
	"testing"

	"tarot_slots/internal/config"
	"tarot_slots/internal/model"
	"tarot_slots/pkg/rng"

	"github.com/shopspring/decimal"
)

func gridFrom(rows ...[]string) *model.Grid {
	g := model.NewGrid(len(rows[0]), len(rows))
	for r, row := range rows {
		for c, sym := range row {
			g.Set(c, r, sym)
		}
	}
	return g
}

func TestFindClusters(t *testing.T) {
	isWild := func(s string) bool { return s == "WILD" }

	tests := []struct {
		name  string
		board *model.Grid
		sizes map[string]int
	}{
		{
			name: "line of five",
			board: gridFrom(
				[]string{"SUN", "SUN", "SUN", "SUN", "SUN"},
				[]string{"BELL", "PLUM", "BELL", "PLUM", "BELL"},
				[]string{"PLUM", "BELL", "PLUM", "BELL", "PLUM"},
			),
			sizes: map[string]int{"SUN": 5},
		},
		{
			name: "wild bridges two groups",
			board: gridFrom(
				[]string{"SUN", "SUN", "WILD", "SUN", "SUN"},
				[]string{"BELL", "PLUM", "BELL", "PLUM", "BELL"},
				[]string{"PLUM", "BELL", "PLUM", "BELL", "PLUM"},
			),
			sizes: map[string]int{"SUN": 5},
		},
		{
			name: "wild joins different symbols",
			board: gridFrom(
				[]string{"SUN", "SUN", "SUN", "MOON", "MOON"},
				[]string{"SUN", "BELL", "WILD", "MOON", "MOON"},
				[]string{"PLUM", "BELL", "PLUM", "BELL", "PLUM"},
			),
			sizes: map[string]int{"SUN": 5, "MOON": 5},
		},
		{
			name: "diagonal does not connect",
			board: gridFrom(
				[]string{"SUN", "BELL", "SUN", "BELL", "SUN"},
				[]string{"BELL", "SUN", "BELL", "SUN", "BELL"},
				[]string{"SUN", "BELL", "SUN", "BELL", "SUN"},
			),
			sizes: map[string]int{},
		},
		{
			name: "empty cells are skipped",
			board: gridFrom(
				[]string{"", "", "", "", ""},
				[]string{"", "", "", "", ""},
				[]string{"WILD", "WILD", "WILD", "WILD", "WILD"},
			),
			sizes: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clusters := FindClusters(tt.board, 5, isWild)
			if len(clusters) != len(tt.sizes) {
				t.Fatalf("got %d clusters: %+v", len(clusters), clusters)
			}
			for _, cl := range clusters {
				if tt.sizes[cl.Symbol] != cl.Size || len(cl.Cells) != cl.Size {
					t.Fatalf("cluster %s size %d, want %d", cl.Symbol, cl.Size, tt.sizes[cl.Symbol])
				}
			}
		})
	}
}

func TestDeathGrowth(t *testing.T) {
	settings := config.DeathSettings{ReapThresholds: []int{3, 6, 10, 15}, MaxCols: 6, MaxRows: 4}
	e := &Engine{}
	st := &DeathState{cols: 5, rows: 3, growCol: true, sticky: map[model.Position]bool{}}

	for i := 0; i < 6; i++ {
		e.addReap(st, settings)
	}
	if st.reached != 2 || st.pending != 2 || st.remaining != 2 {
		t.Fatalf("reap 6: reached=%d pending=%d remaining=%d", st.reached, st.pending, st.remaining)
	}

	want := [][2]int{{6, 3}, {6, 4}, {6, 4}}
	for i, size := range want {
		e.grow(st, settings)
		if st.cols != size[0] || st.rows != size[1] {
			t.Fatalf("growth %d: %dx%d, want %dx%d", i+1, st.cols, st.rows, size[0], size[1])
		}
	}
}

func TestDeathGrowthFallsBackToRows(t *testing.T) {
	settings := config.DeathSettings{MaxCols: 5, MaxRows: 6}
	st := &DeathState{cols: 5, rows: 3, growCol: true}
	e := &Engine{}

	e.grow(st, settings)
	e.grow(st, settings)
	if st.cols != 5 || st.rows != 5 {
		t.Fatalf("got %dx%d, want 5x5", st.cols, st.rows)
	}
}

func TestDeathRounds(t *testing.T) {
	e, cfg := newTestEngine(t)
	settings := cfg.Death()
	bet := decimal.RequireFromString("0.20")

	for seed := uint32(1); seed <= 40; seed++ {
		src := rng.New(seed)
		st := e.StartDeath(model.FeatureTrigger{Type: model.FeatureDeath, Count: 2}, bet)
		if st.Remaining() != settings.RoundsFor(2) {
			t.Fatalf("start with %d rounds", st.Remaining())
		}

		total := decimal.Zero
		lastReap := 0
		var sticky []model.Position
		for st.Remaining() > 0 {
			before := st.Remaining()
			cols, rows := st.Size()

			round, err := e.PlayDeathRound(src, st)
			if err != nil {
				t.Fatal(err)
			}
			if round.Cols != cols || round.Rows != rows || round.Grid.Cols != cols || round.Grid.Rows != rows {
				t.Fatalf("seed %d: round grid %dx%d, state %dx%d", seed, round.Grid.Cols, round.Grid.Rows, cols, rows)
			}
			for _, p := range sticky {
				cell := round.Grid.Cell(p.Col, p.Row)
				if !cell.Locked || !e.symbols.IsWild(cell.Symbol) {
					t.Fatalf("seed %d: sticky wild at %+v lost: %+v", seed, p, cell)
				}
			}
			if round.Reap < lastReap {
				t.Fatalf("seed %d: reap went down", seed)
			}
			if got := before - 1 + round.Expansions; got != round.SpinsRemaining {
				t.Fatalf("seed %d: %d rounds left, want %d", seed, round.SpinsRemaining, got)
			}
			if len(round.Cascades) > settings.MaxCascades {
				t.Fatalf("seed %d: %d cascades", seed, len(round.Cascades))
			}

			roundWin := decimal.Zero
			for _, c := range round.Cascades {
				for _, cl := range c.Clusters {
					if cl.Size < settings.ClusterMin {
						t.Fatalf("seed %d: cluster of %d paid", seed, cl.Size)
					}
				}
				if len(c.Refills) != len(c.Slashed) {
					t.Fatalf("seed %d: %d slashed, %d refilled", seed, len(c.Slashed), len(c.Refills))
				}
				roundWin = roundWin.Add(c.Win)
			}
			if !roundWin.Equal(round.Win) {
				t.Fatalf("seed %d: round win %s, cascades %s", seed, round.Win, roundWin)
			}

			cols, rows = st.Size()
			if cols > settings.MaxCols || rows > settings.MaxRows {
				t.Fatalf("seed %d: grid grew to %dx%d", seed, cols, rows)
			}
			lastReap = round.Reap
			sticky = round.StickyWilds
			total = total.Add(round.Win)
		}
		if !st.Accumulated().Equal(total) {
			t.Fatalf("seed %d: accumulated %s, sum %s", seed, st.Accumulated(), total)
		}
	}
}
