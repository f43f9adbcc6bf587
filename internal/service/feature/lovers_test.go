package feature

import (
	"errors"
	"testing"

	"tarot_slots/internal/model"
	"tarot_slots/pkg/rng"

	"github.com/shopspring/decimal"
)

func TestPlaceBondMedium(t *testing.T) {
	board := model.NewGrid(5, 3)
	for c := 0; c < 5; c++ {
		for r := 0; r < 3; r++ {
			board.Set(c, r, "LEMON")
		}
	}
	area := model.Area{Col: 1, Row: 0, Width: 3, Height: 2}

	anchors := PlaceBond(board, area, [2]string{"MALE", "FEMALE"}, "SUN")

	if anchors[0].Symbol != "MALE" || anchors[0].Position != (model.Position{Col: 1, Row: 0}) {
		t.Fatalf("top-left anchor = %+v", anchors[0])
	}
	if anchors[1].Symbol != "FEMALE" || anchors[1].Position != (model.Position{Col: 3, Row: 1}) {
		t.Fatalf("bottom-right anchor = %+v", anchors[1])
	}
	if n := board.Count("SUN"); n != 6 {
		t.Fatalf("bond cells = %d, want 6", n)
	}
	for c := 1; c <= 3; c++ {
		for r := 0; r <= 1; r++ {
			if board.At(c, r) != "SUN" {
				t.Fatalf("cell (%d,%d) = %q", c, r, board.At(c, r))
			}
		}
	}
}

func TestLoversRounds(t *testing.T) {
	e, cfg := newTestEngine(t)
	anchors := cfg.Lovers().Anchors
	bet := decimal.RequireFromString("0.20")

	tests := []struct {
		name       string
		count      int
		rounds     int
		multiplier int
	}{
		{name: "two columns", count: 2, rounds: 3, multiplier: 2},
		{name: "three columns", count: 3, rounds: 6, multiplier: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := rng.New(2024)
			st := e.StartLovers(model.FeatureTrigger{Type: model.FeatureLovers, Count: tt.count}, bet)
			if st.Remaining() != tt.rounds || st.Multiplier() != tt.multiplier {
				t.Fatalf("got %d rounds x%d", st.Remaining(), st.Multiplier())
			}

			total := decimal.Zero
			for i := 0; i < tt.rounds; i++ {
				offer, err := e.BeginRound(src, st)
				if err != nil {
					t.Fatal(err)
				}
				if len(offer.Candidates) != loversCandidates {
					t.Fatalf("got %d candidates", len(offer.Candidates))
				}
				for _, c := range offer.Candidates {
					if c == anchors[0] || c == anchors[1] {
						t.Fatalf("anchor %q offered as bond", c)
					}
				}

				// повторный вызов не тратит генератор
				state := src.State()
				again, _ := e.BeginRound(src, st)
				if again != offer || src.State() != state {
					t.Fatal("pending offer was regenerated")
				}

				round, err := e.ApplySelection(src, st, i%loversCandidates)
				if err != nil {
					t.Fatal(err)
				}
				if got := round.Grid.Count(round.Bond); got < round.Area.Width*round.Area.Height {
					t.Fatalf("bond %q fills %d cells in %+v", round.Bond, got, round.Area)
				}
				if round.Anchors[0].Position != (model.Position{Col: round.Area.Col, Row: round.Area.Row}) {
					t.Fatalf("top-left anchor %+v for %+v", round.Anchors[0], round.Area)
				}
				if round.Area.Col+round.Area.Width > 5 || round.Area.Row+round.Area.Height > 3 {
					t.Fatalf("area out of grid: %+v", round.Area)
				}
				if round.SpinsRemaining != tt.rounds-i-1 {
					t.Fatalf("spins remaining %d after round %d", round.SpinsRemaining, i+1)
				}
				total = total.Add(round.Win)
			}

			if !st.Accumulated().Equal(total) {
				t.Fatalf("accumulated %s, sum of rounds %s", st.Accumulated(), total)
			}
			if _, err := e.BeginRound(src, st); !errors.Is(err, ErrFeatureFinished) {
				t.Fatalf("expected ErrFeatureFinished, got %v", err)
			}
		})
	}
}

func TestLoversSelectionErrors(t *testing.T) {
	e, _ := newTestEngine(t)
	src := rng.New(5)
	st := e.StartLovers(model.FeatureTrigger{Type: model.FeatureLovers, Count: 2}, decimal.NewFromInt(1))

	if _, err := e.ApplySelection(src, st, 0); !errors.Is(err, ErrNoPendingOffer) {
		t.Fatalf("expected ErrNoPendingOffer, got %v", err)
	}

	if _, err := e.BeginRound(src, st); err != nil {
		t.Fatal(err)
	}
	state := src.State()
	for _, idx := range []int{-1, 3, 10} {
		if _, err := e.ApplySelection(src, st, idx); !errors.Is(err, ErrSelectionOutOfRange) {
			t.Fatalf("index %d: expected ErrSelectionOutOfRange, got %v", idx, err)
		}
	}
	if src.State() != state || st.Remaining() != 3 || st.Pending() == nil {
		t.Fatal("rejected selection changed the state")
	}
}
