package spin

import (
	"errors"
	"reflect"
	"testing"

	"tarot_slots/configs"
	"tarot_slots/internal/config/env"
	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

func newTestGame(t testing.TB) *Game {
	t.Helper()
	cfg, err := env.NewGameConfigFromBytes(configs.Default)
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	return NewGame(cfg, nil)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSpinInsufficientFunds(t *testing.T) {
	c := newTestGame(t).NewController("s1", model.SessionOptions{Balance: dec("0.10"), Bet: dec("0.20"), Seed: 12345})
	before := c.Session()

	res, err := c.Spin()
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected prior (empty) result, got %+v", res)
	}
	after := c.Session()
	if !after.Balance.Equal(dec("0.10")) {
		t.Fatalf("balance changed to %s", after.Balance)
	}
	if after.Seed != before.Seed {
		t.Fatal("generator advanced on a rejected spin")
	}
}

func TestSpinBalanceConservation(t *testing.T) {
	game := newTestGame(t)

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint32().Draw(t, "seed")
		spins := rapid.IntRange(1, 30).Draw(t, "spins")
		c := game.NewController("p", model.SessionOptions{Balance: dec("1000"), Bet: dec("0.20"), Seed: seed})

		for i := 0; i < spins; i++ {
			before := c.Session().Balance
			res, err := c.Spin()
			if err != nil {
				t.Fatalf("spin %d: %v", i, err)
			}
			if res.Deferred {
				if !res.Balance.Equal(before.Sub(res.Bet)) {
					t.Fatalf("deferred spin: balance %s, want %s", res.Balance, before.Sub(res.Bet))
				}
				return
			}
			want := before.Sub(res.Bet).Add(res.TotalWin)
			if !res.Balance.Equal(want) || !c.Session().Balance.Equal(want) {
				t.Fatalf("spin %d: balance %s, want %s", i, res.Balance, want)
			}
		}
	})
}

func TestSpinDeterministic(t *testing.T) {
	game := newTestGame(t)

	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Uint32().Draw(t, "seed")
		opts := model.SessionOptions{Balance: dec("100"), Bet: dec("1"), Seed: seed}
		a := game.NewController("a", opts)
		b := game.NewController("b", opts)

		for i := 0; i < 5; i++ {
			ra, errA := a.Spin()
			rb, errB := b.Spin()
			if !errors.Is(errA, errB) && !errors.Is(errB, errA) {
				t.Fatalf("spin %d: errors differ: %v / %v", i, errA, errB)
			}
			if !reflect.DeepEqual(ra, rb) {
				t.Fatalf("spin %d: results differ", i)
			}
		}
	})
}

func TestForceTarotSpinValidation(t *testing.T) {
	c := newTestGame(t).NewController("f", model.SessionOptions{Balance: dec("10"), Bet: dec("1"), Seed: 3})
	seed := c.Session().Seed

	if _, err := c.ForceTarotSpin(model.FeatureFool, []int{0, 7}); err == nil {
		t.Fatal("expected an error for column 7")
	}
	s := c.Session()
	if !s.Balance.Equal(dec("10")) || s.Seed != seed {
		t.Fatal("rejected forced spin changed the session")
	}
}

func TestForceFoolAndCupsCreditImmediately(t *testing.T) {
	game := newTestGame(t)

	for _, ft := range []model.FeatureType{model.FeatureFool, model.FeatureCups} {
		t.Run(ft.String(), func(t *testing.T) {
			c := game.NewController("nd", model.SessionOptions{Balance: dec("50"), Bet: dec("0.20"), Seed: 11})
			res, err := c.ForceTarotSpin(ft, []int{1, 2, 3})
			if err != nil {
				t.Fatal(err)
			}
			if res.Deferred || res.Trigger == nil || res.Trigger.Type != ft || res.Trigger.Count != 3 {
				t.Fatalf("unexpected result: %+v", res)
			}
			if !res.Forced {
				t.Fatal("forced flag not set")
			}
			switch ft {
			case model.FeatureFool:
				if res.Fool == nil || res.Multiplier != 5 {
					t.Fatalf("fool outcome %+v, multiplier %d", res.Fool, res.Multiplier)
				}
			case model.FeatureCups:
				if res.Cups == nil || !res.TotalWin.Equal(res.Cups.Win) {
					t.Fatalf("cups win %v, total %s", res.Cups, res.TotalWin)
				}
			}
			if !res.Balance.Equal(dec("50").Sub(dec("0.20")).Add(res.TotalWin)) {
				t.Fatalf("balance %s with win %s", res.Balance, res.TotalWin)
			}
			if c.Session().Spinning {
				t.Fatal("non-deferred feature left the session spinning")
			}
		})
	}
}

func TestLoversFeatureLifecycle(t *testing.T) {
	c := newTestGame(t).NewController("lv", model.SessionOptions{Balance: dec("20"), Bet: dec("1"), Seed: 777})

	res, err := c.ForceTarotSpin(model.FeatureLovers, []int{0, 4})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Deferred || len(res.WinLines) != 0 || !res.TotalWin.IsZero() {
		t.Fatalf("triggering spin must skip paylines: %+v", res)
	}
	if !res.Balance.Equal(dec("19")) {
		t.Fatalf("balance after trigger %s", res.Balance)
	}

	// повторный спин отклоняется и возвращает прошлый результат
	again, err := c.Spin()
	if !errors.Is(err, ErrSpinInProgress) || again != res {
		t.Fatalf("expected ErrSpinInProgress with prior result, got %v", err)
	}
	if _, err := c.ApplyRound(); !errors.Is(err, ErrFeatureMismatch) {
		t.Fatalf("expected ErrFeatureMismatch, got %v", err)
	}
	if err := c.SetBet(dec("2")); !errors.Is(err, ErrSpinInProgress) {
		t.Fatalf("bet change during feature: %v", err)
	}

	var last *model.FeatureRound
	for i := 0; i < 3; i++ {
		if _, err := c.BeginLoversRound(); err != nil {
			t.Fatal(err)
		}
		if _, err := c.ApplyLoversSelection(5); err == nil {
			t.Fatal("expected out of range error")
		}
		last, err = c.ApplyLoversSelection(1)
		if err != nil {
			t.Fatal(err)
		}
		if last.Completed != (i == 2) {
			t.Fatalf("round %d completed=%v", i+1, last.Completed)
		}
	}

	s := c.Session()
	if s.Spinning || s.Feature != model.FeatureNone {
		t.Fatalf("feature still active: %+v", s)
	}
	if !s.Balance.Equal(dec("19").Add(last.FeatureWin)) || !s.LastWin.Equal(last.FeatureWin) {
		t.Fatalf("balance %s, feature win %s", s.Balance, last.FeatureWin)
	}
	if _, err := c.BeginLoversRound(); !errors.Is(err, ErrNoActiveFeature) {
		t.Fatalf("expected ErrNoActiveFeature, got %v", err)
	}
}

func TestRoundFeaturesComplete(t *testing.T) {
	game := newTestGame(t)

	for _, ft := range []model.FeatureType{model.FeaturePriestess, model.FeatureDeath} {
		t.Run(ft.String(), func(t *testing.T) {
			c := game.NewController("rd", model.SessionOptions{Balance: dec("5"), Bet: dec("0.50"), Seed: 4242})
			if _, err := c.ForceTarotSpin(ft, []int{0, 2}); err != nil {
				t.Fatal(err)
			}
			if _, err := c.BeginLoversRound(); !errors.Is(err, ErrFeatureMismatch) {
				t.Fatalf("expected ErrFeatureMismatch, got %v", err)
			}

			var round *model.FeatureRound
			for n := 0; n < 100; n++ {
				var err error
				round, err = c.ApplyRound()
				if err != nil {
					t.Fatal(err)
				}
				if round.Type != ft {
					t.Fatalf("round type %s", round.Type)
				}
				if round.Completed {
					break
				}
			}
			if !round.Completed {
				t.Fatal("feature did not complete")
			}
			if !c.Session().Balance.Equal(dec("4.50").Add(round.FeatureWin)) {
				t.Fatalf("balance %s, feature win %s", c.Session().Balance, round.FeatureWin)
			}
			if _, err := c.ApplyRound(); !errors.Is(err, ErrNoActiveFeature) {
				t.Fatalf("expected ErrNoActiveFeature, got %v", err)
			}
		})
	}
}

func TestSetBetAndSeed(t *testing.T) {
	c := newTestGame(t).NewController("b", model.SessionOptions{Balance: dec("5"), Bet: dec("1"), Seed: 1})

	tests := []struct {
		name string
		bet  string
		err  error
	}{
		{name: "positive", bet: "0.40"},
		{name: "zero", bet: "0", err: ErrInvalidBet},
		{name: "negative", bet: "-1", err: ErrInvalidBet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.SetBet(dec(tt.bet)); !errors.Is(err, tt.err) {
				t.Fatalf("got %v, want %v", err, tt.err)
			}
		})
	}
	if !c.Session().Bet.Equal(dec("0.40")) {
		t.Fatalf("bet = %s", c.Session().Bet)
	}

	if err := c.SetSeed(0); err != nil {
		t.Fatal(err)
	}
	if c.Session().Seed != 1 {
		t.Fatalf("zero seed must be remapped to 1, got %d", c.Session().Seed)
	}
}
