package stats_repo

import (
	"math"
	"sync"
	"testing"

	"tarot_slots/internal/model"
)

func TestStatsWindow(t *testing.T) {
	r := NewStatsRepository(2)

	r.UpdateState(1, 0, model.FeatureNone)
	r.UpdateState(1, 3, model.FeatureCups)
	r.UpdateState(2, 1, model.FeatureCups)

	s := r.Stats()
	if s.TotalPlays != 3 || s.TotalBet != 4 || s.TotalPayout != 4 {
		t.Fatalf("totals: %+v", s)
	}
	if math.Abs(s.CurrentRTP-100) > 1e-9 {
		t.Fatalf("current RTP %v", s.CurrentRTP)
	}
	// окно: (1,3) и (2,1)
	if s.WindowSize != 2 || math.Abs(s.WindowRTP-400.0/3) > 1e-9 {
		t.Fatalf("window RTP %v over %d", s.WindowRTP, s.WindowSize)
	}
	if s.Triggers["cups"] != 2 || len(s.Triggers) != 1 {
		t.Fatalf("triggers %v", s.Triggers)
	}
}

func TestStatsConcurrentUpdates(t *testing.T) {
	r := NewStatsRepository(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.UpdateState(1, 1, model.FeatureNone)
				_ = r.Stats()
			}
		}()
	}
	wg.Wait()

	if s := r.Stats(); s.TotalPlays != 800 || s.WindowSize != defaultWindowSize {
		t.Fatalf("unexpected stats: %+v", s)
	}
}
