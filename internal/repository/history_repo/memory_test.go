package history_repo

import (
	"context"
	"testing"

	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
)

func TestMemoryHistory(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryHistoryRepository()

	for i := 0; i < 5; i++ {
		session := "a"
		if i%2 == 1 {
			session = "b"
		}
		id, err := r.CreatePlay(ctx, &model.PlayRecord{SessionID: session, Seed: uint32(i + 1), Bet: decimal.NewFromInt(1)})
		if err != nil {
			t.Fatal(err)
		}
		if id != int64(i+1) {
			t.Fatalf("id = %d", id)
		}
		if i == 4 {
			err = r.CreateRounds(ctx, id, []model.RoundRecord{{Index: 1}, {Index: 2}})
			if err != nil {
				t.Fatal(err)
			}
		}
	}

	plays, err := r.ListPlays(ctx, "a", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(plays) != 2 || plays[0].Seed != 5 || plays[1].Seed != 3 {
		t.Fatalf("unexpected plays: %+v", plays)
	}
	if len(plays[0].Rounds) != 2 {
		t.Fatalf("rounds not attached: %+v", plays[0].Rounds)
	}

	plays, _ = r.ListPlays(ctx, "missing", 10)
	if len(plays) != 0 {
		t.Fatalf("expected no plays, got %d", len(plays))
	}
}
