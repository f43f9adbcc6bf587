package history_repo

import (
	"context"
	"sync"

	"tarot_slots/internal/model"
	"tarot_slots/internal/repository"
)

// memoryRepo журнал в памяти, когда PG_DSN не задан
type memoryRepo struct {
	mtx    sync.RWMutex
	nextID int64
	plays  []model.PlayRecord
	rounds map[int64][]model.RoundRecord
}

func NewMemoryHistoryRepository() repository.HistoryRepository {
	return &memoryRepo{
		rounds: make(map[int64][]model.RoundRecord),
	}
}

func (r *memoryRepo) CreatePlay(_ context.Context, rec *model.PlayRecord) (int64, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.nextID++
	stored := *rec
	stored.ID = r.nextID
	stored.Rounds = nil
	r.plays = append(r.plays, stored)
	return stored.ID, nil
}

func (r *memoryRepo) CreateRounds(_ context.Context, playID int64, rounds []model.RoundRecord) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.rounds[playID] = append(r.rounds[playID], rounds...)
	return nil
}

func (r *memoryRepo) ListPlays(_ context.Context, sessionID string, limit uint64) ([]model.PlayRecord, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var out []model.PlayRecord
	for i := len(r.plays) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		if r.plays[i].SessionID != sessionID {
			continue
		}
		rec := r.plays[i]
		rec.Rounds = append([]model.RoundRecord(nil), r.rounds[rec.ID]...)
		out = append(out, rec)
	}
	return out, nil
}
