package play

import (
	"context"

	"tarot_slots/internal/model"

	"go.uber.org/zap"
)

const maxHistoryLimit = 100

// record пишет игру и ее раунды одной транзакцией и обновляет статистику.
// Ошибка журнала не откатывает игру: баланс сессии уже изменен.
func (s *serv) record(ctx context.Context, rec *model.PlayRecord) {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		id, err := s.history.CreatePlay(txCtx, rec)
		if err != nil {
			return err
		}
		rec.ID = id
		return s.history.CreateRounds(txCtx, id, rec.Rounds)
	})
	if err != nil {
		s.logger.Error("failed to write play history",
			zap.String("session", rec.SessionID),
			zap.Uint32("seed", rec.Seed),
			zap.Error(err),
		)
	}

	s.stats.UpdateState(rec.Bet.InexactFloat64(), rec.Win.InexactFloat64(), rec.Feature)
}

// History последние игры сессии
func (s *serv) History(ctx context.Context, limit uint64) ([]model.PlayRecord, error) {
	sessionID, _, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	if limit == 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.history.ListPlays(ctx, sessionID, limit)
}

func (s *serv) Stats() model.Stats {
	return s.stats.Stats()
}
