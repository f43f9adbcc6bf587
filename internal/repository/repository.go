package repository

import (
	"context"
	"errors"

	"tarot_slots/internal/model"
	"tarot_slots/internal/service/spin"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository живые сессии процесса. Между перезапусками не сохраняются.
type SessionRepository interface {
	Create(ctx context.Context, id string, ctrl *spin.Controller) error
	Get(ctx context.Context, id string) (*spin.Controller, error)
	Delete(ctx context.Context, id string) error
}

// HistoryRepository журнал завершенных игр для повтора по seed
type HistoryRepository interface {
	CreatePlay(ctx context.Context, rec *model.PlayRecord) (id int64, err error)
	CreateRounds(ctx context.Context, playID int64, rounds []model.RoundRecord) error
	ListPlays(ctx context.Context, sessionID string, limit uint64) ([]model.PlayRecord, error)
}

// StatsRepository статистика RTP по всем сессиям
type StatsRepository interface {
	UpdateState(bet, payout float64, feature model.FeatureType)
	Stats() model.Stats
}
