package play

import (
	"context"
	"errors"
	"sync"

	"tarot_slots/internal/config"
	"tarot_slots/internal/middleware"
	"tarot_slots/internal/model"
	"tarot_slots/internal/repository"
	"tarot_slots/internal/service"
	"tarot_slots/internal/service/spin"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

var (
	ErrNoSession      = errors.New("session id not found in context")
	ErrInvalidOptions = errors.New("balance must not be negative and bet must be positive")
)

type serv struct {
	game       *spin.Game
	sessionCfg config.SessionConfig
	jwtCfg     config.JWTConfig

	sessions  repository.SessionRepository
	history   repository.HistoryRepository
	stats     repository.StatsRepository
	txManager trm.Manager
	logger    *zap.Logger

	// незавершенные отложенные бонусы, пишутся в журнал по окончании
	mtx     sync.Mutex
	pending map[string]*model.PlayRecord
}

// NewPlayService сервис игровых сессий
func NewPlayService(
	game *spin.Game,
	sessionCfg config.SessionConfig,
	jwtCfg config.JWTConfig,
	sessions repository.SessionRepository,
	history repository.HistoryRepository,
	stats repository.StatsRepository,
	txManager trm.Manager,
	logger *zap.Logger,
) service.PlayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &serv{
		game:       game,
		sessionCfg: sessionCfg,
		jwtCfg:     jwtCfg,
		sessions:   sessions,
		history:    history,
		stats:      stats,
		txManager:  txManager,
		logger:     logger,
		pending:    make(map[string]*model.PlayRecord),
	}
}

// controller сессия текущего запроса
func (s *serv) controller(ctx context.Context) (string, *spin.Controller, error) {
	sessionID, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		return "", nil, ErrNoSession
	}
	ctrl, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	return sessionID, ctrl, nil
}
