package play

import (
	"context"
	"encoding/binary"

	"tarot_slots/internal/model"
	"tarot_slots/pkg/token"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Open открывает сессию. Незаданные баланс и ставка берутся из конфигурации,
// нулевой seed заменяется случайным.
func (s *serv) Open(ctx context.Context, req model.SessionRequest) (*model.Session, error) {
	id := uuid.New()
	sessionID := id.String()

	opts := model.SessionOptions{
		Balance: s.sessionCfg.StartBalance(),
		Bet:     s.sessionCfg.DefaultBet(),
		Seed:    req.Seed,
	}
	if req.Balance != nil {
		opts.Balance = *req.Balance
	}
	if req.Bet != nil {
		opts.Bet = *req.Bet
	}
	if opts.Balance.IsNegative() || !opts.Bet.IsPositive() {
		return nil, ErrInvalidOptions
	}
	if opts.Seed == 0 {
		opts.Seed = binary.BigEndian.Uint32(id[:4])
	}

	signed, expiresAt, err := token.GenerateSessionToken(sessionID, s.jwtCfg.AccessTokenSecretKey(), s.jwtCfg.AccessTokenDuration())
	if err != nil {
		return nil, err
	}

	ctrl := s.game.NewController(sessionID, opts)
	if err := s.sessions.Create(ctx, sessionID, ctrl); err != nil {
		return nil, err
	}

	s.logger.Info("session opened",
		zap.String("session", sessionID),
		zap.Uint32("seed", opts.Seed),
		zap.String("balance", opts.Balance.String()),
	)

	return &model.Session{
		ID:        sessionID,
		Token:     signed,
		ExpiresAt: expiresAt,
		State:     ctrl.Session(),
	}, nil
}

// Close удаляет сессию; незавершенный бонус не попадает в журнал
func (s *serv) Close(ctx context.Context) error {
	sessionID, _, err := s.controller(ctx)
	if err != nil {
		return err
	}

	s.mtx.Lock()
	delete(s.pending, sessionID)
	s.mtx.Unlock()

	return s.sessions.Delete(ctx, sessionID)
}

func (s *serv) State(ctx context.Context) (model.SessionState, error) {
	_, ctrl, err := s.controller(ctx)
	if err != nil {
		return model.SessionState{}, err
	}
	return ctrl.Session(), nil
}

func (s *serv) SetBet(ctx context.Context, bet decimal.Decimal) (model.SessionState, error) {
	_, ctrl, err := s.controller(ctx)
	if err != nil {
		return model.SessionState{}, err
	}
	if err := ctrl.SetBet(bet); err != nil {
		return ctrl.Session(), err
	}
	return ctrl.Session(), nil
}

func (s *serv) SetSeed(ctx context.Context, seed uint32) (model.SessionState, error) {
	_, ctrl, err := s.controller(ctx)
	if err != nil {
		return model.SessionState{}, err
	}
	if err := ctrl.SetSeed(seed); err != nil {
		return ctrl.Session(), err
	}
	return ctrl.Session(), nil
}
