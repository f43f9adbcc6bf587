package service

import (
	"context"

	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
)

// PlayService игровые сессии поверх контроллера спина. Сессия берется из контекста запроса.
type PlayService interface {
	Open(ctx context.Context, req model.SessionRequest) (*model.Session, error)
	Close(ctx context.Context) error
	State(ctx context.Context) (model.SessionState, error)
	SetBet(ctx context.Context, bet decimal.Decimal) (model.SessionState, error)
	SetSeed(ctx context.Context, seed uint32) (model.SessionState, error)

	Spin(ctx context.Context) (*model.SpinResult, error)
	ForceSpin(ctx context.Context, ft model.FeatureType, columns []int) (*model.SpinResult, error)
	LoversOffer(ctx context.Context) (*model.LoversOffer, error)
	LoversSelect(ctx context.Context, index int) (*model.FeatureRound, error)
	PlayRound(ctx context.Context) (*model.FeatureRound, error)

	History(ctx context.Context, limit uint64) ([]model.PlayRecord, error)
	Stats() model.Stats
}
