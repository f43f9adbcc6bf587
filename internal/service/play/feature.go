package play

import (
	"context"
	"time"

	"tarot_slots/internal/model"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *serv) LoversOffer(ctx context.Context) (*model.LoversOffer, error) {
	_, ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}
	return ctrl.BeginLoversRound()
}

func (s *serv) LoversSelect(ctx context.Context, index int) (*model.FeatureRound, error) {
	sessionID, ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}

	round, err := ctrl.ApplyLoversSelection(index)
	if err != nil {
		return nil, err
	}
	s.afterRound(ctx, sessionID, round)
	return round, nil
}

// PlayRound раунд жрицы или смерти
func (s *serv) PlayRound(ctx context.Context) (*model.FeatureRound, error) {
	sessionID, ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}

	round, err := ctrl.ApplyRound()
	if err != nil {
		return nil, err
	}
	s.afterRound(ctx, sessionID, round)
	return round, nil
}

// afterRound копит раунды в незавершенной записи и пишет ее, когда бонус закончился
func (s *serv) afterRound(ctx context.Context, sessionID string, round *model.FeatureRound) {
	index, win := roundSummary(round)

	detail, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(round)
	if err != nil {
		s.logger.Error("failed to encode feature round", zap.String("session", sessionID), zap.Error(err))
		detail = []byte("{}")
	}

	s.mtx.Lock()
	rec, ok := s.pending[sessionID]
	if ok {
		rec.Rounds = append(rec.Rounds, model.RoundRecord{Index: index, Win: win, Detail: detail})
		if round.Completed {
			delete(s.pending, sessionID)
		}
	}
	s.mtx.Unlock()

	if !ok || !round.Completed {
		return
	}
	rec.Win = round.FeatureWin
	rec.Balance = round.Balance
	rec.CompletedAt = time.Now()
	s.record(ctx, rec)
}

func roundSummary(round *model.FeatureRound) (int, decimal.Decimal) {
	switch {
	case round.Lovers != nil:
		return round.Lovers.Round, round.Lovers.Win
	case round.Priestess != nil:
		return round.Priestess.Round, round.Priestess.Win
	case round.Death != nil:
		return round.Death.Round, round.Death.Win
	}
	return 0, decimal.Zero
}
