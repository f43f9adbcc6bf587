package play

import (
	"context"
	"time"

	"tarot_slots/internal/model"
)

// Spin спин текущей сессии. Завершенная игра сразу попадает в журнал и статистику,
// отложенный бонус - после последнего раунда.
func (s *serv) Spin(ctx context.Context) (*model.SpinResult, error) {
	sessionID, ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := ctrl.Spin()
	if err != nil {
		return res, err
	}
	s.afterSpin(ctx, sessionID, res)
	return res, nil
}

// ForceSpin спин с принудительными таро-колонками
func (s *serv) ForceSpin(ctx context.Context, ft model.FeatureType, columns []int) (*model.SpinResult, error) {
	sessionID, ctrl, err := s.controller(ctx)
	if err != nil {
		return nil, err
	}

	res, err := ctrl.ForceTarotSpin(ft, columns)
	if err != nil {
		return res, err
	}
	s.afterSpin(ctx, sessionID, res)
	return res, nil
}

func (s *serv) afterSpin(ctx context.Context, sessionID string, res *model.SpinResult) {
	rec := &model.PlayRecord{
		SessionID:   sessionID,
		Seed:        res.Seed,
		Bet:         res.Bet,
		Win:         res.TotalWin,
		Balance:     res.Balance,
		Feature:     model.FeatureNone,
		Forced:      res.Forced,
		CompletedAt: time.Now(),
	}
	if res.Trigger != nil {
		rec.Feature = res.Trigger.Type
	}

	if res.Deferred {
		s.mtx.Lock()
		s.pending[sessionID] = rec
		s.mtx.Unlock()
		return
	}
	s.record(ctx, rec)
}
