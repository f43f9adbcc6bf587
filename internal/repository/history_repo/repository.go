package history_repo

import (
	"context"
	"fmt"
	"time"

	"tarot_slots/internal/model"
	"tarot_slots/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	tablePlays     = "plays"
	colID          = "id"
	colSessionID   = "session_id"
	colSeed        = "seed"
	colBet         = "bet"
	colWin         = "win"
	colBalance     = "balance"
	colFeature     = "feature"
	colForced      = "forced"
	colCompletedAt = "completed_at"

	tableRounds   = "play_rounds"
	colPlayID     = "play_id"
	colRoundIndex = "round_index"
	colDetail     = "detail"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

// NewHistoryRepository журнал в Postgres. Запросы идут в транзакции из контекста, если она есть.
func NewHistoryRepository(dbc *pgxpool.Pool) repository.HistoryRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreatePlay - сохраняет завершенную игру, возвращает ее ID
func (r *repo) CreatePlay(ctx context.Context, rec *model.PlayRecord) (int64, error) {
	query := sq.Insert(tablePlays).
		Columns(colSessionID, colSeed, colBet, colWin, colBalance, colFeature, colForced, colCompletedAt).
		Values(rec.SessionID, int64(rec.Seed), rec.Bet, rec.Win, rec.Balance, rec.Feature.String(), rec.Forced, rec.CompletedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// CreateRounds - сохраняет раунды бонуса одной вставкой
func (r *repo) CreateRounds(ctx context.Context, playID int64, rounds []model.RoundRecord) error {
	if len(rounds) == 0 {
		return nil
	}

	query := sq.Insert(tableRounds).
		Columns(colPlayID, colRoundIndex, colWin, colDetail).
		PlaceholderFormat(sq.Dollar)
	for _, rd := range rounds {
		query = query.Values(playID, rd.Index, rd.Win, string(rd.Detail))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// ListPlays - последние игры сессии, новые первыми. Раунды не загружаются.
func (r *repo) ListPlays(ctx context.Context, sessionID string, limit uint64) ([]model.PlayRecord, error) {
	query := sq.Select(colID, colSessionID, colSeed, colBet, colWin, colBalance, colFeature, colForced, colCompletedAt).
		From(tablePlays).
		Where(sq.Eq{colSessionID: sessionID}).
		OrderBy(colID + " DESC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayRecord
	for rows.Next() {
		var (
			rec         model.PlayRecord
			seed        int64
			feature     string
			completedAt time.Time
		)
		rec.Bet, rec.Win, rec.Balance = decimal.Zero, decimal.Zero, decimal.Zero
		err = rows.Scan(&rec.ID, &rec.SessionID, &seed, &rec.Bet, &rec.Win, &rec.Balance, &feature, &rec.Forced, &completedAt)
		if err != nil {
			return nil, err
		}
		rec.Seed = uint32(seed)
		rec.Feature, err = parseStoredFeature(feature)
		if err != nil {
			return nil, fmt.Errorf("play %d: %w", rec.ID, err)
		}
		rec.CompletedAt = completedAt
		out = append(out, rec)
	}

	return out, rows.Err()
}

// parseStoredFeature обратное к FeatureType.String, включая "none"
func parseStoredFeature(s string) (model.FeatureType, error) {
	if s == model.FeatureNone.String() {
		return model.FeatureNone, nil
	}
	return model.ParseFeatureType(s)
}
