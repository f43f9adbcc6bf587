package converter

import (
	"errors"
	"fmt"

	dto "tarot_slots/internal/api/dto/play"
	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
)

// moneyPlaces точность ставок и баланса, которые приходят от клиента
const moneyPlaces = 2

var ErrMoneyPrecision = errors.New("amount has more than 2 decimal places")

// money точное значение: выплаты по линиям бывают мельче цента
func money(d decimal.Decimal) string {
	return d.String()
}

func parseMoney(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	if !d.Equal(d.Truncate(moneyPlaces)) {
		return decimal.Zero, fmt.Errorf("invalid %s %s: %w", name, raw, ErrMoneyPrecision)
	}
	return d, nil
}

// ToSessionRequest пустая строка значит "не задано", "0" - явный ноль
func ToSessionRequest(req dto.OpenSessionRequest) (model.SessionRequest, error) {
	out := model.SessionRequest{Seed: req.Seed}
	if len(req.Balance) > 0 {
		balance, err := parseMoney("balance", req.Balance)
		if err != nil {
			return model.SessionRequest{}, err
		}
		out.Balance = &balance
	}
	if len(req.Bet) > 0 {
		bet, err := parseMoney("bet", req.Bet)
		if err != nil {
			return model.SessionRequest{}, err
		}
		out.Bet = &bet
	}
	return out, nil
}

func ToBet(req dto.BetRequest) (decimal.Decimal, error) {
	if len(req.Bet) == 0 {
		return decimal.Zero, fmt.Errorf("bet is required")
	}
	return parseMoney("bet", req.Bet)
}

func ToForceSpin(req dto.ForceSpinRequest) (model.FeatureType, []int, error) {
	ft, err := model.ParseFeatureType(req.Feature)
	if err != nil {
		return model.FeatureNone, nil, err
	}
	return ft, req.Columns, nil
}

func ToSessionResponse(s model.Session) dto.SessionResponse {
	return dto.SessionResponse{
		SessionID: s.ID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		State:     ToStateResponse(s.State),
	}
}

func ToStateResponse(s model.SessionState) dto.StateResponse {
	return dto.StateResponse{
		SessionID: s.ID,
		Balance:   money(s.Balance),
		Bet:       money(s.Bet),
		LastWin:   money(s.LastWin),
		Seed:      s.Seed,
		Spinning:  s.Spinning,
		Feature:   s.Feature.String(),
	}
}

func ToSpinResponse(res model.SpinResult) dto.SpinResponse {
	out := dto.SpinResponse{
		InitialGrid:  toGrid(res.InitialGrid),
		Grid:         toGrid(res.Grid),
		TarotColumns: make([]dto.TarotColumn, len(res.TarotColumns)),
		WinLines:     toWinLines(res.WinLines),
		Multiplier:   res.Multiplier,
		LineWin:      money(res.LineWin),
		Deferred:     res.Deferred,
		TotalWin:     money(res.TotalWin),
		Bet:          money(res.Bet),
		Balance:      money(res.Balance),
		Seed:         res.Seed,
		Forced:       res.Forced,
	}
	for i, tc := range res.TarotColumns {
		out.TarotColumns[i] = dto.TarotColumn{Column: tc.Column, Symbol: tc.Symbol, Feature: tc.Type.String()}
	}
	if res.Trigger != nil {
		out.Trigger = &dto.Trigger{
			Feature: res.Trigger.Type.String(),
			Count:   res.Trigger.Count,
			Columns: res.Trigger.Columns,
		}
	}
	if res.Fool != nil {
		out.Fool = &dto.Fool{
			WildCounts: res.Fool.WildCounts,
			Wilds:      toPositions(res.Fool.Wilds),
			Premiums:   toPlacements(res.Fool.Premiums),
			Multiplier: res.Fool.Multiplier,
		}
	}
	if res.Cups != nil {
		out.Cups = toCups(res.Cups)
	}
	return out
}

func toCups(c *model.CupsOutcome) *dto.Cups {
	out := &dto.Cups{
		Initial: c.Initial,
		Rounds:  make([]dto.CupsRound, len(c.Rounds)),
		Board:   c.Board,
		Filled:  c.Filled,
		Doubled: c.Doubled,
		Sum:     c.Sum,
		Win:     money(c.Win),
	}
	for i, r := range c.Rounds {
		landings := make([]dto.CupsLanding, len(r.Landings))
		for j, l := range r.Landings {
			landings[j] = dto.CupsLanding{Col: l.Col, Row: l.Row, Value: l.Value, Result: l.Result, Stacked: l.Stacked}
		}
		out.Rounds[i] = dto.CupsRound{
			Sampled:     toPositions(r.Sampled),
			Landings:    landings,
			NewLandings: r.NewLandings,
			LivesLeft:   r.LivesLeft,
		}
	}
	return out
}

func ToLoversOfferResponse(o model.LoversOffer) dto.LoversOfferResponse {
	return dto.LoversOfferResponse{
		Round:          o.Round,
		Grid:           toGrid(o.Grid),
		Candidates:     o.Candidates,
		SpinsRemaining: o.SpinsRemaining,
		Multiplier:     o.Multiplier,
	}
}

func ToFeatureRoundResponse(r model.FeatureRound) dto.FeatureRoundResponse {
	out := dto.FeatureRoundResponse{
		Feature:    r.Type.String(),
		Completed:  r.Completed,
		FeatureWin: money(r.FeatureWin),
		Balance:    money(r.Balance),
	}
	if l := r.Lovers; l != nil {
		out.Lovers = &dto.LoversRound{
			Round:          l.Round,
			Bond:           l.Bond,
			Tier:           l.Tier,
			Area:           dto.Area{Col: l.Area.Col, Row: l.Area.Row, Width: l.Area.Width, Height: l.Area.Height},
			Anchors:        [2]dto.Placement{toPlacement(l.Anchors[0]), toPlacement(l.Anchors[1])},
			Grid:           toGrid(l.Grid),
			WinLines:       toWinLines(l.WinLines),
			Multiplier:     l.Multiplier,
			Win:            money(l.Win),
			SpinsRemaining: l.SpinsRemaining,
		}
	}
	if p := r.Priestess; p != nil {
		out.Priestess = &dto.PriestessRound{
			Round:          p.Round,
			Grid:           toGrid(p.Grid),
			Revealed:       toGrid(p.Revealed),
			NewMystery:     toPositions(p.NewMystery),
			Mystery:        toPositions(p.Mystery),
			RevealSymbol:   p.RevealSymbol,
			WinLines:       toWinLines(p.WinLines),
			Multiplier:     p.Multiplier,
			Win:            money(p.Win),
			SpinsRemaining: p.SpinsRemaining,
		}
	}
	if d := r.Death; d != nil {
		out.Death = toDeathRound(d)
	}
	return out
}

func toDeathRound(d *model.DeathRound) *dto.DeathRound {
	out := &dto.DeathRound{
		Round:          d.Round,
		Cols:           d.Cols,
		Rows:           d.Rows,
		Grid:           toGrid(d.Grid),
		Cascades:       make([]dto.DeathCascade, len(d.Cascades)),
		Final:          toGrid(d.Final),
		StickyWilds:    toPositions(d.StickyWilds),
		Reap:           d.Reap,
		Expansions:     d.Expansions,
		Win:            money(d.Win),
		SpinsRemaining: d.SpinsRemaining,
	}
	for i, c := range d.Cascades {
		clusters := make([]dto.ClusterWin, len(c.Clusters))
		for j, cl := range c.Clusters {
			clusters[j] = dto.ClusterWin{
				Symbol: cl.Symbol,
				Cells:  toPositions(cl.Cells),
				Size:   cl.Size,
				Payout: money(cl.Payout),
			}
		}
		out.Cascades[i] = dto.DeathCascade{
			Clusters:       clusters,
			Slashed:        toPositions(c.Slashed),
			ConsumedWilds:  toPositions(c.ConsumedWilds),
			Refills:        toPlacements(c.Refills),
			NewStickyWilds: toPositions(c.NewStickyWilds),
			Win:            money(c.Win),
		}
	}
	return out
}

func ToHistoryResponse(plays []model.PlayRecord) dto.HistoryResponse {
	out := dto.HistoryResponse{Plays: make([]dto.PlayRecord, len(plays))}
	for i, p := range plays {
		rounds := make([]dto.RoundRecord, len(p.Rounds))
		for j, r := range p.Rounds {
			rounds[j] = dto.RoundRecord{Index: r.Index, Win: money(r.Win), Detail: r.Detail}
		}
		out.Plays[i] = dto.PlayRecord{
			ID:          p.ID,
			Seed:        p.Seed,
			Bet:         money(p.Bet),
			Win:         money(p.Win),
			Balance:     money(p.Balance),
			Feature:     p.Feature.String(),
			Forced:      p.Forced,
			Rounds:      rounds,
			CompletedAt: p.CompletedAt,
		}
	}
	return out
}

func ToStatsResponse(s model.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalPlays:  s.TotalPlays,
		TotalBet:    s.TotalBet,
		TotalPayout: s.TotalPayout,
		CurrentRTP:  s.CurrentRTP,
		WindowRTP:   s.WindowRTP,
		WindowSize:  s.WindowSize,
		Triggers:    s.Triggers,
	}
}

func toGrid(g *model.Grid) dto.Grid {
	if g == nil {
		return dto.Grid{}
	}
	out := dto.Grid{Cols: g.Cols, Rows: g.Rows, Symbols: g.Symbols()}
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			cell := g.Cell(c, r)
			if cell.Locked {
				out.Locked = append(out.Locked, dto.Position{Col: c, Row: r})
			}
			if cell.Mystery {
				out.Mystery = append(out.Mystery, dto.Position{Col: c, Row: r})
			}
		}
	}
	return out
}

func toWinLines(wins []model.WinLine) []dto.WinLine {
	result := make([]dto.WinLine, len(wins))
	for i, w := range wins {
		result[i] = dto.WinLine{
			Line:   w.Line,
			Symbol: w.Symbol,
			Count:  w.Count,
			Payout: money(w.Payout),
			Cells:  toPositions(w.Cells),
		}
	}
	return result
}

func toPositions(ps []model.Position) []dto.Position {
	result := make([]dto.Position, len(ps))
	for i, p := range ps {
		result[i] = dto.Position{Col: p.Col, Row: p.Row}
	}
	return result
}

func toPlacement(p model.Placement) dto.Placement {
	return dto.Placement{Col: p.Col, Row: p.Row, Symbol: p.Symbol}
}

func toPlacements(ps []model.Placement) []dto.Placement {
	result := make([]dto.Placement, len(ps))
	for i, p := range ps {
		result[i] = toPlacement(p)
	}
	return result
}
