package play

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Денежные суммы передаются строками. Выплаты точные, ставка и баланс от клиента - не точнее цента.

type OpenSessionRequest struct {
	Balance string `json:"balance,omitempty"` // Стартовый баланс, пусто - из конфигурации, "0" - нулевой
	Bet     string `json:"bet,omitempty"`     // Ставка, пусто - из конфигурации
	Seed    uint32 `json:"seed,omitempty"`    // 0 - случайный
}

type SessionResponse struct {
	SessionID string        `json:"session_id"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	State     StateResponse `json:"state"`
}

type StateResponse struct {
	SessionID string `json:"session_id"`
	Balance   string `json:"balance"`
	Bet       string `json:"bet"`
	LastWin   string `json:"last_win"`
	Seed      uint32 `json:"seed"`
	Spinning  bool   `json:"spinning"`
	Feature   string `json:"feature"` // Активный отложенный бонус или none
}

type BetRequest struct {
	Bet string `json:"bet"`
}

type SeedRequest struct {
	Seed uint32 `json:"seed"`
}

type ForceSpinRequest struct {
	Feature string `json:"feature"` // fool, cups, lovers, priestess, death
	Columns []int  `json:"columns"` // 0-4
}

type SelectRequest struct {
	Index int `json:"index"` // 0-2
}

type Position struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

type Placement struct {
	Col    int    `json:"col"`
	Row    int    `json:"row"`
	Symbol string `json:"symbol"`
}

type Grid struct {
	Cols    int        `json:"cols"`
	Rows    int        `json:"rows"`
	Symbols [][]string `json:"symbols"` // [col][row]
	Locked  []Position `json:"locked,omitempty"`
	Mystery []Position `json:"mystery,omitempty"`
}

type WinLine struct {
	Line   int        `json:"line"` // 1-25
	Symbol string     `json:"symbol"`
	Count  int        `json:"count"`
	Payout string     `json:"payout"` // До множителя бонуса
	Cells  []Position `json:"cells"`
}

type TarotColumn struct {
	Column  int    `json:"column"`
	Symbol  string `json:"symbol"`
	Feature string `json:"feature"`
}

type Trigger struct {
	Feature string `json:"feature"`
	Count   int    `json:"count"`
	Columns []int  `json:"columns"`
}

type Fool struct {
	WildCounts []int       `json:"wild_counts"`
	Wilds      []Position  `json:"wilds"`
	Premiums   []Placement `json:"premiums"`
	Multiplier int         `json:"multiplier"`
}

type CupsLanding struct {
	Col     int  `json:"col"`
	Row     int  `json:"row"`
	Value   int  `json:"value"`
	Result  int  `json:"result"`
	Stacked bool `json:"stacked"`
}

type CupsRound struct {
	Sampled     []Position    `json:"sampled"`
	Landings    []CupsLanding `json:"landings"`
	NewLandings int           `json:"new_landings"`
	LivesLeft   int           `json:"lives_left"`
}

type Cups struct {
	Initial [][]int     `json:"initial"`
	Rounds  []CupsRound `json:"rounds"`
	Board   [][]int     `json:"board"`
	Filled  bool        `json:"filled"`
	Doubled bool        `json:"doubled"`
	Sum     int         `json:"sum"`
	Win     string      `json:"win"`
}

type SpinResponse struct {
	InitialGrid  Grid          `json:"initial_grid"`
	Grid         Grid          `json:"grid"`
	TarotColumns []TarotColumn `json:"tarot_columns"`
	Trigger      *Trigger      `json:"trigger,omitempty"`
	WinLines     []WinLine     `json:"win_lines"`
	Multiplier   int           `json:"multiplier"`
	LineWin      string        `json:"line_win"`
	Fool         *Fool         `json:"fool,omitempty"`
	Cups         *Cups         `json:"cups,omitempty"`
	Deferred     bool          `json:"deferred"` // Бонус продолжается раундами
	TotalWin     string        `json:"total_win"`
	Bet          string        `json:"bet"`
	Balance      string        `json:"balance"`
	Seed         uint32        `json:"seed"` // Состояние генератора до спина
	Forced       bool          `json:"forced"`
}

type LoversOfferResponse struct {
	Round          int      `json:"round"`
	Grid           Grid     `json:"grid"`
	Candidates     []string `json:"candidates"`
	SpinsRemaining int      `json:"spins_remaining"`
	Multiplier     int      `json:"multiplier"`
}

type Area struct {
	Col    int `json:"col"`
	Row    int `json:"row"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type LoversRound struct {
	Round          int          `json:"round"`
	Bond           string       `json:"bond"`
	Tier           string       `json:"tier"`
	Area           Area         `json:"area"`
	Anchors        [2]Placement `json:"anchors"`
	Grid           Grid         `json:"grid"`
	WinLines       []WinLine    `json:"win_lines"`
	Multiplier     int          `json:"multiplier"`
	Win            string       `json:"win"`
	SpinsRemaining int          `json:"spins_remaining"`
}

type PriestessRound struct {
	Round          int        `json:"round"`
	Grid           Grid       `json:"grid"`
	Revealed       Grid       `json:"revealed"`
	NewMystery     []Position `json:"new_mystery"`
	Mystery        []Position `json:"mystery"`
	RevealSymbol   string     `json:"reveal_symbol"`
	WinLines       []WinLine  `json:"win_lines"`
	Multiplier     int        `json:"multiplier"`
	Win            string     `json:"win"`
	SpinsRemaining int        `json:"spins_remaining"`
}

type ClusterWin struct {
	Symbol string     `json:"symbol"`
	Cells  []Position `json:"cells"`
	Size   int        `json:"size"`
	Payout string     `json:"payout"`
}

type DeathCascade struct {
	Clusters       []ClusterWin `json:"clusters"`
	Slashed        []Position   `json:"slashed"`
	ConsumedWilds  []Position   `json:"consumed_wilds"`
	Refills        []Placement  `json:"refills"`
	NewStickyWilds []Position   `json:"new_sticky_wilds"`
	Win            string       `json:"win"`
}

type DeathRound struct {
	Round          int            `json:"round"`
	Cols           int            `json:"cols"`
	Rows           int            `json:"rows"`
	Grid           Grid           `json:"grid"`
	Cascades       []DeathCascade `json:"cascades"`
	Final          Grid           `json:"final"`
	StickyWilds    []Position     `json:"sticky_wilds"`
	Reap           int            `json:"reap"`
	Expansions     int            `json:"expansions"`
	Win            string         `json:"win"`
	SpinsRemaining int            `json:"spins_remaining"`
}

type FeatureRoundResponse struct {
	Feature    string          `json:"feature"`
	Lovers     *LoversRound    `json:"lovers,omitempty"`
	Priestess  *PriestessRound `json:"priestess,omitempty"`
	Death      *DeathRound     `json:"death,omitempty"`
	Completed  bool            `json:"completed"`
	FeatureWin string          `json:"feature_win"`
	Balance    string          `json:"balance"`
}

type RoundRecord struct {
	Index  int                 `json:"index"`
	Win    string              `json:"win"`
	Detail jsoniter.RawMessage `json:"detail"`
}

type PlayRecord struct {
	ID          int64         `json:"id"`
	Seed        uint32        `json:"seed"`
	Bet         string        `json:"bet"`
	Win         string        `json:"win"`
	Balance     string        `json:"balance"`
	Feature     string        `json:"feature"`
	Forced      bool          `json:"forced"`
	Rounds      []RoundRecord `json:"rounds,omitempty"`
	CompletedAt time.Time     `json:"completed_at"`
}

type HistoryResponse struct {
	Plays []PlayRecord `json:"plays"`
}

type StatsResponse struct {
	TotalPlays  int            `json:"total_plays"`
	TotalBet    float64        `json:"total_bet"`
	TotalPayout float64        `json:"total_payout"`
	CurrentRTP  float64        `json:"current_rtp"`
	WindowRTP   float64        `json:"window_rtp"`
	WindowSize  int            `json:"window_size"`
	Triggers    map[string]int `json:"triggers"`
}
