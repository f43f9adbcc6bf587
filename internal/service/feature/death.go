package feature

import (
	"sort"

	"tarot_slots/internal/config"
	"tarot_slots/internal/model"
	"tarot_slots/pkg/rng"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DeathState растущее поле, липкие вайлды и шкала жатвы
type DeathState struct {
	base
	cols    int
	rows    int
	sticky  map[model.Position]bool
	reap    int
	reached int  // сколько порогов уже пересечено
	growCol bool // следующее расширение по колонкам
	pending int  // расширений к следующему раунду
}

func (s *DeathState) Type() model.FeatureType {
	return model.FeatureDeath
}

// Size текущий размер поля
func (s *DeathState) Size() (cols, rows int) {
	return s.cols, s.rows
}

// Reap значение шкалы жатвы
func (s *DeathState) Reap() int {
	return s.reap
}

// StickyWilds липкие вайлды по порядку колонок и рядов
func (s *DeathState) StickyWilds() []model.Position {
	out := make([]model.Position, 0, len(s.sticky))
	for p := range s.sticky {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func (e *Engine) StartDeath(trigger model.FeatureTrigger, bet decimal.Decimal) *DeathState {
	return &DeathState{
		base:    base{trigger: trigger, bet: bet, remaining: e.cfg.Death().RoundsFor(trigger.Count), win: decimal.Zero},
		cols:    model.DefaultCols,
		rows:    model.DefaultRows,
		sticky:  make(map[model.Position]bool),
		growCol: true,
	}
}

// PlayDeathRound раунд смерти: поле текущего размера, каскады кластеров до затишья,
// расширение поля после раунда за каждый пересеченный порог
func (e *Engine) PlayDeathRound(src *rng.Source, st *DeathState) (*model.DeathRound, error) {
	if st.remaining <= 0 {
		return nil, ErrFeatureFinished
	}
	settings := e.cfg.Death()
	wild := e.symbols.Wild()

	board := e.gen.Fill(src, st.cols, st.rows)
	for p := range st.sticky {
		board.SetCell(p.Col, p.Row, model.Cell{Symbol: wild, Locked: true})
	}

	round := &model.DeathRound{
		Round: st.played + 1,
		Cols:  st.cols,
		Rows:  st.rows,
		Grid:  board.Clone(),
		Win:   decimal.Zero,
	}

	work := board
	for i := 0; i < settings.MaxCascades; i++ {
		clusters := FindClusters(work, settings.ClusterMin, e.symbols.IsWild)
		if len(clusters) == 0 {
			break
		}
		cascade := e.cascade(src, st, work, clusters, settings)
		round.Win = round.Win.Add(cascade.Win)
		round.Cascades = append(round.Cascades, cascade)
	}
	if len(round.Cascades) == settings.MaxCascades {
		e.logger.Info("death cascade limit reached", zap.Int("round", round.Round))
	}

	st.played++
	st.remaining--
	st.win = st.win.Add(round.Win)

	round.Expansions = st.pending
	for ; st.pending > 0; st.pending-- {
		e.grow(st, settings)
	}

	round.Final = work
	round.StickyWilds = st.StickyWilds()
	round.Reap = st.reap
	round.SpinsRemaining = st.remaining
	return round, nil
}

// cascade выплата кластеров, выбивание и досыпание на месте
func (e *Engine) cascade(src *rng.Source, st *DeathState, board *model.Grid, clusters []model.ClusterWin, settings config.DeathSettings) model.DeathCascade {
	out := model.DeathCascade{Clusters: clusters, Win: decimal.Zero}

	slashed := make(map[model.Position]bool)
	for i := range clusters {
		pay := settings.ClusterPay(clusters[i].Size).Mul(st.bet)
		clusters[i].Payout = pay
		out.Win = out.Win.Add(pay)
		for _, p := range clusters[i].Cells {
			slashed[p] = true
		}
	}

	for c := 0; c < board.Cols; c++ {
		for r := 0; r < board.Rows; r++ {
			p := model.Position{Col: c, Row: r}
			if !slashed[p] {
				continue
			}
			out.Slashed = append(out.Slashed, p)
			if st.sticky[p] {
				delete(st.sticky, p)
				out.ConsumedWilds = append(out.ConsumedWilds, p)
			}
			board.Set(c, r, model.Empty)
		}
	}

	wild := e.symbols.Wild()
	for _, p := range out.Slashed {
		if src.NextFloat() < settings.StickyWildChance {
			board.SetCell(p.Col, p.Row, model.Cell{Symbol: wild, Locked: true})
			st.sticky[p] = true
			out.NewStickyWilds = append(out.NewStickyWilds, p)
			out.Refills = append(out.Refills, model.Placement{Position: p, Symbol: wild})
			e.addReap(st, settings)
			continue
		}
		sym := rng.WeightedChoice(src, e.regular.IDs, e.regular.Weights)
		board.Set(p.Col, p.Row, sym)
		out.Refills = append(out.Refills, model.Placement{Position: p, Symbol: sym})
	}
	return out
}

// addReap шкала жатвы, за каждый пересеченный порог бонусный раунд и расширение поля
func (e *Engine) addReap(st *DeathState, settings config.DeathSettings) {
	st.reap++
	for st.reached < len(settings.ReapThresholds) && st.reap >= settings.ReapThresholds[st.reached] {
		st.reached++
		st.remaining++
		st.pending++
	}
}

// grow чередует колонку и ряд; если одно измерение упёрлось в предел, растет другое
func (e *Engine) grow(st *DeathState, settings config.DeathSettings) {
	canCol := st.cols < settings.MaxCols
	canRow := st.rows < settings.MaxRows
	switch {
	case st.growCol && canCol, !canRow && canCol:
		st.cols++
		st.growCol = false
	case canRow:
		st.rows++
		st.growCol = true
	}
}

// FindClusters связные группы одинаковых символов размера не меньше minSize.
// Соседство по сторонам. Вайлд присоединяется к любой группе, но сам группу не начинает.
func FindClusters(board *model.Grid, minSize int, isWild func(string) bool) []model.ClusterWin {
	visited := make(map[model.Position]bool)
	dirs := [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	var clusters []model.ClusterWin

	for c := 0; c < board.Cols; c++ {
		for r := 0; r < board.Rows; r++ {
			start := model.Position{Col: c, Row: r}
			sym := board.At(c, r)
			if visited[start] || sym == model.Empty || isWild(sym) {
				continue
			}

			seen := map[model.Position]bool{start: true}
			queue := []model.Position{start}
			var component []model.Position
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				component = append(component, cur)
				for _, d := range dirs {
					next := model.Position{Col: cur.Col + d[0], Row: cur.Row + d[1]}
					if !board.In(next.Col, next.Row) || seen[next] {
						continue
					}
					if s := board.At(next.Col, next.Row); s == sym || isWild(s) {
						seen[next] = true
						queue = append(queue, next)
					}
				}
			}

			for _, p := range component {
				if !isWild(board.At(p.Col, p.Row)) {
					visited[p] = true
				}
			}
			if len(component) >= minSize {
				sortPositions(component)
				clusters = append(clusters, model.ClusterWin{Symbol: sym, Cells: component, Size: len(component)})
			}
		}
	}
	return clusters
}

func sortPositions(ps []model.Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Col != ps[j].Col {
			return ps[i].Col < ps[j].Col
		}
		return ps[i].Row < ps[j].Row
	})
}
