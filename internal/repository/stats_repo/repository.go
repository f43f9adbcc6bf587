package stats_repo

import (
	"sync"

	"tarot_slots/internal/model"
	"tarot_slots/internal/repository"
)

// defaultWindowSize Количество последних игр для RTP окна
const defaultWindowSize = 500

type playResult struct {
	bet    float64
	payout float64
}

// Реализация репозитория статистики RTP
type statsRepo struct {
	mtx sync.RWMutex

	totalPlays  int
	totalBet    float64
	totalPayout float64
	currentRTP  float64
	window      []playResult
	windowSize  int
	windowRTP   float64
	triggers    map[model.FeatureType]int
}

// NewStatsRepository Конструктор репозитория статистики. windowSize <= 0 берет значение по умолчанию.
func NewStatsRepository(windowSize int) repository.StatsRepository {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &statsRepo{
		window:     make([]playResult, 0, windowSize),
		windowSize: windowSize,
		triggers:   make(map[model.FeatureType]int),
	}
}

// UpdateState Обновление статистики после завершенной игры
func (r *statsRepo) UpdateState(bet, payout float64, feature model.FeatureType) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.totalPlays++
	r.totalBet += bet
	r.totalPayout += payout
	if r.totalBet > 0 {
		r.currentRTP = r.totalPayout / r.totalBet * 100
	}
	if feature != model.FeatureNone {
		r.triggers[feature]++
	}

	// Добавляем игру в окно
	r.window = append(r.window, playResult{bet: bet, payout: payout})
	if len(r.window) > r.windowSize {
		r.window = r.window[1:]
	}

	// Пересчитываем RTP в окне
	var windowBet, windowPayout float64
	for _, p := range r.window {
		windowBet += p.bet
		windowPayout += p.payout
	}
	if windowBet > 0 {
		r.windowRTP = windowPayout / windowBet * 100
	} else {
		r.windowRTP = 0
	}
}

// Stats Копия текущей статистики
func (r *statsRepo) Stats() model.Stats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	triggers := make(map[string]int, len(r.triggers))
	for ft, n := range r.triggers {
		triggers[ft.String()] = n
	}
	return model.Stats{
		TotalPlays:  r.totalPlays,
		TotalBet:    r.totalBet,
		TotalPayout: r.totalPayout,
		CurrentRTP:  r.currentRTP,
		WindowRTP:   r.windowRTP,
		WindowSize:  len(r.window),
		Triggers:    triggers,
	}
}
