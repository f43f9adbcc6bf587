package rng

// Source - детерминированный генератор xorshift32.
// Каждый публичный вызов делает ровно один шаг состояния (Shuffle - по шагу на перестановку),
// поэтому порядок вызовов полностью определяет результат и его можно воспроизвести по seed.
type Source struct {
	state uint32
}

// New создает генератор с заданным seed. Нулевой seed заменяется на 1.
func New(seed uint32) *Source {
	s := &Source{}
	s.SetState(seed)
	return s
}

// next один шаг xorshift32
func (s *Source) next() uint32 {
	x := s.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	return x
}

// NextFloat возвращает число в [0,1)
func (s *Source) NextFloat() float64 {
	return float64(s.next()) / 4294967296.0
}

// NextInt возвращает целое в [min,max] включительно
func (s *Source) NextInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	n := int(s.NextFloat() * float64(max-min+1))
	return min + n
}

// State текущее состояние (для сохранения и повтора)
func (s *Source) State() uint32 {
	return s.state
}

// SetState сбрасывает состояние. 0 - неподвижная точка xorshift, поэтому заменяется на 1.
func (s *Source) SetState(seed uint32) {
	if seed == 0 {
		seed = 1
	}
	s.state = seed
}

// Choice равновероятный выбор элемента. Для пустого списка возвращает нулевое значение без шага генератора.
func Choice[T any](s *Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[s.NextInt(0, len(items)-1)]
}

// WeightedChoice выбор по весам линейным проходом по накопленной сумме.
// При ошибке округления (выход за сумму) возвращается последний элемент.
func WeightedChoice[T any](s *Source, items []T, weights []float64) T {
	var zero T
	n := min(len(items), len(weights))
	if n == 0 {
		return zero
	}

	total := 0.0
	for i := 0; i < n; i++ {
		total += weights[i]
	}

	roll := s.NextFloat() * total
	cumulative := 0.0
	for i := 0; i < n; i++ {
		cumulative += weights[i]
		if roll < cumulative {
			return items[i]
		}
	}
	return items[n-1]
}

// Shuffle перемешивание Фишера-Йетса на месте
func Shuffle[T any](s *Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.NextInt(0, i)
		items[i], items[j] = items[j], items[i]
	}
}
