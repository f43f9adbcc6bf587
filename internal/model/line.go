package model

import "github.com/shopspring/decimal"

// SpinResult результат одного спина
type SpinResult struct {
	InitialGrid  *Grid // поле после генерации
	Grid         *Grid // поле после преобразований бонуса
	TarotColumns []TarotColumn
	Trigger      *FeatureTrigger

	WinLines   []WinLine
	Multiplier int
	LineWin    decimal.Decimal // сумма линий до множителя

	Fool *FoolOutcome
	Cups *CupsOutcome

	// Deferred бонус запущен и будет оплачен по завершении своих раундов
	Deferred bool

	TotalWin decimal.Decimal
	Bet      decimal.Decimal
	Balance  decimal.Decimal
	Seed     uint32 // состояние генератора до спина
	Forced   bool
}

// WinLine выигрышная линия
type WinLine struct {
	Line   int // номер линии с 1
	Symbol string
	Count  int
	Payout decimal.Decimal
	Cells  []Position
}
