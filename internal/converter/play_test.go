package converter

import (
	"errors"
	"testing"

	dto "tarot_slots/internal/api/dto/play"
	"tarot_slots/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSpinResponseKeepsExactAmounts(t *testing.T) {
	// ставка 0.20 на 25 линий: LEMON x3 дает 0.008, CHERRY x3 - 0.024
	res := model.SpinResult{
		WinLines: []model.WinLine{
			{Line: 1, Symbol: "LEMON", Count: 3, Payout: dec("0.008")},
			{Line: 4, Symbol: "CHERRY", Count: 3, Payout: dec("0.024")},
		},
		Multiplier: 1,
		LineWin:    dec("0.032"),
		TotalWin:   dec("0.032"),
		Bet:        dec("0.20"),
		Balance:    dec("99.832"),
	}

	out := ToSpinResponse(res)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"lemon line", out.WinLines[0].Payout, "0.008"},
		{"cherry line", out.WinLines[1].Payout, "0.024"},
		{"line win", out.LineWin, "0.032"},
		{"total win", out.TotalWin, "0.032"},
		{"balance", out.Balance, "99.832"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	sum := decimal.Zero
	for _, wl := range out.WinLines {
		sum = sum.Add(dec(wl.Payout))
	}
	if !sum.Equal(dec(out.TotalWin)) {
		t.Errorf("win lines add up to %s, total win %s", sum, out.TotalWin)
	}
}

func TestToBetPrecision(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{"0.20", "0.2", nil},
		{"1", "1", nil},
		{"0.200", "0.2", nil},
		{"0.001", "", ErrMoneyPrecision},
		{"0.205", "", ErrMoneyPrecision},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ToBet(dto.BetRequest{Bet: tt.raw})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToBet: %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("bet = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := ToBet(dto.BetRequest{}); err == nil {
		t.Error("empty bet accepted")
	}
}

func TestToSessionRequestAbsentVersusZero(t *testing.T) {
	absent, err := ToSessionRequest(dto.OpenSessionRequest{Seed: 5})
	if err != nil {
		t.Fatalf("ToSessionRequest: %v", err)
	}
	if absent.Balance != nil || absent.Bet != nil {
		t.Errorf("absent amounts parsed as %v / %v", absent.Balance, absent.Bet)
	}

	zero, err := ToSessionRequest(dto.OpenSessionRequest{Balance: "0", Bet: "0.40"})
	if err != nil {
		t.Fatalf("ToSessionRequest: %v", err)
	}
	if zero.Balance == nil || !zero.Balance.IsZero() {
		t.Errorf("explicit zero balance = %v", zero.Balance)
	}
	if zero.Bet == nil || !zero.Bet.Equal(dec("0.4")) {
		t.Errorf("bet = %v", zero.Bet)
	}

	if _, err := ToSessionRequest(dto.OpenSessionRequest{Balance: "1.999"}); !errors.Is(err, ErrMoneyPrecision) {
		t.Errorf("err = %v, want ErrMoneyPrecision", err)
	}
}
