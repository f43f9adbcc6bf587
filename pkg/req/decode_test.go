package req

import (
	"strings"
	"testing"
)

type payload struct {
	Bet  string `json:"bet"`
	Seed uint32 `json:"seed"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[payload](strings.NewReader(`{"bet":"0.40","seed":9}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Bet != "0.40" || got.Seed != 9 {
		t.Errorf("got %+v", got)
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	got, err := Decode[payload](strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != (payload{}) {
		t.Errorf("got %+v, want zero value", got)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode[payload](strings.NewReader(`{"seed":"x"`)); err == nil {
		t.Error("expected error for malformed body")
	}
}
