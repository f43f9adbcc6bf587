package token

import (
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	signed, expiresAt, err := GenerateSessionToken("3f1c", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("token already expired at %v", expiresAt)
	}

	claims, err := VerifyToken(signed, secret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "3f1c" {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	secret := []byte("test-secret")
	expired, _, err := GenerateSessionToken("a", secret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	valid, _, err := GenerateSessionToken("a", secret, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{name: "expired", token: expired, secret: secret},
		{name: "wrong secret", token: valid, secret: []byte("other")},
		{name: "garbage", token: "not.a.token", secret: secret},
		{name: "empty", token: "", secret: secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyToken(tt.token, tt.secret); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
