package middleware

import (
	"context"
	"net/http"
	"strings"

	"tarot_slots/pkg/token"
)

type ctxKey struct{}

// WithSessionID кладет id сессии в контекст
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessionID)
}

// SessionIDFromContext id сессии из проверенного токена
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && len(id) > 0
}

// Auth проверяет токен сессии из заголовка Authorization: Bearer или параметра token (для websocket)
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if len(raw) == 0 {
				http.Error(w, "missing session token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				http.Error(w, "invalid session token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), claims.Subject)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return r.URL.Query().Get("token")
}
