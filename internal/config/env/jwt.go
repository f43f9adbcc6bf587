package env

import (
	"fmt"
	"os"
	"time"

	"tarot_slots/internal/config"
)

const (
	accessTokenKeyEnvName      = "SESSION_TOKEN_SECRET"
	accessTokenDurationEnvName = "SESSION_TOKEN_TTL"

	defaultAccessTokenDuration = 24 * time.Hour
)

type jwtConfig struct {
	accessTokenSecretKey string
	accessTokenDuration  time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	accessToken := os.Getenv(accessTokenKeyEnvName)
	if len(accessToken) == 0 {
		return nil, fmt.Errorf("session token secret key not found")
	}

	accessTokenDurationParsed := defaultAccessTokenDuration
	accessTokenDuration := os.Getenv(accessTokenDurationEnvName)
	if len(accessTokenDuration) > 0 {
		d, err := time.ParseDuration(accessTokenDuration)
		if err != nil {
			return nil, fmt.Errorf("invalid session token duration: %w", err)
		}
		accessTokenDurationParsed = d
	}

	return &jwtConfig{
		accessTokenSecretKey: accessToken,
		accessTokenDuration:  accessTokenDurationParsed,
	}, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}
