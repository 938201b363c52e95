package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims bind a token to a single game session.
type SessionClaims struct {
	SessionId int64 `json:"session_id"`
	jwt.RegisteredClaims
}

type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func loadSecret() ([]byte, error) {
	secret, ok := os.LookupEnv("SESSION_SECRET")
	if ok && secret != "" {
		return []byte(secret), nil
	}
	secretFile, ok := os.LookupEnv("SESSION_SECRET_FILE")
	if ok && secretFile != "" {
		data, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read session secret file: %w", err)
		}
		return []byte(strings.TrimSpace(string(data))), nil
	}
	if Development() {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("unable to generate session secret: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("no SESSION_SECRET or SESSION_SECRET_FILE env variable set")
}

func NewJWT() (*JWT, error) {
	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}

	lifetime, err := lookupDuration("SESSION_TOKEN_LIFETIME", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	return NewJWTWithSecret(secret, lifetime), nil
}

func NewJWTWithSecret(secret []byte, lifetime time.Duration) *JWT {
	return &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
	}
}

func (j *JWT) Sign(sessionId int64) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionId: sessionId,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(sessionId, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

func (j *JWT) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
