package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidConfig возвращается при неполной конфигурации издателя или верификатора
	ErrInvalidConfig = errors.New("auth: invalid config")
	// ErrMissingSubject токен не содержит sub
	ErrMissingSubject = errors.New("auth: token missing subject")
)

// TokenConfig содержит конфигурацию backend токенов
type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// TokenIssuer выпускает и проверяет backend JWT (HS256).
// Subject токена - канонический идентификатор пользователя.
type TokenIssuer struct {
	now func() time.Time
	cfg TokenConfig
}

// NewTokenIssuer создает издателя токенов с проверенной конфигурацией
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	cfg.Issuer = strings.TrimSpace(cfg.Issuer)
	cfg.Audience = strings.TrimSpace(cfg.Audience)

	switch {
	case len(cfg.Secret) == 0:
		return nil, fmt.Errorf("%w: signing secret is required", ErrInvalidConfig)
	case cfg.Issuer == "":
		return nil, fmt.Errorf("%w: issuer is required", ErrInvalidConfig)
	case cfg.Audience == "":
		return nil, fmt.Errorf("%w: audience is required", ErrInvalidConfig)
	case cfg.TTL <= 0:
		return nil, fmt.Errorf("%w: token ttl must be positive", ErrInvalidConfig)
	}

	return &TokenIssuer{cfg: cfg, now: time.Now}, nil
}

// Issue создает подписанный токен для userID и возвращает его время жизни в секундах
func (i *TokenIssuer) Issue(userID string) (string, int64, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", 0, ErrMissingSubject
	}

	now := i.now().UTC()
	expiresAt := now.Add(i.cfg.TTL)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    i.cfg.Issuer,
		Audience:  jwt.ClaimStrings{i.cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.cfg.Secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, int64(i.cfg.TTL.Seconds()), nil
}

// Validate проверяет подпись, издателя, аудиторию и срок действия токена.
// Возвращает subject.
func (i *TokenIssuer) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithAudience(i.cfg.Audience),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
