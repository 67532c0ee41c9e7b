package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential возвращается, если credential не является JWT с субъектом
var ErrInvalidCredential = errors.New("invalid credential")

// SubjectFromCredential извлекает идентификатор пользователя (claim sub) из credential провайдера.
// Подпись не проверяется: credential проверяет backend при обмене на токен.
func SubjectFromCredential(credential string) (string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCredential)
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, &claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidCredential)
	}

	return subject, nil
}
