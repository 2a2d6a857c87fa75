package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookmark_service/internal/models"
)

var (
	ErrNoSecret     = errors.New("signing secret is not configured")
	ErrInvalidToken = errors.New("invalid token")
)

// * NewToken выпускает access-токен с claims {sub, email, exp}
func NewToken(account models.Account, secret string, ttl time.Duration) (string, error) {
	const op = "jwt.NewToken"

	if secret == "" {
		return "", fmt.Errorf("%s: %w", op, ErrNoSecret)
	}

	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// * ParseToken проверяет подпись и срок действия и возвращает id аккаунта
func ParseToken(tokenStr, secret string) (int64, error) {
	const op = "jwt.ParseToken"

	claims := jwt.MapClaims{}

	parsedToken, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%s: unexpected signing method", op)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if !parsedToken.Valid {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	subFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, fmt.Errorf("%s: missing sub claim: %w", op, ErrInvalidToken)
	}

	return int64(subFloat), nil
}
