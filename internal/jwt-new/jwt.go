package security

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/silkbloom/internal/domain/models"
)

// имя cookie, в которой клиент держит токен сессии
const SessionCookie = "silkbloom_session"

// NewToken генерирует JWT-токен сессии для указанного пользователя с заданным
// временем жизни. В claims попадает роль, по ней закрываются админ-маршруты.
func NewToken(ctx context.Context, user *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"name": user.Name,
		"role": user.Role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return "", errors.New("JWT_SECRET environment variable is not set")
	}
	secret := []byte(secretStr)
	return token.SignedString(secret)
}
