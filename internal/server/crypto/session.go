// Package crypto содержит криптографические примитивы сервера.
//
// Пакет отвечает за:
//   - хэширование и проверку паролей пользователей;
//   - выпуск подписанных сессионных токенов для cookie;
//   - соблюдение требований безопасности (HS256, срок жизни).
package crypto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenConfig описывает параметры выпуска сессионного токена.
type TokenConfig struct {
	// Issuer — значение поля iss (кто выдал токен).
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// SessionTTL — срок жизни сессии (и токена).
	SessionTTL time.Duration
}

// NewSessionToken создаёт и подписывает токен для сессионной cookie.
//
// Токен содержит стандартные RegisteredClaims:
//   - iss (Issuer)
//   - aud (Audience)
//   - sub (userID)
//   - jti (sessionID — ссылка на строку в таблице sessions)
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
//
// Подпись защищает cookie от подделки, но сама по себе сессию не
// подтверждает: middleware на каждый запрос сверяет jti со строкой в БД,
// поэтому logout мгновенно отзывает токен.
func NewSessionToken(userID, sessionID uuid.UUID, cfg TokenConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  []string{cfg.Audience},
		Subject:   userID.String(),
		ID:        sessionID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.SessionTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}
