// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// identityKey — ключ контекста, под которым хранится Identity
// аутентифицированного пользователя.
const identityKey ctxKey = "identity"

// Identity — кто сделал запрос: пользователь и его сессия.
type Identity struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Username  string
}

// SessionStore — минимально нужное middleware от слоя repository:
// свежее чтение сессии по id на каждый запрос.
type SessionStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (userID uuid.UUID, username string, expiresAt time.Time, err error)
}

// SessionVerifier инкапсулирует проверку сессионной cookie.
//
// Используется в HTTP middleware для:
//   - проверки подписи cookie-токена (HS256)
//   - валидации issuer и audience
//   - сверки jti со строкой сессии в БД (logout = строка удалена)
//   - извлечения userID из claims.Subject
type SessionVerifier struct {
	SigningKey string // симметричный ключ для подписи (HS256)
	Issuer     string // ожидаемый issuer (опционально)
	Audience   string // ожидаемая audience (опционально)
	CookieName string // имя сессионной cookie

	Sessions SessionStore
}

// NewSessionVerifier создаёт новый SessionVerifier с заданными параметрами.
func NewSessionVerifier(signingKey, issuer, audience, cookieName string, sessions SessionStore) *SessionVerifier {
	return &SessionVerifier{
		SigningKey: signingKey,
		Issuer:     issuer,
		Audience:   audience,
		CookieName: cookieName,
		Sessions:   sessions,
	}
}

// ContextWithIdentity кладёт Identity в контекст.
// Используется middleware и тестами хендлеров.
func ContextWithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromContext извлекает Identity аутентифицированного пользователя
// из контекста.
//
// Возвращает false, если пользователь не аутентифицирован.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(identityKey)
	id, ok := v.(Identity)
	return id, ok
}

// Resolve проверяет сессионную cookie запроса и возвращает Identity.
//
// Шаги:
//   - достаём cookie;
//   - валидируем подпись и claims токена;
//   - читаем сессию из БД по jti — свежим запросом, без кэша,
//     чтобы отозванная (logout) сессия умирала мгновенно;
//   - сверяем владельца сессии с claims.Subject.
//
// Любая несостыковка — ErrUnauthorized.
func (v *SessionVerifier) Resolve(r *http.Request) (Identity, error) {
	cookie, err := r.Cookie(v.CookieName)
	if err != nil || cookie.Value == "" {
		return Identity{}, serr.ErrUnauthorized
	}

	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err = parser.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		return []byte(v.SigningKey), nil
	})
	if err != nil {
		return Identity{}, serr.ErrUnauthorized
	}

	if v.Issuer != "" && claims.Issuer != v.Issuer {
		return Identity{}, serr.ErrUnauthorized
	}

	if v.Audience != "" {
		ok := false
		for _, aud := range claims.Audience {
			if aud == v.Audience {
				ok = true
				break
			}
		}
		if !ok {
			return Identity{}, serr.ErrUnauthorized
		}
	}

	sessionID, err := uuid.Parse(strings.TrimSpace(claims.ID))
	if err != nil {
		return Identity{}, serr.ErrUnauthorized
	}

	// свежее чтение: строка могла быть удалена logout-ом после выпуска токена
	userID, username, expiresAt, err := v.Sessions.GetByID(r.Context(), sessionID)
	if err != nil {
		return Identity{}, serr.ErrUnauthorized
	}
	if time.Now().After(expiresAt) {
		return Identity{}, serr.ErrUnauthorized
	}
	if claims.Subject != userID.String() {
		return Identity{}, serr.ErrUnauthorized
	}

	return Identity{
		UserID:    userID,
		SessionID: sessionID,
		Username:  username,
	}, nil
}

// AuthMiddleware возвращает HTTP middleware, требующий валидную сессию.
//
// Middleware кладёт Identity в context.Context; проверка аутентификации
// всегда происходит раньше любых проверок владения записями.
// В случае ошибки возвращает HTTP 401 Unauthorized с JSON-телом.
func (v *SessionVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := v.Resolve(r)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), ident)))
		})
	}
}

// writeUnauthorized пишет 401 в том же JSON-формате, что и api слой.
// Middleware не может импортировать api (цикл), поэтому кодирует сам.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": serr.ErrUnauthorized.Error(),
	})
}
