package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/crypto"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации и управления сессиями.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин) и выпуск сессионного cookie-токена
//   - завершение сессии (logout)
type AuthService struct {
	users    UsersRepo
	sessions SessionsRepo

	pass  crypto.PasswordParams
	token crypto.TokenConfig
}

// Session — результат успешного логина: подписанный токен для cookie
// плюс данные, которые нужны HTTP-слою для ответа.
type Session struct {
	Token     string
	UserID    uuid.UUID
	Username  string
	ExpiresAt time.Time
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, sessions SessionsRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,

		pass: crypto.PasswordParams{
			Hasher: cfg.Password.Hasher,
			Argon2: crypto.Argon2Params{
				Time:      cfg.Password.Argon2.Time,
				MemoryKiB: cfg.Password.Argon2.MemoryKiB,
				Threads:   cfg.Password.Argon2.Threads,
				KeyLen:    cfg.Password.Argon2.KeyLen,
				SaltLen:   cfg.Password.Argon2.SaltLen,
			},
			BcryptCost: cfg.Password.Bcrypt.Cost,
		},
		token: crypto.TokenConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			SessionTTL: cfg.Auth.SessionTTL,
		},
	}
}

// Register регистрирует нового пользователя.
//
// Валидация: username и пароль обязательны (после trim).
// Пароль хранится только в виде хэша.
//
// Возвращает:
//   - id пользователя
//   - ErrInvalidInput при пустых полях или ErrAlreadyExists если username занят
func (s *AuthService) Register(ctx context.Context, username, password string) (uuid.UUID, error) {
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return uuid.Nil, serr.ErrInvalidInput
	}

	hash, err := crypto.HashPassword(password, s.pass)
	if err != nil {
		return uuid.Nil, serr.ErrInternal
	}
	return s.users.Create(ctx, username, hash)
}

// Login аутентифицирует пользователя и открывает сессию.
//
// Поведение:
//   - не раскрывает факт существования username: и неизвестный
//     пользователь, и неверный пароль, и пустые поля дают
//     одинаковый ErrInvalidCredentials;
//   - при успехе создаёт строку сессии в БД и подписывает токен,
//     ссылающийся на неё.
func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, serr.ErrInvalidCredentials
	}

	userID, hash, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// не палим существование username
		if errors.Is(err, serr.ErrNotFound) {
			return Session{}, serr.ErrInvalidCredentials
		}
		return Session{}, err
	}

	ok, err := crypto.VerifyPassword(password, hash)
	if err != nil {
		return Session{}, serr.ErrInternal
	}
	if !ok {
		return Session{}, serr.ErrInvalidCredentials
	}

	sessionID := uuid.New()
	expiresAt := time.Now().Add(s.token.SessionTTL)

	if err := s.sessions.Create(ctx, sessionID, userID, expiresAt); err != nil {
		return Session{}, err
	}

	token, err := crypto.NewSessionToken(userID, sessionID, s.token)
	if err != nil {
		return Session{}, serr.ErrInternal
	}

	return Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout завершает сессию: удаляет её строку из БД.
// После этого токен в cookie перестаёт проходить проверку middleware.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessions.Delete(ctx, sessionID)
}
