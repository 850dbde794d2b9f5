package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/api"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/logger"
)

const testSigningKey = "supersecretkeysupersecretkey123456" // >= 32

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			Issuer:     "issuer",
			Audience:   "audience",
			SessionTTL: time.Hour,
			Cookie: config.CookieConfig{
				Name: "ft_session",
			},
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: testSigningKey,
			},
		},
		Password: config.PasswordConfig{
			Hasher: "argon2id",
			Argon2: config.Argon2Config{
				Time:      1,
				MemoryKiB: 8 * 1024,
				Threads:   1,
				KeyLen:    32,
				SaltLen:   16,
			},
		},
	}
}

// NewTestHandler создаёт Handler с моками и конфигом через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, *svcmocks.MockUsersRepo, *svcmocks.MockSessionsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := svcmocks.NewMockUsersRepo(ctrl)
	sessions := svcmocks.NewMockSessionsRepo(ctrl)

	cfg := testAuthConfig()

	authSvc := service.NewAuthService(users, sessions, cfg)
	svc := &service.Services{Auth: authSvc}

	verifier := middleware.NewSessionVerifier(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		cfg.Auth.Cookie.Name,
		sessions,
	)
	log := logger.NewHTTPLogger()

	return api.NewHandler(svc, log, verifier, cfg.Auth.Cookie), users, sessions
}

func TestHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if rec.Body.String() == "" {
		t.Fatalf("expected error body, got empty")
	}
}

func TestHandler_Register_Success(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	username := "alice"
	password := "StrongPass123"
	userID := uuid.New()

	users.EXPECT().
		Create(gomock.Any(), username, gomock.Any()).
		DoAndReturn(func(ctx context.Context, gotUsername, gotHash string) (uuid.UUID, error) {
			if gotUsername != username {
				t.Fatalf("expected username %q, got %q", username, gotUsername)
			}
			if gotHash == "" {
				t.Fatalf("expected non-empty password hash")
			}
			return userID, nil
		})

	body, _ := json.Marshal(api.RegisterRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	req.Header.Set(api.ContentType, api.JsonContentType)
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusCreated, rec.Code, rec.Body.String())
	}
}

// Занятый username — 400, не 409
func TestHandler_Register_UsernameTaken(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	users.EXPECT().
		Create(gomock.Any(), "alice", gomock.Any()).
		Return(uuid.Nil, serr.ErrAlreadyExists)

	body, _ := json.Marshal(api.RegisterRequest{Username: "alice", Password: "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var resp api.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Fatalf("expected error message")
	}
}

// Пустые поля регистрации — 400
func TestHandler_Register_EmptyFields(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	body, _ := json.Marshal(api.RegisterRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_Login_Success(t *testing.T) {
	t.Parallel()

	h, users, sessions := NewTestHandler(t)

	username := "alice"
	password := "StrongPass123"
	userID := uuid.New()

	cfg := testAuthConfig()
	hash, err := crypto.HashPassword(password, crypto.PasswordParams{
		Hasher: cfg.Password.Hasher,
		Argon2: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		},
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	users.EXPECT().
		GetByUsername(gomock.Any(), username).
		Return(userID, hash, nil)
	sessions.EXPECT().
		Create(gomock.Any(), gomock.Any(), userID, gomock.Any()).
		Return(nil)

	body, _ := json.Marshal(api.LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusOK, rec.Code, rec.Body.String())
	}

	// токен уезжает в HttpOnly cookie, а не в тело
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ft_session" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatalf("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatalf("expected HttpOnly cookie")
	}
	if sessionCookie.Value == "" {
		t.Fatalf("expected non-empty cookie value")
	}

	var resp api.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != username {
		t.Fatalf("expected username %q, got %q", username, resp.Username)
	}
}

// Неверные учётные данные — 401
func TestHandler_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	users.EXPECT().
		GetByUsername(gomock.Any(), "alice").
		Return(uuid.Nil, "", serr.ErrNotFound)

	body, _ := json.Marshal(api.LoginRequest{Username: "alice", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

// Пустые поля логина — тоже 401
func TestHandler_Login_EmptyFields(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	body, _ := json.Marshal(api.LoginRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestHandler_Logout_Success(t *testing.T) {
	t.Parallel()

	h, _, sessions := NewTestHandler(t)

	userID := uuid.New()
	sessionID := uuid.New()

	sessions.EXPECT().
		Delete(gomock.Any(), sessionID).
		Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(middleware.ContextWithIdentity(req.Context(), middleware.Identity{
		UserID:    userID,
		SessionID: sessionID,
		Username:  "alice",
	}))
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	// cookie должна быть затёрта
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ft_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected session cookie to be cleared")
	}
}

// check_auth без cookie — isAuthenticated=false, но всегда 200
func TestHandler_CheckAuth_Anonymous(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/check_auth", nil)
	rec := httptest.NewRecorder()

	h.CheckAuth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp api.CheckAuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.IsAuthenticated {
		t.Fatalf("expected isAuthenticated=false")
	}
}

// check_auth с валидной cookie
func TestHandler_CheckAuth_Authenticated(t *testing.T) {
	t.Parallel()

	h, _, sessions := NewTestHandler(t)

	userID := uuid.New()
	sessionID := uuid.New()

	cfg := testAuthConfig()
	token, err := crypto.NewSessionToken(userID, sessionID, crypto.TokenConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		SessionTTL: cfg.Auth.SessionTTL,
	})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	sessions.EXPECT().
		GetByID(gomock.Any(), sessionID).
		Return(userID, "alice", time.Now().Add(time.Hour), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/check_auth", nil)
	req.AddCookie(&http.Cookie{Name: "ft_session", Value: token})
	rec := httptest.NewRecorder()

	h.CheckAuth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp api.CheckAuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.IsAuthenticated {
		t.Fatalf("expected isAuthenticated=true")
	}
	if resp.Username != "alice" {
		t.Fatalf("expected username alice, got %q", resp.Username)
	}
}
