// HTTP-хендлеры регистрации, логина, logout и проверки сессии
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse описывает успешный ответ входа пользователя.
// Сам токен в тело не попадает — он уезжает в HttpOnly cookie.
type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// CheckAuthResponse описывает ответ проверки сессии.
type CheckAuthResponse struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Username        string `json:"username,omitempty"`
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON, пустые поля или username уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates a new user account. The password is stored as a salted hash only.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Missing fields or username taken"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	_, err := h.Svc.Auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrAlreadyExists):
			// занятый username — это 400, а не 409: фронтенд различает только 400/401
			WriteError(w, http.StatusBadRequest, serr.ErrAlreadyExists)
		default:
			h.Log.Logger.Sugar().Error("register failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, MessageResponse{Message: "user registered successfully"})
}

// Login обрабатывает вход пользователя и установку сессионной cookie.
//
// Ответы:
//   - 200 OK: успешный вход, cookie установлена;
//   - 400 Bad Request: неверный JSON;
//   - 401 Unauthorized: неверные учётные данные (в том числе пустые);
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Authenticates a user and sets an HttpOnly session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} ErrorResponse "Bad JSON"
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	sess, err := h.Svc.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
		default:
			h.Log.Logger.Sugar().Error("login failed")
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	h.setSessionCookie(w, sess)

	WriteJSON(w, http.StatusOK, LoginResponse{
		Message:  "login successful",
		Username: sess.Username,
	})
}

// Logout завершает текущую сессию.
//
// Требует аутентификацию (middleware), удаляет строку сессии из БД
// и очищает cookie.
//
// Ответы:
//   - 200 OK: сессия завершена;
//   - 401 Unauthorized: нет валидной сессии;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Logout
// @Description  Revokes the current session and clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} MessageResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	if err := h.Svc.Auth.Logout(r.Context(), ident.SessionID); err != nil {
		h.Log.Logger.Sugar().Errorw("logout failed", "error", err, "user_id", ident.UserID.String())
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	h.clearSessionCookie(w)

	WriteJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// CheckAuth сообщает фронтенду, есть ли у запроса валидная сессия.
//
// Эндпоинт никогда не отвечает ошибкой: невалидная сессия — это
// обычный ответ {"isAuthenticated": false}.
//
// @Summary      Check authentication
// @Description  Reports whether the request carries a valid session. Never fails.
// @Tags         auth
// @Produce      json
// @Success      200 {object} CheckAuthResponse
// @Router       /check_auth [get]
func (h *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	ident, err := h.Verifier.Resolve(r)
	if err != nil {
		WriteJSON(w, http.StatusOK, CheckAuthResponse{IsAuthenticated: false})
		return
	}

	WriteJSON(w, http.StatusOK, CheckAuthResponse{
		IsAuthenticated: true,
		Username:        ident.Username,
	})
}

// setSessionCookie устанавливает HttpOnly cookie с подписанным токеном.
// SameSite=Lax достаточно для SPA на том же origin; Secure берётся из конфига.
func (h *Handler) setSessionCookie(w http.ResponseWriter, sess service.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie затирает сессионную cookie.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
