package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/api"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	dmodels "github.com/IvanChernomyrdin/go-finance-tracker/internal/server/models"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/logger"
)

// helper: создаёт Handler с моком TransactionsRepo
func newTestHandlerWithTransactions(t *testing.T) (*api.Handler, *svcmocks.MockTransactionsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := svcmocks.NewMockTransactionsRepo(ctrl)
	svc := &service.Services{Transactions: service.NewTransactionsService(repo)}

	return api.NewHandler(svc, logger.NewHTTPLogger(), nil, testAuthConfig().Auth.Cookie), repo
}

func withIdentity(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), middleware.Identity{
		UserID:    userID,
		SessionID: uuid.New(),
		Username:  "alice",
	}))
}

func TestHandler_CreateTransaction_Success(t *testing.T) {
	t.Parallel()

	h, repo := newTestHandlerWithTransactions(t)

	userID := uuid.New()

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, tr dmodels.Transaction) (int64, error) {
			if tr.UserID != userID {
				t.Fatalf("expected owner from session, got %v", tr.UserID)
			}
			return 1, nil
		})

	body := []byte(`{"amount": 42.5, "description": "groceries", "type": "expense", "category": "food", "date": "2024-01-01T00:00:00Z"}`)
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body)), userID)
	rec := httptest.NewRecorder()

	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp api.CreateRecordResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 1 {
		t.Fatalf("expected id=1, got %d", resp.ID)
	}
}

// Отсутствующий amount — 400
func TestHandler_CreateTransaction_MissingAmount(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandlerWithTransactions(t)

	body := []byte(`{"description": "groceries", "type": "expense", "category": "food"}`)
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()

	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

// Без Identity в контексте — 401
func TestHandler_CreateTransaction_Unauthorized(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandlerWithTransactions(t)

	body := []byte(`{"amount": 10, "description": "x", "type": "income", "category": "misc"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestHandler_ListTransactions_Success(t *testing.T) {
	t.Parallel()

	h, repo := newTestHandlerWithTransactions(t)

	userID := uuid.New()

	repo.EXPECT().
		ListByUser(gomock.Any(), userID).
		Return([]dmodels.Transaction{
			{ID: 1, Amount: 42.5, Description: "groceries", Type: "expense", Category: "food", Date: time.Now(), UserID: userID},
		}, nil)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/transactions", nil), userID)
	rec := httptest.NewRecorder()

	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var list []dmodels.Transaction
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 1 || list[0].ID != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

// Пустой список сериализуется как [], а не null
func TestHandler_ListTransactions_Empty(t *testing.T) {
	t.Parallel()

	h, repo := newTestHandlerWithTransactions(t)

	userID := uuid.New()

	repo.EXPECT().
		ListByUser(gomock.Any(), userID).
		Return([]dmodels.Transaction{}, nil)

	req := withIdentity(httptest.NewRequest(http.MethodGet, "/api/transactions", nil), userID)
	rec := httptest.NewRecorder()

	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected [], got %q", got)
	}
}

func TestHandler_DeleteTransaction_Success(t *testing.T) {
	t.Parallel()

	h, repo := newTestHandlerWithTransactions(t)

	userID := uuid.New()

	repo.EXPECT().
		Delete(gomock.Any(), userID, int64(1)).
		Return(nil)

	r := chi.NewRouter()
	r.Delete("/api/transactions/{id}", h.DeleteTransaction)

	req := withIdentity(httptest.NewRequest(http.MethodDelete, "/api/transactions/1", nil), userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}

// Чужая запись — 403
func TestHandler_DeleteTransaction_Forbidden(t *testing.T) {
	t.Parallel()

	h, repo := newTestHandlerWithTransactions(t)

	userID := uuid.New()

	repo.EXPECT().
		Delete(gomock.Any(), userID, int64(1)).
		Return(serr.ErrForbidden)

	r := chi.NewRouter()
	r.Delete("/api/transactions/{id}", h.DeleteTransaction)

	req := withIdentity(httptest.NewRequest(http.MethodDelete, "/api/transactions/1", nil), userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected %d, got %d", http.StatusForbidden, rec.Code)
	}
}

// Несуществующая запись — 404
func TestHandler_DeleteTransaction_NotFound(t *testing.T) {
	t.Parallel()

	h, repo := newTestHandlerWithTransactions(t)

	userID := uuid.New()

	repo.EXPECT().
		Delete(gomock.Any(), userID, int64(99)).
		Return(serr.ErrNotFound)

	r := chi.NewRouter()
	r.Delete("/api/transactions/{id}", h.DeleteTransaction)

	req := withIdentity(httptest.NewRequest(http.MethodDelete, "/api/transactions/99", nil), userID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}

// Нечисловой id — 400
func TestHandler_DeleteTransaction_BadID(t *testing.T) {
	t.Parallel()

	h, _ := newTestHandlerWithTransactions(t)

	r := chi.NewRouter()
	r.Delete("/api/transactions/{id}", h.DeleteTransaction)

	req := withIdentity(httptest.NewRequest(http.MethodDelete, "/api/transactions/abc", nil), uuid.New())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
