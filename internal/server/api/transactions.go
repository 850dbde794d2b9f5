package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-finance-tracker/internal/shared/errors"
)

// CreateRecordResponse успешный ответ создания операции или долга.
type CreateRecordResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ListTransactions возвращает все операции текущего пользователя.
//
// Пользователь определяется по сессионной cookie (middleware).
// Порядок — по дате по убыванию; пустой результат отдаётся как [].
//
// @Summary      List transactions
// @Description  Returns all transactions of the authenticated user, newest first.
// @Tags         transactions
// @Produce      json
// @Success      200 {array} models.Transaction
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions [get]
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	list, err := h.Svc.Transactions.List(r.Context(), ident.UserID)
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list transactions failed", "error", err, "user_id", ident.UserID.String())
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	WriteJSON(w, http.StatusOK, list)
}

// CreateTransaction создаёт новую операцию для аутентифицированного пользователя.
//
// Владелец записи берётся из сессии, а не из тела запроса.
//
// Возможные ошибки:
//   - ErrInvalidInput — отсутствующие/невалидные поля или плохая дата;
//   - ErrUnauthorized — пользователь не аутентифицирован;
//   - ErrInternal — внутренняя ошибка сервера.
//
// @Summary      Create transaction
// @Description  Creates a new income/expense record owned by the authenticated user.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body models.CreateTransactionRequest true "Create transaction request"
// @Success      201 {object} CreateRecordResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions [post]
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	id, err := h.Svc.Transactions.Create(r.Context(), ident.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Logger.Sugar().Errorw("create transaction failed", "error", err, "user_id", ident.UserID.String())
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, CreateRecordResponse{Message: "transaction added", ID: id})
}

// DeleteTransaction удаляет операцию по id.
//
// Проверка аутентификации выполняется middleware до проверки владения.
// Чужая запись — 403, отсутствующая — 404; повторное удаление
// уже удалённой записи тоже 404.
//
// @Summary      Delete transaction
// @Description  Deletes a transaction by id. Only the owner may delete a record.
// @Tags         transactions
// @Produce      json
// @Param        id path int true "Transaction ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Record owned by another user"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /transactions/{id} [delete]
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	if err := h.Svc.Transactions.Delete(r.Context(), ident.UserID, id); err != nil {
		switch {
		case errors.Is(err, serr.ErrForbidden):
			WriteError(w, http.StatusForbidden, err)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, err)
		default:
			h.Log.Logger.Sugar().Errorw(
				"delete transaction failed",
				"error", err,
				"user_id", ident.UserID.String(),
				"transaction_id", id,
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, MessageResponse{Message: "transaction deleted"})
}
