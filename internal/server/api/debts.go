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

// ListDebts возвращает все долги текущего пользователя.
//
// @Summary      List debts
// @Description  Returns all debts of the authenticated user, newest first.
// @Tags         debts
// @Produce      json
// @Success      200 {array} models.Debt
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /debts [get]
func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	list, err := h.Svc.Debts.List(r.Context(), ident.UserID)
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list debts failed", "error", err, "user_id", ident.UserID.String())
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	WriteJSON(w, http.StatusOK, list)
}

// CreateDebt создаёт новый долг для аутентифицированного пользователя.
//
// @Summary      Create debt
// @Description  Creates a new lent/borrowed record owned by the authenticated user.
// @Tags         debts
// @Accept       json
// @Produce      json
// @Param        request body models.CreateDebtRequest true "Create debt request"
// @Success      201 {object} CreateRecordResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /debts [post]
func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	id, err := h.Svc.Debts.Create(r.Context(), ident.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Logger.Sugar().Errorw("create debt failed", "error", err, "user_id", ident.UserID.String())
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, CreateRecordResponse{Message: "debt added", ID: id})
}

// DeleteDebt удаляет долг по id.
//
// Семантика та же, что у DeleteTransaction: 403 для чужой записи,
// 404 для отсутствующей.
//
// @Summary      Delete debt
// @Description  Deletes a debt by id. Only the owner may delete a record.
// @Tags         debts
// @Produce      json
// @Param        id path int true "Debt ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Record owned by another user"
// @Failure      404 {object} ErrorResponse "Not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /debts/{id} [delete]
func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Svc.Debts.Delete(r.Context(), ident.UserID, id); err != nil {
		switch {
		case errors.Is(err, serr.ErrForbidden):
			WriteError(w, http.StatusForbidden, err)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, err)
		default:
			h.Log.Logger.Sugar().Errorw(
				"delete debt failed",
				"error", err,
				"user_id", ident.UserID.String(),
				"debt_id", id,
			)
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, MessageResponse{Message: "debt deleted"})
}
