package handler

import (
	"net/http"

	"github.com/aidar/circles/internal/middleware"
	"github.com/aidar/circles/internal/service"
)

// FlagHandler обрабатывает эндпоинты жалоб
type FlagHandler struct {
	flagService *service.FlagService
}

// NewFlagHandler создает новый FlagHandler
func NewFlagHandler(flagService *service.FlagService) *FlagHandler {
	return &FlagHandler{
		flagService: flagService,
	}
}

// Add обрабатывает PUT /circles/flags
func (h *FlagHandler) Add(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	flag, err := h.flagService.Add(r.Context(), circleID, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "flag successfully created", flag)
}

// GetByCircle обрабатывает POST /circles/flags
func (h *FlagHandler) GetByCircle(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	flags, err := h.flagService.ListByCircle(r.Context(), circleID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched all flags", flags)
}

// Withdraw обрабатывает DELETE /circles/flag
func (h *FlagHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	if err := h.flagService.Withdraw(r.Context(), circleID, middleware.GetUserIDFromContext(r.Context())); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully deleted flag", nil)
}

// GetFlagged обрабатывает GET /circles/flags (только для администратора)
func (h *FlagHandler) GetFlagged(w http.ResponseWriter, r *http.Request) {
	flagged, err := h.flagService.ListFlagged(r.Context(), middleware.GetRoleFromContext(r.Context()))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched all flagged circles", flagged)
}

// Clear обрабатывает DELETE /circles/flags (только для администратора)
func (h *FlagHandler) Clear(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	if err := h.flagService.Clear(r.Context(), middleware.GetRoleFromContext(r.Context()), circleID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully deleted all flags relating to a circle", nil)
}
