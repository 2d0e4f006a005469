package handler

import (
	"net/http"

	"github.com/aidar/circles/internal/middleware"
	"github.com/aidar/circles/internal/service"
)

// RegistrationHandler обрабатывает эндпоинты записи на круги
type RegistrationHandler struct {
	regService *service.RegistrationService
}

// NewRegistrationHandler создает новый RegistrationHandler
func NewRegistrationHandler(regService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		regService: regService,
	}
}

// Register обрабатывает PUT /circles/register
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	if err := h.regService.Register(r.Context(), circleID, middleware.GetUserIDFromContext(r.Context())); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully registered for circle", nil)
}

// Unregister обрабатывает DELETE /circles/register (идемпотентная операция)
func (h *RegistrationHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	if err := h.regService.Unregister(r.Context(), circleID, middleware.GetUserIDFromContext(r.Context())); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully deregistered for circle", nil)
}

// GetRegistrations обрабатывает POST /circles/registrations
func (h *RegistrationHandler) GetRegistrations(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	users, err := h.regService.ListUsers(r.Context(), circleID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched all registrations", users)
}

// GetRegistered обрабатывает GET /circles/registered
func (h *RegistrationHandler) GetRegistered(w http.ResponseWriter, r *http.Request) {
	circles, err := h.regService.ListCircles(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched all circles registered for", circles)
}
