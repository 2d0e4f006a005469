package handler

import (
	"net/http"
	"time"

	"github.com/aidar/circles/internal/domain"
	"github.com/aidar/circles/internal/middleware"
	"github.com/aidar/circles/internal/service"
)

// CircleHandler обрабатывает эндпоинты кругов
type CircleHandler struct {
	circleService *service.CircleService
}

// NewCircleHandler создает новый CircleHandler
func NewCircleHandler(circleService *service.CircleService) *CircleHandler {
	return &CircleHandler{
		circleService: circleService,
	}
}

// GetAll обрабатывает GET /circles/all
func (h *CircleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	circles, err := h.circleService.ListAll(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched all circles", circles)
}

// Get обрабатывает POST /circles/get
func (h *CircleHandler) Get(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	circle, err := h.circleService.GetCircle(r.Context(), circleID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched circle details", circle)
}

// GetFollowing обрабатывает GET /circles/following
func (h *CircleHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	circles, err := h.circleService.ListFollowing(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched following circles", circles)
}

// HostRequest тело запроса кругов хоста
type HostRequest struct {
	HostID string `json:"host_id"`
}

// GetByHost обрабатывает POST /circles/user
func (h *CircleHandler) GetByHost(w http.ResponseWriter, r *http.Request) {
	var req HostRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.HostID == "" {
		RespondWithValidationError(w, r, map[string]string{"host_id": "required"})
		return
	}

	circles, err := h.circleService.ListByHost(r.Context(), req.HostID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched all circles by user", circles)
}

// AddCircleRequest представляет тело запроса на создание круга
type AddCircleRequest struct {
	HostID            string    `json:"host_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ParticipantsLimit int       `json:"participants_limit"`
	StartDate         time.Time `json:"start_date"`
}

// Add обрабатывает PUT /circles/add
func (h *CircleHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddCircleRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	// Валидация запроса
	fields := map[string]string{}
	if req.HostID == "" {
		fields["host_id"] = "required"
	}
	if req.Title == "" {
		fields["title"] = "required"
	}
	if req.StartDate.IsZero() {
		fields["start_date"] = "required"
	}
	if req.ParticipantsLimit < 0 {
		fields["participants_limit"] = "must be positive"
	}
	if len(fields) > 0 {
		RespondWithValidationError(w, r, fields)
		return
	}

	circle, err := h.circleService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), service.CreateCircleInput{
		HostID:            req.HostID,
		Title:             req.Title,
		Description:       req.Description,
		ParticipantsLimit: req.ParticipantsLimit,
		StartDate:         req.StartDate,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "circle created", circle)
}

// EditCircleRequest представляет тело запроса на изменение круга (все поля кроме circle_id опциональны)
type EditCircleRequest struct {
	CircleID          string     `json:"circle_id"`
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	ParticipantsLimit *int       `json:"participants_limit"`
	StartDate         *time.Time `json:"start_date"`
	IsLive            *bool      `json:"is_live"`
	IsEnded           *bool      `json:"is_ended"`
}

// Edit обрабатывает PATCH /circles/edit
func (h *CircleHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req EditCircleRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if req.CircleID == "" {
		RespondWithValidationError(w, r, map[string]string{"circle_id": "required"})
		return
	}

	update := domain.CircleUpdate{
		Title:             req.Title,
		Description:       req.Description,
		ParticipantsLimit: req.ParticipantsLimit,
		StartDate:         req.StartDate,
		IsLive:            req.IsLive,
		IsEnded:           req.IsEnded,
	}

	circle, err := h.circleService.Edit(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.CircleID, update)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully edited circle", circle)
}

// Delete обрабатывает DELETE /circles/delete
func (h *CircleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.circleService.Delete(ctx, middleware.GetUserIDFromContext(ctx), middleware.GetRoleFromContext(ctx), circleID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "circle deleted", nil)
}
