package handler

import (
	"net/http"

	"github.com/aidar/circles/internal/middleware"
	"github.com/aidar/circles/internal/service"
)

// TagHandler обрабатывает эндпоинты тегов
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler создает новый TagHandler
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// TagRequest представляет тело запроса на добавление/удаление тега
type TagRequest struct {
	CircleID string `json:"circle_id"`
	Tag      string `json:"tag"`
}

// GetByCircle обрабатывает POST /circles/tags
func (h *TagHandler) GetByCircle(w http.ResponseWriter, r *http.Request) {
	circleID, ok := decodeCircleID(w, r)
	if !ok {
		return
	}

	tags, err := h.tagService.ListByCircle(r.Context(), circleID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched tags", tags)
}

// GetAll обрабатывает GET /circles/tags/all
func (h *TagHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListAll(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "successfully fetched all tags", tags)
}

// Add обрабатывает PUT /circles/tags
func (h *TagHandler) Add(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTagRequest(w, r)
	if !ok {
		return
	}

	if err := h.tagService.Add(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.CircleID, req.Tag); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "tag added", nil)
}

// Remove обрабатывает DELETE /circles/tags
func (h *TagHandler) Remove(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeTagRequest(w, r)
	if !ok {
		return
	}

	if err := h.tagService.Remove(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.CircleID, req.Tag); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "tag deleted", nil)
}

func decodeTagRequest(w http.ResponseWriter, r *http.Request) (TagRequest, bool) {
	var req TagRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return req, false
	}

	fields := map[string]string{}
	if req.CircleID == "" {
		fields["circle_id"] = "required"
	}
	if req.Tag == "" {
		fields["tag"] = "required"
	}
	if len(fields) > 0 {
		RespondWithValidationError(w, r, fields)
		return req, false
	}

	return req, true
}
