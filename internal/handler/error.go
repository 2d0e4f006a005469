package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/aidar/circles/internal/domain"
)

// RespondWithError отправляет ответ с ошибкой; msg содержит текст ошибки
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, Envelope{
		Status: StatusError,
		Code:   code,
		Msg:    message,
	})
}

// RespondWithValidationError отправляет ошибку валидации; msg содержит объект {поле: проблема}
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, Envelope{
		Status: StatusError,
		Code:   string(domain.CodeBadRequest),
		Msg:    fields,
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)

	switch code {
	case domain.CodeNotFound:
		RespondWithError(w, r, http.StatusNotFound, string(code), err.Error())
	case domain.CodeForbidden:
		RespondWithError(w, r, http.StatusForbidden, string(code), err.Error())
	case domain.CodeAlreadyRegistered, domain.CodeCircleFull, domain.CodeTagExists,
		domain.CodeAlreadyFlagged, domain.CodeUsernameTaken:
		RespondWithError(w, r, http.StatusConflict, string(code), err.Error())
	case domain.CodeInvalidCredentials, domain.CodeUnauthorized:
		RespondWithError(w, r, http.StatusUnauthorized, string(code), err.Error())
	default:
		// Внутренние ошибки не раскрываем клиенту
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
	}
}
