package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
)

// Значения поля status в ответе
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Envelope общий формат ответа API: {status, msg, data}
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Msg    interface{} `json:"msg,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// RespondWithJSON отправляет успешный ответ с сообщением и данными
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, msg string, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, Envelope{
		Status: StatusOK,
		Msg:    msg,
		Data:   data,
	})
}

// CircleRequest тело запросов, адресованных одному кругу
type CircleRequest struct {
	CircleID string `json:"circle_id"`
}

// errEmptyBody возвращается когда тело запроса отсутствует
var errEmptyBody = errors.New("empty request body")

// decodeJSON читает JSON тело запроса
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}

// decodeCircleID читает circle_id из тела и отвечает ошибкой, если его нет
func decodeCircleID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req CircleRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return "", false
	}
	if req.CircleID == "" {
		RespondWithValidationError(w, r, map[string]string{"circle_id": "required"})
		return "", false
	}
	return req.CircleID, true
}
