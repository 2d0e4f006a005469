package handler

import (
	"net/http"

	"github.com/aidar/circles/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// CredentialsRequest представляет тело запроса на регистрацию и логин
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpResponse представляет данные ответа на регистрацию
type SignUpResponse struct {
	ID string `json:"id"`
}

// LoginResponse представляет данные ответа на логин
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// SignUp обрабатывает POST /auth/register
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.authService.SignUp(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, "user registered", SignUpResponse{ID: user.ID})
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "logged in", LoginResponse{AccessToken: token})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return req, false
	}

	fields := map[string]string{}
	if req.Username == "" {
		fields["username"] = "required"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		RespondWithValidationError(w, r, fields)
		return req, false
	}

	return req, true
}
