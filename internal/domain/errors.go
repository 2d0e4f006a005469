package domain

import "errors"

// Доменные ошибки сервиса кругов
var (
	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrCircleNotFound возвращается когда круг не найден
	ErrCircleNotFound = errors.New("circle does not exist")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrForbidden возвращается когда у пользователя нет прав на действие
	ErrForbidden = errors.New("action not permitted")

	// ErrAlreadyRegistered возвращается при повторной записи на круг
	ErrAlreadyRegistered = errors.New("already registered for circle")

	// ErrCircleFull возвращается когда достигнут лимит участников
	ErrCircleFull = errors.New("circle participants limit reached")

	// ErrTagExists возвращается при повторном добавлении тега
	ErrTagExists = errors.New("tag already added")

	// ErrAlreadyFlagged возвращается при повторной жалобе
	ErrAlreadyFlagged = errors.New("circle already flagged by user")

	// ErrUsernameTaken возвращается при регистрации с занятым именем
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials возвращается при неверном логине или пароле
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeAlreadyRegistered  ErrorCode = "ALREADY_REGISTERED"
	CodeCircleFull         ErrorCode = "CIRCLE_FULL"
	CodeTagExists          ErrorCode = "TAG_EXISTS"
	CodeAlreadyFlagged     ErrorCode = "ALREADY_FLAGGED"
	CodeUsernameTaken      ErrorCode = "USERNAME_TAKEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeBadRequest         ErrorCode = "BAD_REQUEST"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCircleNotFound), errors.Is(err, ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrAlreadyRegistered):
		return CodeAlreadyRegistered
	case errors.Is(err, ErrCircleFull):
		return CodeCircleFull
	case errors.Is(err, ErrTagExists):
		return CodeTagExists
	case errors.Is(err, ErrAlreadyFlagged):
		return CodeAlreadyFlagged
	case errors.Is(err, ErrUsernameTaken):
		return CodeUsernameTaken
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
