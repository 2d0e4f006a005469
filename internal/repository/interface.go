package repository

import (
	"context"

	"github.com/aidar/circles/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create создает нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByUsername получает пользователя по имени (для логина)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CircleRepository определяет методы для работы с кругами
type CircleRepository interface {
	// Create создает новый круг
	Create(ctx context.Context, circle *domain.Circle) error

	// GetByID получает круг вместе с username хоста
	GetByID(ctx context.Context, circleID string) (*domain.Circle, error)

	// List возвращает все круги, отсортированные по дате начала
	List(ctx context.Context) ([]*domain.Circle, error)

	// ListByHost возвращает круги хоста
	ListByHost(ctx context.Context, hostID string) ([]*domain.Circle, error)

	// ListFollowing возвращает круги хостов, на которых подписан пользователь
	ListFollowing(ctx context.Context, followerID string) ([]*domain.Circle, error)

	// Update сохраняет изменяемые поля круга
	Update(ctx context.Context, circle *domain.Circle) error

	// Delete удаляет круг
	Delete(ctx context.Context, circleID string) error
}

// RegistrationRepository определяет методы для работы с записями на круги
type RegistrationRepository interface {
	// Register записывает пользователя на круг с учетом лимита участников
	Register(ctx context.Context, circleID, userID string) error

	// Unregister отменяет запись (идемпотентная операция)
	Unregister(ctx context.Context, circleID, userID string) error

	// ListUsers возвращает записавшихся пользователей
	ListUsers(ctx context.Context, circleID string) ([]domain.RegisteredUser, error)

	// ListCircles возвращает круги, на которые записан пользователь
	ListCircles(ctx context.Context, userID string) ([]*domain.Circle, error)
}

// TagRepository определяет методы для работы с тегами
type TagRepository interface {
	// ListByCircle возвращает теги круга в порядке добавления
	ListByCircle(ctx context.Context, circleID string) ([]domain.Tag, error)

	// ListAll возвращает справочник всех тегов
	ListAll(ctx context.Context) ([]domain.Tag, error)

	// Add добавляет тег кругу
	Add(ctx context.Context, circleID string, tag domain.Tag) error

	// Remove удаляет тег у круга
	Remove(ctx context.Context, circleID string, tag domain.Tag) error
}

// FlagRepository определяет методы для работы с жалобами
type FlagRepository interface {
	// Add создает жалобу пользователя на круг
	Add(ctx context.Context, flag *domain.Flag) error

	// ListByCircle возвращает жалобы на круг
	ListByCircle(ctx context.Context, circleID string) ([]domain.Flag, error)

	// RemoveByUser удаляет жалобу пользователя
	RemoveByUser(ctx context.Context, circleID, userID string) error

	// ListFlagged возвращает круги с жалобами, по убыванию количества
	ListFlagged(ctx context.Context) ([]*domain.FlaggedCircle, error)

	// ClearCircle удаляет все жалобы на круг
	ClearCircle(ctx context.Context, circleID string) error
}
