package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/circles/internal/domain"
)

// RegistrationRepository реализует repository.RegistrationRepository для PostgreSQL
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository создает новый экземпляр RegistrationRepository
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register записывает пользователя на круг.
// Строка круга блокируется на время транзакции, чтобы лимит участников
// не был превышен параллельными записями.
func (r *RegistrationRepository) Register(ctx context.Context, circleID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ошибка игнорируется: после Commit откат невозможен
	}()

	var limit int
	err = tx.QueryRow(ctx, `SELECT participants_limit FROM circles WHERE id = $1 FOR UPDATE`, circleID).Scan(&limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCircleNotFound
		}
		return err
	}

	// Повторная запись важнее заполненности круга
	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM circles_registrations WHERE circle_id = $1 AND user_id = $2)
	`, circleID, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyRegistered
	}

	var count int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM circles_registrations WHERE circle_id = $1`, circleID).Scan(&count)
	if err != nil {
		return err
	}
	if count >= limit {
		return domain.ErrCircleFull
	}

	query := `
		INSERT INTO circles_registrations (circle_id, user_id)
		VALUES ($1, $2)
	`
	if _, err = tx.Exec(ctx, query, circleID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return domain.ErrAlreadyRegistered
			case foreignKeyViolation:
				return domain.ErrUserNotFound
			}
		}
		return err
	}

	return tx.Commit(ctx)
}

// Unregister отменяет запись; отсутствие записи не считается ошибкой
func (r *RegistrationRepository) Unregister(ctx context.Context, circleID, userID string) error {
	query := `
		DELETE FROM circles_registrations
		WHERE circle_id = $1 AND user_id = $2
	`

	_, err := r.db.Exec(ctx, query, circleID, userID)
	return err
}

// ListUsers возвращает записавшихся пользователей в порядке записи
func (r *RegistrationRepository) ListUsers(ctx context.Context, circleID string) ([]domain.RegisteredUser, error) {
	query := `
		SELECT u.id, u.username
		FROM circles_registrations cr
		JOIN users u ON cr.user_id = u.id
		WHERE cr.circle_id = $1
		ORDER BY cr.registered_at, u.id
	`

	rows, err := r.db.Query(ctx, query, circleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.RegisteredUser{}
	for rows.Next() {
		var u domain.RegisteredUser
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ListCircles возвращает круги, на которые записан пользователь
func (r *RegistrationRepository) ListCircles(ctx context.Context, userID string) ([]*domain.Circle, error) {
	query := `
		SELECT ` + circleColumns + `
		FROM circles_registrations cr
		JOIN circles c ON cr.circle_id = c.id
		JOIN users u ON c.host_id = u.id
		WHERE cr.user_id = $1
		ORDER BY c.start_date
	`

	return queryCircles(ctx, r.db, query, userID)
}
