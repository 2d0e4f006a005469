package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/circles/internal/domain"
)

// Коды ошибок PostgreSQL
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Колонки круга вместе с username хоста
const circleColumns = `
	c.id, c.host_id, c.title, c.description, c.participants_limit,
	c.start_date, c.is_live, c.is_ended, u.username
`

// CircleRepository реализует repository.CircleRepository для PostgreSQL
type CircleRepository struct {
	db *pgxpool.Pool
}

// NewCircleRepository создает новый экземпляр CircleRepository
func NewCircleRepository(db *pgxpool.Pool) *CircleRepository {
	return &CircleRepository{db: db}
}

// Create создает новый круг и заполняет username хоста
func (r *CircleRepository) Create(ctx context.Context, circle *domain.Circle) error {
	query := `
		WITH inserted AS (
			INSERT INTO circles (id, host_id, title, description, participants_limit, start_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING host_id
		)
		SELECT u.username FROM inserted JOIN users u ON u.id = inserted.host_id
	`

	err := r.db.QueryRow(ctx, query,
		circle.ID,
		circle.HostID,
		circle.Title,
		circle.Description,
		circle.ParticipantsLimit,
		circle.StartDate,
	).Scan(&circle.Username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domain.ErrUserNotFound
		}
		return err
	}

	return nil
}

// GetByID получает круг по ID
func (r *CircleRepository) GetByID(ctx context.Context, circleID string) (*domain.Circle, error) {
	query := `
		SELECT ` + circleColumns + `
		FROM circles c
		JOIN users u ON c.host_id = u.id
		WHERE c.id = $1
	`

	circle, err := scanCircle(r.db.QueryRow(ctx, query, circleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCircleNotFound
		}
		return nil, err
	}

	return circle, nil
}

// List возвращает все круги по дате начала
func (r *CircleRepository) List(ctx context.Context) ([]*domain.Circle, error) {
	query := `
		SELECT ` + circleColumns + `
		FROM circles c
		JOIN users u ON c.host_id = u.id
		ORDER BY c.start_date
	`

	return queryCircles(ctx, r.db, query)
}

// ListByHost возвращает круги хоста
func (r *CircleRepository) ListByHost(ctx context.Context, hostID string) ([]*domain.Circle, error) {
	query := `
		SELECT ` + circleColumns + `
		FROM circles c
		JOIN users u ON c.host_id = u.id
		WHERE c.host_id = $1
		ORDER BY c.start_date
	`

	return queryCircles(ctx, r.db, query, hostID)
}

// ListFollowing возвращает круги хостов, на которых подписан пользователь
func (r *CircleRepository) ListFollowing(ctx context.Context, followerID string) ([]*domain.Circle, error) {
	query := `
		SELECT ` + circleColumns + `
		FROM circles c
		JOIN users u ON c.host_id = u.id
		JOIN follow_relationships f ON f.user_id = u.id
		WHERE f.follower_id = $1
		ORDER BY c.start_date
	`

	return queryCircles(ctx, r.db, query, followerID)
}

// Update сохраняет изменяемые поля круга
func (r *CircleRepository) Update(ctx context.Context, circle *domain.Circle) error {
	query := `
		UPDATE circles
		SET title = $1, description = $2, participants_limit = $3,
		    start_date = $4, is_live = $5, is_ended = $6
		WHERE id = $7
	`

	result, err := r.db.Exec(ctx, query,
		circle.Title,
		circle.Description,
		circle.ParticipantsLimit,
		circle.StartDate,
		circle.IsLive,
		circle.IsEnded,
		circle.ID,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCircleNotFound
	}

	return nil
}

// Delete удаляет круг (записи, теги и жалобы удаляются каскадно)
func (r *CircleRepository) Delete(ctx context.Context, circleID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM circles WHERE id = $1`, circleID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCircleNotFound
	}

	return nil
}

// querier общий интерфейс для pgxpool.Pool и pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanCircle(row pgx.Row) (*domain.Circle, error) {
	var c domain.Circle
	err := row.Scan(
		&c.ID,
		&c.HostID,
		&c.Title,
		&c.Description,
		&c.ParticipantsLimit,
		&c.StartDate,
		&c.IsLive,
		&c.IsEnded,
		&c.Username,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func queryCircles(ctx context.Context, q querier, query string, args ...any) ([]*domain.Circle, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	circles := []*domain.Circle{}
	for rows.Next() {
		c, err := scanCircle(rows)
		if err != nil {
			return nil, err
		}
		circles = append(circles, c)
	}

	return circles, rows.Err()
}
