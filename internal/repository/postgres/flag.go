package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/circles/internal/domain"
)

// FlagRepository реализует repository.FlagRepository для PostgreSQL
type FlagRepository struct {
	db *pgxpool.Pool
}

// NewFlagRepository создает новый экземпляр FlagRepository
func NewFlagRepository(db *pgxpool.Pool) *FlagRepository {
	return &FlagRepository{db: db}
}

// Add создает жалобу пользователя на круг
func (r *FlagRepository) Add(ctx context.Context, flag *domain.Flag) error {
	query := `
		INSERT INTO flags (id, circle_id, flag_user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, flag.ID, flag.CircleID, flag.FlagUserID).Scan(&flag.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return domain.ErrAlreadyFlagged
			case foreignKeyViolation:
				return domain.ErrCircleNotFound
			}
		}
		return err
	}

	return nil
}

// ListByCircle возвращает жалобы на круг
func (r *FlagRepository) ListByCircle(ctx context.Context, circleID string) ([]domain.Flag, error) {
	query := `
		SELECT id, circle_id, flag_user_id, created_at
		FROM flags
		WHERE circle_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, circleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := []domain.Flag{}
	for rows.Next() {
		var f domain.Flag
		if err := rows.Scan(&f.ID, &f.CircleID, &f.FlagUserID, &f.CreatedAt); err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}

	return flags, rows.Err()
}

// RemoveByUser удаляет жалобу пользователя (идемпотентная операция)
func (r *FlagRepository) RemoveByUser(ctx context.Context, circleID, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM flags WHERE circle_id = $1 AND flag_user_id = $2`, circleID, userID)
	return err
}

// ListFlagged возвращает круги с жалобами по убыванию их количества
func (r *FlagRepository) ListFlagged(ctx context.Context) ([]*domain.FlaggedCircle, error) {
	query := `
		SELECT ` + circleColumns + `, COUNT(f.id) AS flag_count
		FROM circles c
		JOIN flags f ON f.circle_id = c.id
		JOIN users u ON c.host_id = u.id
		GROUP BY c.id, u.username
		ORDER BY flag_count DESC, c.start_date
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flagged := []*domain.FlaggedCircle{}
	for rows.Next() {
		var fc domain.FlaggedCircle
		if err := rows.Scan(
			&fc.ID,
			&fc.HostID,
			&fc.Title,
			&fc.Description,
			&fc.ParticipantsLimit,
			&fc.StartDate,
			&fc.IsLive,
			&fc.IsEnded,
			&fc.Username,
			&fc.FlagCount,
		); err != nil {
			return nil, err
		}
		flagged = append(flagged, &fc)
	}

	return flagged, rows.Err()
}

// ClearCircle удаляет все жалобы на круг
func (r *FlagRepository) ClearCircle(ctx context.Context, circleID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM flags WHERE circle_id = $1`, circleID)
	return err
}
