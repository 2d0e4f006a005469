package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/circles/internal/domain"
)

// TagRepository реализует repository.TagRepository для PostgreSQL
type TagRepository struct {
	db *pgxpool.Pool
}

// NewTagRepository создает новый экземпляр TagRepository
func NewTagRepository(db *pgxpool.Pool) *TagRepository {
	return &TagRepository{db: db}
}

// ListByCircle возвращает теги круга в порядке добавления
func (r *TagRepository) ListByCircle(ctx context.Context, circleID string) ([]domain.Tag, error) {
	query := `
		SELECT tag
		FROM circle_tags
		WHERE circle_id = $1
		ORDER BY added_at, tag
	`

	return r.queryTags(ctx, query, circleID)
}

// ListAll возвращает справочник тегов
func (r *TagRepository) ListAll(ctx context.Context) ([]domain.Tag, error) {
	return r.queryTags(ctx, `SELECT tag FROM tags ORDER BY tag`)
}

// Add добавляет тег кругу, при необходимости пополняя справочник
func (r *TagRepository) Add(ctx context.Context, circleID string, tag domain.Tag) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `INSERT INTO tags (tag) VALUES ($1) ON CONFLICT DO NOTHING`, tag); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `INSERT INTO circle_tags (circle_id, tag) VALUES ($1, $2)`, circleID, tag)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return domain.ErrTagExists
			case foreignKeyViolation:
				return domain.ErrCircleNotFound
			}
		}
		return err
	}

	return tx.Commit(ctx)
}

// Remove удаляет тег у круга
func (r *TagRepository) Remove(ctx context.Context, circleID string, tag domain.Tag) error {
	result, err := r.db.Exec(ctx, `DELETE FROM circle_tags WHERE circle_id = $1 AND tag = $2`, circleID, tag)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *TagRepository) queryTags(ctx context.Context, query string, args ...any) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	// Пустой массив вместо nil
	if tags == nil {
		tags = []domain.Tag{}
	}

	return tags, nil
}
