package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf-backend/internal/domains/review/model"
	"bookshelf-backend/internal/shared/utils"
)

const reviewColumns = `id, content, rating, created_at, book_id`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresRepository{pool: pool}
}

// List builds the WHERE clause from the filter's non-nil fields.
func (r *postgresRepository) List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error) {
	clauses := []string{"1=1"}
	args := []interface{}{}
	argn := 1

	if filter.BookID != nil {
		clauses = append(clauses, fmt.Sprintf("book_id = $%d", argn))
		args = append(args, *filter.BookID)
		argn++
	}
	if filter.Rating != nil {
		clauses = append(clauses, fmt.Sprintf("rating = $%d", argn))
		args = append(args, *filter.Rating)
		argn++
	}
	if filter.MinRating != nil {
		clauses = append(clauses, fmt.Sprintf("rating > $%d", argn))
		args = append(args, *filter.MinRating)
		argn++
	}
	if filter.MaxRating != nil {
		clauses = append(clauses, fmt.Sprintf("rating < $%d", argn))
		args = append(args, *filter.MaxRating)
		argn++
	}

	order := "id"
	switch filter.Sort {
	case model.SortByRatingDesc:
		order = "rating DESC, id"
	case model.SortByCreatedAtDesc:
		order = "created_at DESC, id"
	}

	query := fmt.Sprintf(
		`SELECT %s FROM reviews WHERE %s ORDER BY %s`,
		reviewColumns, utils.JoinWithAnd(clauses), order,
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.Content, &rev.Rating, &rev.CreatedAt, &rev.BookID); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return reviews, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	const query = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var rev model.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rev.ID, &rev.Content, &rev.Rating, &rev.CreatedAt, &rev.BookID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &rev, nil
}

func (r *postgresRepository) Create(ctx context.Context, rev *model.Review) error {
	const query = `
		INSERT INTO reviews (content, rating, created_at, book_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		rev.Content, rev.Rating, rev.CreatedAt, rev.BookID,
	).Scan(&rev.ID)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update overwrites content, rating and the owner id; created_at stays as
// it was written at insert time.
func (r *postgresRepository) Update(ctx context.Context, rev *model.Review) error {
	const query = `
		UPDATE reviews SET content = $1, rating = $2, book_id = $3
		WHERE id = $4
	`

	tag, err := r.pool.Exec(ctx, query, rev.Content, rev.Rating, rev.BookID, rev.ID)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM reviews WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete review: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) CountByBookID(ctx context.Context, bookID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM reviews WHERE book_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) AverageRatingByBookID(ctx context.Context, bookID int64) (float64, error) {
	const query = `SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews WHERE book_id = $1`

	var avg float64
	if err := r.pool.QueryRow(ctx, query, bookID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}
