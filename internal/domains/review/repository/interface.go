package repository

import (
	"context"

	"bookshelf-backend/internal/domains/review/model"
)

// ReviewRepository is the persistence gateway for reviews. List applies
// the filter's non-nil fields; GetByID returns model.ErrReviewNotFound on
// zero rows.
type ReviewRepository interface {
	List(ctx context.Context, filter model.ReviewFilter) ([]model.Review, error)
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	Create(ctx context.Context, r *model.Review) error
	Update(ctx context.Context, r *model.Review) error
	Delete(ctx context.Context, id int64) (bool, error)
	CountByBookID(ctx context.Context, bookID int64) (int64, error)
	AverageRatingByBookID(ctx context.Context, bookID int64) (float64, error)
}
