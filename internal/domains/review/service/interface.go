package service

import (
	"context"

	"bookshelf-backend/internal/domains/review/model"
)

// ServiceInterface is the review business surface consumed by the HTTP
// handler.
type ServiceInterface interface {
	FindAll(ctx context.Context, filter model.ReviewFilter) ([]model.ReviewResponse, error)
	FindByID(ctx context.Context, id int64) (*model.ReviewResponse, error)
	FindByBookID(ctx context.Context, bookID int64, sort model.ReviewSort) ([]model.ReviewResponse, error)
	StatsByBookID(ctx context.Context, bookID int64) (*model.BookReviewStats, error)
	Create(ctx context.Context, req model.ReviewRequest) (*model.ReviewResponse, error)
	Update(ctx context.Context, id int64, req model.ReviewRequest) (*model.ReviewResponse, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
