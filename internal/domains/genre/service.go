package genre

import "context"

// Service is the business surface consumed by the HTTP handler.
type Service interface {
	FindAll(ctx context.Context) ([]GenreResponse, error)
	FindByID(ctx context.Context, id int64) (*GenreResponse, error)
	FindByName(ctx context.Context, name string) (*GenreResponse, error)
	SearchByName(ctx context.Context, fragment string) ([]GenreResponse, error)
	Create(ctx context.Context, req GenreRequest) (*GenreResponse, error)
	Update(ctx context.Context, id int64, req GenreRequest) (*GenreResponse, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}
