package genre

import "context"

// Repository is the persistence gateway for genres. Reads are side-effect
// free; GetByID/GetByName return ErrGenreNotFound on zero rows.
type Repository interface {
	GetAll(ctx context.Context) ([]Genre, error)
	GetByID(ctx context.Context, id int64) (*Genre, error)
	GetByName(ctx context.Context, name string) (*Genre, error)
	Create(ctx context.Context, g *Genre) error
	Update(ctx context.Context, g *Genre) error
	Delete(ctx context.Context, id int64) (bool, error)

	// CountByIDs reports how many of the given ids exist. The book service
	// compares the count against the requested set size before linking.
	CountByIDs(ctx context.Context, ids []int64) (int64, error)

	FindByNameContaining(ctx context.Context, fragment string) ([]Genre, error)
}
