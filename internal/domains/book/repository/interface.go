package repository

import (
	"context"

	pgx "github.com/jackc/pgx/v5"

	"bookshelf-backend/internal/domains/book/model"
	"bookshelf-backend/internal/domains/genre"
)

// BookRepository is the persistence gateway for books: it translates
// entity-level queries into parameterized SQL and owns no business rules.
// Finds are side-effect free; GetByID returns model.ErrBookNotFound on
// zero rows while the list finds return empty slices.
//
// Writes that must commit together with the genre-association replace take
// an open transaction; the service owns the transaction boundary.
type BookRepository interface {
	GetAll(ctx context.Context) ([]model.Book, error)
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)

	InsertTx(ctx context.Context, tx pgx.Tx, b *model.Book) error
	UpdateTx(ctx context.Context, tx pgx.Tx, b *model.Book) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByAuthor(ctx context.Context, author string) (int64, error)

	// Derived author lookups.
	FindByAuthor(ctx context.Context, author string) ([]model.Book, error)
	FindByAuthorIgnoreCase(ctx context.Context, author string) ([]model.Book, error)
	FindByAuthorContaining(ctx context.Context, fragment string) ([]model.Book, error)
	FindByAuthorContainingIgnoreCase(ctx context.Context, fragment string) ([]model.Book, error)
	FindByAuthorOrderByTitle(ctx context.Context, author string) ([]model.Book, error)
	FindByAuthorOrderByYearDesc(ctx context.Context, author string) ([]model.Book, error)
	CountByAuthor(ctx context.Context, author string) (int64, error)

	// Status and year lookups.
	FindByStatus(ctx context.Context, status model.BookStatus) ([]model.Book, error)
	CountByStatus(ctx context.Context, status model.BookStatus) (int64, error)
	FindByStatusAndAuthor(ctx context.Context, status model.BookStatus, author string) ([]model.Book, error)
	FindByStatusOrAuthor(ctx context.Context, status model.BookStatus, author string) ([]model.Book, error)
	FindByPublicationYear(ctx context.Context, year int) ([]model.Book, error)
	FindByPublicationYearBefore(ctx context.Context, year int) ([]model.Book, error)
	FindByPublicationYearAfter(ctx context.Context, year int) ([]model.Book, error)
	FindByPublicationYearBetween(ctx context.Context, startYear, endYear int) ([]model.Book, error)

	// Title and ISBN lookups.
	FindByTitlePrefix(ctx context.Context, prefix string) ([]model.Book, error)
	FindByTitleSuffix(ctx context.Context, suffix string) ([]model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	// Genre-joined lookups.
	FindByGenreID(ctx context.Context, genreID int64) ([]model.Book, error)
	FindByGenreName(ctx context.Context, name string) ([]model.Book, error)

	// Aggregation-driven lookups.
	FindPopular(ctx context.Context) ([]model.Book, error)
	FindWithAverageRatingAbove(ctx context.Context, minRating float64) ([]model.Book, error)

	// ReplaceGenres clears the book's association set and installs the
	// given one within the caller's transaction.
	ReplaceGenres(ctx context.Context, tx pgx.Tx, bookID int64, genreIDs []int64) error

	// Batch loads used when shaping responses.
	GenresForBooks(ctx context.Context, bookIDs []int64) (map[int64][]genre.Genre, error)
	StatsForBooks(ctx context.Context, bookIDs []int64) (map[int64]model.ReviewStats, error)
}
