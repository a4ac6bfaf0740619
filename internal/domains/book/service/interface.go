package service

import (
	"context"

	"bookshelf-backend/internal/domains/book/model"
)

// ServiceInterface is the book business surface. It owns the genre
// association rules and shapes entities into responses with the derived
// reviewCount/averageRating fields.
type ServiceInterface interface {
	FindAll(ctx context.Context) ([]model.BookResponse, error)
	FindByID(ctx context.Context, id int64) (*model.BookResponse, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, req model.BookRequest) (*model.BookResponse, error)
	Update(ctx context.Context, id int64, req model.BookRequest) (*model.BookResponse, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByAuthor(ctx context.Context, author string) (int64, error)

	FindByAuthor(ctx context.Context, author string, match model.AuthorMatch, sort model.AuthorSort) ([]model.BookResponse, error)
	CountByAuthor(ctx context.Context, author string) (int64, error)
	CountByStatus(ctx context.Context, status model.BookStatus) (int64, error)
	FindByStatus(ctx context.Context, status model.BookStatus) ([]model.BookResponse, error)
	FindByStatusAndAuthor(ctx context.Context, status model.BookStatus, author string, matchAny bool) ([]model.BookResponse, error)
	FindByPublicationYear(ctx context.Context, year int) ([]model.BookResponse, error)
	FindByYearBefore(ctx context.Context, year int) ([]model.BookResponse, error)
	FindByYearAfter(ctx context.Context, year int) ([]model.BookResponse, error)
	FindByYearRange(ctx context.Context, startYear, endYear int) ([]model.BookResponse, error)
	FindByTitlePrefix(ctx context.Context, prefix string) ([]model.BookResponse, error)
	FindByTitleSuffix(ctx context.Context, suffix string) ([]model.BookResponse, error)
	FindByISBN(ctx context.Context, isbn string) (*model.BookResponse, error)
	ISBNExists(ctx context.Context, isbn string) (bool, error)

	FindByGenreID(ctx context.Context, genreID int64) ([]model.BookResponse, error)
	FindByGenreName(ctx context.Context, name string) ([]model.BookResponse, error)
	FindPopular(ctx context.Context) ([]model.BookResponse, error)
	FindHighRated(ctx context.Context, minRating float64) ([]model.BookResponse, error)
}
