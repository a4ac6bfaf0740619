package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"bookshelf-backend/internal/domains/genre"
)

// BookRequest is the create/update payload. All scalar fields are applied
// wholesale on update. GenreIDs is the one partial field: nil (absent in
// the JSON body) leaves existing associations untouched, while a present
// set — including an empty one — replaces them atomically.
type BookRequest struct {
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            *string    `json:"isbn"`
	PublicationYear *int       `json:"publicationYear"`
	Status          BookStatus `json:"status"`
	GenreIDs        []int64    `json:"genreIds"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255).Error("title must be less than 255 characters"),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255).Error("author must be less than 255 characters"),
		),
		validation.Field(&r.ISBN,
			validation.Length(10, 13).Error("isbn must be between 10 and 13 characters"),
		),
		validation.Field(&r.PublicationYear,
			validation.Min(1).Error("publication year must be at least 1"),
		),
		validation.Field(&r.Status,
			validation.Required.Error("status is required"),
			validation.By(func(interface{}) error {
				if !r.Status.Valid() {
					return errInvalidStatus
				}
				return nil
			}),
		),
	)
}

var errInvalidStatus = validation.NewError(
	"invalid_status", "status must be one of AVAILABLE, READ, IN_PROGRESS")

// ToEntity maps the scalar fields onto a new entity. Associations are
// handled by the service, never inside the mapping.
func (r BookRequest) ToEntity() *Book {
	return &Book{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		PublicationYear: r.PublicationYear,
		Status:          r.Status,
	}
}

// ApplyTo overwrites every mutable scalar field of an existing entity.
func (r BookRequest) ApplyTo(b *Book) {
	b.Title = r.Title
	b.Author = r.Author
	b.ISBN = r.ISBN
	b.PublicationYear = r.PublicationYear
	b.Status = r.Status
}

// ReviewStats is the per-book aggregate loaded from the reviews table.
type ReviewStats struct {
	Count         int
	AverageRating float64
}

// BookResponse is the outward shape: scalar fields, mapped genres and the
// derived reviewCount/averageRating fields.
type BookResponse struct {
	ID              int64                 `json:"id"`
	Title           string                `json:"title"`
	Author          string                `json:"author"`
	ISBN            *string               `json:"isbn"`
	PublicationYear *int                  `json:"publicationYear"`
	Status          BookStatus            `json:"status"`
	Genres          []genre.GenreResponse `json:"genres"`
	ReviewCount     int                   `json:"reviewCount"`
	AverageRating   float64               `json:"averageRating"`
}

// ToResponse shapes one book with its loaded genres and review aggregate.
func ToResponse(b *Book, genres []genre.Genre, stats ReviewStats) *BookResponse {
	if b == nil {
		return nil
	}
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Status:          b.Status,
		Genres:          genre.ToResponseList(genres),
		ReviewCount:     stats.Count,
		AverageRating:   RoundRating(stats.AverageRating),
	}
}

// RoundRating rounds an average rating half-up to one decimal place.
func RoundRating(avg float64) float64 {
	return decimal.NewFromFloat(avg).Round(1).InexactFloat64()
}

// AuthorMatch selects how the author search compares values.
type AuthorMatch string

const (
	MatchExact              AuthorMatch = "exact"
	MatchExactIgnoreCase    AuthorMatch = "iexact"
	MatchContains           AuthorMatch = "contains"
	MatchContainsIgnoreCase AuthorMatch = "icontains"
)

// AuthorSort selects the ordering of author search results.
type AuthorSort string

const (
	SortNone     AuthorSort = ""
	SortTitleAsc AuthorSort = "title"
	SortYearDesc AuthorSort = "year_desc"
)
