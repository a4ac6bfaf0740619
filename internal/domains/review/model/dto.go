package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	bookmodel "bookshelf-backend/internal/domains/book/model"
)

// ReviewRequest is the create/update payload. Content and rating are
// overwritten wholesale on update; createdAt never changes.
type ReviewRequest struct {
	BookID  int64   `json:"bookId"`
	Content *string `json:"content"`
	Rating  int     `json:"rating"`
}

func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("bookId is required"),
		),
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(1).Error("rating must be at least 1"),
			validation.Max(5).Error("rating must be at most 5"),
		),
	)
}

// ToEntity maps the scalar fields; the owner reference is carried as a
// plain id and resolved at the service boundary.
func (r ReviewRequest) ToEntity() *Review {
	return &Review{
		Content: r.Content,
		Rating:  r.Rating,
		BookID:  r.BookID,
	}
}

// ReviewResponse embeds the fully mapped response of the owning book.
type ReviewResponse struct {
	ID        int64                   `json:"id"`
	Content   *string                 `json:"content"`
	Rating    int                     `json:"rating"`
	CreatedAt time.Time               `json:"createdAt"`
	Book      *bookmodel.BookResponse `json:"book"`
}

func ToResponse(r *Review, book *bookmodel.BookResponse) *ReviewResponse {
	if r == nil {
		return nil
	}
	return &ReviewResponse{
		ID:        r.ID,
		Content:   r.Content,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		Book:      book,
	}
}

// BookReviewStats is the standalone aggregate for one book's reviews,
// served without loading the reviews themselves.
type BookReviewStats struct {
	BookID        int64   `json:"bookId"`
	ReviewCount   int64   `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

// ReviewFilter narrows review listings. Nil fields are ignored.
type ReviewFilter struct {
	BookID    *int64
	Rating    *int
	MinRating *int
	MaxRating *int
	Sort      ReviewSort
}

// ReviewSort selects the listing order.
type ReviewSort string

const (
	SortByID            ReviewSort = ""
	SortByRatingDesc    ReviewSort = "rating_desc"
	SortByCreatedAtDesc ReviewSort = "created_desc"
)
