package model

import "time"

// Review is a rating with optional free text, owned by exactly one book.
// CreatedAt is set once at creation and never updated.
type Review struct {
	ID        int64     `json:"id"`
	Content   *string   `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	BookID    int64     `json:"book_id"`
}
