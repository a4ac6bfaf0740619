package model

// BookStatus is the shelf state of a book.
type BookStatus string

const (
	StatusAvailable  BookStatus = "AVAILABLE"
	StatusRead       BookStatus = "READ"
	StatusInProgress BookStatus = "IN_PROGRESS"
)

// Valid reports whether the status is one of the known values.
func (s BookStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusRead, StatusInProgress:
		return true
	}
	return false
}

// Book is the catalog entity. Genre links live in the book_genres join
// table and reviews in the reviews table; both are loaded separately when
// shaping responses.
type Book struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            *string    `json:"isbn"`
	PublicationYear *int       `json:"publication_year"`
	Status          BookStatus `json:"status"`
}
