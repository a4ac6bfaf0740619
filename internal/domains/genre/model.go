package genre

// Genre is a catalog label books can be tagged with. Names are unique by
// convention, not enforced at the model level; the association to books
// lives in the book_genres join table owned by the book domain.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
