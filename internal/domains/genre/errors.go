package genre

import "errors"

var (
	// ErrGenreNotFound signals that a genre id or name has no matching row.
	ErrGenreNotFound = errors.New("genre not found")
)
