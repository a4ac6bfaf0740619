package model

import "errors"

var (
	// ErrBookNotFound signals that a book id has no matching row.
	ErrBookNotFound = errors.New("book not found")

	// ErrGenreRefNotFound signals a referential violation: one or more
	// genre ids supplied on create/update do not exist. The whole
	// operation aborts before any write.
	ErrGenreRefNotFound = errors.New("one or more genres not found")
)
