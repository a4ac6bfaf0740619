package model

import "errors"

var (
	// ErrReviewNotFound signals that a review id has no matching row.
	ErrReviewNotFound = errors.New("review not found")
)
