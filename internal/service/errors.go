package service

import "errors"

var (
	// ErrNotFound signals that the requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists signals a uniqueness conflict
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoReviewData signals a decision attempt on a paper without assignments
	ErrNoReviewData = errors.New("no review data available for this paper")

	// ErrInvalidInput signals a request that fails domain validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden signals an operation on an entity the caller does not own
	ErrForbidden = errors.New("operation not permitted")
)
