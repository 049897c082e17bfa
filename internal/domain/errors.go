package domain

import "errors"

// Sentinel errors shared across services and repositories. Wrap them with
// fmt.Errorf("%w: ...") to add detail; callers test with errors.Is.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is authenticated but the
	// access policy denies the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated is returned for missing or bad credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDiscussions is returned when stewardship is resolved against a
	// thread that has no discussions. Threads are created together with
	// their first discussion, so hitting this means corrupt data.
	ErrNoDiscussions = errors.New("thread has no discussions")

	// ErrDuplicateEmail is returned when a signup reuses an email address.
	ErrDuplicateEmail = errors.New("email already registered")
)
