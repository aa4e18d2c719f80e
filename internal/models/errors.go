package models

import "errors"

// Error taxonomy surfaced by the repositories. Every write that violates a
// declared rule is rejected with one of these, wrapped with detail via
// fmt.Errorf("%w: ..."), so callers classify with errors.Is.
var (
	// ErrConstraintViolation covers numeric range, non-null and
	// check-style failures on entity columns.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrForeignKeyViolation is returned when a write references a row
	// that does not exist.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrDuplicateKey is returned on a primary-key collision, including
	// duplicate association pairs.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUniquenessViolation is returned when a reference-entity name
	// would collide with the same name under a different key.
	ErrUniquenessViolation = errors.New("uniqueness violation")

	// ErrDomainViolation is returned when a rating value is not one of
	// the permitted half-step values.
	ErrDomainViolation = errors.New("domain violation")

	// ErrNotFound is returned by lookups and deletes for missing rows.
	ErrNotFound = errors.New("record not found")

	// ErrNoRatings is returned by the user report when the rating table
	// holds no rows at all, so the percentage is undefined.
	ErrNoRatings = errors.New("no ratings recorded")
)
