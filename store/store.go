// Package store holds the SQL persistence layer: one store struct per
// aggregate over a shared *sql.DB.
package store

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEdge means another friendship row already exists for the
	// same unordered user pair (unique key uk_pair).
	ErrDuplicateEdge = errors.New("friendship already exists for this pair")
)
