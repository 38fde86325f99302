package repositories

import "errors"

// Storage errors shared by all repository implementations. The Postgres and
// Mongo repositories translate driver errors into these so handlers never
// depend on a concrete backend.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
