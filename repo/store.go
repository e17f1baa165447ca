package repo

import (
	"database/sql"
)

// Store wraps an explicitly constructed database handle. Every component
// above receives it (or a subset of its methods) at construction; there is
// no process-wide singleton.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}
