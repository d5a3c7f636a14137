// Package repository implements durable storage for contests, pending
// contests, and per-user tracked contests on top of sqlx.
//
// Link uniqueness on the contests table is deliberately not enforced here:
// duplicate submissions are prevented per conversation by the session's
// save-once guard, and the store accepts what it is given.
package repository

import (
	"github.com/jmoiron/sqlx"
)

// Repository bundles all contest store operations over one database handle.
type Repository struct {
	db *sqlx.DB
}

// New wraps the given database handle.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}
