// Package repository contains data access layer abstractions.
// The SQL implementation lives in the sqlrepo subpackage and serves both PostgreSQL and SQLite.
package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup, update or delete matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)
