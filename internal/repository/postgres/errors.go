package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error classes for constraint failures.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// IsIntegrityViolation reports whether err is a unique or foreign key
// constraint failure, so services can map it to a domain integrity error
// instead of surfacing a driver stack trace.
func IsIntegrityViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation || pqErr.Code == pqForeignKeyViolation
	}
	return false
}
