package postgres

import (
	"errors"

	"github.com/api-sage/minibank-core/internal/domain"
	"github.com/lib/pq"
)

// Postgres error codes that indicate a transient lock or serialization
// failure rather than a broken statement.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
)

func mapConcurrencyError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return domain.ErrConcurrencyConflict
		}
	}
	return err
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == codeUniqueViolation
	}
	return false
}
