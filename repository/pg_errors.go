package repository

import (
	"errors"

	"github.com/lib/pq"
)

// IsLockTimeout reports whether err is the postgres lock_not_available error
// raised when the session lock_timeout expires while waiting on a row lock.
func IsLockTimeout(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "55P03"
}

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
