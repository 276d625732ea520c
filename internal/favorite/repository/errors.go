package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE unique_violation
const uniqueViolation = "23505"

// isDuplicateKey reports whether err is a unique constraint violation from any
// of the drivers the service runs on.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}

	// sqlite reports "UNIQUE constraint failed: favorites.user_id, favorites.property_id"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
