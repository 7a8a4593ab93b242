package playerdb

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Sentinel errors for the repository layer.
// These are infrastructure-level errors that indicate database state, not business logic failures.
var (
	// ErrNotFound indicates the requested player does not exist.
	ErrNotFound = errors.New("player not found")

	// ErrNoRowsAffected indicates an UPDATE or DELETE affected zero rows.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrDuplicateName indicates the case-insensitive name index rejected a write.
	ErrDuplicateName = errors.New("player name already exists")
)

const uniqueViolation = "23505"

// isUniqueViolation recognises unique constraint failures from both the
// pgdriver connector used in production and the pgx stdlib driver used in tests.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == uniqueViolation
	}
	return false
}
