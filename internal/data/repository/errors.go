package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateCode means a generated tracking code hit a unique constraint.
	// Callers regenerate the code and retry.
	ErrDuplicateCode = errors.New("tracking code already exists")

	ErrNotFound = errors.New("record not found")

	// ErrStaleState means a conditional update found the row in a different
	// state than the caller read.
	ErrStaleState = errors.New("record state changed concurrently")
)

const uniqueViolation = "23505"

var trackingCodeConstraints = map[string]bool{
	"bookings_booking_number_key":              true,
	"bookings_tracking_id_key":                 true,
	"custom_tour_requests_tracking_number_key": true,
	"custom_bookings_custom_booking_id_key":    true,
}

// mapWriteError turns a unique violation on a tracking code constraint into
// ErrDuplicateCode and leaves everything else untouched.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && trackingCodeConstraints[pgErr.ConstraintName] {
		return fmt.Errorf("%w (%s)", ErrDuplicateCode, pgErr.ConstraintName)
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// likePattern escapes LIKE wildcards and wraps fragment for a substring match.
func likePattern(fragment string) string {
	escaped := make([]rune, 0, len(fragment)+2)
	for _, r := range fragment {
		if r == '%' || r == '_' || r == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return "%" + string(escaped) + "%"
}
