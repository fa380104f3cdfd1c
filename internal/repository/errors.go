package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation   = "23505"
	pgInvalidTextFormat = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return err != nil && pgCode(err) == pgUniqueViolation
}

// isInvalidUUID reports a malformed id; callers treat it as not found.
func isInvalidUUID(err error) bool {
	return err != nil && pgCode(err) == pgInvalidTextFormat
}
