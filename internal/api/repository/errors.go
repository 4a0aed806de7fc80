package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate marks a unique-constraint violation (username, email, slug,
// or the one-review-per-title-and-author index). Services map it to Conflict.
var ErrDuplicate = errors.New("duplicate key")

// translateError normalizes driver errors. gorm's TranslateError covers most
// cases; the pgconn check catches raw 23505 errors that bypass translation.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
