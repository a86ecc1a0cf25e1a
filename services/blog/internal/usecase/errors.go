package usecase

import (
	"errors"
	"strings"

	"blog-api/pkg/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")
	ErrSlugTaken          = errors.New("category with this slug already exists")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = models.ErrInvalidEmail
	ErrInvalidStatus      = errors.New("status must be one of Active, Draft, Disabled")
	ErrInvalidCategory    = errors.New("category does not exist")
	ErrNotPostOwner       = errors.New("only the author can change this post")
	ErrForbidden          = errors.New("not allowed to change this resource")
	ErrParentNotFound     = errors.New("parent comment does not exist")
	ErrParentPostMismatch = errors.New("parent comment belongs to a different post")
	ErrValueTooLong       = errors.New("a value is longer than its column allows")
)

// sqlStateStringTooLong is Postgres' string_data_right_truncation.
const sqlStateStringTooLong = "22001"

// storeError maps persistence errors onto the package's sentinel errors.
func storeError(err error, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateKey(err):
		if conflict == nil {
			return ErrAlreadyExists
		}
		return conflict
	case IsValueTooLong(err):
		return ErrValueTooLong
	}
	return err
}

// IsValueTooLong reports whether the database rejected a value for
// exceeding its column width.
func IsValueTooLong(err error) bool {
	if errors.Is(err, ErrValueTooLong) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateStringTooLong
	}
	return strings.Contains(err.Error(), "value too long for type")
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
