package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err stems from a missing record
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err stems from a unique-index violation.
// The database indexes on username and email are the final authority for
// uniqueness; the service-level existence checks only race ahead of them.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
