package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrConstraintViolation is returned when the database rejects a write
// because of a table constraint.
var ErrConstraintViolation = errors.New("constraint violation")

// translateError wraps a write error, tagging constraint violations so
// callers can tell them from connection failures.
func translateError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	if isUniqueConstraintViolation(err) || isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
		return errors.Wrapf(errors.Wrap(ErrConstraintViolation, err.Error()), format, args...)
	}

	return errors.Wrapf(err, format, args...)
}

// gorm only reports the sentinel errors when TranslateError is enabled.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "cannot be null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}
