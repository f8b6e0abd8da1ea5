package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors surfaced by repository implementations. Services branch on
// these instead of driver-specific errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// IsNotFoundError reports whether err means the requested record is absent.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports whether err comes from a unique-constraint
// violation. GORM's TranslateError maps driver errors to ErrDuplicatedKey;
// the string checks cover drivers that predate the translator.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// TranslateError normalizes a gorm error into the repository sentinels,
// preserving the original error in the chain.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Join(ErrNotFound, err)
	case IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicateKey, err)
	default:
		return err
	}
}
