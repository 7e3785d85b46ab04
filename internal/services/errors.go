package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy shared by every service. Handlers match with errors.Is to
// pick the response shape.
var (
	ErrDuplicateKey     = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrMissingReference = errors.New("referenced entity does not exist")
	ErrBoxAlreadyOpen   = errors.New("a cash register is already open for today")
	ErrBoxClosed        = errors.New("cash register is already closed")
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// translate maps storage-level sentinels onto the service taxonomy and
// leaves everything else wrapped as a persistence failure.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
