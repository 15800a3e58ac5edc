package user

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidEmail     = fmt.Errorf("%w: email is not a valid address", ErrValidation)
	ErrInvalidUsername  = fmt.Errorf("%w: username must be a non-empty token", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password is required", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password is too short", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password exceeds 72 bytes", ErrValidation)
)

var (
	ErrEmailAlreadyUsed   = errors.New("duplicate identity: email already used")
	ErrStorageUnavailable = errors.New("user storage unavailable")
	ErrRoleNotFound       = errors.New("role not found")
)
