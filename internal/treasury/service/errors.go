package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/treasury/internal/treasury/store"
)

var (
	// ErrForbidden is returned when the caller's roles do not allow the
	// operation. Nothing is written and no audit entry is recorded.
	ErrForbidden = errors.New("access denied")
	ErrNotFound  = errors.New("not found")
	// ErrValidation is the parent of every input or state precondition
	// failure.
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

var (
	ErrInvalidAmount            = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrConfirmationMismatch     = fmt.Errorf("%w: confirmation text does not match", ErrValidation)
	ErrAllocationExceedsPayment = fmt.Errorf("%w: allocation exceeds unallocated payment", ErrValidation)
	ErrAllocationExceedsCharge  = fmt.Errorf("%w: allocation exceeds outstanding charge", ErrValidation)
	ErrNoCurrentSemester        = fmt.Errorf("%w: no current semester", ErrValidation)
	ErrSemesterExists           = fmt.Errorf("%w: semester already exists", ErrValidation)
	ErrUserMismatch             = fmt.Errorf("%w: payment and charge belong to different users", ErrValidation)

	ErrAccountInactive       = fmt.Errorf("%w: account is not active", ErrForbidden)
	ErrBootstrapUnauthorized = fmt.Errorf("%w: invalid bootstrap token", ErrForbidden)
	ErrBootstrapAlready      = fmt.Errorf("%w: system already bootstrapped", ErrConflict)
	ErrEmailTaken            = fmt.Errorf("%w: email or phone already registered", ErrConflict)
)

// notFound translates a store miss into ErrNotFound naming what was missing.
// Other errors pass through unchanged.
func notFound(what string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
