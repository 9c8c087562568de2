package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the outcomes a workflow operation can produce.
// Services wrap these with context via the helper constructors below;
// handlers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateCode  = errors.New("duplicate code")
	ErrBudgetExceeded = errors.New("budget exceeded")
	ErrConflict       = errors.New("concurrent modification")
)

// NotFound reports that the referenced entity does not exist.
func NotFound(entity string, id interface{}) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}

// InvalidState reports an illegal transition from the entity's current status.
func InvalidState(entity, current, requested string) error {
	return fmt.Errorf("%s is %s, cannot %s: %w", entity, current, requested, ErrInvalidState)
}

// Validation reports a missing or malformed request field. No side effects
// have been applied when this is returned.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// DuplicateCode reports an asset code collision within an organization.
func DuplicateCode(code string) error {
	return fmt.Errorf("code %q already exists in organization: %w", code, ErrDuplicateCode)
}

// BudgetExceeded reports a posting that would push an active plan past its
// allocation.
func BudgetExceeded(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrBudgetExceeded)...)
}

// Conflict reports a concurrent-write collision. The operation had no partial
// effect; the caller may re-read and retry.
func Conflict(entity string, id interface{}) error {
	return fmt.Errorf("%s %v was modified concurrently: %w", entity, id, ErrConflict)
}
