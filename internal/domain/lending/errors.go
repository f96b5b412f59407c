package lending

import "errors"

// Every failure aborts the whole operation; nothing is partially applied.
var (
	ErrNotFound            = errors.New("agreement not found")
	ErrNoContribution      = errors.New("no contribution for investor")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrWrongState          = errors.New("operation not allowed in current state")
	ErrWindowClosed        = errors.New("window closed")
	ErrWindowNotOpen       = errors.New("window not open")
	ErrCapExceeded         = errors.New("funding target already reached")
	ErrAmountMismatch      = errors.New("amount does not match required amount")
	ErrAlreadyClaimed      = errors.New("already claimed")
	ErrNotYetDue           = errors.New("default grace period has not elapsed")
	ErrRegistrationMissing = errors.New("required registration missing")
	ErrOutstandingClaims   = errors.New("outstanding claims must be settled first")
)
