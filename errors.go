package goAccounts

import "errors"

var (
	// ErrUnauthorized is an exported constant or variable used by the authentication engine.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingFields is an exported constant or variable used by the authentication engine.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidPassword is an exported constant or variable used by the authentication engine.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrAccountNotFound is an exported constant or variable used by the authentication engine.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailExists is an exported constant or variable used by the authentication engine.
	ErrEmailExists = errors.New("account already exists")
	// ErrAlreadyVerified is an exported constant or variable used by the authentication engine.
	ErrAlreadyVerified = errors.New("account already verified")
	// ErrOTPInvalid is an exported constant or variable used by the authentication engine.
	ErrOTPInvalid = errors.New("invalid otp")
	// ErrOTPExpired is an exported constant or variable used by the authentication engine.
	ErrOTPExpired = errors.New("otp expired")
	// ErrPasswordPolicy is an exported constant or variable used by the authentication engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrNotifyFailed is an exported constant or variable used by the authentication engine.
	ErrNotifyFailed = errors.New("notification delivery failed")
	// ErrStoreUnavailable is an exported constant or variable used by the authentication engine.
	ErrStoreUnavailable = errors.New("account store unavailable")
	// ErrStoreDuplicateEmail is an exported constant or variable used by the authentication engine.
	//
	// AccountStore implementations return it from Create when the email is
	// already bound to an account.
	ErrStoreDuplicateEmail = errors.New("store duplicate email")
	// ErrServiceNotReady is an exported constant or variable used by the authentication engine.
	ErrServiceNotReady = errors.New("service not initialized")
)

// IsValidationError describes the isvalidationerror operation and its observable behavior.
//
// IsValidationError may return an error when input validation, dependency calls, or security checks fail.
// IsValidationError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrPasswordPolicy) ||
		errors.Is(err, ErrOTPInvalid) ||
		errors.Is(err, ErrOTPExpired)
}

// IsAuthError describes the isautherror operation and its observable behavior.
//
// IsAuthError may return an error when input validation, dependency calls, or security checks fail.
// IsAuthError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, ErrAccountNotFound)
}

// IsConflictError describes the isconflicterror operation and its observable behavior.
//
// IsConflictError may return an error when input validation, dependency calls, or security checks fail.
// IsConflictError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrAlreadyVerified)
}
