package goAccounts

import "errors"

// Envelope is the uniform operation result returned to transport layers.
// Every operation's failure modes map onto it; no error escapes to the
// HTTP layer as anything but a success flag and a human-readable message.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK describes the ok operation and its observable behavior.
//
// OK may return an error when input validation, dependency calls, or security checks fail.
// OK does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// EnvelopeFromError describes the envelopefromerror operation and its observable behavior.
//
// EnvelopeFromError may return an error when input validation, dependency calls, or security checks fail.
// EnvelopeFromError does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The messages deliberately mirror the user-visible strings of the flows
// they report on. Reset and verification messages remain distinguishable
// ("User not found" vs "Invalid OTP"); unifying them would close an
// account-enumeration channel at the cost of the observed behavior.
func EnvelopeFromError(err error) Envelope {
	switch {
	case err == nil:
		return Envelope{Success: true}
	case errors.Is(err, ErrMissingFields):
		return Envelope{Success: false, Message: "Missing required fields"}
	case errors.Is(err, ErrEmailExists):
		return Envelope{Success: false, Message: "User already exists"}
	case errors.Is(err, ErrAccountNotFound):
		return Envelope{Success: false, Message: "User not found"}
	case errors.Is(err, ErrInvalidPassword):
		return Envelope{Success: false, Message: "Invalid Password"}
	case errors.Is(err, ErrPasswordPolicy):
		return Envelope{Success: false, Message: "Password does not meet the minimum requirements"}
	case errors.Is(err, ErrUnauthorized):
		return Envelope{Success: false, Message: "Unauthorized access, login required"}
	case errors.Is(err, ErrAlreadyVerified):
		return Envelope{Success: false, Message: "Account already verified"}
	case errors.Is(err, ErrOTPInvalid):
		return Envelope{Success: false, Message: "Invalid OTP"}
	case errors.Is(err, ErrOTPExpired):
		return Envelope{Success: false, Message: "OTP expired"}
	case errors.Is(err, ErrNotifyFailed):
		return Envelope{Success: false, Message: "Could not send email"}
	default:
		return Envelope{Success: false, Message: "Service temporarily unavailable"}
	}
}
