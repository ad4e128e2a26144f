package goAccounts

import "context"

// AccountRecord is the full account record exchanged with [AccountStore].
// It carries the credential hash, the verification flag, and both OTP
// channels. OTP expiries are Unix epoch milliseconds; a code and its
// expiry are always set together and cleared together.
type AccountRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	// Verified transitions false to true exactly once per account and
	// never reverts.
	Verified bool

	VerifyOTP          string
	VerifyOTPExpiresAt int64

	ResetOTP          string
	ResetOTPExpiresAt int64
}

// CreateAccountInput is the input for [AccountStore.Create]. The store
// assigns the account ID; the record starts unverified with empty OTP
// channels.
type CreateAccountInput struct {
	Name         string
	Email        string
	PasswordHash string
}

// AccountStore is the primary interface that callers must implement to
// integrate goAccounts with their account database. It covers lookup by
// ID and by email, atomic creation with email uniqueness, and whole-record
// update by ID.
//
// GetByID and GetByEmail must return [ErrAccountNotFound] when no record
// exists; any other error is treated as a store dependency failure.
// Create must return [ErrStoreDuplicateEmail] without creating a record
// when the email is already bound to an account. Update replaces the
// stored record for AccountRecord.ID; the store's read-modify-write is
// expected to be serialized per account.
type AccountStore interface {
	GetByID(ctx context.Context, id string) (AccountRecord, error)
	GetByEmail(ctx context.Context, email string) (AccountRecord, error)
	Create(ctx context.Context, input CreateAccountInput) (AccountRecord, error)
	Update(ctx context.Context, record AccountRecord) error
}

// Notifier is the outbound email capability injected into the engine.
// Delivery is awaited in-line by the calling operation; a non-nil error
// makes the failure observable to the caller.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
