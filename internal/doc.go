// Package internal holds cryptographic helpers shared by the goAccounts engine:
// OTP generation and constant-time code comparison.
//
// # Architecture boundaries
//
// This package owns randomness for one-time passcodes. It performs no I/O
// beyond crypto/rand and imports nothing from goAccounts or its siblings.
//
// # What this package must NOT do
//
//   - Import goAccounts or any sub-package (no import cycles).
//   - Fall back to math/rand; OTPs guard account takeover and password reset.
package internal
