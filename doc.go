// Package goAccounts provides an embeddable user-account authentication engine with
// stateless JWT session tokens, email OTP account verification, and OTP-based
// password recovery.
//
// The package is designed for concurrent server workloads: Service methods are safe
// to call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goAccounts is the public surface. It exposes [Service], [Builder], [Config], the
// [AccountStore] and [Notifier] integration interfaces, and value types
// (AccountRecord, Envelope, MetricsSnapshot). OTP generation lives under internal/
// and is never exported; hashing, token signing, and HTTP cookie handling live in
// the password, token, and middleware sub-packages.
//
// # What this package must NOT do
//
//   - Read process environment or configuration files (all secrets arrive via Config).
//   - Persist anything itself (storage is delegated to the injected AccountStore).
//   - Send email itself (delivery is delegated to the injected Notifier).
//   - Import any sub-package that re-imports goAccounts (no import cycles).
//
// # Session model
//
// Session tokens are signed, stateless, and never stored server-side. Logout
// instructs the client to discard its credential; previously issued tokens remain
// valid until their natural expiry.
package goAccounts
