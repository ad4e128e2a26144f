// Package mail provides goAccounts.Notifier implementations.
//
//   - [Mailer] — delivers mail through an HTTP email API (Resend-compatible).
//   - [LogNotifier] — prints messages to the process log, for development.
//
// # Architecture boundaries
//
// This package owns outbound delivery only. It never decides WHEN to send —
// the engine drives every message and owns subjects and bodies.
package mail
