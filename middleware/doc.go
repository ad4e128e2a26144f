// Package middleware exposes HTTP adapters for cookie-based session
// enforcement built on top of goAccounts.Service validation.
//
// # Guards
//
//   - [SessionGuard] — reads the session cookie, validates the token, and
//     injects the account id into the request context.
//
// # Cookies
//
//   - [SetSessionCookie] — writes the session cookie after login/register.
//   - [ClearSessionCookie] — expires the cookie on logout.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Service calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Service.ValidateSession.
//
// # What this package must NOT do
//
//   - Parse or create session tokens directly (delegates to Service).
//   - Access the account store (Service handles I/O).
//   - Make authorization decisions beyond pass/reject from ValidateSession.
package middleware
