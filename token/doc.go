// Package token signs and verifies the stateless session credentials issued by
// goAccounts, built on github.com/golang-jwt/jwt/v5.
//
// # Design
//
// A session token carries the account identifier plus registered issued-at and
// expiry claims. Lifetime is fixed at construction (7 days by default) and
// tokens are never persisted server-side, so verification is pure and
// revocation before natural expiry is impossible.
//
// # What this package must NOT do
//
//   - Touch the account store (verification must stay a pure computation).
//   - Accept tokens signed with an algorithm other than the configured one.
package token
