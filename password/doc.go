// Package password implements one-way credential hashing for goAccounts using
// Argon2id with PHC-formatted output.
//
// # Design
//
// Hash produces "$argon2id$v=19$m=...,t=...,p=...$salt$hash" with a fresh
// random salt per call. Verify re-derives the key from the parameters embedded
// in the stored string and compares in constant time, so parameter upgrades
// never invalidate existing credentials.
//
// # What this package must NOT do
//
//   - Store or log plaintext passwords.
//   - Import goAccounts or any sibling package.
package password
