// Package stores contains the Redis-backed account store wired into the
// engine through the goAccounts.AccountStore interface.
//
// Records are stored as JSON under "{prefix}:id:{id}" with a
// "{prefix}:email:{email}" index pointing back at the id. Creation runs a Lua
// script so the email uniqueness check and both writes are atomic.
package stores
