package internaldefs

import (
	goAccounts "github.com/atharvk9/goAccounts"
)

// CounterDef defines a public type used by goAccounts APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goAccounts.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goAccounts APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goAccounts.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: goAccounts.MetricRegisterSuccess, Name: "goaccounts_register_success_total", Help: "Successful account registrations."},
	{ID: goAccounts.MetricRegisterDuplicate, Name: "goaccounts_register_duplicate_total", Help: "Registration attempts rejected as duplicate."},
	{ID: goAccounts.MetricRegisterFailure, Name: "goaccounts_register_failure_total", Help: "Failed registration attempts."},
	{ID: goAccounts.MetricLoginSuccess, Name: "goaccounts_login_success_total", Help: "Successful login attempts."},
	{ID: goAccounts.MetricLoginFailure, Name: "goaccounts_login_failure_total", Help: "Failed login attempts."},
	{ID: goAccounts.MetricLogout, Name: "goaccounts_logout_total", Help: "Logout operations."},
	{ID: goAccounts.MetricSessionIssued, Name: "goaccounts_session_issued_total", Help: "Issued session tokens."},
	{ID: goAccounts.MetricTokenRejected, Name: "goaccounts_token_rejected_total", Help: "Session tokens rejected during validation."},
	{ID: goAccounts.MetricVerifyOTPRequested, Name: "goaccounts_verify_otp_requested_total", Help: "Email verification codes requested."},
	{ID: goAccounts.MetricVerifyOTPConfirmed, Name: "goaccounts_verify_otp_confirmed_total", Help: "Successful email verifications."},
	{ID: goAccounts.MetricVerifyOTPFailure, Name: "goaccounts_verify_otp_failure_total", Help: "Failed email verification operations."},
	{ID: goAccounts.MetricResetOTPRequested, Name: "goaccounts_reset_otp_requested_total", Help: "Password reset codes requested."},
	{ID: goAccounts.MetricResetConfirmed, Name: "goaccounts_reset_confirmed_total", Help: "Successful password reset confirmations."},
	{ID: goAccounts.MetricResetFailure, Name: "goaccounts_reset_failure_total", Help: "Failed password reset operations."},
	{ID: goAccounts.MetricNotifyFailure, Name: "goaccounts_notify_failure_total", Help: "Failed email delivery attempts."},
}

// HistogramDefs is an exported constant or variable used by the authentication engine.
var HistogramDefs = []HistogramDef{
	{ID: goAccounts.MetricValidateLatency, Name: "goaccounts_validate_latency_seconds", Help: "Session validation latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
