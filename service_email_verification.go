package goAccounts

import (
	"context"
	"fmt"

	"github.com/atharvk9/goAccounts/internal"
)

// RequestEmailVerification describes the requestemailverification operation and its observable behavior.
//
// RequestEmailVerification may return an error when input validation, dependency calls, or security checks fail.
// RequestEmailVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Requesting a new code overwrites any pending one: only the most recently
// issued code is accepted. The code is written to the store before the email
// is sent, so a delivery failure leaves a usable pending code behind.
func (s *Service) RequestEmailVerification(ctx context.Context, accountID string) error {
	if s.store == nil || s.notifier == nil {
		return ErrServiceNotReady
	}
	if accountID == "" {
		s.metricInc(MetricVerifyOTPFailure)
		return ErrUnauthorized
	}

	account, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		s.metricInc(MetricVerifyOTPFailure)
		return err
	}
	if account.Verified {
		s.metricInc(MetricVerifyOTPFailure)
		return ErrAlreadyVerified
	}

	otp, err := s.newOTP(s.config.VerifyOTP.Digits)
	if err != nil {
		s.metricInc(MetricVerifyOTPFailure)
		return err
	}

	account.VerifyOTP = otp
	account.VerifyOTPExpiresAt = s.nowMillis() + s.config.VerifyOTP.TTL.Milliseconds()
	if err := s.store.Update(ctx, account); err != nil {
		s.metricInc(MetricVerifyOTPFailure)
		return err
	}

	body := fmt.Sprintf("Your account verification OTP is %s. It is valid for %d minutes.",
		otp, int(s.config.VerifyOTP.TTL.Minutes()))
	if err := s.notifier.Send(ctx, account.Email, "Account Verification OTP", body); err != nil {
		// The code is already committed; the caller may retry delivery.
		s.metricInc(MetricNotifyFailure)
		return ErrNotifyFailed
	}

	s.metricInc(MetricVerifyOTPRequested)
	return nil
}

// ConfirmEmailVerification describes the confirmemailverification operation and its observable behavior.
//
// ConfirmEmailVerification may return an error when input validation, dependency calls, or security checks fail.
// ConfirmEmailVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Codes are single-use: a successful confirmation clears the pending code in
// the same store write that flips the verified flag. The flag only ever moves
// from false to true.
func (s *Service) ConfirmEmailVerification(ctx context.Context, accountID, otp string) error {
	if s.store == nil {
		return ErrServiceNotReady
	}
	if accountID == "" {
		s.metricInc(MetricVerifyOTPFailure)
		return ErrUnauthorized
	}
	if otp == "" {
		s.metricInc(MetricVerifyOTPFailure)
		return ErrMissingFields
	}

	account, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		s.metricInc(MetricVerifyOTPFailure)
		return err
	}

	// Equality first, then freshness: a wrong code never learns whether a
	// pending code has expired.
	if !internal.OTPEqual(otp, account.VerifyOTP) {
		s.metricInc(MetricVerifyOTPFailure)
		return ErrOTPInvalid
	}
	if s.nowMillis() >= account.VerifyOTPExpiresAt {
		s.metricInc(MetricVerifyOTPFailure)
		return ErrOTPExpired
	}

	account.Verified = true
	account.VerifyOTP = ""
	account.VerifyOTPExpiresAt = 0
	if err := s.store.Update(ctx, account); err != nil {
		s.metricInc(MetricVerifyOTPFailure)
		return err
	}

	s.metricInc(MetricVerifyOTPConfirmed)
	return nil
}

// IsVerified describes the isverified operation and its observable behavior.
//
// IsVerified may return an error when input validation, dependency calls, or security checks fail.
// IsVerified does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) IsVerified(ctx context.Context, accountID string) (bool, error) {
	if s.store == nil {
		return false, ErrServiceNotReady
	}
	if accountID == "" {
		return false, ErrUnauthorized
	}

	account, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return account.Verified, nil
}
