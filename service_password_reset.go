package goAccounts

import (
	"context"
	"fmt"

	"github.com/atharvk9/goAccounts/internal"
)

// RequestPasswordReset describes the requestpasswordreset operation and its observable behavior.
//
// RequestPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// RequestPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The reset channel is independent from the verification channel: a pending
// verification code is never touched by a reset request, and vice versa.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if s.store == nil || s.notifier == nil {
		return ErrServiceNotReady
	}
	if email == "" {
		s.metricInc(MetricResetFailure)
		return ErrMissingFields
	}

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		s.metricInc(MetricResetFailure)
		return err
	}

	otp, err := s.newOTP(s.config.ResetOTP.Digits)
	if err != nil {
		s.metricInc(MetricResetFailure)
		return err
	}

	account.ResetOTP = otp
	account.ResetOTPExpiresAt = s.nowMillis() + s.config.ResetOTP.TTL.Milliseconds()
	if err := s.store.Update(ctx, account); err != nil {
		s.metricInc(MetricResetFailure)
		return err
	}

	body := fmt.Sprintf("Your OTP for resetting your password is %s. Use this OTP to proceed with resetting your password.", otp)
	if err := s.notifier.Send(ctx, account.Email, "Password Reset OTP", body); err != nil {
		s.metricInc(MetricNotifyFailure)
		return ErrNotifyFailed
	}

	s.metricInc(MetricResetOTPRequested)
	return nil
}

// ConfirmPasswordReset describes the confirmpasswordreset operation and its observable behavior.
//
// ConfirmPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// ConfirmPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The new password hash and the cleared reset code land in a single store
// write: there is no state where the password changed but the code is still
// usable.
func (s *Service) ConfirmPasswordReset(ctx context.Context, email, otp, newPassword string) error {
	if s.store == nil || s.passwordHash == nil {
		return ErrServiceNotReady
	}
	if email == "" || otp == "" || newPassword == "" {
		s.metricInc(MetricResetFailure)
		return ErrMissingFields
	}
	if len(newPassword) < s.config.Password.MinLength {
		s.metricInc(MetricResetFailure)
		return ErrPasswordPolicy
	}

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		s.metricInc(MetricResetFailure)
		return err
	}

	if !internal.OTPEqual(otp, account.ResetOTP) {
		s.metricInc(MetricResetFailure)
		return ErrOTPInvalid
	}
	if s.nowMillis() >= account.ResetOTPExpiresAt {
		s.metricInc(MetricResetFailure)
		return ErrOTPExpired
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		s.metricInc(MetricResetFailure)
		return err
	}
	newPassword = ""

	account.PasswordHash = hash
	account.ResetOTP = ""
	account.ResetOTPExpiresAt = 0
	if err := s.store.Update(ctx, account); err != nil {
		s.metricInc(MetricResetFailure)
		return err
	}

	s.metricInc(MetricResetConfirmed)
	return nil
}
