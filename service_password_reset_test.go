package goAccounts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestPasswordResetFlow(t *testing.T) {
	store := newMockAccountStore()
	notifier := &mockNotifier{}
	svc := newTestService(t, store, notifier)
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	if err := svc.RequestPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	rec := store.record(t, accountID)
	if rec.ResetOTP == "" || len(rec.ResetOTP) != 6 {
		t.Fatalf("stored otp = %q, want 6 digits", rec.ResetOTP)
	}

	mail := notifier.last(t)
	if mail.Subject != "Password Reset OTP" {
		t.Fatalf("subject = %q", mail.Subject)
	}
	if !strings.Contains(mail.Body, rec.ResetOTP) {
		t.Fatalf("body %q does not carry the code", mail.Body)
	}

	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", rec.ResetOTP, "newpassword9"); err != nil {
		t.Fatalf("confirm reset: %v", err)
	}

	// Old password no longer opens a session, new one does.
	if _, err := svc.Login(ctx, "ann@example.com", "password1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("old password err = %v, want ErrInvalidPassword", err)
	}
	if _, err := svc.Login(ctx, "ann@example.com", "newpassword9"); err != nil {
		t.Fatalf("new password login: %v", err)
	}

	after := store.record(t, accountID)
	if after.ResetOTP != "" || after.ResetOTPExpiresAt != 0 {
		t.Fatalf("reset channel not cleared: %+v", after)
	}
}

func TestPasswordResetCodeIsSingleUse(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)
	if err := svc.RequestPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	otp := store.record(t, accountID).ResetOTP

	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", otp, "newpassword9"); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", otp, "otherpass77"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("replay err = %v, want ErrOTPInvalid", err)
	}

	// The replay must not have touched the password set by the first confirm.
	if _, err := svc.Login(ctx, "ann@example.com", "newpassword9"); err != nil {
		t.Fatalf("login after replay attempt: %v", err)
	}
}

func TestPasswordResetExpiryBoundary(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	base := time.Now()
	clock := withFrozenClock(svc, base)

	if err := svc.RequestPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	rec := store.record(t, accountID)

	wantExpiry := base.UnixMilli() + (5 * time.Minute).Milliseconds()
	if rec.ResetOTPExpiresAt != wantExpiry {
		t.Fatalf("expiry = %d, want %d", rec.ResetOTPExpiresAt, wantExpiry)
	}

	*clock = time.UnixMilli(rec.ResetOTPExpiresAt)
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", rec.ResetOTP, "newpassword9"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("at-expiry err = %v, want ErrOTPExpired", err)
	}

	*clock = time.UnixMilli(rec.ResetOTPExpiresAt - 1)
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", rec.ResetOTP, "newpassword9"); err != nil {
		t.Fatalf("pre-expiry confirm: %v", err)
	}
}

func TestPasswordResetRejectsWrongCode(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	registerTestAccount(t, svc)
	if err := svc.RequestPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("request: %v", err)
	}

	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", "000000", "newpassword9"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("wrong code err = %v, want ErrOTPInvalid", err)
	}

	// Password unchanged after the failed attempt.
	if _, err := svc.Login(ctx, "ann@example.com", "password1"); err != nil {
		t.Fatalf("original password login: %v", err)
	}
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc := newTestService(t, newMockAccountStore(), &mockNotifier{})
	ctx := context.Background()

	if err := svc.RequestPasswordReset(ctx, "ghost@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("request err = %v, want ErrAccountNotFound", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, "ghost@example.com", "123456", "newpassword9"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("confirm err = %v, want ErrAccountNotFound", err)
	}
}

func TestPasswordResetValidation(t *testing.T) {
	store := newMockAccountStore()
	cfg := testConfig()
	cfg.Password.MinLength = 8
	svc, err := New().
		WithConfig(cfg).
		WithStore(store).
		WithNotifier(&mockNotifier{}).
		Build()
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	ctx := context.Background()

	registerTestAccount(t, svc)
	if err := svc.RequestPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	otp := store.record(t, "acc-1").ResetOTP

	if err := svc.RequestPasswordReset(ctx, ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("empty email err = %v, want ErrMissingFields", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", "", "newpassword9"); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("empty otp err = %v, want ErrMissingFields", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", otp, ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("empty password err = %v, want ErrMissingFields", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", otp, "short"); !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("weak password err = %v, want ErrPasswordPolicy", err)
	}

	// None of the rejected attempts consumed the code.
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", otp, "newpassword9"); err != nil {
		t.Fatalf("confirm after rejections: %v", err)
	}
}

func TestPasswordResetChannelsAreIndependent(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request verification: %v", err)
	}
	verifyOTP := store.record(t, accountID).VerifyOTP

	if err := svc.RequestPasswordReset(ctx, "ann@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}

	rec := store.record(t, accountID)
	if rec.VerifyOTP != verifyOTP {
		t.Fatalf("reset request clobbered the verification code")
	}

	// A verification code is not a reset code.
	if rec.ResetOTP != verifyOTP {
		if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", verifyOTP, "newpassword9"); !errors.Is(err, ErrOTPInvalid) {
			t.Fatalf("cross-channel err = %v, want ErrOTPInvalid", err)
		}
	}

	// Consuming the reset code leaves the verification code pending.
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", rec.ResetOTP, "newpassword9"); err != nil {
		t.Fatalf("confirm reset: %v", err)
	}
	if err := svc.ConfirmEmailVerification(ctx, accountID, verifyOTP); err != nil {
		t.Fatalf("confirm verification after reset: %v", err)
	}
}

func TestPasswordResetNotifyFailureAfterCommit(t *testing.T) {
	store := newMockAccountStore()
	notifier := &mockNotifier{}
	svc := newTestService(t, store, notifier)
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	notifier.fail = true
	if err := svc.RequestPasswordReset(ctx, "ann@example.com"); !errors.Is(err, ErrNotifyFailed) {
		t.Fatalf("err = %v, want ErrNotifyFailed", err)
	}

	rec := store.record(t, accountID)
	if rec.ResetOTP == "" {
		t.Fatalf("expected committed code despite delivery failure")
	}
	if err := svc.ConfirmPasswordReset(ctx, "ann@example.com", rec.ResetOTP, "newpassword9"); err != nil {
		t.Fatalf("confirm committed code: %v", err)
	}
}
