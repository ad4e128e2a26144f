package goAccounts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func registerTestAccount(t *testing.T, svc *Service) string {
	t.Helper()

	token, err := svc.Register(context.Background(), "Ann", "ann@example.com", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	accountID, err := svc.ValidateSession(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return accountID
}

func TestEmailVerificationFlow(t *testing.T) {
	store := newMockAccountStore()
	notifier := &mockNotifier{}
	svc := newTestService(t, store, notifier)
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request verification: %v", err)
	}

	rec := store.record(t, accountID)
	if rec.VerifyOTP == "" || len(rec.VerifyOTP) != 6 {
		t.Fatalf("stored otp = %q, want 6 digits", rec.VerifyOTP)
	}
	if rec.VerifyOTPExpiresAt <= time.Now().UnixMilli() {
		t.Fatalf("expiry %d not in the future", rec.VerifyOTPExpiresAt)
	}

	mail := notifier.last(t)
	if mail.Subject != "Account Verification OTP" {
		t.Fatalf("subject = %q", mail.Subject)
	}
	if !strings.Contains(mail.Body, rec.VerifyOTP) {
		t.Fatalf("body %q does not carry the code", mail.Body)
	}

	if err := svc.ConfirmEmailVerification(ctx, accountID, rec.VerifyOTP); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	after := store.record(t, accountID)
	if !after.Verified {
		t.Fatalf("account not verified")
	}
	if after.VerifyOTP != "" || after.VerifyOTPExpiresAt != 0 {
		t.Fatalf("otp channel not cleared: %+v", after)
	}
}

func TestEmailVerificationCodeIsSingleUse(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)
	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request: %v", err)
	}
	otp := store.record(t, accountID).VerifyOTP

	if err := svc.ConfirmEmailVerification(ctx, accountID, otp); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	// Replay of the consumed code is rejected through the already-verified gate
	// equivalent: the stored code is gone, so it reads as invalid.
	if err := svc.ConfirmEmailVerification(ctx, accountID, otp); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("replay err = %v, want ErrOTPInvalid", err)
	}
}

func TestEmailVerificationRejectsWrongCode(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)
	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request: %v", err)
	}

	if err := svc.ConfirmEmailVerification(ctx, accountID, "000000"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("wrong code err = %v, want ErrOTPInvalid", err)
	}
	if store.record(t, accountID).Verified {
		t.Fatalf("wrong code must not verify the account")
	}
}

func TestEmailVerificationExpiryBoundary(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	base := time.Now()
	clock := withFrozenClock(svc, base)

	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request: %v", err)
	}
	rec := store.record(t, accountID)

	// Exactly at the recorded expiry the code is already dead.
	*clock = time.UnixMilli(rec.VerifyOTPExpiresAt)
	if err := svc.ConfirmEmailVerification(ctx, accountID, rec.VerifyOTP); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("at-expiry err = %v, want ErrOTPExpired", err)
	}

	// One millisecond earlier it still works.
	*clock = time.UnixMilli(rec.VerifyOTPExpiresAt - 1)
	if err := svc.ConfirmEmailVerification(ctx, accountID, rec.VerifyOTP); err != nil {
		t.Fatalf("pre-expiry confirm: %v", err)
	}
}

func TestEmailVerificationWrongCodeWinsOverExpiry(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	base := time.Now()
	clock := withFrozenClock(svc, base)

	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request: %v", err)
	}
	rec := store.record(t, accountID)

	// Both wrong and expired: the mismatch answer wins.
	*clock = time.UnixMilli(rec.VerifyOTPExpiresAt + 1000)
	if err := svc.ConfirmEmailVerification(ctx, accountID, "000000"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("err = %v, want ErrOTPInvalid", err)
	}
}

func TestEmailVerificationAlreadyVerified(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)
	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request: %v", err)
	}
	otp := store.record(t, accountID).VerifyOTP
	if err := svc.ConfirmEmailVerification(ctx, accountID, otp); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := svc.RequestEmailVerification(ctx, accountID); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("re-request err = %v, want ErrAlreadyVerified", err)
	}
}

func TestEmailVerificationRequestOverwritesPendingCode(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("first request: %v", err)
	}
	first := store.record(t, accountID).VerifyOTP

	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("second request: %v", err)
	}
	second := store.record(t, accountID).VerifyOTP

	if first == second {
		t.Skip("generated the same code twice; re-run covers the overwrite path")
	}

	if err := svc.ConfirmEmailVerification(ctx, accountID, first); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("stale code err = %v, want ErrOTPInvalid", err)
	}
	if err := svc.ConfirmEmailVerification(ctx, accountID, second); err != nil {
		t.Fatalf("fresh code: %v", err)
	}
}

func TestEmailVerificationNotifyFailureAfterCommit(t *testing.T) {
	store := newMockAccountStore()
	notifier := &mockNotifier{}
	svc := newTestService(t, store, notifier)
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	notifier.fail = true
	if err := svc.RequestEmailVerification(ctx, accountID); !errors.Is(err, ErrNotifyFailed) {
		t.Fatalf("err = %v, want ErrNotifyFailed", err)
	}

	// The code was committed before delivery failed, so it is usable.
	rec := store.record(t, accountID)
	if rec.VerifyOTP == "" {
		t.Fatalf("expected committed code despite delivery failure")
	}
	if err := svc.ConfirmEmailVerification(ctx, accountID, rec.VerifyOTP); err != nil {
		t.Fatalf("confirm committed code: %v", err)
	}
}

func TestEmailVerificationValidation(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	if err := svc.RequestEmailVerification(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("empty id request err = %v, want ErrUnauthorized", err)
	}
	if err := svc.ConfirmEmailVerification(ctx, "", "123456"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("empty id confirm err = %v, want ErrUnauthorized", err)
	}
	if err := svc.ConfirmEmailVerification(ctx, accountID, ""); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("empty otp err = %v, want ErrMissingFields", err)
	}
	if err := svc.RequestEmailVerification(ctx, "ghost"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unknown id err = %v, want ErrAccountNotFound", err)
	}
}

func TestIsVerifiedTracksFlag(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestService(t, store, &mockNotifier{})
	ctx := context.Background()

	accountID := registerTestAccount(t, svc)

	verified, err := svc.IsVerified(ctx, accountID)
	if err != nil || verified {
		t.Fatalf("IsVerified = %v, %v; want false, nil", verified, err)
	}

	if err := svc.RequestEmailVerification(ctx, accountID); err != nil {
		t.Fatalf("request: %v", err)
	}
	otp := store.record(t, accountID).VerifyOTP
	if err := svc.ConfirmEmailVerification(ctx, accountID, otp); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	verified, err = svc.IsVerified(ctx, accountID)
	if err != nil || !verified {
		t.Fatalf("IsVerified = %v, %v; want true, nil", verified, err)
	}
}
