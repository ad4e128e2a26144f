package goAccounts

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A successful registration always yields a session token: the welcome email
// is best-effort and its failure never rolls back the created account.
func (s *Service) Register(ctx context.Context, name, email, plaintext string) (string, error) {
	if s.passwordHash == nil || s.store == nil {
		return "", ErrServiceNotReady
	}
	if name == "" || email == "" || plaintext == "" {
		s.metricInc(MetricRegisterFailure)
		return "", ErrMissingFields
	}
	if len(plaintext) < s.config.Password.MinLength {
		s.metricInc(MetricRegisterFailure)
		return "", ErrPasswordPolicy
	}

	_, err := s.store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.metricInc(MetricRegisterDuplicate)
		return "", ErrEmailExists
	case errors.Is(err, ErrAccountNotFound):
		// Free email, proceed. The store-level uniqueness check below still
		// guards the race between this lookup and Create.
	default:
		s.metricInc(MetricRegisterFailure)
		return "", err
	}

	hash, err := s.passwordHash.Hash(plaintext)
	if err != nil {
		s.metricInc(MetricRegisterFailure)
		return "", err
	}
	plaintext = ""

	account, err := s.store.Create(ctx, CreateAccountInput{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrStoreDuplicateEmail) {
			s.metricInc(MetricRegisterDuplicate)
			return "", ErrEmailExists
		}
		s.metricInc(MetricRegisterFailure)
		return "", err
	}

	sessionToken, err := s.issueSession(account.ID)
	if err != nil {
		s.metricInc(MetricRegisterFailure)
		return "", err
	}

	s.sendWelcome(ctx, account)

	s.metricInc(MetricRegisterSuccess)
	return sessionToken, nil
}

func (s *Service) sendWelcome(ctx context.Context, account AccountRecord) {
	if s.notifier == nil {
		return
	}

	appName := s.config.Mail.AppName
	body := fmt.Sprintf("Welcome to %s. Your account has been created with email id: %s", appName, account.Email)
	if err := s.notifier.Send(ctx, account.Email, "Welcome to "+appName, body); err != nil {
		s.metricInc(MetricNotifyFailure)
		log.Print("goAccounts: welcome email delivery failed")
	}
}
