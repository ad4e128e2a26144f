package goAccounts

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/atharvk9/goAccounts/password"
	"github.com/atharvk9/goAccounts/token"
)

// Service defines a public type used by goAccounts APIs.
//
// Service instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Service struct {
	config       Config
	store        AccountStore
	notifier     Notifier
	metrics      *Metrics
	passwordHash *password.Argon2
	tokens       *token.Issuer

	newOTP func(digits int) (string, error)
	now    func() time.Time
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Service) MetricsSnapshot() MetricsSnapshot {
	if s == nil || s.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return s.metrics.Snapshot()
}

func (s *Service) metricInc(id MetricID) {
	if s == nil || s.metrics == nil {
		return
	}
	s.metrics.Inc(id)
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Login does not consult the verification flag: an unverified account can
// authenticate, it just cannot pass verification-gated application logic.
func (s *Service) Login(ctx context.Context, email, plaintext string) (string, error) {
	if s.passwordHash == nil || s.store == nil {
		return "", ErrServiceNotReady
	}
	if email == "" || plaintext == "" {
		s.metricInc(MetricLoginFailure)
		return "", ErrMissingFields
	}

	account, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		s.metricInc(MetricLoginFailure)
		if errors.Is(err, ErrAccountNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	ok, err := s.passwordHash.Verify(plaintext, account.PasswordHash)
	if err != nil || !ok {
		s.metricInc(MetricLoginFailure)
		return "", ErrInvalidPassword
	}

	if s.config.Password.UpgradeOnLogin {
		if needsUpgrade, err := s.passwordHash.NeedsUpgrade(account.PasswordHash); err == nil && needsUpgrade {
			if upgradedHash, err := s.passwordHash.Hash(plaintext); err == nil {
				// Rehash update is best-effort and must not block successful login.
				account.PasswordHash = upgradedHash
				if err := s.store.Update(ctx, account); err != nil {
					log.Print("goAccounts: password hash upgrade update failed")
				}
			} else {
				log.Print("goAccounts: password hash upgrade generation failed")
			}
		}
	}
	plaintext = ""

	sessionToken, err := s.issueSession(account.ID)
	if err != nil {
		s.metricInc(MetricLoginFailure)
		return "", err
	}

	s.metricInc(MetricLoginSuccess)
	return sessionToken, nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Sessions are stateless, so the only effect is instructing the transport
// layer to clear the client credential. Logout is idempotent and succeeds
// with or without a valid existing session.
func (s *Service) Logout(ctx context.Context) error {
	s.metricInc(MetricLogout)
	return nil
}

// ValidateSession describes the validatesession operation and its observable behavior.
//
// ValidateSession may return an error when input validation, dependency calls, or security checks fail.
// ValidateSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Verification is a pure computation: no store access, no side effects.
func (s *Service) ValidateSession(tokenStr string) (string, error) {
	if s == nil || s.tokens == nil {
		return "", ErrServiceNotReady
	}
	if s.metrics.Enabled() {
		start := time.Now()
		defer func() {
			s.metrics.Observe(MetricValidateLatency, time.Since(start))
		}()
	}

	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		s.metricInc(MetricTokenRejected)
		return "", ErrUnauthorized
	}

	return claims.AccountID, nil
}

func (s *Service) issueSession(accountID string) (string, error) {
	sessionToken, err := s.tokens.Issue(accountID)
	if err != nil {
		return "", err
	}
	s.metricInc(MetricSessionIssued)
	return sessionToken, nil
}

func (s *Service) nowMillis() int64 {
	return s.now().UnixMilli()
}
