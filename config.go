package goAccounts

import (
	"errors"
	"time"
)

// Config defines a public type used by goAccounts APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token     TokenConfig
	Password  PasswordConfig
	VerifyOTP OTPConfig
	ResetOTP  OTPConfig
	Cookie    CookieConfig
	Mail      MailConfig
	Metrics   MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by goAccounts APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	SessionTTL    time.Duration
	SigningMethod string // "hs256" (default), "ed25519" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by goAccounts APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	// MinLength rejects shorter plaintexts on register and reset.
	// Zero disables the gate; any non-empty password is accepted.
	MinLength      int
	UpgradeOnLogin bool
}

/*
====================================
OTP CONFIG
====================================
*/

// OTPConfig defines a public type used by goAccounts APIs.
//
// OTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OTPConfig struct {
	Digits int
	TTL    time.Duration
}

/*
====================================
COOKIE CONFIG
====================================
*/

// CookieConfig defines a public type used by goAccounts APIs.
//
// CookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
//
// Production relaxes the cross-site policy: SameSite=None with the Secure
// attribute in production, SameSite=Lax without it otherwise.
type CookieConfig struct {
	Name       string
	Path       string
	MaxAge     time.Duration
	Production bool
}

/*
====================================
MAIL CONFIG
====================================
*/

// MailConfig defines a public type used by goAccounts APIs.
//
// MailConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MailConfig struct {
	// Sender is the outbound From address handed to the Notifier layer.
	Sender string
	// AppName appears in welcome mail subjects and bodies.
	AppName string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goAccounts APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			SessionTTL:    7 * 24 * time.Hour,
			SigningMethod: "hs256",
			Issuer:        "goAccounts",
			Leeway:        30 * time.Second,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		VerifyOTP: OTPConfig{
			Digits: 6,
			TTL:    10 * time.Minute,
		},
		ResetOTP: OTPConfig{
			Digits: 6,
			TTL:    5 * time.Minute,
		},
		Cookie: CookieConfig{
			Name:   "token",
			Path:   "/",
			MaxAge: 7 * 24 * time.Hour,
		},
		Mail: MailConfig{
			AppName: "goAccounts",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if c.Token.SessionTTL <= 0 {
		return errors.New("Token SessionTTL must be positive")
	}
	if len(c.Token.PrivateKey) == 0 {
		return errors.New("Token PrivateKey required")
	}
	if c.VerifyOTP.Digits < 6 || c.VerifyOTP.Digits > 10 {
		return errors.New("VerifyOTP Digits must be between 6 and 10")
	}
	if c.ResetOTP.Digits < 6 || c.ResetOTP.Digits > 10 {
		return errors.New("ResetOTP Digits must be between 6 and 10")
	}
	if c.VerifyOTP.TTL <= 0 || c.ResetOTP.TTL <= 0 {
		return errors.New("OTP TTL must be positive")
	}
	if c.Cookie.Name == "" {
		return errors.New("Cookie Name required")
	}
	if c.Mail.Sender == "" {
		return errors.New("Mail Sender required")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.PrivateKey = cloneBytes(cfg.Token.PrivateKey)
	out.Token.PublicKey = cloneBytes(cfg.Token.PublicKey)
	return out
}

func cloneBytes(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
