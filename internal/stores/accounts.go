package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	goAccounts "github.com/atharvk9/goAccounts"
)

// createAccountLua atomically claims the email index and writes the record.
// KEYS[1] = email index key
// KEYS[2] = record key
// ARGV[1] = account id
// ARGV[2] = record JSON
//
// Returns:
//
//	"OK" on success
//	error string: "duplicate_email"
var createAccountLua = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return {err='duplicate_email'}
end

redis.call('SET', KEYS[1], ARGV[1])
redis.call('SET', KEYS[2], ARGV[2])
return 'OK'
`)

type accountBlob struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	PasswordHash       string `json:"password_hash"`
	Verified           bool   `json:"verified"`
	VerifyOTP          string `json:"verify_otp,omitempty"`
	VerifyOTPExpiresAt int64  `json:"verify_otp_expires_at,omitempty"`
	ResetOTP           string `json:"reset_otp,omitempty"`
	ResetOTPExpiresAt  int64  `json:"reset_otp_expires_at,omitempty"`
}

// AccountStore defines a public type used by goAccounts APIs.
//
// AccountStore instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AccountStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewAccountStore describes the newaccountstore operation and its observable behavior.
//
// NewAccountStore may return an error when input validation, dependency calls, or security checks fail.
// NewAccountStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewAccountStore(redisClient redis.UniversalClient, prefix string) *AccountStore {
	if prefix == "" {
		prefix = "gacc"
	}
	return &AccountStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *AccountStore) idKey(id string) string {
	return s.prefix + ":id:" + id
}

func (s *AccountStore) emailKey(email string) string {
	return s.prefix + ":email:" + normalizeEmail(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByID describes the getbyid operation and its observable behavior.
//
// GetByID may return an error when input validation, dependency calls, or security checks fail.
// GetByID does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AccountStore) GetByID(ctx context.Context, id string) (goAccounts.AccountRecord, error) {
	if id == "" {
		return goAccounts.AccountRecord{}, goAccounts.ErrAccountNotFound
	}

	data, err := s.redis.Get(ctx, s.idKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return goAccounts.AccountRecord{}, goAccounts.ErrAccountNotFound
	}
	if err != nil {
		return goAccounts.AccountRecord{}, fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}

	return decodeAccount(data)
}

// GetByEmail describes the getbyemail operation and its observable behavior.
//
// GetByEmail may return an error when input validation, dependency calls, or security checks fail.
// GetByEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (goAccounts.AccountRecord, error) {
	if email == "" {
		return goAccounts.AccountRecord{}, goAccounts.ErrAccountNotFound
	}

	id, err := s.redis.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return goAccounts.AccountRecord{}, goAccounts.ErrAccountNotFound
	}
	if err != nil {
		return goAccounts.AccountRecord{}, fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}

	return s.GetByID(ctx, id)
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AccountStore) Create(ctx context.Context, in goAccounts.CreateAccountInput) (goAccounts.AccountRecord, error) {
	record := goAccounts.AccountRecord{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        normalizeEmail(in.Email),
		PasswordHash: in.PasswordHash,
	}

	encoded, err := encodeAccount(record)
	if err != nil {
		return goAccounts.AccountRecord{}, err
	}

	_, err = createAccountLua.Run(ctx, s.redis,
		[]string{s.emailKey(record.Email), s.idKey(record.ID)},
		record.ID,
		encoded,
	).Result()
	if err != nil {
		if err.Error() == "duplicate_email" {
			return goAccounts.AccountRecord{}, goAccounts.ErrStoreDuplicateEmail
		}
		return goAccounts.AccountRecord{}, fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}

	return record, nil
}

// Update describes the update operation and its observable behavior.
//
// Update may return an error when input validation, dependency calls, or security checks fail.
// Update does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The email index is immutable: Update never moves a record to a new address.
func (s *AccountStore) Update(ctx context.Context, record goAccounts.AccountRecord) error {
	if record.ID == "" {
		return goAccounts.ErrAccountNotFound
	}

	existing, err := s.GetByID(ctx, record.ID)
	if err != nil {
		return err
	}
	if normalizeEmail(record.Email) != existing.Email {
		return errors.New("account email is immutable")
	}
	record.Email = existing.Email

	encoded, err := encodeAccount(record)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.idKey(record.ID), encoded, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}

	return nil
}

func encodeAccount(record goAccounts.AccountRecord) ([]byte, error) {
	return json.Marshal(accountBlob{
		ID:                 record.ID,
		Name:               record.Name,
		Email:              record.Email,
		PasswordHash:       record.PasswordHash,
		Verified:           record.Verified,
		VerifyOTP:          record.VerifyOTP,
		VerifyOTPExpiresAt: record.VerifyOTPExpiresAt,
		ResetOTP:           record.ResetOTP,
		ResetOTPExpiresAt:  record.ResetOTPExpiresAt,
	})
}

func decodeAccount(data []byte) (goAccounts.AccountRecord, error) {
	var blob accountBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return goAccounts.AccountRecord{}, fmt.Errorf("%w: %v", goAccounts.ErrStoreUnavailable, err)
	}

	return goAccounts.AccountRecord{
		ID:                 blob.ID,
		Name:               blob.Name,
		Email:              blob.Email,
		PasswordHash:       blob.PasswordHash,
		Verified:           blob.Verified,
		VerifyOTP:          blob.VerifyOTP,
		VerifyOTPExpiresAt: blob.VerifyOTPExpiresAt,
		ResetOTP:           blob.ResetOTP,
		ResetOTPExpiresAt:  blob.ResetOTPExpiresAt,
	}, nil
}
