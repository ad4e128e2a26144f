package internal

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"math/big"
	"strconv"
)

// NewOTP returns a uniformly random decimal code of the requested width.
// The first digit is never zero, so a 6-digit code always falls in
// [100000, 999999] and round-trips through integer parsing unchanged.
func NewOTP(digits int) (string, error) {
	if digits < 6 || digits > 10 {
		return "", errors.New("invalid otp digits")
	}

	low := int64(1)
	for i := 1; i < digits; i++ {
		low *= 10
	}
	span := big.NewInt(low * 9)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}

	otp := strconv.FormatInt(low+n.Int64(), 10)
	if len(otp) != digits {
		return "", errors.New("invalid otp generation length")
	}
	return otp, nil
}

// OTPEqual compares a submitted code against a stored one in constant time.
// An empty stored code never matches anything.
func OTPEqual(provided, stored string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(stored)) == 1
}
