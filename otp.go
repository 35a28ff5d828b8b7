package courseauth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

// generateOTP draws a uniform numeric code of the given length. Each digit is
// an independent crypto/rand draw, so leading zeros are possible and every
// code in the space is equally likely.
func generateOTP(digits int) (string, error) {
	if digits < 4 || digits > 10 {
		return "", errors.New("invalid otp digits")
	}

	var b strings.Builder
	b.Grow(digits)

	max := big.NewInt(10)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}

	return b.String(), nil
}

// newChallenge issues a fresh code with an absolute expiry of now + ttl.
func newChallenge(digits int, ttl time.Duration, now time.Time) (*Challenge, error) {
	code, err := generateOTP(digits)
	if err != nil {
		return nil, err
	}
	return &Challenge{
		Code:      code,
		ExpiresAt: now.Add(ttl),
	}, nil
}
