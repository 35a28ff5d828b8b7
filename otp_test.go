package courseauth

import (
	"testing"
	"time"
)

func TestGenerateOTPLengthAndCharset(t *testing.T) {
	for _, digits := range []int{4, 6, 10} {
		code, err := generateOTP(digits)
		if err != nil {
			t.Fatalf("generateOTP(%d) failed: %v", digits, err)
		}
		if len(code) != digits {
			t.Fatalf("generateOTP(%d) returned %q", digits, code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit %q in code %q", c, code)
			}
		}
	}
}

func TestGenerateOTPBounds(t *testing.T) {
	for _, digits := range []int{-1, 0, 3, 11} {
		if _, err := generateOTP(digits); err == nil {
			t.Fatalf("generateOTP(%d) must fail", digits)
		}
	}
}

func TestGenerateOTPVaries(t *testing.T) {
	// 16 draws of a 10-digit code colliding is practically impossible
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		code, err := generateOTP(10)
		if err != nil {
			t.Fatalf("generateOTP failed: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatal("codes must vary between draws")
	}
}

func TestNewChallengeExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ch, err := newChallenge(4, 10*time.Minute, now)
	if err != nil {
		t.Fatalf("newChallenge failed: %v", err)
	}
	if len(ch.Code) != 4 {
		t.Fatalf("unexpected code %q", ch.Code)
	}
	if want := now.Add(10 * time.Minute); !ch.ExpiresAt.Equal(want) {
		t.Fatalf("expiry %v, want %v", ch.ExpiresAt, want)
	}
}
