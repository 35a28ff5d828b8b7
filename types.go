package courseauth

import (
	"context"
	"time"
)

// Challenge is the single outstanding one-time code bound to an account.
// ExpiresAt is absolute; a challenge is valid strictly before it.
type Challenge struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Account is the durable identity record keyed by email. Email is an
// exact-match natural key; no normalization is applied. PendingOTP is
// present only while a challenge is outstanding.
type Account struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password_hash"`
	Verified     bool       `json:"verified"`
	PendingOTP   *Challenge `json:"pending_otp,omitempty"`
}

// AccountStore is the persistence contract the engine drives. Implementations
// must provide per-record atomicity: Create, Save, and ConsumeChallenge each
// persist the full record in one step.
//
// ConsumeChallenge is the single-use consumption primitive. It validates the
// presented code against the outstanding challenge and, only on an exact
// match before expiry, clears the challenge, applies mutate to the record,
// and persists — all atomically, so a code can be consumed at most once.
// Failure order: [ErrAccountNotFound], [ErrNoChallenge], [ErrChallengeExpired]
// (the stale challenge is cleared as a side effect), [ErrCodeMismatch] (the
// record is left untouched).
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, account Account) error
	Save(ctx context.Context, account Account) error
	ConsumeChallenge(ctx context.Context, email, code string, mutate func(*Account)) (Account, error)
}

// Notifier delivers one-time codes to a user-controlled address. Delivery
// success or failure is the whole contract surface; the engine never learns
// transport details.
type Notifier interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendResetCode(ctx context.Context, email, code string) error
}

// LoginResult is returned by [Engine.Login] on success.
type LoginResult struct {
	Token   string
	Account Account
}

// Identity is the validated content of a bearer token.
type Identity struct {
	AccountID string
	Email     string
}
