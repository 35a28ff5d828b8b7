package courseauth

import "errors"

var (
	// ErrAccountExists is returned by Register when the email is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when no account matches the given email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNoChallenge is returned when an OTP is presented but no challenge is outstanding.
	ErrNoChallenge = errors.New("no pending verification code")
	// ErrChallengeExpired is returned when the outstanding code is past its validity window.
	ErrChallengeExpired = errors.New("verification code expired")
	// ErrCodeMismatch is returned when the presented code does not match the outstanding one.
	ErrCodeMismatch = errors.New("verification code mismatch")
	// ErrInvalidCredentials is returned on login with an unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountUnverified is returned on login before the email has been verified.
	ErrAccountUnverified = errors.New("account unverified")
	// ErrDeliveryFailed is returned when the notifier could not deliver a code.
	ErrDeliveryFailed = errors.New("code delivery failed")
	// ErrTokenInvalid is returned by Validate for expired, tampered, or malformed tokens.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrMissingFields is returned when a required input is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrPasswordPolicy is returned when a password fails the hashing policy.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrStoreUnavailable is returned when the account store backend cannot be reached.
	ErrStoreUnavailable = errors.New("account store unavailable")
	// ErrEngineNotReady is returned when the engine is used before Build wired its dependencies.
	ErrEngineNotReady = errors.New("engine not initialized")
)
