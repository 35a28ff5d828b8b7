package courseauth

import (
	"context"
	"errors"

	"github.com/coursebook/courseauth/password"
)

// RequestPasswordReset attaches a fresh challenge to the account and sends
// the code. Issuing a new code replaces any outstanding challenge, including
// one left over from registration; only the latest code is accepted.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	challenge, err := newChallenge(e.config.OTP.Digits, e.config.OTP.TTL, e.now())
	if err != nil {
		return err
	}
	account.PendingOTP = challenge

	if err := e.store.Save(ctx, account); err != nil {
		return err
	}

	if e.notifier != nil {
		if err := e.deliver(ctx, e.notifier.SendResetCode, email, challenge.Code); err != nil {
			return err
		}
	}

	e.metricInc(MetricResetRequest)
	return nil
}

// ResetPassword consumes the outstanding reset challenge and installs the new
// password hash. The verification flag is left as it was: resetting a
// password never verifies an account, and an unverified account that resets
// still cannot log in.
func (e *Engine) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if e == nil || e.store == nil || e.passwordHash == nil {
		return ErrEngineNotReady
	}
	if email == "" || code == "" || newPassword == "" {
		return ErrMissingFields
	}

	hash, err := e.passwordHash.Hash(newPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return ErrPasswordPolicy
		}
		return err
	}

	_, err = e.store.ConsumeChallenge(ctx, email, code, func(a *Account) {
		a.PasswordHash = hash
	})
	if err != nil {
		if errors.Is(err, ErrNoChallenge) || errors.Is(err, ErrChallengeExpired) || errors.Is(err, ErrCodeMismatch) {
			e.metricInc(MetricResetFailure)
		}
		return err
	}

	e.metricInc(MetricResetSuccess)
	return nil
}
