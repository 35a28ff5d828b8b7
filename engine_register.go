package courseauth

import (
	"context"
	"errors"

	"github.com/coursebook/courseauth/password"
	"github.com/google/uuid"
)

// Register creates an unverified account and sends the verification code to
// the supplied address. The record is created before delivery is attempted;
// a delivery failure surfaces as [ErrDeliveryFailed] but leaves the pending
// account and its stored code in place until the code expires.
func (e *Engine) Register(ctx context.Context, name, email, pass string) error {
	if e == nil || e.store == nil || e.passwordHash == nil {
		return ErrEngineNotReady
	}
	if name == "" || email == "" || pass == "" {
		return ErrMissingFields
	}

	if _, err := e.store.FindByEmail(ctx, email); err == nil {
		e.metricInc(MetricRegisterDuplicate)
		return ErrAccountExists
	} else if !errors.Is(err, ErrAccountNotFound) {
		return err
	}

	hash, err := e.passwordHash.Hash(pass)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return ErrPasswordPolicy
		}
		return err
	}

	challenge, err := newChallenge(e.config.OTP.Digits, e.config.OTP.TTL, e.now())
	if err != nil {
		return err
	}

	account := Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Verified:     false,
		PendingOTP:   challenge,
	}

	if err := e.store.Create(ctx, account); err != nil {
		if errors.Is(err, ErrAccountExists) {
			e.metricInc(MetricRegisterDuplicate)
		}
		return err
	}

	if e.notifier != nil {
		if err := e.deliver(ctx, e.notifier.SendVerificationCode, email, challenge.Code); err != nil {
			return err
		}
	}

	e.metricInc(MetricRegisterSuccess)
	return nil
}
