package courseauth

import (
	"context"
	"errors"
)

// VerifyOTP consumes the outstanding registration challenge and flips the
// account to verified. Consumption is atomic in the store: concurrent calls
// with the same code can succeed at most once, the loser observing
// [ErrNoChallenge].
func (e *Engine) VerifyOTP(ctx context.Context, email, code string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}

	_, err := e.store.ConsumeChallenge(ctx, email, code, func(a *Account) {
		a.Verified = true
	})
	if err != nil {
		if errors.Is(err, ErrNoChallenge) || errors.Is(err, ErrChallengeExpired) || errors.Is(err, ErrCodeMismatch) {
			e.metricInc(MetricVerifyFailure)
		}
		return err
	}

	e.metricInc(MetricVerifySuccess)
	return nil
}
