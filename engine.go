package courseauth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/coursebook/courseauth/password"
	"github.com/coursebook/courseauth/token"
	"github.com/google/uuid"
)

// Engine orchestrates the credential lifecycle against the account store and
// notifier. Instances are wired through [Builder.Build] and are immutable
// afterwards.
type Engine struct {
	config       Config
	store        AccountStore
	notifier     Notifier
	tokens       *token.Manager
	passwordHash *password.Argon2
	metrics      *Metrics

	// now is swapped in tests; everywhere else it is time.Now.
	now func() time.Time
}

// MetricsSnapshot returns a deep copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

// Login authenticates the email/password pair and mints a bearer token. The
// failure order is fixed: unknown email and wrong password both map to
// [ErrInvalidCredentials] so the response does not reveal which one failed,
// and only then is the verification state checked.
func (e *Engine) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	if e == nil || e.store == nil || e.passwordHash == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	if e.config.TestAccount.Enabled &&
		email == e.config.TestAccount.Email &&
		pass == e.config.TestAccount.Password {
		return e.loginTestAccount(ctx)
	}

	if email == "" || pass == "" {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	account, err := e.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			e.metricInc(MetricLoginFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := e.passwordHash.Verify(pass, account.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		return nil, ErrInvalidCredentials
	}

	if !account.Verified {
		e.metricInc(MetricLoginFailure)
		return nil, ErrAccountUnverified
	}

	e.maybeRehash(ctx, &account, pass)

	tok, err := e.tokens.Issue(account.ID, account.Email)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	return &LoginResult{Token: tok, Account: account}, nil
}

// maybeRehash upgrades the stored hash in place after a successful verify
// when the current cost parameters are stronger. Failures are swallowed; the
// old hash stays valid and the next login retries.
func (e *Engine) maybeRehash(ctx context.Context, account *Account, pass string) {
	upgrade, err := e.passwordHash.NeedsUpgrade(account.PasswordHash)
	if err != nil || !upgrade {
		return
	}
	hash, err := e.passwordHash.Hash(pass)
	if err != nil {
		return
	}
	account.PasswordHash = hash
	if err := e.store.Save(ctx, *account); err != nil {
		log.Print("courseauth: password rehash save failed")
	}
}

// loginTestAccount provisions the configured demo identity on first use and
// keeps it verified on every subsequent login.
func (e *Engine) loginTestAccount(ctx context.Context) (*LoginResult, error) {
	cfg := e.config.TestAccount

	account, err := e.store.FindByEmail(ctx, cfg.Email)
	switch {
	case errors.Is(err, ErrAccountNotFound):
		hash, hashErr := e.passwordHash.Hash(cfg.Password)
		if hashErr != nil {
			return nil, hashErr
		}
		account = Account{
			ID:           uuid.NewString(),
			Name:         cfg.Name,
			Email:        cfg.Email,
			PasswordHash: hash,
			Verified:     true,
		}
		if createErr := e.store.Create(ctx, account); createErr != nil && !errors.Is(createErr, ErrAccountExists) {
			return nil, createErr
		}
	case err != nil:
		return nil, err
	case !account.Verified:
		account.Verified = true
		if saveErr := e.store.Save(ctx, account); saveErr != nil {
			return nil, saveErr
		}
	}

	tok, err := e.tokens.Issue(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	return &LoginResult{Token: tok, Account: account}, nil
}

// Validate parses and verifies a bearer token. Expired, tampered, and
// malformed tokens all map to [ErrTokenInvalid]; the distinction is never
// surfaced to the caller.
func (e *Engine) Validate(_ context.Context, tokenStr string) (Identity, error) {
	if e == nil || e.tokens == nil {
		return Identity{}, ErrEngineNotReady
	}

	claims, err := e.tokens.Parse(tokenStr)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{AccountID: claims.UID, Email: claims.Email}, nil
}

// deliver routes the code to the notifier and folds transport failures into
// the delivery sentinel. The account mutation that preceded the send is kept;
// callers re-request a code rather than rolling back.
func (e *Engine) deliver(ctx context.Context, send func(context.Context, string, string) error, email, code string) error {
	if e.notifier == nil {
		return nil
	}
	if err := send(ctx, email, code); err != nil {
		log.Print("courseauth: code delivery failed")
		e.metricInc(MetricDeliveryFailure)
		return errors.Join(ErrDeliveryFailed, err)
	}
	return nil
}
