package courseauth

import (
	"time"

	"github.com/coursebook/courseauth/password"
	"github.com/coursebook/courseauth/token"
)

// Builder assembles an [Engine]. Zero value is not usable; start with [New].
type Builder struct {
	config   Config
	store    AccountStore
	notifier Notifier
}

// New starts a builder with [DefaultConfig].
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the whole configuration. Call it before the other
// With* methods if both are used.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore sets the account store. Required.
func (b *Builder) WithStore(store AccountStore) *Builder {
	b.store = store
	return b
}

// WithNotifier sets the code delivery channel. Optional; without one, codes
// are generated and persisted but never sent, which is only useful in tests.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithTokenKey sets a symmetric hs256 signing key on the current config.
func (b *Builder) WithTokenKey(key []byte) *Builder {
	b.config.Token.SigningMethod = "hs256"
	b.config.Token.PrivateKey = cloneBytes(key)
	return b
}

// WithTestAccount enables the demo-login bypass for the given identity.
func (b *Builder) WithTestAccount(name, email, pass string) *Builder {
	b.config.TestAccount = TestAccountConfig{
		Enabled:  true,
		Name:     name,
		Email:    email,
		Password: pass,
	}
	return b
}

// Build validates the configuration and wires the engine.
func (b *Builder) Build() (*Engine, error) {
	if b.store == nil {
		return nil, ErrEngineNotReady
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(token.Config{
		SigningMethod: token.SigningMethod(b.config.Token.SigningMethod),
		PrivateKey:    b.config.Token.PrivateKey,
		PublicKey:     b.config.Token.PublicKey,
		TTL:           b.config.Token.TTL,
		Issuer:        b.config.Token.Issuer,
		Leeway:        b.config.Token.Leeway,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewArgon2(password.Params{
		Memory:      b.config.Password.Memory,
		Time:        b.config.Password.Time,
		Parallelism: b.config.Password.Parallelism,
		SaltLength:  b.config.Password.SaltLength,
		KeyLength:   b.config.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:       b.config,
		store:        b.store,
		notifier:     b.notifier,
		tokens:       tokens,
		passwordHash: hasher,
		metrics:      NewMetrics(b.config.Metrics),
		now:          time.Now,
	}, nil
}
