package courseauth

import (
	"errors"
	"time"
)

// Config defines the engine configuration. Instances are cloned at Build and
// treated as immutable afterwards.
type Config struct {
	OTP         OTPConfig
	Token       TokenConfig
	Password    PasswordConfig
	TestAccount TestAccountConfig
	Metrics     MetricsConfig
}

// OTPConfig controls one-time code generation.
type OTPConfig struct {
	Digits int
	TTL    time.Duration
}

// TokenConfig controls bearer token issuance. Keys are raw bytes for hs256
// and PEM or raw seed bytes for ed25519, matching the token subpackage.
type TokenConfig struct {
	TTL           time.Duration
	SigningMethod string // "hs256" (default) or "ed25519"
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

// PasswordConfig carries the argon2id parameters.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// TestAccountConfig is the demo-login bypass. When Enabled, a login with the
// exact Email/Password pair always succeeds, provisioning and force-verifying
// the account on first use. Production deployments leave it disabled.
type TestAccountConfig struct {
	Enabled  bool
	Name     string
	Email    string
	Password string
}

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		OTP: OTPConfig{
			Digits: 4,
			TTL:    10 * time.Minute,
		},
		Token: TokenConfig{
			TTL:           24 * time.Hour,
			SigningMethod: "hs256",
		},
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		TestAccount: TestAccountConfig{
			Enabled: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultConfig returns the engine defaults: 4-digit codes valid 10 minutes,
// hs256 tokens valid 1 day, argon2id at 64 MB / 3 passes, test account
// disabled.
func DefaultConfig() Config {
	return defaultConfig()
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.PrivateKey = cloneBytes(cfg.Token.PrivateKey)
	out.Token.PublicKey = cloneBytes(cfg.Token.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Validate checks internal consistency. It is called by Build and may be
// called directly by integrators that assemble Config from the environment.
func (c *Config) Validate() error {
	if c.OTP.Digits < 4 || c.OTP.Digits > 10 {
		return errors.New("OTP Digits must be between 4 and 10")
	}
	if c.OTP.TTL <= 0 {
		return errors.New("OTP TTL must be > 0")
	}

	if c.Token.TTL <= 0 {
		return errors.New("Token TTL must be > 0")
	}
	if c.Token.SigningMethod != "hs256" && c.Token.SigningMethod != "ed25519" {
		return errors.New("unsupported token signing method")
	}
	if len(c.Token.PrivateKey) == 0 {
		return errors.New("token signing requires PrivateKey")
	}
	if c.Token.SigningMethod == "ed25519" && len(c.Token.PublicKey) == 0 {
		return errors.New("ed25519 requires PublicKey")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be within [0, 2m]")
	}

	if c.Password.Memory < 8*1024 {
		return errors.New("Password Memory must be >= 8192 KB")
	}
	if c.Password.Time < 1 {
		return errors.New("Password Time must be >= 1")
	}
	if c.Password.Parallelism < 1 {
		return errors.New("Password Parallelism must be >= 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("Password SaltLength must be >= 16")
	}
	if c.Password.KeyLength < 16 {
		return errors.New("Password KeyLength must be >= 16")
	}

	if c.TestAccount.Enabled {
		if c.TestAccount.Email == "" || c.TestAccount.Password == "" {
			return errors.New("TestAccount requires Email and Password when enabled")
		}
	}

	return nil
}
