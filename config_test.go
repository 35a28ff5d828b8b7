package courseauth

import (
	"testing"
	"time"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Token.PrivateKey = []byte("test-secret-key-0123456789abcdef")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OTP.Digits != 4 {
		t.Fatalf("default OTP digits = %d", cfg.OTP.Digits)
	}
	if cfg.OTP.TTL != 10*time.Minute {
		t.Fatalf("default OTP TTL = %v", cfg.OTP.TTL)
	}
	if cfg.Token.TTL != 24*time.Hour {
		t.Fatalf("default token TTL = %v", cfg.Token.TTL)
	}
	if cfg.Token.SigningMethod != "hs256" {
		t.Fatalf("default signing method = %q", cfg.Token.SigningMethod)
	}
	if cfg.TestAccount.Enabled {
		t.Fatal("test account must default to disabled")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := func() error { c := validConfig(); return c.Validate() }(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"otp digits too low", func(c *Config) { c.OTP.Digits = 3 }},
		{"otp digits too high", func(c *Config) { c.OTP.Digits = 11 }},
		{"otp ttl zero", func(c *Config) { c.OTP.TTL = 0 }},
		{"token ttl zero", func(c *Config) { c.Token.TTL = 0 }},
		{"bad signing method", func(c *Config) { c.Token.SigningMethod = "rs256" }},
		{"missing key", func(c *Config) { c.Token.PrivateKey = nil }},
		{"leeway negative", func(c *Config) { c.Token.Leeway = -time.Second }},
		{"leeway too large", func(c *Config) { c.Token.Leeway = 3 * time.Minute }},
		{"argon memory too low", func(c *Config) { c.Password.Memory = 1024 }},
		{"argon time zero", func(c *Config) { c.Password.Time = 0 }},
		{"argon parallelism zero", func(c *Config) { c.Password.Parallelism = 0 }},
		{"salt too short", func(c *Config) { c.Password.SaltLength = 8 }},
		{"key too short", func(c *Config) { c.Password.KeyLength = 8 }},
		{"test account without credentials", func(c *Config) { c.TestAccount.Enabled = true }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestConfigCloneIsolatesKeys(t *testing.T) {
	cfg := validConfig()
	clone := cloneConfig(cfg)

	clone.Token.PrivateKey[0] ^= 0xff
	if cfg.Token.PrivateKey[0] == clone.Token.PrivateKey[0] {
		t.Fatal("clone must not share key backing arrays")
	}
}
