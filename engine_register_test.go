package courseauth

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterCreatesUnverifiedAccountWithChallenge(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine, store, notifier := newTestEngine(t, rdb)
	ctx := context.Background()

	if err := engine.Register(ctx, "Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	account, err := store.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if account.Verified {
		t.Fatal("new account must start unverified")
	}
	if account.PendingOTP == nil {
		t.Fatal("new account must carry a pending challenge")
	}
	if account.PasswordHash == "password1" || account.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if account.ID == "" {
		t.Fatal("account must be assigned an ID")
	}

	got := notifier.lastVerifyCode()
	if got != account.PendingOTP.Code {
		t.Fatalf("delivered code %q does not match stored challenge %q", got, account.PendingOTP.Code)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4-digit code, got %q", got)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine, _, _ := newTestEngine(t, rdb)
	ctx := context.Background()

	if err := engine.Register(ctx, "Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	err := engine.Register(ctx, "Mallory", "alice@example.com", "different1")
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine, _, _ := newTestEngine(t, rdb)
	ctx := context.Background()

	cases := []struct {
		name, email, pass string
	}{
		{"", "alice@example.com", "password1"},
		{"Alice", "", "password1"},
		{"Alice", "alice@example.com", ""},
	}
	for _, c := range cases {
		if err := engine.Register(ctx, c.name, c.email, c.pass); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %+v, got %v", c, err)
		}
	}
}

func TestRegisterShortPassword(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine, store, _ := newTestEngine(t, rdb)
	ctx := context.Background()

	err := engine.Register(ctx, "Alice", "alice@example.com", "short")
	if !errors.Is(err, ErrPasswordPolicy) {
		t.Fatalf("expected ErrPasswordPolicy, got %v", err)
	}

	if _, err := store.FindByEmail(ctx, "alice@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatal("rejected registration must not create an account")
	}
}

func TestRegisterDeliveryFailureKeepsAccount(t *testing.T) {
	mr, rdb := newTestRedis(t)
	defer mr.Close()

	engine, store, notifier := newTestEngine(t, rdb)
	notifier.fail = true
	ctx := context.Background()

	err := engine.Register(ctx, "Alice", "alice@example.com", "password1")
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("expected ErrDeliveryFailed, got %v", err)
	}

	if _, err := store.FindByEmail(ctx, "alice@example.com"); err != nil {
		t.Fatalf("pending account must survive a delivery failure: %v", err)
	}
}
