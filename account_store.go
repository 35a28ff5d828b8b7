package courseauth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const accountKeyPrefix = "acct"

// RedisAccountStore keeps one JSON record per account, keyed by email.
// ConsumeChallenge runs under WATCH so a code is consumed at most once even
// under concurrent presentation.
type RedisAccountStore struct {
	redis  *redis.Client
	prefix string

	// now is swapped in tests; everywhere else it is time.Now.
	now func() time.Time
}

// NewRedisAccountStore wraps an already-connected client.
func NewRedisAccountStore(client *redis.Client) *RedisAccountStore {
	return &RedisAccountStore{
		redis:  client,
		prefix: accountKeyPrefix,
		now:    time.Now,
	}
}

func (s *RedisAccountStore) key(email string) string {
	return s.prefix + ":" + email
}

// FindByEmail loads the account record for the exact email.
func (s *RedisAccountStore) FindByEmail(ctx context.Context, email string) (Account, error) {
	data, err := s.redis.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return decodeAccount(data)
}

// Create persists a new record, failing with [ErrAccountExists] when the
// email is already taken. SET NX makes the existence check and the write a
// single step.
func (s *RedisAccountStore) Create(ctx context.Context, account Account) error {
	encoded, err := encodeAccount(account)
	if err != nil {
		return err
	}

	ok, err := s.redis.SetNX(ctx, s.key(account.Email), encoded, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return ErrAccountExists
	}

	return nil
}

// Save overwrites the record for an existing account.
func (s *RedisAccountStore) Save(ctx context.Context, account Account) error {
	encoded, err := encodeAccount(account)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(account.Email), encoded, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// ConsumeChallenge validates code against the outstanding challenge and, on
// an exact match before expiry, clears the challenge, applies mutate, and
// persists the record in one transaction. The WATCH is retried a bounded
// number of times when a concurrent writer touches the key.
func (s *RedisAccountStore) ConsumeChallenge(ctx context.Context, email, code string, mutate func(*Account)) (Account, error) {
	const maxRetries = 4
	key := s.key(email)

	for i := 0; i < maxRetries; i++ {
		var consumed Account

		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					return ErrAccountNotFound
				}
				return err
			}

			account, err := decodeAccount(data)
			if err != nil {
				return err
			}

			if account.PendingOTP == nil {
				return ErrNoChallenge
			}

			if !s.now().Before(account.PendingOTP.ExpiresAt) {
				account.PendingOTP = nil
				stale, encodeErr := encodeAccount(account)
				if encodeErr != nil {
					return encodeErr
				}
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Set(ctx, key, stale, 0)
					return nil
				})
				if err != nil {
					return err
				}
				return ErrChallengeExpired
			}

			if subtle.ConstantTimeCompare([]byte(account.PendingOTP.Code), []byte(code)) != 1 {
				return ErrCodeMismatch
			}

			account.PendingOTP = nil
			mutate(&account)

			encoded, err := encodeAccount(account)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, encoded, 0)
				return nil
			})
			if err != nil {
				return err
			}

			consumed = account
			return nil
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			switch {
			case errors.Is(err, ErrAccountNotFound),
				errors.Is(err, ErrNoChallenge),
				errors.Is(err, ErrChallengeExpired),
				errors.Is(err, ErrCodeMismatch):
				return Account{}, err
			default:
				return Account{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}

		return consumed, nil
	}

	return Account{}, ErrNoChallenge
}

func encodeAccount(account Account) ([]byte, error) {
	return json.Marshal(account)
}

func decodeAccount(data []byte) (Account, error) {
	var account Account
	if err := json.Unmarshal(data, &account); err != nil {
		return Account{}, errors.New("invalid account record")
	}
	return account, nil
}
