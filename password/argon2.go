package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
	minPassBytes          = 8
	algorithmID           = "argon2id"
)

// DefaultMaxPasswordBytes bounds hashing work when no explicit cap is set.
const DefaultMaxPasswordBytes = 1024

// ErrTooShort rejects passwords under the minimum byte length.
var ErrTooShort = errors.New("password must be at least 8 bytes")

// ErrTooLong rejects passwords over the configured byte cap.
var ErrTooLong = errors.New("password exceeds maximum length")

// Params carries the argon2id cost parameters. Set once, then immutable.
type Params struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
	// MaxPasswordBytes caps input length before any key derivation runs.
	// Zero selects DefaultMaxPasswordBytes.
	MaxPasswordBytes int
}

// Argon2 hashes and verifies passwords in PHC string format. Safe for
// concurrent use.
type Argon2 struct {
	params Params
}

type parsedPHC struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	hash        []byte
	keyLength   uint32
}

// NewArgon2 validates the cost parameters against the floor values.
func NewArgon2(p Params) (*Argon2, error) {
	if p.Memory < minMemoryKB {
		return nil, errors.New("password memory must be >= 8192 KB")
	}
	if p.Time < minTimeCost {
		return nil, errors.New("password time must be >= 1")
	}
	if p.Parallelism < minParallelism {
		return nil, errors.New("password parallelism must be >= 1")
	}
	if p.SaltLength < minSaltLength {
		return nil, errors.New("password salt length must be >= 16")
	}
	if p.KeyLength < minKeyLength {
		return nil, errors.New("password key length must be >= 16")
	}
	if p.MaxPasswordBytes == 0 {
		p.MaxPasswordBytes = DefaultMaxPasswordBytes
	}
	if p.MaxPasswordBytes < minPassBytes {
		return nil, errors.New("password max length below minimum length")
	}

	return &Argon2{params: p}, nil
}

// Hash derives an argon2id hash with a fresh random salt and encodes it in
// PHC format. The input is used byte for byte; no Unicode normalization.
func (a *Argon2) Hash(password string) (string, error) {
	if len(password) < minPassBytes {
		return "", ErrTooShort
	}
	if len(password) > a.params.MaxPasswordBytes {
		return "", ErrTooLong
	}

	salt := make([]byte, a.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		a.params.Time,
		a.params.Memory,
		a.params.Parallelism,
		a.params.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		a.params.Memory,
		a.params.Time,
		a.params.Parallelism,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(hash),
	), nil
}

// Verify recomputes the hash with the parameters embedded in encodedHash and
// compares in constant time. A malformed encoding is an error, not a
// mismatch.
func (a *Argon2) Verify(password string, encodedHash string) (bool, error) {
	if len(password) > a.params.MaxPasswordBytes {
		return false, ErrTooLong
	}

	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		parsed.salt,
		parsed.time,
		parsed.memory,
		parsed.parallelism,
		parsed.keyLength,
	)

	return subtle.ConstantTimeCompare(computed, parsed.hash) == 1, nil
}

// NeedsUpgrade reports whether encodedHash was produced with weaker
// parameters than the current ones. Callers rehash after a successful verify.
func (a *Argon2) NeedsUpgrade(encodedHash string) (bool, error) {
	parsed, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	if a.params.Memory > parsed.memory {
		return true, nil
	}
	if a.params.Time > parsed.time {
		return true, nil
	}
	if a.params.Parallelism > parsed.parallelism {
		return true, nil
	}
	if a.params.KeyLength != parsed.keyLength {
		return true, nil
	}

	return false, nil
}

func parsePHC(encodedHash string) (*parsedPHC, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.New("invalid PHC format")
	}
	if parts[1] != algorithmID {
		return nil, errors.New("unsupported algorithm")
	}

	if !strings.HasPrefix(parts[2], "v=") {
		return nil, errors.New("missing argon2 version")
	}
	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil {
		return nil, errors.New("invalid argon2 version")
	}
	if version != argon2.Version {
		return nil, errors.New("unsupported argon2 version")
	}

	params, err := parsePHCParams(parts[3])
	if err != nil {
		return nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, errors.New("invalid salt encoding")
	}
	if len(salt) < int(minSaltLength) {
		return nil, errors.New("invalid salt length")
	}

	hash, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, errors.New("invalid hash encoding")
	}
	if len(hash) == 0 {
		return nil, errors.New("invalid hash length")
	}

	return &parsedPHC{
		memory:      params.Memory,
		time:        params.Time,
		parallelism: params.Parallelism,
		salt:        salt,
		hash:        hash,
		keyLength:   uint32(len(hash)),
	}, nil
}

func parsePHCParams(part string) (*Params, error) {
	pairs := strings.Split(part, ",")
	if len(pairs) != 3 {
		return nil, errors.New("invalid parameter format")
	}

	var (
		mSet, tSet, pSet bool
		params           Params
	)
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, errors.New("invalid parameter entry")
		}
		switch kv[0] {
		case "m":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil || v < uint64(minMemoryKB) {
				return nil, errors.New("invalid memory parameter")
			}
			params.Memory = uint32(v)
			mSet = true
		case "t":
			v, err := strconv.ParseUint(kv[1], 10, 32)
			if err != nil || v < uint64(minTimeCost) {
				return nil, errors.New("invalid time parameter")
			}
			params.Time = uint32(v)
			tSet = true
		case "p":
			v, err := strconv.ParseUint(kv[1], 10, 8)
			if err != nil || v < uint64(minParallelism) {
				return nil, errors.New("invalid parallelism parameter")
			}
			params.Parallelism = uint8(v)
			pSet = true
		default:
			return nil, errors.New("unsupported parameter")
		}
	}
	if !mSet || !tSet || !pSet {
		return nil, errors.New("missing parameters")
	}

	return &params, nil
}
