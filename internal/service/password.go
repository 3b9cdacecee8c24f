package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultPasswordIterations matches the current OWASP recommendation for PBKDF2-HMAC-SHA256
	DefaultPasswordIterations = 600000

	passwordMethod  = "pbkdf2:sha256"
	passwordKeyLen  = 32
	passwordSaltLen = 16
	saltAlphabet    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) bool
}

// pbkdf2Hasher encodes hashes as "pbkdf2:sha256:<iterations>$<salt>$<hex digest>"
type pbkdf2Hasher struct {
	iterations int
}

// NewPasswordHasher creates a PBKDF2-SHA256 hasher with the given iteration count
func NewPasswordHasher(iterations int) PasswordHasher {
	if iterations <= 0 {
		iterations = DefaultPasswordIterations
	}
	return &pbkdf2Hasher{iterations: iterations}
}

func (h *pbkdf2Hasher) Hash(password string) (string, error) {
	salt, err := randomSalt(passwordSaltLen)
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := pbkdf2.Key([]byte(password), []byte(salt), h.iterations, passwordKeyLen, sha256.New)
	return fmt.Sprintf("%s:%d$%s$%s", passwordMethod, h.iterations, salt, hex.EncodeToString(digest)), nil
}

// Verify recomputes the digest with the iteration count stored in encoded
func (h *pbkdf2Hasher) Verify(encoded, password string) bool {
	method, salt, want, ok := parseEncodedHash(encoded)
	if !ok {
		return false
	}
	iterations, err := strconv.Atoi(strings.TrimPrefix(method, passwordMethod+":"))
	if err != nil || iterations <= 0 || !strings.HasPrefix(method, passwordMethod+":") {
		return false
	}
	expected, err := hex.DecodeString(want)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(got, expected) == 1
}

func parseEncodedHash(encoded string) (method, salt, digest string, ok bool) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func randomSalt(n int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(saltAlphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(saltAlphabet[idx.Int64()])
	}
	return sb.String(), nil
}
