package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	kerrors "github.com/treebird7/Envoak/internal/errors"

	"golang.org/x/crypto/blake2b"
)

// KeySize is the size of the decoded symmetric key in bytes (AES-256).
const KeySize = 32

// fingerprintSize is the number of digest bytes shown in a key fingerprint.
const fingerprintSize = 8

var keyPattern = regexp.MustCompile(`(?i)^[0-9a-f]{64}$`)

// GenerateKey returns a new random key as 64 lowercase hex characters.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// ValidateKey reports whether candidate is a 64-character hex string.
// Upper and lower case digits are both accepted.
func ValidateKey(candidate string) bool {
	return keyPattern.MatchString(candidate)
}

// DecodeKey validates key and returns its 32 raw bytes.
func DecodeKey(key string) ([]byte, error) {
	if !ValidateKey(key) {
		return nil, kerrors.ErrInvalidKey
	}
	raw, err := hex.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	return raw, nil
}

// Fingerprint returns a short identifier for key, such as "3f:a1:09:7c:55:e2:b0:14".
// It is derived with BLAKE2b-256 and reveals nothing usable about the key,
// so two machines can compare fingerprints to confirm they share a key.
func Fingerprint(key string) (string, error) {
	raw, err := DecodeKey(key)
	if err != nil {
		return "", err
	}
	defer zero(raw)

	sum := blake2b.Sum256(raw)
	parts := make([]string, fingerprintSize)
	for i := 0; i < fingerprintSize; i++ {
		parts[i] = hex.EncodeToString(sum[i : i+1])
	}
	return strings.Join(parts, ":"), nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
