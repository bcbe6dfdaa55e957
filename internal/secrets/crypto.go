package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	kerrors "github.com/treebird7/Envoak/internal/errors"
)

const (
	// IVSize is the size of the random GCM initialization vector in bytes.
	IVSize = 16

	// TagSize is the size of the GCM authentication tag in bytes.
	TagSize = 16

	envelopeSeparator = ":"
)

// Envelope is the parsed form of an encrypted artifact.
type Envelope struct {
	IV         []byte
	Tag        []byte
	Ciphertext []byte
}

// String serializes the envelope as iv:tag:ciphertext in lowercase hex.
func (e Envelope) String() string {
	return hex.EncodeToString(e.IV) + envelopeSeparator +
		hex.EncodeToString(e.Tag) + envelopeSeparator +
		hex.EncodeToString(e.Ciphertext)
}

// ParseEnvelope splits s into its three hex fields.
// Surrounding whitespace is ignored. Any other deviation from
// <32 hex>:<32 hex>:<hex> returns ErrMalformedEnvelope.
func ParseEnvelope(s string) (Envelope, error) {
	parts := strings.Split(strings.TrimSpace(s), envelopeSeparator)
	if len(parts) != 3 {
		return Envelope{}, fmt.Errorf("%w: found %d fields", kerrors.ErrMalformedEnvelope, len(parts))
	}

	names := [3]string{"IV", "auth tag", "ciphertext"}
	var fields [3][]byte
	for i, part := range parts {
		b, err := hex.DecodeString(part)
		if err != nil {
			return Envelope{}, fmt.Errorf("%w: %s is not hex", kerrors.ErrMalformedEnvelope, names[i])
		}
		fields[i] = b
	}

	if len(fields[0]) != IVSize {
		return Envelope{}, fmt.Errorf("%w: IV must be %d bytes, got %d", kerrors.ErrMalformedEnvelope, IVSize, len(fields[0]))
	}
	if len(fields[1]) != TagSize {
		return Envelope{}, fmt.Errorf("%w: auth tag must be %d bytes, got %d", kerrors.ErrMalformedEnvelope, TagSize, len(fields[1]))
	}

	return Envelope{IV: fields[0], Tag: fields[1], Ciphertext: fields[2]}, nil
}

// Encrypt seals plaintext with AES-256-GCM under key and returns the
// serialized envelope. A fresh random IV is drawn for every call.
func Encrypt(plaintext, key string) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate IV: %w", err)
	}

	sealed := aead.Seal(nil, iv, []byte(plaintext), nil)
	split := len(sealed) - TagSize

	env := Envelope{
		IV:         iv,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}
	return env.String(), nil
}

// Decrypt opens an envelope produced by Encrypt.
//
// Returns ErrInvalidKey if key is malformed, ErrMalformedEnvelope if the
// input is not a valid triple, and ErrAuthenticationFailed if the tag does
// not verify under key.
func Decrypt(envelope, key string) (string, error) {
	aead, err := newGCM(key)
	if err != nil {
		return "", err
	}

	env, err := ParseEnvelope(envelope)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	plaintext, err := aead.Open(nil, env.IV, sealed, nil)
	if err != nil {
		return "", kerrors.ErrAuthenticationFailed
	}
	return string(plaintext), nil
}

func newGCM(key string) (cipher.AEAD, error) {
	raw, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}
	defer zero(raw)

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}
