// Package secrets provides the cryptographic core of Envoak.
//
// This package handles key generation and validation, envelope encryption
// of secrets files, and derivation of a directory's synchronization state.
// Nothing here reads the environment: the key is always passed in by the
// caller.
//
// # Keys
//
// A key is 32 random bytes rendered as 64 hex characters. It is generated
// once with GenerateKey and distributed out of band, typically as the
// ENVOAK_KEY environment variable. ValidateKey accepts upper and lower case.
//
// # Envelope Format
//
// Encrypt seals UTF-8 text with AES-256-GCM using a fresh random 16-byte IV
// and produces a single line of text:
//
//	<iv hex>:<auth tag hex>:<ciphertext hex>
//
// The IV and tag are 32 hex characters each. There is no version byte.
// Re-encrypting the same file produces different output every time.
//
// Decrypt distinguishes three failures:
//   - ErrInvalidKey: the key is not 64 hex characters
//   - ErrMalformedEnvelope: the text is not a valid triple
//   - ErrAuthenticationFailed: wrong key, or the file was modified
//
// # Directory State
//
// DeriveStatus maps the presence of the plaintext file and the encrypted
// artifact to NONE, SYNCED, UNTRACKED or MISSING. SYNCED only asserts that
// both files exist; contents are never compared.
package secrets
