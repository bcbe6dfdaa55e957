package errors

import (
	"errors"
	"fmt"
)

// Key errors indicate the symmetric key is missing or unusable.
var (
	// ErrInvalidKey indicates the key is not a 64-character hex string.
	ErrInvalidKey = errors.New("invalid key format: key must be a 64-character hex string")

	// ErrKeyNotFound indicates no key was found in the environment.
	ErrKeyNotFound = errors.New("encryption key not found")
)

// Envelope errors indicate failures while decrypting an encrypted artifact.
var (
	// ErrMalformedEnvelope indicates the input is not an iv:tag:ciphertext triple.
	ErrMalformedEnvelope = errors.New("invalid encrypted format: expected IV:AuthTag:Content")

	// ErrAuthenticationFailed indicates the GCM tag did not verify.
	// Either the key is wrong or the envelope was tampered with or truncated.
	ErrAuthenticationFailed = errors.New("authentication failed: wrong key or corrupted data")
)

// File errors indicate issues with file access or content.
var (
	// ErrIO indicates a filesystem operation failed.
	ErrIO = errors.New("filesystem operation failed")

	// ErrValidationFailed indicates a plaintext secrets file has format errors.
	ErrValidationFailed = errors.New("secrets file failed validation")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrUnsupportedFormat indicates an unknown output format was requested.
	ErrUnsupportedFormat = errors.New("unsupported output format")
)

// Scan errors indicate failures inside a managed subdirectory.
var (
	// ErrChildProcess indicates a scanned subdirectory's operation did not succeed.
	ErrChildProcess = errors.New("child process failed")
)

// IO wraps a filesystem error so that both ErrIO and the original error
// (for example fs.ErrNotExist) match with errors.Is.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w: %w", op, path, ErrIO, err)
}

// ChildProcessError records the failure of one scan target.
type ChildProcessError struct {
	// Dir is the target directory name, relative to the scan root.
	Dir string

	// ExitCode is the child's exit status, or -1 when it never ran to completion.
	ExitCode int

	// Err is the spawn, timeout or cancellation error, if any.
	Err error
}

func (e *ChildProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command failed in %s: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("command failed in %s (exit code %d)", e.Dir, e.ExitCode)
}

// Unwrap exposes both ErrChildProcess and the underlying cause.
func (e *ChildProcessError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrChildProcess, e.Err}
	}
	return []error{ErrChildProcess}
}
