// Package errors provides typed error values for the Envoak application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Key errors: the symmetric key is missing or malformed (ErrInvalidKey, ErrKeyNotFound)
//   - Envelope errors: decryption input or authentication problems
//     (ErrMalformedEnvelope, ErrAuthenticationFailed)
//   - File errors: filesystem failures and content problems (ErrIO, ErrValidationFailed)
//   - Scan errors: a managed subdirectory's child process failed (ErrChildProcess)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !secrets.ValidateKey(key) {
//	    return "", errors.ErrInvalidKey
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Pull(ctx, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // Tell the user the key is wrong or the file is corrupted
//	}
//
// Filesystem failures keep the underlying *fs.PathError in the chain, so
// errors.Is(err, fs.ErrNotExist) and errors.Is(err, kerrors.ErrIO) both hold:
//
//	return kerrors.IO("reading", path, err)
package errors
