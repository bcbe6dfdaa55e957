// Package workflows provides high-level orchestration for Envoak commands.
//
// Workflows coordinate the secrets, envfile, audit, scan and configs
// packages to implement complete user-facing features. Each workflow handles
// a single command's business logic, independent of CLI concerns like flag
// parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Resolves the working directory and the key
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else: reading inputs, validating them,
// encrypting or decrypting, and writing outputs. Every read completes before
// validation or decryption starts, and every write completes before a result
// is returned. Outputs are written to a temporary file and renamed into
// place.
//
// # Available Workflows
//
//   - Init: generates a key, writes .envoak.toml and checks .gitignore
//   - Check: validates a .env file, optionally fixing it
//   - Push: validates and encrypts .env into config.enc
//   - Pull: decrypts config.enc back into .env
//   - Status: reports the sync state of one directory
//   - Audit: reports the sync state of every subdirectory
//   - Scan: runs one command in every managed subdirectory
//   - FilePush / FilePull: encrypt and decrypt arbitrary text files
//
// # Keys
//
// No workflow reads the environment. The key is passed in through the
// options struct; an empty key fails with ErrKeyNotFound before any file
// is touched.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Pull(ctx, opts)
//	if errors.Is(err, kerrors.ErrAuthenticationFailed) {
//	    // wrong key or corrupted file
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Scan propagates it to every child process.
package workflows
