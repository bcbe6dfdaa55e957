package workflows

import (
	"context"

	"github.com/treebird7/Envoak/internal/envfile"
	"github.com/treebird7/Envoak/internal/secrets"
)

// PushOptions configures the push workflow.
type PushOptions struct {
	Dir   string
	Files secrets.FileNames

	// Input is the plaintext file. Defaults to Files.Env.
	Input string

	// Output is the encrypted artifact. Defaults to Files.Encrypted.
	Output string

	Key string
}

// PushResult contains the outcome of a push operation.
type PushResult struct {
	InputPath  string
	OutputPath string

	// Validation is the format report of the plaintext. Warnings do not
	// block a push; errors do.
	Validation envfile.Result

	// Bytes is the size of the written artifact.
	Bytes int
}

// Push validates the plaintext file and encrypts it into the artifact.
//
// Returns ErrIO if the plaintext cannot be read or the artifact cannot be
// written. Returns ErrValidationFailed, together with the result holding the
// report, if the plaintext has format errors. Returns ErrKeyNotFound or
// ErrInvalidKey if the key is missing or malformed.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	result := &PushResult{
		InputPath:  resolvePath(opts.Dir, opts.Input, opts.Files.Env),
		OutputPath: resolvePath(opts.Dir, opts.Output, opts.Files.Encrypted),
	}

	content, err := secrets.ReadText(result.InputPath)
	if err != nil {
		return nil, err
	}

	result.Validation = envfile.Validate(content)
	if !result.Validation.Valid {
		return result, validationError(result.InputPath, result.Validation)
	}

	if err := requireKey(opts.Key); err != nil {
		return result, err
	}

	envelope, err := secrets.Encrypt(content, opts.Key)
	if err != nil {
		return result, err
	}

	// The artifact is meant to be committed.
	if err := secrets.WriteFileAtomic(result.OutputPath, []byte(envelope), 0644); err != nil {
		return result, err
	}

	result.Bytes = len(envelope)
	return result, nil
}
