package workflows

import (
	"context"

	"github.com/treebird7/Envoak/internal/secrets"
)

// PullOptions configures the pull workflow.
type PullOptions struct {
	Dir   string
	Files secrets.FileNames

	// Input is the encrypted artifact. Defaults to Files.Encrypted.
	Input string

	// Output is the plaintext file. Defaults to Files.Env.
	Output string

	Key string
}

// PullResult contains the outcome of a pull operation.
type PullResult struct {
	InputPath  string
	OutputPath string

	// Overwrote is true when OutputPath existed before the pull.
	Overwrote bool

	Bytes int
}

// Pull decrypts the artifact and writes the plaintext file with 0600
// permissions. An existing output file is replaced; callers decide whether
// to warn about it.
//
// Returns ErrKeyNotFound or ErrInvalidKey for a missing or malformed key,
// ErrIO if the artifact cannot be read or the output cannot be written,
// ErrMalformedEnvelope if the artifact is not an envelope, and
// ErrAuthenticationFailed for a wrong key or a modified artifact.
func Pull(ctx context.Context, opts PullOptions) (*PullResult, error) {
	if err := requireKey(opts.Key); err != nil {
		return nil, err
	}

	result := &PullResult{
		InputPath:  resolvePath(opts.Dir, opts.Input, opts.Files.Encrypted),
		OutputPath: resolvePath(opts.Dir, opts.Output, opts.Files.Env),
	}

	envelope, err := secrets.ReadText(result.InputPath)
	if err != nil {
		return nil, err
	}

	plaintext, err := secrets.Decrypt(envelope, opts.Key)
	if err != nil {
		return nil, err
	}

	exists, err := fileExists(result.OutputPath)
	if err != nil {
		return nil, err
	}
	result.Overwrote = exists

	if err := secrets.WriteFileAtomic(result.OutputPath, []byte(plaintext), 0600); err != nil {
		return nil, err
	}

	result.Bytes = len(plaintext)
	return result, nil
}
