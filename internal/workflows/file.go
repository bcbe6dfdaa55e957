package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/treebird7/Envoak/internal/secrets"
)

// FileMapping pairs an input file with the file written from it.
type FileMapping struct {
	Input  string
	Output string
}

// FilePushOptions configures the file push workflow.
type FilePushOptions struct {
	Dir string

	// Patterns are paths, directories or doublestar globs.
	Patterns []string

	// Output overrides the artifact path. Only valid for a single input.
	Output string

	Key string
}

// FilePushResult lists the files that were encrypted.
type FilePushResult struct {
	Files []FileMapping
}

// FilePush encrypts arbitrary text files to <path>.enc.
//
// Returns ErrKeyNotFound or ErrInvalidKey for a bad key, ErrNoFilesFound if
// nothing matched, and ErrIO on read or write failures. Files encrypted
// before a failure stay written and are listed in the result.
func FilePush(ctx context.Context, opts FilePushOptions) (*FilePushResult, error) {
	if err := requireKey(opts.Key); err != nil {
		return nil, err
	}
	if _, err := secrets.DecodeKey(opts.Key); err != nil {
		return nil, err
	}

	inputs, err := secrets.ResolveFiles(opts.Patterns, opts.Dir, true)
	if err != nil {
		return nil, err
	}
	if opts.Output != "" && len(inputs) > 1 {
		return nil, fmt.Errorf("--output can only be used with a single file, %d matched", len(inputs))
	}

	result := &FilePushResult{}
	for _, input := range inputs {
		output := secrets.EncryptedPathFor(input)
		if opts.Output != "" {
			output = resolvePath(opts.Dir, opts.Output, "")
		}

		content, err := secrets.ReadText(input)
		if err != nil {
			return result, err
		}
		envelope, err := secrets.Encrypt(content, opts.Key)
		if err != nil {
			return result, err
		}
		if err := secrets.WriteFileAtomic(output, []byte(envelope), 0644); err != nil {
			return result, err
		}

		result.Files = append(result.Files, FileMapping{Input: input, Output: output})
	}

	return result, nil
}

// FilePullOptions configures the file pull workflow.
type FilePullOptions struct {
	Dir string

	// Path is the file to restore (x or x.enc). With Input set, Path is
	// the output instead.
	Path string

	// Output overrides the derived output path.
	Output string

	// Input names the encrypted file explicitly.
	Input string

	Key string
}

// FilePullResult describes the decrypted file.
type FilePullResult struct {
	FileMapping
	Overwrote bool
}

// ResolveFilePullPaths derives the input and output of a file pull:
//
//	x.enc            -> x.enc to x
//	x                -> x.enc to x
//	x with -i y.enc  -> y.enc to x
//
// An explicit output always wins. If the output would equal the input,
// ".decrypted" is appended so the artifact is never overwritten.
func ResolveFilePullPaths(dir, path, output, input string) (FileMapping, error) {
	if path == "" && input == "" {
		return FileMapping{}, errors.New("a file path is required")
	}

	var in, out string
	switch {
	case input != "":
		in = input
		out = output
		if out == "" {
			out = path
		}
		if out == "" {
			out = secrets.DecryptedPathFor(input)
		}
	case strings.HasSuffix(path, secrets.EncryptedSuffix):
		in = path
		out = output
		if out == "" {
			out = secrets.DecryptedPathFor(path)
		}
	default:
		in = secrets.EncryptedPathFor(path)
		out = output
		if out == "" {
			out = path
		}
	}

	m := FileMapping{
		Input:  resolvePath(dir, in, ""),
		Output: resolvePath(dir, out, ""),
	}
	if m.Output == m.Input {
		m.Output += ".decrypted"
	}
	return m, nil
}

// FilePull decrypts one file produced by FilePush. The output is written
// with 0600 permissions.
//
// Returns ErrKeyNotFound or ErrInvalidKey for a bad key, ErrIO on read or
// write failures, ErrMalformedEnvelope and ErrAuthenticationFailed when the
// input cannot be opened.
func FilePull(ctx context.Context, opts FilePullOptions) (*FilePullResult, error) {
	if err := requireKey(opts.Key); err != nil {
		return nil, err
	}

	mapping, err := ResolveFilePullPaths(opts.Dir, opts.Path, opts.Output, opts.Input)
	if err != nil {
		return nil, err
	}

	envelope, err := secrets.ReadText(mapping.Input)
	if err != nil {
		return nil, err
	}
	plaintext, err := secrets.Decrypt(envelope, opts.Key)
	if err != nil {
		return nil, err
	}

	exists, err := fileExists(mapping.Output)
	if err != nil {
		return nil, err
	}
	if err := secrets.WriteFileAtomic(mapping.Output, []byte(plaintext), 0600); err != nil {
		return nil, err
	}

	return &FilePullResult{FileMapping: mapping, Overwrote: exists}, nil
}
