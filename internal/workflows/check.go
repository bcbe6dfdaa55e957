package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/treebird7/Envoak/internal/envfile"
	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/secrets"
)

// CheckOptions configures the check workflow.
type CheckOptions struct {
	// Dir is the directory relative paths are resolved against.
	Dir string

	// Path is the file to check. Defaults to Files.Env.
	Path  string
	Files secrets.FileNames

	// Input, when set, is validated instead of reading Path.
	Input io.Reader

	// Fix writes the fixed content back to Path when a fix is available.
	Fix bool
}

// CheckResult contains the outcome of a check operation.
type CheckResult struct {
	// Path is the checked file, or "-" for Input.
	Path string

	// Validation is the report for the final content: after a fix was
	// written, it describes the fixed file.
	Validation envfile.Result
}

// Check validates a .env file.
//
// Nothing is ever rewritten unless Fix is set. Returns ErrIO if the file
// cannot be read or the fix cannot be written.
func Check(ctx context.Context, opts CheckOptions) (*CheckResult, error) {
	if opts.Input != nil {
		if opts.Fix {
			return nil, errors.New("cannot fix content read from stdin")
		}
		data, err := io.ReadAll(opts.Input)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return &CheckResult{Path: "-", Validation: envfile.Validate(string(data))}, nil
	}

	path := resolvePath(opts.Dir, opts.Path, opts.Files.Env)

	content, err := secrets.ReadText(path)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Path: path, Validation: envfile.Validate(content)}

	if !opts.Fix || !result.Validation.HasFix() {
		return result, nil
	}

	fixed, changed := envfile.Fix(content)
	if !changed {
		return result, nil
	}
	if err := secrets.WriteFileAtomic(path, []byte(fixed), filePerm(path, 0600)); err != nil {
		return nil, err
	}

	result.Validation = envfile.Validate(fixed)
	result.Validation.Fixed = true
	return result, nil
}

// validationError summarizes a failed validation for Push.
func validationError(path string, v envfile.Result) error {
	return fmt.Errorf("%w: %s has %d error(s)", kerrors.ErrValidationFailed, path, len(v.Errors))
}
