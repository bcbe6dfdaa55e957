package workflows

import (
	"context"

	"github.com/treebird7/Envoak/internal/audit"
	"github.com/treebird7/Envoak/internal/secrets"
)

// AuditOptions configures the audit workflow.
type AuditOptions struct {
	Root  string
	Files secrets.FileNames
}

// AuditResult contains the per-directory report.
type AuditResult struct {
	Root    string
	Entries []audit.Entry
}

// Invalid counts entries whose plaintext failed the format check.
func (r *AuditResult) Invalid() int {
	n := 0
	for _, e := range r.Entries {
		if !e.Valid {
			n++
		}
	}
	return n
}

// Audit reports the state of every non-hidden subdirectory of Root that
// holds secrets. Returns ErrIO if Root cannot be read.
func Audit(ctx context.Context, opts AuditOptions) (*AuditResult, error) {
	entries, err := audit.Directory(opts.Root, opts.Files)
	if err != nil {
		return nil, err
	}
	return &AuditResult{Root: opts.Root, Entries: entries}, nil
}
