package workflows

import (
	"context"
	"time"

	logger "github.com/treebird7/Envoak/internal/logging"
	"github.com/treebird7/Envoak/internal/scan"
	"github.com/treebird7/Envoak/internal/secrets"
)

// ScanOptions configures the scan workflow.
type ScanOptions struct {
	Root      string
	Operation string
	Args      []string

	Key        string
	KeyVar     string
	KeyAliases []string

	Files    secrets.FileNames
	Timeout  time.Duration
	Parallel int

	// Executor runs each child. Defaults to re-invoking the current binary.
	Executor scan.Executor
	Reporter scan.Reporter
	Logger   logger.Logger
}

// Scan runs Operation in every managed subdirectory of Root.
//
// Child failures are collected in the result, never returned; check
// Result.OK. Returns ErrIO if Root cannot be read.
func Scan(ctx context.Context, opts ScanOptions) (*scan.Result, error) {
	executor := opts.Executor
	if executor == nil {
		pe, err := scan.NewProcessExecutor()
		if err != nil {
			return nil, err
		}
		executor = pe
	}

	orchestrator := scan.New(executor, opts.Logger, opts.Reporter)
	return orchestrator.Run(ctx, scan.Request{
		Root:       opts.Root,
		Operation:  opts.Operation,
		Args:       opts.Args,
		Key:        opts.Key,
		KeyVar:     opts.KeyVar,
		KeyAliases: opts.KeyAliases,
		Files:      opts.Files,
		Timeout:    opts.Timeout,
		Parallel:   opts.Parallel,
	})
}
