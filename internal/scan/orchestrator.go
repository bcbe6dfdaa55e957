package scan

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	kerrors "github.com/treebird7/Envoak/internal/errors"
	logger "github.com/treebird7/Envoak/internal/logging"
	"github.com/treebird7/Envoak/internal/secrets"
)

// Request describes one scan.
type Request struct {
	Root      string
	Operation string
	Args      []string

	// Key is the caller's key, usually from the environment. May be empty.
	Key        string
	KeyVar     string
	KeyAliases []string

	Files secrets.FileNames

	// Timeout bounds each child. Zero means no limit.
	Timeout time.Duration

	// Parallel is the maximum number of children running at once.
	// Values below one mean one.
	Parallel int
}

func (r Request) keyNames() []string {
	names := make([]string, 0, 1+len(r.KeyAliases))
	names = append(names, r.KeyVar)
	return append(names, r.KeyAliases...)
}

// TargetResult is the outcome for one target directory.
type TargetResult struct {
	Dir      string
	Path     string
	ExitCode int
	Duration time.Duration

	// Err is a *kerrors.ChildProcessError when the target failed.
	Err error
}

// OK reports whether the target succeeded.
func (t TargetResult) OK() bool {
	return t.Err == nil
}

// Result aggregates a scan.
type Result struct {
	Root      string
	Targets   []TargetResult
	Failures  int
	KeySource KeySource
}

// OK is true iff no target failed. An empty scan is OK.
func (r *Result) OK() bool {
	return r.Failures == 0
}

// Errors returns the failures in discovery order.
func (r *Result) Errors() []error {
	var errs []error
	for _, t := range r.Targets {
		if t.Err != nil {
			errs = append(errs, t.Err)
		}
	}
	return errs
}

// Reporter receives progress events. With Parallel above one, events for
// different targets arrive from different goroutines.
type Reporter interface {
	ScanStarted(root string, targets []string, source KeySource)
	TargetStarted(dir string)
	TargetFinished(result TargetResult)
	ScanFinished(result *Result)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) ScanStarted(string, []string, KeySource) {}
func (NopReporter) TargetStarted(string)                    {}
func (NopReporter) TargetFinished(TargetResult)             {}
func (NopReporter) ScanFinished(*Result)                    {}

// Orchestrator fans an operation out to every target under a root.
type Orchestrator struct {
	Executor Executor
	Logger   logger.Logger
	Reporter Reporter
}

// New returns an orchestrator. A nil reporter discards progress.
func New(executor Executor, log logger.Logger, reporter Reporter) *Orchestrator {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Orchestrator{
		Executor: executor,
		Logger:   log,
		Reporter: reporter,
	}
}

// Run discovers the targets under req.Root and runs req.Operation in each.
// Child failures are collected in the result; the returned error is only
// set when the root cannot be read.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	reporter := o.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	targets, err := discoverTargets(req.Root, req.Files, func(name string, err error) {
		o.Logger.Debugf("Skipping %s: %v", name, err)
	})
	if err != nil {
		return nil, err
	}
	o.Logger.Debugf("Discovered %d targets under %s", len(targets), req.Root)

	key, source := ResolveKey(req.Key, req.Root, req.Files, req.keyNames())
	o.Logger.Infof("Key source: %s", source)

	var env []string
	if key != "" && req.KeyVar != "" {
		env = []string{req.KeyVar + "=" + key}
	}

	result := &Result{
		Root:      req.Root,
		Targets:   make([]TargetResult, len(targets)),
		KeySource: source,
	}
	reporter.ScanStarted(req.Root, targets, source)

	run := func(i int) {
		result.Targets[i] = o.runTarget(ctx, reporter, req, targets[i], env)
	}

	if req.Parallel <= 1 {
		for i := range targets {
			run(i)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(req.Parallel)
		for i := range targets {
			g.Go(func() error {
				run(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, t := range result.Targets {
		if !t.OK() {
			result.Failures++
		}
	}

	reporter.ScanFinished(result)
	return result, nil
}

func (o *Orchestrator) runTarget(ctx context.Context, reporter Reporter, req Request, dir string, env []string) TargetResult {
	tr := TargetResult{
		Dir:  dir,
		Path: filepath.Join(req.Root, dir),
	}

	if err := ctx.Err(); err != nil {
		tr.ExitCode = -1
		tr.Err = &kerrors.ChildProcessError{Dir: dir, ExitCode: -1, Err: err}
		o.Logger.Debugf("Not starting %s: %v", dir, err)
		reporter.TargetFinished(tr)
		return tr
	}

	reporter.TargetStarted(dir)
	start := time.Now()

	outcome := o.Executor.Execute(ctx, Invocation{
		Dir:       tr.Path,
		Operation: req.Operation,
		Args:      req.Args,
		Env:       env,
		Timeout:   req.Timeout,
	})

	tr.Duration = time.Since(start)
	tr.ExitCode = outcome.ExitCode
	if outcome.Failed() {
		tr.Err = &kerrors.ChildProcessError{Dir: dir, ExitCode: outcome.ExitCode, Err: outcome.Err}
		o.Logger.Debugf("Target %s failed: %v", dir, tr.Err)
	}

	reporter.TargetFinished(tr)
	return tr
}
