package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/scan"
	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/workflows"
)

var (
	scanTimeout  time.Duration
	scanParallel int

	// newScanExecutor builds the executor for each scan. Tests replace it.
	newScanExecutor = func() (scan.Executor, error) {
		return scan.NewProcessExecutor()
	}
)

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "per-directory time limit, 0 for none (env ENVOAK_SCAN_TIMEOUT in seconds)")
	scanCmd.Flags().IntVar(&scanParallel, "parallel", 1, "number of directories processed at once (env ENVOAK_SCAN_PARALLEL)")
	// Everything after the operation belongs to the child command.
	scanCmd.Flags().SetInterspersed(false)
}

var scanCmd = &cobra.Command{
	Use:   "scan <operation> [args...]",
	Short: "Run an operation in every managed subdirectory",
	Long: `Runs "envoak <operation> [args...]" in each immediate subdirectory of the
current directory that has a .env, a config.enc or a key marker file.

Every directory is visited even when some fail. The exit code is non-zero
if any directory failed.

The key is passed to each child: from ENVOAK_KEY when set, otherwise from
ENVOAK_KEY in the .env of the current directory.

Flags after <operation> are passed to the child untouched:
  envoak scan push --output secrets.enc`,
	Example: `  envoak scan status
  envoak scan pull --force
  envoak scan --parallel 4 --timeout 30s push`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting scan command")

		operation, childArgs := args[0], args[1:]
		if operation == "scan" {
			return fmt.Errorf("scan cannot run %s recursively", ui.Code.Sprint("scan"))
		}

		timeout := settings.ScanTimeout
		if cmd.Flags().Changed("timeout") {
			timeout = scanTimeout
		}
		parallel := settings.ScanParallel
		if cmd.Flags().Changed("parallel") {
			parallel = scanParallel
		}
		if parallel < 1 {
			return fmt.Errorf("%s must be at least 1", ui.Flag.Sprint("--parallel"))
		}
		Logger.Debugf("Scan operation=%s args=%v timeout=%s parallel=%d", operation, childArgs, timeout, parallel)

		executor, err := newScanExecutor()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to prepare scan: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		key, _ := loadKey()
		result, err := workflows.Scan(ctx, workflows.ScanOptions{
			Root:       settings.WorkDir,
			Operation:  operation,
			Args:       childArgs,
			Key:        key,
			KeyVar:     settings.KeyVar,
			KeyAliases: settings.KeyAliases,
			Files:      settings.Files,
			Timeout:    timeout,
			Parallel:   parallel,
			Executor:   executor,
			Reporter:   &scanReporter{operation: operation},
			Logger:     Logger,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("scan failed: %w", err)
		}

		if !result.OK() {
			return reportedError{fmt.Errorf("%w: %d of %d directories failed",
				kerrors.ErrChildProcess, result.Failures, len(result.Targets))}
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return reportedError{ctx.Err()}
		}
		return nil
	},
}

// scanReporter prints scan progress. With --parallel, events arrive from
// several goroutines.
type scanReporter struct {
	mu        sync.Mutex
	operation string
}

func (r *scanReporter) ScanStarted(root string, targets []string, source scan.KeySource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(targets) == 0 {
		fmt.Println(ui.Warning.Sprint(ui.IconWarn) + " No managed subdirectories found in " + ui.Path.Sprint(root))
		return
	}

	fmt.Printf("%s Found %d targets: %s\n", ui.Info.Sprint(ui.IconArrow), len(targets), strings.Join(targets, ", "))
	switch source {
	case scan.KeySourceRootFile:
		fmt.Println(ui.Info.Sprint(ui.IconArrow) + " Using global key from " + ui.Path.Sprint(".env"))
	case scan.KeySourceNone:
		Logger.WarnfAlways("No key found. Each directory must provide its own %s", keyVar())
	}
}

func (r *scanReporter) TargetStarted(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Printf("\n%s Running %s in %s\n", ui.Info.Sprint(ui.IconArrow), ui.Code.Sprint("envoak "+r.operation), ui.Path.Sprint(dir))
}

func (r *scanReporter) TargetFinished(result scan.TargetResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if result.OK() {
		fmt.Printf("%s Success in %s\n", ui.Success.Sprint(ui.IconOK), ui.Path.Sprint(result.Dir))
		return
	}

	var childErr *kerrors.ChildProcessError
	if errors.As(result.Err, &childErr) && childErr.Err != nil {
		fmt.Printf("%s Command failed in %s: %v\n", ui.Error.Sprint(ui.IconFail), ui.Path.Sprint(result.Dir), childErr.Err)
		return
	}
	fmt.Printf("%s Command failed in %s (exit code %d)\n", ui.Error.Sprint(ui.IconFail), ui.Path.Sprint(result.Dir), result.ExitCode)
}

func (r *scanReporter) ScanFinished(result *scan.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(result.Targets) == 0 {
		return
	}
	if result.OK() {
		fmt.Println("\n" + ui.Success.Sprint(ui.IconOK) + " Scan completed successfully on all targets.")
		return
	}
	fmt.Printf("\n%s Scan completed with %d failures.\n", ui.Error.Sprint(ui.IconFail), result.Failures)
}
