package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/treebird7/Envoak/internal/configs"
	logger "github.com/treebird7/Envoak/internal/logging"
	"github.com/treebird7/Envoak/internal/ui"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// settings is resolved once per invocation before any subcommand runs.
	settings *configs.Settings

	RootCmd = &cobra.Command{
		Use:   "envoak",
		Short: "Envoak - encrypted-at-rest .env secrets",
		Long: `Envoak keeps a project's .env file encrypted at rest.

The plaintext .env is encrypted with a shared 256-bit key into config.enc,
which is safe to commit. Teammates holding the key restore .env with pull.

The key is read from the ENVOAK_KEY environment variable (ENVAULT_KEY is
accepted for backward compatibility). A .env file in the current directory
(or the file named by [files] env in .envoak.toml) is loaded first, without
overriding variables that are already set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

			wd, err := os.Getwd()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to get working directory: %w", err)
			}

			settings, err = configs.Load(wd)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to load settings: %w", err)
			}

			if err := configs.LoadDotEnv(settings.WorkDir, settings.Files.Env); err != nil {
				// The plaintext file may be the very file `check` is asked to diagnose.
				Logger.Warnf("Could not load %s into the environment: %v", settings.Files.Env, err)
			} else {
				// Scan overrides may come from the file just loaded.
				settings, err = configs.Load(wd)
				if err != nil {
					return Logger.ErrorfAndReturn("failed to load settings: %w", err)
				}
			}
			if settings.ProjectPath != "" {
				Logger.Debugf("Using project config from %s", settings.ProjectPath)
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewFigure("envoak", "small", true)
			fmt.Println(ui.Info.Sprint(banner.String()))
			fmt.Println("Run " + ui.Code.Sprint("envoak --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(pushCmd)
	RootCmd.AddCommand(pullCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(scanCmd)
	RootCmd.AddCommand(auditCmd)
	RootCmd.AddCommand(fileCmd)
	RootCmd.AddCommand(keyCmd)
}

// Execute runs the command tree and returns the process exit code.
// Errors are printed here unless the command already reported them.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return 0
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint(ui.IconFail)+" "+describeError(err))
	}
	return 1
}

// ResetGlobalState resets all flag-backed variables to their defaults for testing.
func ResetGlobalState() {
	resetCobraFlags(RootCmd)
	settings = nil
	Logger = logger.Logger{}
}
