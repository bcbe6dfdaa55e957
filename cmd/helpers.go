package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/treebird7/Envoak/internal/configs"
	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when stdout
// is a terminal and neither verbose nor debug is set.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	animate := !verbose && !debug && utils.IsTerminal()
	if animate {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if animate {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if animate {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// reportedError marks an error whose details the command already printed.
// Execute only sets the exit code for it.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

// loadKey returns the key from the environment and the variable it came from.
func loadKey() (string, string) {
	key, source := configs.KeyFromEnv(settings)
	if source != "" {
		Logger.Debugf("Loaded key from %s", source)
	} else {
		Logger.Debugf("No key found in %v", settings.KeyNames())
	}
	return key, source
}

// keyVar returns the primary key variable name for messages.
func keyVar() string {
	if settings == nil || settings.KeyVar == "" {
		return configs.DefaultKeyVar
	}
	return settings.KeyVar
}

// displayPath shortens path relative to the working directory.
func displayPath(path string) string {
	if settings == nil {
		return path
	}
	return utils.RelPath(settings.WorkDir, path)
}

// describeError turns a core error into a message for the terminal.
func describeError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrKeyNotFound):
		return "No key found in " + ui.Highlight.Sprint(keyVar()) + "\n" +
			ui.Info.Sprint(ui.IconArrow) + " Run " + ui.Code.Sprint("envoak init") + " to generate a key, then export it"
	case errors.Is(err, kerrors.ErrInvalidKey):
		return "Invalid key in " + ui.Highlight.Sprint(keyVar()) + ": it must be 64 hex characters"
	case errors.Is(err, kerrors.ErrAuthenticationFailed):
		return "Decryption failed: wrong key or the encrypted file was modified"
	case errors.Is(err, kerrors.ErrMalformedEnvelope):
		return "The encrypted file is not in Envoak format\n" + ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return "No matching files found\n" + ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, fs.ErrNotExist):
		return "File not found\n" + ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied\n" + ui.Error.Sprint("Error: ") + err.Error()
	default:
		return err.Error()
	}
}
