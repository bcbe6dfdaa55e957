package cmd

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treebird7/Envoak/internal/envfile"
	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/utils"
	"github.com/treebird7/Envoak/internal/workflows"
)

var (
	checkFile  string
	checkFix   bool
	checkQuiet bool
	checkStdin bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "file to check (default .env)")
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "write the automatic fix back to the file")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "only print errors")
	checkCmd.Flags().BoolVar(&checkStdin, "stdin", false, "check content piped on stdin")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the format of a .env file",
	Long: `Checks a .env file for KEY=VALUE syntax and a trailing newline.

Blank lines and # comments are skipped. Spaces around '=' are reported as
warnings because they become part of the key or value.

The file is never modified unless --fix is given. The only automatic fix is
adding a missing trailing newline.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting check command")

		opts := workflows.CheckOptions{
			Dir:   settings.WorkDir,
			Path:  checkFile,
			Files: settings.Files,
			Fix:   checkFix,
		}

		if checkStdin {
			if checkFix {
				return fmt.Errorf("%s cannot be combined with %s", ui.Flag.Sprint("--fix"), ui.Flag.Sprint("--stdin"))
			}
			data, err := utils.ReadStdin()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read stdin: %w", err)
			}
			opts.Input = bytes.NewReader(data)
		}

		result, err := workflows.Check(cmd.Context(), opts)
		if err != nil {
			return Logger.ErrorfAndReturn("check failed: %w", err)
		}
		Logger.Debugf("Validation of %s: valid=%t errors=%d warnings=%d", result.Path,
			result.Validation.Valid, len(result.Validation.Errors), len(result.Validation.Warnings))

		name := result.Path
		if name == "-" {
			name = "stdin"
		} else {
			name = displayPath(name)
		}

		fmt.Print(formatValidation(name, result.Validation, checkQuiet))

		if !result.Validation.Valid {
			return reportedError{fmt.Errorf("%w: %s", kerrors.ErrValidationFailed, name)}
		}
		return nil
	},
}

// formatValidation renders a validation report. quiet drops everything but
// errors.
func formatValidation(name string, v envfile.Result, quiet bool) string {
	var b strings.Builder

	if v.Fixed {
		b.WriteString(ui.Success.Sprint(ui.IconOK) + " Added the missing trailing newline to " + ui.Path.Sprint(name) + "\n")
	}

	if len(v.Errors) > 0 {
		b.WriteString(ui.Error.Sprint(ui.IconFail) + " " + ui.Path.Sprint(name) + " has " +
			fmt.Sprintf("%d error(s):", len(v.Errors)) + "\n")
		for _, e := range v.Errors {
			b.WriteString("    - " + e + "\n")
		}
	}

	if !quiet && len(v.Warnings) > 0 {
		b.WriteString(ui.Warning.Sprint(ui.IconWarn) + " Warnings:\n")
		for _, w := range v.Warnings {
			b.WriteString("    - " + w + "\n")
		}
	}

	if v.HasFix() && !v.Fixed {
		b.WriteString(ui.Info.Sprint(ui.IconArrow) + " Run " + ui.Code.Sprint("envoak check --fix") +
			" to add the missing trailing newline\n")
	}

	if !quiet && v.Valid && len(v.Errors) == 0 {
		b.WriteString(ui.Success.Sprint(ui.IconOK) + " " + ui.Path.Sprint(name) + " is valid\n")
	}

	return b.String()
}
