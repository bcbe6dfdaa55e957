package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/workflows"
)

var (
	pushFile   string
	pushOutput string
)

func init() {
	pushCmd.Flags().StringVarP(&pushFile, "file", "f", "", "plaintext file to encrypt (default .env)")
	pushCmd.Flags().StringVarP(&pushOutput, "output", "o", "", "encrypted output file (default config.enc)")
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Encrypt .env into config.enc",
	Long: `Validates the plaintext .env and encrypts it into config.enc with the key
from ENVOAK_KEY.

Format errors abort the push; warnings are printed and the push continues.
config.enc is safe to commit. Every push produces different bytes, even for
an unchanged .env.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting push command")
		spinner, cleanup := startSpinner("Encrypting secrets...", verbose)
		defer cleanup()

		key, _ := loadKey()

		result, err := workflows.Push(cmd.Context(), workflows.PushOptions{
			Dir:    settings.WorkDir,
			Files:  settings.Files,
			Input:  pushFile,
			Output: pushOutput,
			Key:    key,
		})
		if errors.Is(err, kerrors.ErrValidationFailed) {
			spinner.FinalMSG = formatValidation(displayPath(result.InputPath), result.Validation, false) +
				ui.Error.Sprint(ui.IconFail) + " Refusing to encrypt a malformed file"
			return reportedError{err}
		}
		if err != nil {
			return Logger.ErrorfAndReturn("push failed: %w", err)
		}
		Logger.Infof("Wrote %d bytes to %s", result.Bytes, result.OutputPath)

		var b strings.Builder
		if len(result.Validation.Warnings) > 0 {
			b.WriteString(formatValidation(displayPath(result.InputPath), result.Validation, false))
		}
		b.WriteString(fmt.Sprintf("%s Encrypted %s %s %s\n", ui.Success.Sprint(ui.IconOK),
			ui.Path.Sprint(displayPath(result.InputPath)), ui.IconArrow, ui.Path.Sprint(displayPath(result.OutputPath))))
		b.WriteString(ui.Info.Sprint(ui.IconArrow) + " You can now safely commit " + ui.Path.Sprint(displayPath(result.OutputPath)))

		spinner.FinalMSG = b.String()
		return nil
	},
}
