package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/utils"
	"github.com/treebird7/Envoak/internal/workflows"
)

var (
	filePushOutput string

	filePullOutput string
	filePullInput  string
	filePullForce  bool
)

func init() {
	filePushCmd.Flags().StringVarP(&filePushOutput, "output", "o", "", "encrypted output path (single file only)")

	filePullCmd.Flags().StringVarP(&filePullOutput, "output", "o", "", "decrypted output path")
	filePullCmd.Flags().StringVarP(&filePullInput, "input", "i", "", "encrypted input file; <path> becomes the output")
	filePullCmd.Flags().BoolVar(&filePullForce, "force", false, "overwrite an existing output without a warning")

	fileCmd.AddCommand(filePushCmd)
	fileCmd.AddCommand(filePullCmd)
}

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Encrypt and decrypt arbitrary text files",
	Long: `Encrypts any text file with the same key and format as push and pull.

Useful for credentials that do not live in .env, such as service account
JSON files. The encrypted copy is written next to the original as <path>.enc.`,
}

var filePushCmd = &cobra.Command{
	Use:   "push <path|glob>...",
	Short: "Encrypt files to <path>.enc",
	Example: `  envoak file push credentials.json
  envoak file push "config/**/*.json"
  envoak file push secrets.yaml -o backup/secrets.enc`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting file push command")
		spinner, cleanup := startSpinner("Encrypting files...", verbose)
		defer cleanup()

		key, _ := loadKey()

		result, err := workflows.FilePush(cmd.Context(), workflows.FilePushOptions{
			Dir:      settings.WorkDir,
			Patterns: args,
			Output:   filePushOutput,
			Key:      key,
		})
		if result != nil && len(result.Files) > 0 && err != nil {
			spinner.FinalMSG = ui.Warning.Sprint(ui.IconWarn) + fmt.Sprintf(" Encrypted %d file(s) before failing", len(result.Files))
		}
		if err != nil {
			return Logger.ErrorfAndReturn("file push failed: %w", err)
		}

		outputs := make([]string, len(result.Files))
		for i, f := range result.Files {
			Logger.Debugf("Encrypted %s to %s", f.Input, f.Output)
			outputs[i] = displayPath(f.Output)
		}

		spinner.FinalMSG = ui.Success.Sprint(ui.IconOK) + fmt.Sprintf(" Encrypted %d file(s):", len(outputs)) +
			utils.FormatPaths(outputs) +
			ui.Info.Sprint(ui.IconArrow) + " You can now safely commit the " + ui.Path.Sprint(".enc") + " files"
		return nil
	},
}

var filePullCmd = &cobra.Command{
	Use:   "pull <path> [output]",
	Short: "Decrypt a file encrypted with file push",
	Long: `Decrypts <path>.enc to <path>, or <path> to <path> without .enc.

With --input, <path> names the output and --input the encrypted file.
If the output would overwrite the input, .decrypted is appended to it.
The output is written with owner-only (0600) permissions.`,
	Example: `  envoak file pull credentials.json
  envoak file pull credentials.json.enc
  envoak file pull credentials.json -i backup/credentials.enc`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting file pull command")

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		output := filePullOutput
		if len(args) == 2 {
			if output != "" {
				return fmt.Errorf("output given twice: %s and %s", args[1], ui.Flag.Sprint("--output"))
			}
			output = args[1]
		}

		spinner, cleanup := startSpinner("Decrypting file...", verbose)
		defer cleanup()

		key, _ := loadKey()

		result, err := workflows.FilePull(cmd.Context(), workflows.FilePullOptions{
			Dir:    settings.WorkDir,
			Path:   path,
			Output: output,
			Input:  filePullInput,
			Key:    key,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("file pull failed: %w", err)
		}

		finalMessage := ""
		if result.Overwrote && !filePullForce {
			finalMessage += ui.Warning.Sprint(ui.IconWarn) + " Overwrote existing " + ui.Path.Sprint(displayPath(result.Output)) + "\n"
		}
		finalMessage += fmt.Sprintf("%s Decrypted %s %s %s", ui.Success.Sprint(ui.IconOK),
			ui.Path.Sprint(displayPath(result.Input)), ui.IconArrow, ui.Path.Sprint(displayPath(result.Output)))

		spinner.FinalMSG = finalMessage
		return nil
	},
}
