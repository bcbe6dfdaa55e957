package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/workflows"
)

var (
	pullFile   string
	pullOutput string
	pullForce  bool
)

func init() {
	pullCmd.Flags().StringVarP(&pullFile, "file", "f", "", "encrypted file to decrypt (default config.enc)")
	pullCmd.Flags().StringVarP(&pullOutput, "output", "o", "", "plaintext output file (default .env)")
	pullCmd.Flags().BoolVar(&pullForce, "force", false, "overwrite an existing output without a warning")
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Decrypt config.enc into .env",
	Long: `Decrypts config.enc with the key from ENVOAK_KEY and writes .env with
owner-only (0600) permissions.

An existing .env is replaced. A warning is printed when that happens unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pull command")
		spinner, cleanup := startSpinner("Decrypting secrets...", verbose)
		defer cleanup()

		key, _ := loadKey()

		result, err := workflows.Pull(cmd.Context(), workflows.PullOptions{
			Dir:    settings.WorkDir,
			Files:  settings.Files,
			Input:  pullFile,
			Output: pullOutput,
			Key:    key,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("pull failed: %w", err)
		}
		Logger.Infof("Wrote %d bytes to %s", result.Bytes, result.OutputPath)

		finalMessage := ""
		if result.Overwrote && !pullForce {
			finalMessage += ui.Warning.Sprint(ui.IconWarn) + " Overwrote existing " + ui.Path.Sprint(displayPath(result.OutputPath)) + "\n"
		}
		finalMessage += fmt.Sprintf("%s Decrypted %s %s %s", ui.Success.Sprint(ui.IconOK),
			ui.Path.Sprint(displayPath(result.InputPath)), ui.IconArrow, ui.Path.Sprint(displayPath(result.OutputPath)))

		spinner.FinalMSG = finalMessage
		return nil
	},
}
