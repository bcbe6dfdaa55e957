package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/treebird7/Envoak/internal/errors"
	"github.com/treebird7/Envoak/internal/secrets"
	"github.com/treebird7/Envoak/internal/ui"
)

func init() {
	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyCheckCmd)
}

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Generate and inspect keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a new random key",
	Long: `Prints a new random 256-bit key as 64 hex characters and nothing else,
so it can be captured by scripts:

  export ENVOAK_KEY=$(envoak key generate)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := secrets.GenerateKey()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to generate key: %w", err)
		}
		fmt.Println(key)
		return nil
	},
}

var keyCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the loaded key and print its fingerprint",
	Long: `Validates the key from ENVOAK_KEY and prints its fingerprint.

Two machines share a key exactly when their fingerprints match. The
fingerprint reveals nothing usable about the key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, source := loadKey()
		if key == "" {
			return kerrors.ErrKeyNotFound
		}

		fingerprint, err := secrets.Fingerprint(key)
		if err != nil {
			return err
		}

		fmt.Println(ui.Success.Sprint(ui.IconOK) + " " + ui.Highlight.Sprint(source) + " holds a valid key")
		fmt.Println("Fingerprint: " + ui.Highlight.Sprint(fingerprint))
		return nil
	},
}
