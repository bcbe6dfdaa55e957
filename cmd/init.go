package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/workflows"
)

var (
	initMarker bool
	initForce  bool
	initName   string
)

func init() {
	initCmd.Flags().BoolVar(&initMarker, "marker", false, "create a key marker file so scan picks this directory up")
	initCmd.Flags().BoolVar(&initForce, "force", false, "regenerate the project UUID of an existing .envoak.toml")
	initCmd.Flags().StringVar(&initName, "name", "", "project name written to .envoak.toml")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a new key and prepare the current directory",
	Long: `Generates a new random 256-bit key and prints it.

The key is never written to disk. Store it somewhere safe and share it with
your team out of band: anyone holding it can decrypt config.enc.

Also writes .envoak.toml with a fresh project UUID if the directory has none,
and checks that .gitignore keeps the plaintext .env out of version control.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			Dir:         settings.WorkDir,
			Files:       settings.Files,
			ProjectName: initName,
			Marker:      initMarker,
			Force:       initForce,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("init failed: %w", err)
		}

		var b strings.Builder
		b.WriteString(ui.Success.Sprint(ui.IconOK) + " Generated a new key:\n\n")
		b.WriteString("    " + ui.Highlight.Sprint(result.Key) + "\n\n")
		b.WriteString(ui.Info.Sprint(ui.IconArrow) + " Add it to your environment:\n")
		b.WriteString("    " + ui.Code.Sprint(keyVar()+"="+result.Key) + "\n")
		b.WriteString(ui.Warning.Sprint(ui.IconWarn) + " Store this key safely. It cannot be recovered and is not saved anywhere.\n")

		if result.ConfigWritten {
			b.WriteString(ui.Success.Sprint(ui.IconOK) + " Wrote " + ui.Path.Sprint(displayPath(result.ConfigPath)) +
				" for project " + ui.Highlight.Sprint(result.ProjectName) + "\n")
		} else {
			b.WriteString(ui.Info.Sprint(ui.IconArrow) + " Keeping existing " + ui.Path.Sprint(displayPath(result.ConfigPath)) +
				" (use " + ui.Flag.Sprint("--force") + " to regenerate the project UUID)\n")
		}
		Logger.Debugf("Project UUID: %s", result.ProjectUUID)

		if result.MarkerCreated {
			b.WriteString(ui.Success.Sprint(ui.IconOK) + " Created marker " + ui.Path.Sprint(displayPath(result.MarkerPath)) + "\n")
		}

		switch {
		case !result.Gitignore.Found:
			b.WriteString(ui.Warning.Sprint(ui.IconWarn) + " No " + ui.Path.Sprint(".gitignore") + " found. Add " +
				ui.Path.Sprint(strings.Join(result.Gitignore.Missing, ", ")) + " to it before committing\n")
		case len(result.Gitignore.Missing) > 0:
			b.WriteString(ui.Warning.Sprint(ui.IconWarn) + " " + ui.Path.Sprint(".gitignore") + " does not ignore " +
				ui.Path.Sprint(strings.Join(result.Gitignore.Missing, ", ")) + "\n")
		default:
			b.WriteString(ui.Success.Sprint(ui.IconOK) + " " + ui.Path.Sprint(".gitignore") + " ignores your plaintext secrets\n")
		}

		b.WriteString(ui.Info.Sprint(ui.IconArrow) + " Next: run " + ui.Code.Sprint("envoak push") + " to encrypt your .env")

		fmt.Println(b.String())
		return nil
	},
}
