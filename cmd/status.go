package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/treebird7/Envoak/internal/secrets"
	"github.com/treebird7/Envoak/internal/ui"
	"github.com/treebird7/Envoak/internal/workflows"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output in JSON format")
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the secrets status of the current directory",
	Long: `Shows whether the plaintext .env and the encrypted config.enc exist, and
whether a valid key is loaded.

The directory is in one of four states:
  - SYNCED:    both files exist (contents are not compared)
  - UNTRACKED: only .env exists, run push
  - MISSING:   only config.enc exists, run pull
  - NONE:      neither exists

Use --json for machine-readable output and --verbose for details.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		key, _ := loadKey()

		result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{
			Dir:    settings.WorkDir,
			Files:  settings.Files,
			Key:    key,
			KeyVar: keyVar(),
		})
		if err != nil {
			return Logger.ErrorfAndReturn("status failed: %w", err)
		}

		if statusJSONOutput {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		}

		fmt.Print(formatStatus(result, verbose || debug))
		return nil
	},
}

func formatStatus(r *workflows.StatusResult, details bool) string {
	var b strings.Builder

	name := settings.ProjectName
	if name == "" {
		name = filepath.Base(r.Dir)
	}
	b.WriteString("Secrets status for " + ui.Highlight.Sprint(name) + "\n")

	env := ui.Muted.Sprint(ui.IconPending) + " not found"
	if r.EnvExists {
		env = ui.Success.Sprint(ui.IconOK) + " exists"
		if !r.EnvValid {
			env += " " + ui.Warning.Sprint("(invalid format)")
		}
	}
	b.WriteString(fmt.Sprintf("├── %-12s %s\n", r.EnvFile, env))

	enc := ui.Muted.Sprint(ui.IconPending) + " not found"
	if r.EncExists {
		enc = ui.Success.Sprint(ui.IconOK) + " exists " + ui.Muted.Sprint(formatSize(r.EncSize))
	}
	b.WriteString(fmt.Sprintf("├── %-12s %s\n", r.EncFile, enc))

	keyState := ui.Muted.Sprint(ui.IconPending) + " not set"
	if r.KeyLoaded {
		keyState = ui.Success.Sprint(ui.IconOK) + " loaded"
	}
	b.WriteString(fmt.Sprintf("└── %-12s %s\n", r.KeyVar, keyState))

	b.WriteString("\nStatus: " + ui.StateIcon(r.State) + " " + ui.State(r.State) + "\n")

	if details {
		if r.EncModTime != nil {
			b.WriteString("Last encrypted: " + r.EncModTime.Format(time.DateTime) + "\n")
		}
		if r.KeyFingerprint != "" {
			b.WriteString("Key fingerprint: " + ui.Highlight.Sprint(r.KeyFingerprint) + "\n")
		}
		for _, e := range r.EnvValidation.Errors {
			b.WriteString(ui.Error.Sprint(ui.IconFail) + " " + e + "\n")
		}
	}

	b.WriteString("\n" + statusSuggestion(r) + "\n")
	return b.String()
}

func statusSuggestion(r *workflows.StatusResult) string {
	arrow := ui.Info.Sprint(ui.IconArrow) + " "
	if !r.KeyLoaded {
		return arrow + "Run " + ui.Code.Sprint("envoak init") + " to generate a key"
	}
	switch r.State {
	case secrets.StateUntracked:
		return arrow + "Run " + ui.Code.Sprint("envoak push") + " to encrypt your .env"
	case secrets.StateMissing:
		return arrow + "Run " + ui.Code.Sprint("envoak pull") + " to restore from backup"
	case secrets.StateSynced:
		return ui.Success.Sprint(ui.IconOK) + " All good! Your secrets are backed up."
	default:
		return arrow + "Create a " + ui.Path.Sprint(r.EnvFile) + " file, then run " + ui.Code.Sprint("envoak push")
	}
}

// formatSize renders a byte count as B, KB or MB.
func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
