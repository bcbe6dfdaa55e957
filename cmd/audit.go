package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/treebird7/Envoak/internal/audit"
	"github.com/treebird7/Envoak/internal/workflows"
)

var auditFormat string

func init() {
	auditCmd.Flags().StringVar(&auditFormat, "format", "json", "output format: json, yaml or jsonl")
}

var auditCmd = &cobra.Command{
	Use:   "audit [path]",
	Short: "Report the secrets state of every subdirectory",
	Long: `Lists each non-hidden subdirectory of path (default: the current directory)
that has a .env or a config.enc, with its state and whether its .env is well
formed.

Output is JSON by default. Use --format yaml or --format jsonl for other tools.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting audit command")

		format, err := audit.ParseFormat(auditFormat)
		if err != nil {
			return err
		}

		root := settings.WorkDir
		if len(args) == 1 {
			root = args[0]
			if !filepath.IsAbs(root) {
				root = filepath.Join(settings.WorkDir, root)
			}
		}
		Logger.Debugf("Auditing %s as %s", root, format)

		result, err := workflows.Audit(cmd.Context(), workflows.AuditOptions{
			Root:  root,
			Files: settings.Files,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("audit failed: %w", err)
		}
		Logger.Infof("Audited %d directories, %d invalid", len(result.Entries), result.Invalid())

		return audit.Encode(os.Stdout, result.Entries, format)
	},
}
