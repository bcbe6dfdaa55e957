package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCobraFlags restores every flag in the tree to its default so the
// package-level command values can be executed more than once in a process.
func resetCobraFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)

	for _, sub := range cmd.Commands() {
		resetCobraFlags(sub)
	}
}
