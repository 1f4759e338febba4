package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tidal/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tidal",
		Short:        "Type translation for hot-reloadable modules",
		Long:         `tidal translates declared types into backend types, structural type identifiers and runtime type tables`,
		Version:      version.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupColor(cmd)
		},
	}

	root.AddCommand(newTypesCmd())
	root.AddCommand(newIDsCmd())
	root.AddCommand(newTableCmd())
	root.AddCommand(newDiffCmd())
	root.AddCommand(newIntrinsicsCmd())
	root.AddCommand(newVersionCmd())

	// global flags
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Int("jobs", 0, "max parallel module sessions (0=auto)")
	root.PersistentFlags().String("target", "", "override the target triple of the declaration file")
	root.PersistentFlags().String("ui", "off", "progress UI (auto|on|off)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for ring mode")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "heartbeat interval (0 disables)")
	return root
}

// main executes the root command and exits with status 1 on failure.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
