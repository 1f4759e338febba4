package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidal/internal/intrinsics"
	"tidal/internal/layout"
)

func newIntrinsicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intrinsics",
		Short: "List runtime intrinsic prototypes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			triple, err := cmd.Root().PersistentFlags().GetString("target")
			if err != nil {
				return err
			}
			target := layout.X86_64LinuxGNU()
			if triple != "" {
				target, err = layout.TargetByTriple(triple)
				if err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			heading(out, "intrinsics for "+target.Triple)
			for _, p := range intrinsics.For(target).All() {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return nil
		},
	}
}
