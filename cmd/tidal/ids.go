package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidal/internal/typeid"
)

func newIDsCmd() *cobra.Command {
	var (
		moduleFlag string
		staticFlag bool
		hexFlag    bool
	)
	cmd := &cobra.Command{
		Use:   "ids [decls]",
		Short: "Print structural type identifiers",
		Long:  `ids prints the identifier of every struct and array declared in each module, or the static identifiers with --static`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			render := func(g typeid.Guid) string {
				if hexFlag {
					return g.Hex()
				}
				return g.String()
			}
			if staticFlag {
				rows := [][]string{{"NAME", "KIND", "GUID"}}
				for _, id := range typeid.Static() {
					rows = append(rows, []string{id.Name, id.Data.Kind.String(), render(id.Guid())})
				}
				heading(out, "static identifiers")
				table(out, rows)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("a declaration file is required unless --static is set")
			}

			res, err := compileFile(cmd, args[0])
			if err != nil {
				return err
			}
			sessions, err := selectSessions(res, moduleFlag)
			if err != nil {
				return err
			}
			for i, s := range sessions {
				if i > 0 {
					fmt.Fprintln(out)
				}
				heading(out, "module "+s.Module)
				if len(s.IDs) == 0 {
					fmt.Fprintln(out, dim("  no identified types"))
					continue
				}
				rows := [][]string{{"TYPE", "KIND", "GUID"}}
				for _, ident := range s.IDs {
					rows = append(rows, []string{ident.Label, ident.ID.Data.Kind.String(), render(ident.ID.Guid())})
				}
				table(out, rows)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&moduleFlag, "module", "", "only print this module")
	cmd.Flags().BoolVar(&staticFlag, "static", false, "print the static registry instead of a declaration file")
	cmd.Flags().BoolVar(&hexFlag, "hex", false, "print GUIDs as plain hex digests")
	return cmd
}
