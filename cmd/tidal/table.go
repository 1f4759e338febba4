package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"tidal/internal/typetable"
)

// tableExt is the file extension of written type tables.
const tableExt = ".tt"

func newTableCmd() *cobra.Command {
	var (
		outDir     string
		moduleFlag string
	)
	cmd := &cobra.Command{
		Use:   "table <decls>",
		Short: "Build runtime type tables",
		Long:  `table builds the runtime type table of every module. With -o the tables are written as <module>.tt, otherwise they are printed`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := compileFile(cmd, args[0])
			if err != nil {
				return err
			}
			sessions, err := selectSessions(res, moduleFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output directory: %w", err)
				}
				for _, s := range sessions {
					path := filepath.Join(outDir, tableFileName(s.Module))
					if err := typetable.Write(path, s.Table); err != nil {
						return err
					}
					fmt.Fprintf(out, "%s %s (%d entries)\n", okColor.Sprint("wrote"), path, len(s.Table.Entries))
				}
				return nil
			}

			for i, s := range sessions {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printTable(cmd, s.Table)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory to write tables into")
	cmd.Flags().StringVar(&moduleFlag, "module", "", "only build this module")
	return cmd
}

// tableFileName maps a module path to a flat file name.
func tableFileName(module string) string {
	name := []rune(module)
	for i, r := range name {
		if r == ':' || r == '/' || r == filepath.Separator {
			name[i] = '_'
		}
	}
	return string(name) + tableExt
}

func printTable(cmd *cobra.Command, tbl *typetable.Table) {
	out := cmd.OutOrStdout()
	heading(out, fmt.Sprintf("module %s (%s)", tbl.Module, tbl.Target))
	if len(tbl.Entries) == 0 {
		fmt.Fprintln(out, dim("  no entries"))
		return
	}
	for _, e := range tbl.Entries {
		memory := e.Memory
		if memory == "" {
			memory = string(e.Kind)
		}
		fmt.Fprintf(out, "  %s %s size=%d align=%d %s\n", e.Name, dim("["+memory+"]"), e.Size, e.Align, dim(e.Guid.String()))
		rows := make([][]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			rows = append(rows, []string{"  " + f.Name, f.Type, "+" + strconv.Itoa(f.Offset)})
		}
		table(out, rows)
	}
}
