package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tidal/internal/typetable"
)

var errIncompatible = errors.New("type tables are not reload compatible")

func newDiffCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "diff <old.tt> <new.tt>",
		Short: "Compare the type tables of two builds",
		Long:  `diff reports which types keep their identity across a reload and exits non-zero when live objects would need mapping`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			older, err := typetable.Read(args[0])
			if err != nil {
				return err
			}
			newer, err := typetable.Read(args[1])
			if err != nil {
				return err
			}
			report := typetable.Diff(older, newer)
			if !quiet {
				printReport(cmd.OutOrStdout(), report)
			}
			if !report.Compatible() {
				return errIncompatible
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only set the exit status")
	return cmd
}

func printReport(out io.Writer, r typetable.Report) {
	if r.IDFormatChanged {
		fmt.Fprintln(out, removedColor.Sprint("identifier format changed, no types can be matched"))
		return
	}
	for _, name := range r.Unchanged {
		fmt.Fprintf(out, "%s %s\n", okColor.Sprint("  ="), name)
	}
	for _, c := range r.Changed {
		fmt.Fprintf(out, "%s %s %s\n", changedColor.Sprint("  ~"), c.Name, dim(c.Old.Guid.String()+" -> "+c.New.Guid.String()))
		printFields(out, "added", c.Added)
		printFields(out, "removed", c.Removed)
		printFields(out, "retyped", c.Retyped)
		printFields(out, "moved", c.Moved)
	}
	for _, name := range r.Added {
		fmt.Fprintf(out, "%s %s\n", addedColor.Sprint("  +"), name)
	}
	for _, name := range r.Removed {
		fmt.Fprintf(out, "%s %s\n", removedColor.Sprint("  -"), name)
	}
	status := okColor.Sprint("compatible")
	if !r.Compatible() {
		status = removedColor.Sprint("incompatible")
	}
	fmt.Fprintf(out, "%d unchanged, %d changed, %d added, %d removed: %s\n",
		len(r.Unchanged), len(r.Changed), len(r.Added), len(r.Removed), status)
}

func printFields(out io.Writer, what string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(out, "      %s: %s\n", what, strings.Join(names, ", "))
}
