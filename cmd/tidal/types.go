package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tidal/internal/driver"
	"tidal/internal/layout"
)

func newTypesCmd() *cobra.Command {
	var (
		viewFlag   string
		moduleFlag string
	)
	cmd := &cobra.Command{
		Use:   "types <decls>",
		Short: "Print the backend declarations of each module",
		Long:  `types translates the declared structs and function signatures of every module and prints them as backend IR`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := parseView(viewFlag)
			if err != nil {
				return err
			}
			res, err := compileFile(cmd, args[0])
			if err != nil {
				return err
			}
			sessions, err := selectSessions(res, moduleFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, s := range sessions {
				if i > 0 {
					fmt.Fprintln(out)
				}
				heading(out, fmt.Sprintf("; module %s (%s view)", s.Module, view))
				m, err := s.EmitModule(view)
				if err != nil {
					return err
				}
				fmt.Fprint(out, m.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&viewFlag, "view", "internal", "signature view (internal|public)")
	cmd.Flags().StringVar(&moduleFlag, "module", "", "only print this module")
	return cmd
}

func parseView(s string) (layout.View, error) {
	for _, v := range layout.Views {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("invalid --view value %q (expected internal|public)", s)
}

// selectSessions narrows a result to one module when name is set.
func selectSessions(res *driver.Result, name string) ([]*driver.Session, error) {
	if name == "" {
		return res.Sessions, nil
	}
	s, ok := res.Session(name)
	if !ok {
		return nil, fmt.Errorf("module %q is not declared in %s", name, res.Decls.Path)
	}
	return []*driver.Session{s}, nil
}
