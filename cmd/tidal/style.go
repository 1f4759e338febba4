package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	okColor      = color.New(color.FgGreen)
	changedColor = color.New(color.FgYellow)
	addedColor   = color.New(color.FgCyan)
	removedColor = color.New(color.FgRed)
)

// setupColor applies --color. Styled output checks color.NoColor before
// rendering with lipgloss.
func setupColor(cmd *cobra.Command) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	var useColor bool
	switch colorFlag {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "auto":
		useColor = isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !useColor
	return nil
}

func heading(out io.Writer, title string) {
	if color.NoColor {
		fmt.Fprintln(out, title)
		return
	}
	fmt.Fprintln(out, headingStyle.Render(title))
}

func dim(s string) string {
	if color.NoColor {
		return s
	}
	return dimStyle.Render(s)
}

// table writes rows as left-aligned columns measured in terminal cells.
func table(out io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var sb strings.Builder
		sb.WriteString("  ")
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		fmt.Fprintln(out, strings.TrimRight(sb.String(), " "))
	}
}
