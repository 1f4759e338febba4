// Package version holds build metadata of the tidal CLI. The variables can
// be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"

	"tidal/internal/typeid"
	"tidal/internal/typetable"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted. Colors
// follow color.NoColor.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Formats describes the on-disk and on-wire formats this build produces.
type Formats struct {
	TypeID    uint16 `json:"type_id"`
	TypeTable uint16 `json:"type_table"`
}

// CurrentFormats returns the format versions of this build.
func CurrentFormats() Formats {
	return Formats{TypeID: typeid.FormatVersion, TypeTable: typetable.Schema}
}
