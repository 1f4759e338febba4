// Package manifest loads declaration files: the struct and function
// declarations of one or more modules, plus the target they compile for.
// It stands in for a front end and produces HIR types in a types.Interner.
package manifest

// File is the on-disk shape of a declaration file. TOML and YAML files share
// it; unknown keys are rejected in both.
type File struct {
	Target  TargetSection   `toml:"target" yaml:"target"`
	Modules []ModuleSection `toml:"module" yaml:"module"`
}

// TargetSection selects the compilation target.
type TargetSection struct {
	Triple string `toml:"triple" yaml:"triple"`
}

// ModuleSection declares one module.
type ModuleSection struct {
	Name    string          `toml:"name" yaml:"name"`
	Structs []StructSection `toml:"struct" yaml:"struct"`
	Fns     []FnSection     `toml:"fn" yaml:"fn"`
}

// StructSection declares a struct. Memory is "gc" (the default) or "value".
type StructSection struct {
	Name   string         `toml:"name" yaml:"name"`
	Memory string         `toml:"memory" yaml:"memory"`
	Fields []FieldSection `toml:"fields" yaml:"fields"`
}

// FieldSection declares a struct field.
type FieldSection struct {
	Name string `toml:"name" yaml:"name"`
	Type string `toml:"type" yaml:"type"`
}

// FnSection declares a function. An empty Returns means the unit type.
type FnSection struct {
	Name    string   `toml:"name" yaml:"name"`
	Params  []string `toml:"params" yaml:"params"`
	Returns string   `toml:"returns" yaml:"returns"`
}
