package manifest

import (
	"errors"
	"fmt"

	"tidal/internal/layout"
	"tidal/internal/types"
)

var (
	// ErrDuplicate reports a module, struct, field or function declared twice.
	ErrDuplicate = errors.New("duplicate declaration")
	// ErrInvalidName reports a name that is not an identifier.
	ErrInvalidName = errors.New("invalid name")
)

// Module lists the declarations of one module in file order.
type Module struct {
	Name    string
	Structs []types.TypeID
	Fns     []types.TypeID
}

// Decls is a loaded declaration file. Size classes in field and signature
// types are already resolved against Target.
type Decls struct {
	Path    string
	Target  layout.Target
	Types   *types.Interner
	Modules []Module
}

// Load reads and resolves a declaration file.
func Load(path string) (*Decls, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Resolve(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

// Resolve turns a decoded file into HIR types. Struct names are registered
// for every module before any field is resolved, so fields may refer to
// structs declared later or in other modules.
func Resolve(f *File) (*Decls, error) {
	target, err := layout.TargetByTriple(f.Target.Triple)
	if err != nil {
		return nil, err
	}
	d := &Decls{
		Target:  target,
		Types:   types.NewInterner(),
		Modules: make([]Module, 0, len(f.Modules)),
	}

	seenModules := make(map[string]struct{}, len(f.Modules))
	names := make([]string, len(f.Modules))
	for i, ms := range f.Modules {
		name, ok := normalizeIdent(ms.Name)
		if !ok {
			return nil, fmt.Errorf("module %q: %w", ms.Name, ErrInvalidName)
		}
		if _, dup := seenModules[name]; dup {
			return nil, fmt.Errorf("module %s: %w", name, ErrDuplicate)
		}
		seenModules[name] = struct{}{}
		names[i] = name

		mod := Module{Name: name}
		for _, ss := range ms.Structs {
			id, err := d.declareStruct(name, ss)
			if err != nil {
				return nil, err
			}
			mod.Structs = append(mod.Structs, id)
		}
		d.Modules = append(d.Modules, mod)
	}

	for i, ms := range f.Modules {
		sc := scope{in: d.Types, module: names[i]}
		for j, ss := range ms.Structs {
			if err := d.defineStruct(sc, d.Modules[i].Structs[j], ss); err != nil {
				return nil, err
			}
		}
		seenFns := make(map[string]struct{}, len(ms.Fns))
		for _, fs := range ms.Fns {
			id, err := d.declareFn(sc, fs, seenFns)
			if err != nil {
				return nil, err
			}
			d.Modules[i].Fns = append(d.Modules[i].Fns, id)
		}
	}
	return d, nil
}

func (d *Decls) declareStruct(module string, ss StructSection) (types.TypeID, error) {
	name, ok := normalizeIdent(ss.Name)
	if !ok {
		return types.NoTypeID, fmt.Errorf("module %s: struct %q: %w", module, ss.Name, ErrInvalidName)
	}
	memory, err := types.ParseMemoryKind(ss.Memory)
	if err != nil {
		return types.NoTypeID, fmt.Errorf("struct %s::%s: %w", module, name, err)
	}
	if _, dup := d.Types.FindStruct(module + "::" + name); dup {
		return types.NoTypeID, fmt.Errorf("struct %s::%s: %w", module, name, ErrDuplicate)
	}
	return d.Types.RegisterStruct(module, name, memory), nil
}

func (d *Decls) defineStruct(sc scope, id types.TypeID, ss StructSection) error {
	info, _ := d.Types.StructInfo(id)
	fields := make([]types.StructField, 0, len(ss.Fields))
	seen := make(map[string]struct{}, len(ss.Fields))
	for _, fs := range ss.Fields {
		name, ok := normalizeIdent(fs.Name)
		if !ok {
			return fmt.Errorf("struct %s: field %q: %w", info.FullName(), fs.Name, ErrInvalidName)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("struct %s: field %s: %w", info.FullName(), name, ErrDuplicate)
		}
		seen[name] = struct{}{}
		typ, err := d.resolveType(sc, fs.Type)
		if err != nil {
			return fmt.Errorf("struct %s: field %s: %w", info.FullName(), name, err)
		}
		fields = append(fields, types.StructField{Name: name, Type: typ})
	}
	d.Types.SetStructFields(id, fields)
	return nil
}

func (d *Decls) declareFn(sc scope, fs FnSection, seen map[string]struct{}) (types.TypeID, error) {
	name, ok := normalizeIdent(fs.Name)
	if !ok {
		return types.NoTypeID, fmt.Errorf("module %s: fn %q: %w", sc.module, fs.Name, ErrInvalidName)
	}
	if _, dup := seen[name]; dup {
		return types.NoTypeID, fmt.Errorf("fn %s::%s: %w", sc.module, name, ErrDuplicate)
	}
	seen[name] = struct{}{}

	params := make([]types.TypeID, 0, len(fs.Params))
	for i, expr := range fs.Params {
		typ, err := d.resolveType(sc, expr)
		if err != nil {
			return types.NoTypeID, fmt.Errorf("fn %s::%s: parameter %d: %w", sc.module, name, i, err)
		}
		params = append(params, typ)
	}
	result := d.Types.Builtins().Unit
	if fs.Returns != "" {
		typ, err := d.resolveType(sc, fs.Returns)
		if err != nil {
			return types.NoTypeID, fmt.Errorf("fn %s::%s: return type: %w", sc.module, name, err)
		}
		result = typ
	}
	return d.Types.RegisterFn(types.FnInfo{
		Name:   name,
		Module: sc.module,
		Params: params,
		Result: result,
	}), nil
}

func (d *Decls) resolveType(sc scope, expr string) (types.TypeID, error) {
	id, err := sc.parse(expr)
	if err != nil {
		return types.NoTypeID, err
	}
	return d.Types.Resolve(id, d.Target.PointerBits()), nil
}

// Fns returns every declared function across all modules in file order.
func (d *Decls) Fns() []types.TypeID {
	var out []types.TypeID
	for _, m := range d.Modules {
		out = append(out, m.Fns...)
	}
	return out
}
