package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tidal/internal/types"
)

func TestLoadTOML(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "game.toml"))
	require.NoError(t, err)
	require.Equal(t, "x86_64-linux-gnu", d.Target.Triple)
	require.Len(t, d.Modules, 2)

	game := d.Modules[0]
	require.Equal(t, "game", game.Name)
	require.Len(t, game.Structs, 2)
	require.Len(t, game.Fns, 2)

	in := d.Types
	vec, _ := in.StructInfo(game.Structs[0])
	require.Equal(t, types.MemoryValue, vec.Memory)
	require.Equal(t, "game::Vec2", vec.FullName())

	node, _ := in.StructInfo(game.Structs[1])
	require.Equal(t, types.MemoryGC, node.Memory)
	require.Equal(t, game.Structs[1], node.Fields[1].Type)
	require.Equal(t, "[u64]", in.Label(node.Fields[2].Type))

	add, _ := in.FnInfo(game.Fns[0])
	require.Equal(t, "fn game::add(game::Vec2, game::Vec2) -> game::Vec2", in.Label(game.Fns[0]))
	require.Equal(t, game.Structs[0], add.Result)
	tick, _ := in.FnInfo(game.Fns[1])
	require.True(t, in.IsUnit(tick.Result))

	button, _ := in.StructInfo(d.Modules[1].Structs[0])
	require.Equal(t, "game::Vec2", in.Label(button.Fields[0].Type))
	require.Equal(t, "(f32, f32)", in.Label(button.Fields[1].Type))
	require.Len(t, d.Fns(), 2)
}

func TestLoadYAMLResolvesSizeAgainstTarget(t *testing.T) {
	d, err := Load(filepath.Join("testdata", "game.yaml"))
	require.NoError(t, err)
	require.Equal(t, 4, d.Target.PtrSize)

	in := d.Types
	buf, _ := in.StructInfo(d.Modules[0].Structs[1])
	require.Equal(t, "u32", in.Label(buf.Fields[0].Type))
	require.Equal(t, "fn game::make(u32) -> game::Buffer", in.Label(d.Modules[0].Fns[0]))
}

func TestTypeExpressions(t *testing.T) {
	in := types.NewInterner()
	vec := in.RegisterStruct("game", "Vec2", types.MemoryValue)
	in.RegisterStruct("ui", "Button", types.MemoryGC)
	sc := scope{in: in, module: "game"}

	cases := map[string]string{
		"i32":                "i32",
		" [ f64 ] ":          "[f64]",
		"[[bool]]":           "[[bool]]",
		"()":                 "()",
		"(i8,)":              "(i8)",
		"(Vec2, ui::Button)": "(game::Vec2, ui::Button)",
		"[(u8, [isize])]":    "[(u8, [isize])]",
		"game::Vec2":         "game::Vec2",
	}
	for expr, want := range cases {
		id, err := sc.parse(expr)
		require.NoError(t, err, expr)
		require.Equal(t, want, in.Label(id), expr)
	}
	id, _ := sc.parse("Vec2")
	require.Equal(t, vec, id)
}

func TestTypeExpressionErrors(t *testing.T) {
	in := types.NewInterner()
	sc := scope{in: in, module: "game"}

	for _, expr := range []string{"", "[i32", "(i32 i64)", "Missing", "i32]", "ui::", "(,)", "9lives"} {
		_, err := sc.parse(expr)
		require.Error(t, err, "%q", expr)
	}
	_, err := sc.parse("Missing")
	require.True(t, errors.Is(err, ErrUnknownType))
}

func TestIdentifiersAreNFC(t *testing.T) {
	decomposed := "Cafe\u0301"
	composed := "Caf\u00e9"

	f := &File{Modules: []ModuleSection{{
		Name: "game",
		Structs: []StructSection{
			{Name: decomposed},
			{Name: "Menu", Fields: []FieldSection{{Name: "item", Type: composed}}},
		},
	}}}
	d, err := Resolve(f)
	require.NoError(t, err)

	info, _ := d.Types.StructInfo(d.Modules[0].Structs[0])
	require.Equal(t, composed, info.Name)
	menu, _ := d.Types.StructInfo(d.Modules[0].Structs[1])
	require.Equal(t, d.Modules[0].Structs[0], menu.Fields[0].Type)
}

func TestResolveRejectsInvalidDeclarations(t *testing.T) {
	cases := map[string]struct {
		file File
		want error
	}{
		"duplicate module": {
			file: File{Modules: []ModuleSection{{Name: "a"}, {Name: "a"}}},
			want: ErrDuplicate,
		},
		"duplicate struct": {
			file: File{Modules: []ModuleSection{{Name: "a", Structs: []StructSection{{Name: "S"}, {Name: "S"}}}}},
			want: ErrDuplicate,
		},
		"duplicate field": {
			file: File{Modules: []ModuleSection{{Name: "a", Structs: []StructSection{{
				Name:   "S",
				Fields: []FieldSection{{Name: "x", Type: "i32"}, {Name: "x", Type: "i64"}},
			}}}}},
			want: ErrDuplicate,
		},
		"bad module name": {
			file: File{Modules: []ModuleSection{{Name: "a-b"}}},
			want: ErrInvalidName,
		},
		"unknown field type": {
			file: File{Modules: []ModuleSection{{Name: "a", Structs: []StructSection{{
				Name:   "S",
				Fields: []FieldSection{{Name: "x", Type: "Nope"}},
			}}}}},
			want: ErrUnknownType,
		},
		"unknown return type": {
			file: File{Modules: []ModuleSection{{Name: "a", Fns: []FnSection{{Name: "f", Returns: "[Nope]"}}}}},
			want: ErrUnknownType,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := tc.file
			_, err := Resolve(&f)
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Resolve(&File{Target: TargetSection{Triple: "mips-unknown"}})
	require.Error(t, err)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode([]byte("[target]\ntriple = \"x86_64-linux-gnu\"\narch = \"x\"\n"), FormatTOML)
	require.ErrorContains(t, err, "target.arch")

	_, err = Decode([]byte("target:\n  triple: x86_64-linux-gnu\n  arch: x\n"), FormatYAML)
	require.Error(t, err)

	f, err := Decode(nil, FormatYAML)
	require.NoError(t, err)
	require.Empty(t, f.Modules)
}

func TestFormatOf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decls.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	_, err := Load(path)
	require.ErrorIs(t, err, ErrUnknownFormat)

	format, err := FormatOf("x.YML")
	require.NoError(t, err)
	require.Equal(t, FormatYAML, format)
}
