package driver

import (
	"context"
	"sync"
	"testing"

	lltypes "github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/require"

	"tidal/internal/backend/llvm"
	"tidal/internal/layout"
	"tidal/internal/manifest"
	"tidal/internal/trace"
	"tidal/internal/types"
)

func decls(t *testing.T, f *manifest.File) *manifest.Decls {
	t.Helper()
	d, err := manifest.Resolve(f)
	require.NoError(t, err)
	return d
}

func gameFile() *manifest.File {
	return &manifest.File{Modules: []manifest.ModuleSection{
		{
			Name: "game",
			Structs: []manifest.StructSection{
				{Name: "Vec2", Memory: "value", Fields: []manifest.FieldSection{{Name: "x", Type: "f32"}, {Name: "y", Type: "f32"}}},
				{Name: "Body", Fields: []manifest.FieldSection{{Name: "pos", Type: "Vec2"}, {Name: "trail", Type: "[Vec2]"}}},
			},
			Fns: []manifest.FnSection{
				{Name: "step", Params: []string{"Body", "f32"}},
				{Name: "center", Params: []string{"Body"}, Returns: "Vec2"},
			},
		},
		{
			Name: "ui",
			Structs: []manifest.StructSection{
				{Name: "Label", Fields: []manifest.FieldSection{{Name: "at", Type: "game::Vec2"}, {Name: "size", Type: "usize"}}},
			},
		},
	}}
}

func TestCompileRunsOneSessionPerModule(t *testing.T) {
	d := decls(t, gameFile())
	res, err := Compile(context.Background(), d, Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, res.Sessions, 2)

	game, ok := res.Session("game")
	require.True(t, ok)
	ui, _ := res.Session("ui")
	require.NotSame(t, game.Cache, ui.Cache)
	require.NotSame(t, game.Layout, ui.Layout)

	require.Len(t, game.Signatures, 2)
	step := game.Signatures[0]
	require.Equal(t, "game::step", step.Name)
	require.False(t, llvm.ReturnsValue(step.Internal))
	center := game.Signatures[1]
	require.Same(t, game.Cache.StructType(d.Modules[0].Structs[0]), center.Internal.RetType)
	_, isPtr := center.Public.RetType.(*lltypes.PointerType)
	require.True(t, isPtr)

	labels := make([]string, 0, len(game.IDs))
	for _, id := range game.IDs {
		labels = append(labels, id.Label)
	}
	require.Equal(t, []string{"game::Vec2", "game::Body", "[game::Vec2]"}, labels)
	require.Len(t, game.Table.Entries, 3)

	// both sessions compute the same identity for a shared struct
	vec := d.Modules[0].Structs[0]
	require.True(t, game.Cache.TypeID(vec).Equal(ui.Cache.TypeID(vec)))
	require.NotSame(t, game.Cache.TypeID(vec), ui.Cache.TypeID(vec))

	label, _ := ui.Table.Lookup("ui::Label")
	require.Equal(t, "u64", label.Fields[1].Type)

	m, err := game.EmitModule(layout.ViewPublic)
	require.NoError(t, err)
	require.Len(t, m.Funcs, 4)
}

func TestCompileReportsSessionErrors(t *testing.T) {
	f := gameFile()
	f.Modules[1].Fns = []manifest.FnSection{{Name: "broken", Params: []string{"[i32]"}}}
	d := decls(t, f)
	ui := d.Modules[1]
	// a function definition used as a field type is a front-end bug
	label := ui.Structs[0]
	d.Types.SetStructFields(label, append(d.Types.StructFields(label), types.StructField{Name: "cb", Type: ui.Fns[0]}))

	_, err := Compile(context.Background(), d, Options{})
	var se *SessionError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "ui", se.Module)
	var ie *llvm.InternalError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, llvm.ErrUntranslatable, ie.Kind)
}

func TestCompileTracesSessions(t *testing.T) {
	ring := trace.NewRing(256, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	_, err := Compile(ctx, decls(t, gameFile()), Options{Jobs: 1})
	require.NoError(t, err)

	var sessions, defs int
	for _, ev := range ring.Snapshot() {
		switch {
		case ev.Scope == trace.ScopeSession && ev.Kind == trace.KindEnd:
			sessions++
		case ev.Scope == trace.ScopeType && ev.Name == "define struct":
			defs++
		}
	}
	require.Equal(t, 2, sessions)
	require.Equal(t, 4, defs)
}

func TestCompileEmpty(t *testing.T) {
	res, err := Compile(context.Background(), decls(t, &manifest.File{}), Options{})
	require.NoError(t, err)
	require.Empty(t, res.Sessions)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingSink) OnEvent(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func TestCompileReportsProgress(t *testing.T) {
	sink := &recordingSink{}
	_, err := Compile(context.Background(), decls(t, gameFile()), Options{Jobs: 1, Progress: sink})
	require.NoError(t, err)

	perModule := map[string][]Status{}
	for _, ev := range sink.events {
		perModule[ev.Module] = append(perModule[ev.Module], ev.Status)
	}
	want := []Status{StatusQueued, StatusWorking, StatusWorking, StatusWorking, StatusDone}
	require.Equal(t, want, perModule["game"])
	require.Equal(t, want, perModule["ui"])
}
