package typeid

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestStructDescriptorFormat(t *testing.T) {
	got := StructDescriptor("Foo", []Field{{Name: "a", Type: "i32"}, {Name: "b", Type: "f64"}})
	if want := "struct Foo{a: i32,b: f64}"; got != want {
		t.Fatalf("StructDescriptor = %q, want %q", got, want)
	}
	if got := StructDescriptor("Empty", nil); got != "struct Empty{}" {
		t.Fatalf("empty struct descriptor = %q", got)
	}
}

// The descriptors and their digests are the cross-version wire contract;
// the golden file must only change together with FormatVersion.
func TestStructDescriptorGolden(t *testing.T) {
	structs := []struct {
		name   string
		fields []Field
	}{
		{"Foo", []Field{{"a", "i32"}, {"b", "f64"}}},
		{"Foo", []Field{{"b", "f64"}, {"a", "i32"}}},
		{"Bar", []Field{{"a", "i32"}, {"b", "f64"}}},
		{"Foo", []Field{{"a", "i64"}, {"b", "f64"}}},
		{"Foo", []Field{{"x", "i32"}, {"b", "f64"}}},
		{"game::Node", []Field{{"value", "i32"}, {"next", "game::Node"}}},
		{"Empty", nil},
	}
	var sb strings.Builder
	for _, s := range structs {
		id := Struct(s.name, s.fields)
		sb.WriteString(StructDescriptor(s.name, s.fields))
		sb.WriteByte('\t')
		sb.WriteString(id.Data.Guid.Hex())
		sb.WriteByte('\n')
	}
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "struct_descriptors", []byte(sb.String()))
}
