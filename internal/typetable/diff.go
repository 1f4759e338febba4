package typetable

import "sort"

// Change describes an entry whose GUID or layout differs between two tables.
type Change struct {
	Name    string
	Old     *Entry
	New     *Entry
	Added   []string // field names only in the new entry
	Removed []string // field names only in the old entry
	Retyped []string // fields present in both with a different type, see retyped
	Moved   []string // fields present in both at a different offset
}

// Report is the result of comparing the tables of two builds.
type Report struct {
	Unchanged []string
	Changed   []Change
	Added     []string
	Removed   []string
	// IDFormatChanged means the identifiers were computed differently and
	// no GUID can be compared.
	IDFormatChanged bool
}

// Compatible reports whether every old type survives unchanged, so that live
// objects can be kept as they are after a reload.
func (r Report) Compatible() bool {
	return !r.IDFormatChanged && len(r.Changed) == 0 && len(r.Removed) == 0
}

// Diff compares the table of a previous build with the table of a new one.
func Diff(older, newer *Table) Report {
	var r Report
	if older.IDFormat != newer.IDFormat {
		r.IDFormatChanged = true
	}

	oldByName := index(older)
	newByName := index(newer)

	for name, ne := range newByName {
		oe, ok := oldByName[name]
		switch {
		case !ok:
			r.Added = append(r.Added, name)
		case oe.Guid == ne.Guid && sameLayout(oe, ne) && !r.IDFormatChanged:
			r.Unchanged = append(r.Unchanged, name)
		default:
			r.Changed = append(r.Changed, compareFields(oe, ne))
		}
	}
	for name := range oldByName {
		if _, ok := newByName[name]; !ok {
			r.Removed = append(r.Removed, name)
		}
	}

	sort.Strings(r.Unchanged)
	sort.Strings(r.Added)
	sort.Strings(r.Removed)
	sort.Slice(r.Changed, func(i, j int) bool { return r.Changed[i].Name < r.Changed[j].Name })
	return r
}

func index(t *Table) map[string]*Entry {
	out := make(map[string]*Entry, len(t.Entries))
	for i := range t.Entries {
		out[t.Entries[i].Name] = &t.Entries[i]
	}
	return out
}

// sameLayout catches a value struct embedding another struct that changed
// shape: the outer descriptor only names the inner struct, so its GUID stays.
func sameLayout(oe, ne *Entry) bool {
	if oe.Size != ne.Size || oe.Align != ne.Align || len(oe.Fields) != len(ne.Fields) {
		return false
	}
	for i := range oe.Fields {
		if oe.Fields[i].Offset != ne.Fields[i].Offset {
			return false
		}
	}
	return true
}

func compareFields(oe, ne *Entry) Change {
	c := Change{Name: ne.Name, Old: oe, New: ne}
	oldFields := make(map[string]Field, len(oe.Fields))
	for _, f := range oe.Fields {
		oldFields[f.Name] = f
	}
	seen := make(map[string]struct{}, len(ne.Fields))
	for _, f := range ne.Fields {
		seen[f.Name] = struct{}{}
		of, ok := oldFields[f.Name]
		if !ok {
			c.Added = append(c.Added, f.Name)
			continue
		}
		if retyped(of, f) {
			c.Retyped = append(c.Retyped, f.Name)
		}
		if of.Offset != f.Offset {
			c.Moved = append(c.Moved, f.Name)
		}
	}
	for _, f := range oe.Fields {
		if _, ok := seen[f.Name]; !ok {
			c.Removed = append(c.Removed, f.Name)
		}
	}
	return c
}

// retyped reports whether a field kept its name but not its type. Struct
// fields compare by label: a struct that changes shape shows up as its own
// changed entry, and a struct field naming its own entry would otherwise
// always count as retyped. Every other field also compares GUIDs, which
// catches arrays whose element changed shape.
func retyped(older, newer Field) bool {
	if older.Type != newer.Type {
		return true
	}
	if older.Nominal && newer.Nominal {
		return false
	}
	return older.Guid != newer.Guid
}
