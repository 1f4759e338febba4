// Package typeid defines structural type identifiers shared with the runtime.
//
// An identifier names a type and carries either a GUID derived from a
// canonical textual descriptor, or a reference to the identifier of the type
// it is composed from. Identifiers are the values a running program compares
// against when a module is reloaded: two compilations agree on "the same
// type" exactly when their identifiers agree.
//
// # Wire format
//
// The descriptor strings and the hash that turns them into GUIDs are a
// versioned contract (FormatVersion). A struct is described as
//
//	struct <full-name>{<field>: <type>,<field>: <type>}
//
// with fields in declaration order and field types rendered by the HIR
// canonical label routine. Primitive GUIDs hash "core::<name>". The GUID is
// the MD5 digest of the descriptor.
//
// Arrays and pointers hash the hex GUID of their component instead of its
// name, so their wire GUID changes whenever the component's shape does. See
// (*ID).Guid.
package typeid
