package manifest

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"tidal/internal/types"
)

// ErrUnknownType reports a type expression naming a type that is not declared.
var ErrUnknownType = errors.New("unknown type")

// scope resolves type expressions written inside one module.
type scope struct {
	in     *types.Interner
	module string
}

// normalizeIdent returns the NFC form of an identifier, or false when it is
// not a valid identifier.
func normalizeIdent(s string) (string, bool) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for i, r := range s {
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return "", false
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.Is(unicode.Mn, r) {
			return "", false
		}
	}
	return s, true
}

func (sc scope) scalar(name string) (types.TypeID, bool) {
	b := sc.in.Builtins()
	switch name {
	case "bool":
		return b.Bool, true
	case "i8":
		return b.I8, true
	case "i16":
		return b.I16, true
	case "i32":
		return b.I32, true
	case "i64":
		return b.I64, true
	case "i128":
		return b.I128, true
	case "u8":
		return b.U8, true
	case "u16":
		return b.U16, true
	case "u32":
		return b.U32, true
	case "u64":
		return b.U64, true
	case "u128":
		return b.U128, true
	case "isize":
		return b.Isize, true
	case "usize":
		return b.Usize, true
	case "f32":
		return b.F32, true
	case "f64":
		return b.F64, true
	}
	return types.NoTypeID, false
}

// parse resolves a complete type expression.
//
//	type  = "(" [ type { "," type } [ "," ] ] ")"
//	      | "[" type "]"
//	      | ident [ "::" ident ]
func (sc scope) parse(expr string) (types.TypeID, error) {
	p := &exprParser{sc: sc, src: expr}
	id, err := p.typ()
	if err != nil {
		return types.NoTypeID, fmt.Errorf("type %q: %w", expr, err)
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return types.NoTypeID, fmt.Errorf("type %q: unexpected %q at offset %d", expr, p.src[p.pos:], p.pos)
	}
	return id, nil
}

type exprParser struct {
	sc  scope
	src string
	pos int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) eat(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *exprParser) typ() (types.TypeID, error) {
	switch {
	case p.eat("("):
		return p.tuple()
	case p.eat("["):
		elem, err := p.typ()
		if err != nil {
			return types.NoTypeID, err
		}
		if !p.eat("]") {
			return types.NoTypeID, fmt.Errorf("expected ']' at offset %d", p.pos)
		}
		return p.sc.in.Intern(types.MakeArray(elem)), nil
	default:
		return p.path()
	}
}

func (p *exprParser) tuple() (types.TypeID, error) {
	var elems []types.TypeID
	for !p.eat(")") {
		if len(elems) > 0 && !p.eat(",") {
			return types.NoTypeID, fmt.Errorf("expected ',' or ')' at offset %d", p.pos)
		}
		if p.eat(")") {
			break
		}
		elem, err := p.typ()
		if err != nil {
			return types.NoTypeID, err
		}
		elems = append(elems, elem)
	}
	return p.sc.in.RegisterTuple(elems), nil
}

func (p *exprParser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || strings.IndexByte("()[],:", c) >= 0 {
			break
		}
		p.pos++
	}
	raw := p.src[start:p.pos]
	name, ok := normalizeIdent(raw)
	if !ok {
		if raw == "" {
			return "", fmt.Errorf("expected a type at offset %d", start)
		}
		return "", fmt.Errorf("invalid identifier %q", raw)
	}
	return name, nil
}

func (p *exprParser) path() (types.TypeID, error) {
	first, err := p.ident()
	if err != nil {
		return types.NoTypeID, err
	}
	if !p.eat("::") {
		if id, ok := p.sc.scalar(first); ok {
			return id, nil
		}
		return p.sc.lookupStruct(p.sc.module, first)
	}
	second, err := p.ident()
	if err != nil {
		return types.NoTypeID, err
	}
	return p.sc.lookupStruct(first, second)
}

func (sc scope) lookupStruct(module, name string) (types.TypeID, error) {
	full := name
	if module != "" {
		full = module + "::" + name
	}
	if id, ok := sc.in.FindStruct(full); ok {
		return id, nil
	}
	return types.NoTypeID, fmt.Errorf("%w %s", ErrUnknownType, full)
}
