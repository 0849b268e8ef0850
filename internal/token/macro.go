package token

// MacroPort is one formal parameter of a `define(...)`-style macro: its
// name and an optional default body (nil means "no default", not an
// empty-but-present default).
type MacroPort struct {
	Name    string
	Default []Token
}

// MacroDef is the captured body of a `define. A *MacroDef value of nil
// inside a defines map (the map key exists but the pointer is nil)
// represents a `define with no body tokens on the same line — spec's
// "null body" invariant — which is distinct from the name being entirely
// absent from the map.
type MacroDef struct {
	Ports []MacroPort
	Body  []Token
}

// Defines is a mapping from macro name (without the leading backtick) to
// its definition. It is shared, by reference, between an Ast and the
// TokenStream/Project that produced it, since an include file's macros
// must be visible to its includer (spec's Ast.defines invariant).
type Defines map[string]*MacroDef

// Clone makes a shallow copy of the map (not the MacroDef values, which
// are immutable once captured).
func (d Defines) Clone() Defines {
	out := make(Defines, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
