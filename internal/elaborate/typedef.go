package elaborate

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/symbol"
)

// buildTypedefInto resolves a Typedef AstNode into a KindType ObjDef. A
// forward class declaration (`typedef class Foo;`) needs no placeholder:
// class lookups resolve by name against the top-level table once the real
// `class Foo ... endclass` is built, the same way a forward-declared class
// resolves in the link pass rather than at the point of the typedef.
// An enum typedef also seeds one KindEnumValue per member so a bare value
// name resolves in the same scope as the typedef itself.
func (e *Elaborator) buildTypedefInto(n *ast.Node, defs map[string]*symbol.ObjDef, owner *symbol.ObjDef, file string) {
	if n.Attr("forward") == "class" {
		return
	}
	name := n.Attr("name")
	typ := resolveType(firstTypeChild(n))
	obj := symbol.NewType(typ, unpackedDimsOf(n), n.Pos)
	defs[name] = obj

	if typ.Kind == symbol.TypeEnum {
		for _, val := range typ.EnumValues {
			defs[val] = symbol.NewEnumValue(name, n.Pos)
		}
	}
	if typ.Kind == symbol.TypeUser {
		e.pendingTypes = append(e.pendingTypes, pendingType{
			typ: obj.Type, scope: typ.UserScope, owner: owner, file: file, pos: n.Pos,
		})
	}
}
