package elaborate

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/symbol"
)

// buildClass builds a DefClass from a Class AstNode. `extends` is recorded
// by name and queued for the link pass rather than resolved eagerly — the
// base class may be defined later in file order, or in another unit
// entirely (spec §4.6). A virtual-interface member (`virtual ifc_name
// vif;`) needs no special case here: it already arrives as an ordinary
// Declaration whose type child is a VIntf node, which resolveType handles
// the same as any other declarator.
func (e *Elaborator) buildClass(n *ast.Node, file string) *symbol.ObjDef {
	def := symbol.NewClass(n.Attr("name"), n.Pos)

	if params := n.FirstChildOf(ast.Params); params != nil {
		for idx, pn := range params.Children {
			port := buildParamPort(pn, idx)
			def.Class.Params = append(def.Class.Params, port)
			def.Class.Defs[port.Name] = &symbol.ObjDef{Kind: symbol.KindPort, Pos: pn.Pos, Port: port}
		}
	}
	if ext := n.FirstChildOf(ast.Extends); ext != nil {
		base := symbol.NewUser(ext.Attr("name"), "")
		def.Class.Base = &base
		e.pendingBases = append(e.pendingBases, pendingBase{owner: def, name: ext.Attr("name"), file: file, pos: ext.Pos})
	}
	for _, impl := range n.ChildrenOf(ast.Implements) {
		def.Class.Implements = append(def.Class.Implements, impl.Attr("name"))
	}
	if body := n.FirstChildOf(ast.Body); body != nil {
		e.buildBody(body.Children, def.Class.Defs, def, file, false, nil)
	}
	return def
}
