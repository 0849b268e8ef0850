package elaborate

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/symbol"
)

// buildModule builds a DefModule from a Module/Interface AstNode: header
// params and ports populate DefModule.Params/Ports (and are also inserted
// into Defs so a body statement can resolve a port or parameter by plain
// name), then the body is walked with moduleMode set so non-Ansi port
// re-declaration, modport, clocking, generate instance blocks, and bind
// are all recognized. Programs are not built here: buildRootItem reports
// a Program as DbgSkip.
func (e *Elaborator) buildModule(n *ast.Node, file string) *symbol.ObjDef {
	def := symbol.NewModule(n.Attr("name"), n.Pos)

	if header := n.FirstChildOf(ast.Header); header != nil {
		if params := header.FirstChildOf(ast.Params); params != nil {
			for idx, pn := range params.Children {
				port := buildParamPort(pn, idx)
				def.Module.Params = append(def.Module.Params, port)
				def.Module.Defs[port.Name] = &symbol.ObjDef{Kind: symbol.KindPort, Pos: pn.Pos, Port: port}
			}
		}
		if ports := header.FirstChildOf(ast.Ports); ports != nil {
			for idx, pn := range ports.Children {
				port := buildPortNode(pn, idx)
				def.Module.Ports = append(def.Module.Ports, port)
				def.Module.Defs[port.Name] = &symbol.ObjDef{Kind: symbol.KindPort, Pos: pn.Pos, Port: port}
				if port.Type.Kind == symbol.TypeUser {
					e.pendingTypes = append(e.pendingTypes, pendingType{
						typ: &port.Type, scope: port.Type.UserScope, owner: def, file: file, pos: pn.Pos,
					})
				}
			}
		}
	}

	if body := n.FirstChildOf(ast.Body); body != nil {
		counter := 0
		e.buildBody(body.Children, def.Module.Defs, def, file, true, &counter)
	}
	return def
}
