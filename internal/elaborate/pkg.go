package elaborate

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/symbol"
)

// buildPackage builds a DefPackage from a Package AstNode. A package body
// never carries ports, modports, clocking blocks, or generate constructs,
// so it walks the shared dispatcher with moduleMode off.
func (e *Elaborator) buildPackage(n *ast.Node, file string) *symbol.ObjDef {
	def := symbol.NewPackage(n.Attr("name"), n.Pos)
	if body := n.FirstChildOf(ast.Body); body != nil {
		e.buildBody(body.Children, def.Package.Defs, def, file, false, nil)
	}
	return def
}
