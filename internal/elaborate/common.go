package elaborate

import (
	"strconv"

	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/symbol"
)

func dirFromAttr(s string) symbol.Direction {
	switch s {
	case "output":
		return symbol.DirOutput
	case "inout":
		return symbol.DirInout
	case "ref":
		return symbol.DirRef
	default:
		return symbol.DirInput
	}
}

// trailingValueChild returns n's last child when it is a default/initial
// value expression rather than a type or unpacked-dimension node.
func trailingValueChild(n *ast.Node) *ast.Node {
	if len(n.Children) == 0 {
		return nil
	}
	last := n.Children[len(n.Children)-1]
	switch last.Kind {
	case ast.Type, ast.Enum, ast.Struct, ast.Union, ast.VIntf, ast.Slice:
		return nil
	default:
		return last
	}
}

func portIndex(n *ast.Node, fallback int) int {
	if s := n.Attr("index"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return fallback
}

// buildPortNode converts one header Port AstNode (ansi port-list entry or
// modport signal) into a DefPort, classifying its type the same way
// resolveType does for any other declarator — a bare entry with no type
// child defaults to an implicit net (logic), per spec §4.4's "implicit net
// type" testable property.
func buildPortNode(n *ast.Node, idx int) *symbol.DefPort {
	typeNode := firstTypeChild(n)
	typ := resolveType(typeNode)
	if typeNode == nil {
		typ = symbol.NewIntVector("logic", false, "")
	}
	port := &symbol.DefPort{
		Name:         n.Attr("name"),
		Dir:          dirFromAttr(n.Attr("dir")),
		Type:         typ,
		Index:        portIndex(n, idx),
		UnpackedDims: unpackedDimsOf(n),
	}
	if v := trailingValueChild(n); v != nil {
		port.Default = valueText(v)
	}
	return port
}

// buildParamPort converts a header/package `#( ... )` Param AstNode into a
// DefPort tagged DirParam. An untyped parameter defaults to `int`, the
// implicit type SystemVerilog gives a bare `parameter NAME = value`.
func buildParamPort(n *ast.Node, idx int) *symbol.DefPort {
	typeNode := firstTypeChild(n)
	typ := resolveType(typeNode)
	if typeNode == nil {
		typ = symbol.NewIntAtom("int", true)
	}
	port := &symbol.DefPort{
		Name:  n.Attr("name"),
		Dir:   symbol.DirParam,
		Type:  typ,
		Index: idx,
	}
	if v := trailingValueChild(n); v != nil {
		port.Default = valueText(v)
	}
	return port
}

// handleDeclLike builds a Member for a Declaration/Param leaf, or recurses
// into a Declaration group's own leaf children. A user-typed member is
// queued for the link pass (spec §4.6).
func (e *Elaborator) handleDeclLike(n *ast.Node, defs map[string]*symbol.ObjDef, owner *symbol.ObjDef, file string) {
	switch n.Kind {
	case ast.Param:
		e.buildMemberInto(n, defs, owner, file)
	case ast.Declaration:
		if n.HasAttr("name") {
			e.buildMemberInto(n, defs, owner, file)
			return
		}
		for _, c := range n.Children {
			e.handleDeclLike(c, defs, owner, file)
		}
	}
}

func (e *Elaborator) buildMemberInto(n *ast.Node, defs map[string]*symbol.ObjDef, owner *symbol.ObjDef, file string) {
	typ := resolveType(firstTypeChild(n))
	obj := symbol.NewMember(n.Attr("name"), typ, n.Pos)
	defs[n.Attr("name")] = obj
	if typ.Kind == symbol.TypeUser {
		e.pendingTypes = append(e.pendingTypes, pendingType{
			typ: &obj.Member.Type, scope: typ.UserScope, owner: owner, file: file, pos: n.Pos,
		})
	}
}

// handleInstances turns one Instances AstNode's children into KindInstance
// ObjDefs, deferring type-name resolution to the link pass.
func (e *Elaborator) handleInstances(n *ast.Node, defs map[string]*symbol.ObjDef, file string) {
	typeName := n.Attr("type")
	for _, inst := range n.ChildrenOf(ast.Instance) {
		obj := symbol.NewInstance(typeName, inst.Pos)
		defs[inst.Attr("name")] = obj
		e.pendingInstances = append(e.pendingInstances, pendingInstance{obj: obj, file: file, pos: inst.Pos})
	}
}

// appendImport records a body-level `import pkg::...;`. The grammar has no
// separate header-import production (an import always arrives as a body
// item), so an import in a module, interface or class body lands in that
// scope's ImportBody. An import with any other owner (a package body, or
// no owner) is not recorded. ImportHdr is reserved for scopes seeded
// directly by internal/stdlib.
func appendImport(owner *symbol.ObjDef, pkg string) {
	if owner == nil || pkg == "" {
		return
	}
	switch owner.Kind {
	case symbol.KindModule:
		owner.Module.ImportBody = append(owner.Module.ImportBody, pkg)
	case symbol.KindClass:
		owner.Class.ImportBody = append(owner.Class.ImportBody, pkg)
	}
}

// buildMethodObj converts a Method AstNode into a KindMethod ObjDef. Local
// declarations inside the body populate the method's own Defs map so a
// return statement or nested call can resolve a local by name, but a
// locally-declared user type is not queued for the link pass — a method
// body's own types are not cross-unit references in the sense spec §4.6
// tracks.
func buildMethodObj(n *ast.Node) *symbol.ObjDef {
	m := &symbol.DefMethod{
		Name:   n.Attr("name"),
		IsTask: n.Attr("kind") == "task",
		Defs:   map[string]*symbol.ObjDef{},
	}
	m.IsVirtual = n.Attr("qual_virtual") == "1"
	m.IsStatic = n.Attr("qual_static") == "1"
	m.IsExtern = n.Attr("qual_extern") == "1"

	if rt := n.FirstChildOf(ast.Type); rt != nil {
		m.ReturnType = resolveType(rt)
	} else {
		m.ReturnType = symbol.NewPrimary(symbol.PrimaryVoid)
	}
	if ports := n.FirstChildOf(ast.Ports); ports != nil {
		for idx, pn := range ports.Children {
			m.Params = append(m.Params, buildPortNode(pn, idx))
		}
	}
	if body := n.FirstChildOf(ast.Body); body != nil {
		for _, c := range body.Children {
			collectLocalDecl(c, m.Defs)
		}
	}
	return &symbol.ObjDef{Kind: symbol.KindMethod, Pos: n.Pos, Method: m}
}

func collectLocalDecl(n *ast.Node, defs map[string]*symbol.ObjDef) {
	switch n.Kind {
	case ast.Param:
		defs[n.Attr("name")] = symbol.NewMember(n.Attr("name"), resolveType(firstTypeChild(n)), n.Pos)
	case ast.Declaration:
		if n.HasAttr("name") {
			defs[n.Attr("name")] = symbol.NewMember(n.Attr("name"), resolveType(firstTypeChild(n)), n.Pos)
			return
		}
		for _, c := range n.Children {
			collectLocalDecl(c, defs)
		}
	}
}
