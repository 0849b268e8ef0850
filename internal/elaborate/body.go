package elaborate

import (
	"fmt"
	"strings"

	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/symbol"
)

// buildBody walks one module/class/package body, dispatching each item by
// AstNodeKind, grounded on comp_obj.rs's DefModule/DefClass/DefPackage
// parse_body match arms. moduleMode gates the constructs that only a
// module/interface body can contain (non-Ansi port re-declaration,
// modport, clocking, generate branch/loop instance blocks, bind); a
// class/package body hitting one of those is a genuine grammar mismatch
// and reported the same way an unrecognized root construct is.
func (e *Elaborator) buildBody(items []*ast.Node, defs map[string]*symbol.ObjDef, owner *symbol.ObjDef, file string, moduleMode bool, anonCounter *int) {
	for _, item := range items {
		switch item.Kind {
		case ast.Param, ast.Declaration:
			e.handleDeclLike(item, defs, owner, file)
		case ast.Typedef:
			e.buildTypedefInto(item, defs, owner, file)
		case ast.Instances:
			e.handleInstances(item, defs, file)
		case ast.Method:
			defs[item.Attr("name")] = buildMethodObj(item)
		case ast.Import:
			appendImport(owner, item.Attr("package"))
		case ast.Class:
			defs[item.Attr("name")] = e.buildClass(item, file)
		case ast.Covergroup:
			if name := item.Attr("name"); name != "" {
				defs[name] = &symbol.ObjDef{Kind: symbol.KindCovergroup, Pos: item.Pos, Covergroup: &symbol.DefCovergroup{Name: name}}
			}
		case ast.Constraint, ast.SvaProperty, ast.Genvar,
			ast.Directive, ast.MacroCall, ast.Comment, ast.Attribute,
			ast.Assign, ast.Assert, ast.SystemTask, ast.Statement,
			ast.Wait, ast.Fork, ast.Loop, ast.Return, ast.EventCtrl:
			// recognized, not elaborated further — these don't introduce
			// a resolvable symbol.
		case ast.Generate:
			if body := item.FirstChildOf(ast.Body); body != nil {
				e.buildBody(body.Children, defs, owner, file, moduleMode, anonCounter)
			}
		case ast.Port:
			if !moduleMode {
				e.reportSkip(file, item.Pos, item.Kind.String())
				continue
			}
			e.handlePortRedecl(item, owner, file)
		case ast.Ports:
			if !moduleMode {
				e.reportSkip(file, item.Pos, item.Kind.String())
				continue
			}
			for _, p := range item.Children {
				e.handlePortRedecl(p, owner, file)
			}
		case ast.Modport:
			if !moduleMode {
				e.reportSkip(file, item.Pos, item.Kind.String())
				continue
			}
			e.handleModport(item, defs)
		case ast.Clocking:
			if !moduleMode {
				e.reportSkip(file, item.Pos, item.Kind.String())
				continue
			}
			e.handleClocking(item, defs)
		case ast.Branch, ast.LoopFor:
			if !moduleMode {
				e.reportSkip(file, item.Pos, item.Kind.String())
				continue
			}
			blk := e.buildBlockInst(item, file, anonCounter)
			defs[blk.Block.Label] = blk
		case ast.Bind:
			if !moduleMode {
				e.reportSkip(file, item.Pos, item.Kind.String())
				continue
			}
			e.captureBind(item)
		default:
			e.reportSkip(file, item.Pos, item.Kind.String())
		}
	}
}

// handlePortRedecl rebinds a non-Ansi header port's direction/type from a
// body-level `input`/`output`/`inout`/`ref` re-declaration (spec §4.4). A
// name with no matching header port is a genuine error, not a new port —
// non-Ansi bodies never introduce ports that weren't named in the header.
func (e *Elaborator) handlePortRedecl(n *ast.Node, owner *symbol.ObjDef, file string) {
	name := n.Attr("name")
	if owner == nil || owner.Kind != symbol.KindModule {
		return
	}
	for _, port := range owner.Module.Ports {
		if port.Name != name {
			continue
		}
		port.Dir = dirFromAttr(n.Attr("dir"))
		if typeNode := firstTypeChild(n); typeNode != nil {
			port.Type = resolveType(typeNode)
		}
		if dims := unpackedDimsOf(n); dims != "" {
			port.UnpackedDims = dims
		}
		return
	}
	e.reportNotFound(file, n.Pos, name)
}

func (e *Elaborator) handleModport(n *ast.Node, defs map[string]*symbol.ObjDef) {
	mp := &symbol.DefModport{Name: n.Attr("name")}
	for idx, pn := range n.ChildrenOf(ast.Port) {
		mp.Ports = append(mp.Ports, &symbol.DefPort{
			Name: pn.Attr("name"), Dir: dirFromAttr(pn.Attr("dir")), Index: idx,
		})
	}
	if mp.Name != "" {
		defs[mp.Name] = &symbol.ObjDef{Kind: symbol.KindModport, Pos: n.Pos, Modport: mp}
	}
}

func (e *Elaborator) handleClocking(n *ast.Node, defs map[string]*symbol.ObjDef) {
	name := n.Attr("name")
	if name == "" {
		return
	}
	defs[name] = &symbol.ObjDef{Kind: symbol.KindClocking, Pos: n.Pos, Clocking: &symbol.DefClocking{Name: name}}
}

// buildBlockInst builds an anonymous DefBlock for a generate branch/loop,
// naming it from its own label when present or a synthesized
// `blk_<kind>_<n>` otherwise, per comp_obj.rs's get_block_inst.
func (e *Elaborator) buildBlockInst(n *ast.Node, file string, anonCounter *int) *symbol.ObjDef {
	label := n.Attr("label")
	if label == "" {
		*anonCounter++
		label = fmt.Sprintf("blk_%s_%d", strings.ToLower(n.Kind.String()), *anonCounter)
	}
	blk := symbol.NewBlock(label, n.Pos)
	e.collectBlockContents(n, blk.Block.Defs, file, anonCounter)
	return blk
}

// collectBlockContents recurses into a generate block's children looking
// for instances, binds, and further nested branches/loops — the only
// constructs get_block_inst cares about inside a generate body.
func (e *Elaborator) collectBlockContents(n *ast.Node, defs map[string]*symbol.ObjDef, file string, anonCounter *int) {
	for _, c := range n.Children {
		switch c.Kind {
		case ast.Instances:
			e.handleInstances(c, defs, file)
		case ast.Bind:
			e.captureBind(c)
		case ast.Branch, ast.LoopFor:
			nested := e.buildBlockInst(c, file, anonCounter)
			defs[nested.Block.Label] = nested
		case ast.Block:
			e.collectBlockContents(c, defs, file, anonCounter)
		}
	}
}
