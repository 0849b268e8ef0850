package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// parsePackage handles `package name; ... endpackage [: name]`.
func (p *Parser) parsePackage() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident, "package name")
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Package, kw.Pos)
	n.SetAttr("name", nameTok.Value)
	if _, err := p.expect(token.SemiColon, "package header"); err != nil {
		return nil, err
	}

	body := ast.NewNode(ast.Body, p.ts.GetPos())
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.KwEndPackage || tok.Kind == token.Eof {
			break
		}
		item, err := p.parsePackageItem(tok)
		if err != nil {
			p.report_ErrSyntax(tok, "package body")
			p.recoverToSemicolon()
			continue
		}
		if item != nil {
			body.Add(item)
		}
	}
	n.Add(body)
	if err := p.expectEndLabel(token.KwEndPackage, nameTok.Value); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parsePackageItem(tok token.Token) (*ast.Node, error) {
	switch tok.Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwFunction, token.KwTask:
		return p.parseMethod()
	case token.KwClass:
		return p.parseClass()
	case token.KwTypedef:
		return p.parseTypedef(tok)
	case token.KwParam, token.KwLParam:
		return p.parseParamDecl(tok)
	case token.Macro:
		return p.parseDirective()
	case token.Comment, token.Attribute:
		_, err := p.next()
		return nil, err
	case token.TypeIntAtom, token.TypeIntVector, token.TypeReal, token.TypeString,
		token.TypeCHandle, token.TypeEvent, token.KwEnum, token.KwStruct, token.KwUnion:
		return p.parseDeclaration(tok)
	case token.Ident:
		return p.parseDeclOrInstance(tok)
	default:
		p.next()
		return nil, newError(tok, "package item")
	}
}

// parseParamDecl handles a top-level `parameter`/`localparam` declaration
// outside of a `#( ... )` list, e.g. inside a package.
func (p *Parser) parseParamDecl(tok token.Token) (*ast.Node, error) {
	p.next()
	isLocal := tok.Kind == token.KwLParam

	var typ *ast.Node
	if pk, _ := p.peek(); isTypeStart(pk.Kind) {
		typed := true
		if pk.Kind == token.Ident {
			if nxt, _ := p.peekN(1); nxt.Kind != token.Ident {
				typed = false
			}
		}
		if typed {
			t, err := p.parseDataType(allowTypeKw)
			if err != nil {
				return nil, err
			}
			typ = t
		}
	}

	group := ast.NewNode(ast.Declaration, tok.Pos)
	for {
		id, err := p.expect(token.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		decl := ast.NewNode(ast.Param, id.Pos)
		decl.SetAttr("name", id.Value)
		if isLocal {
			decl.SetAttr("localparam", "1")
		}
		if typ != nil {
			decl.Add(typ)
		}
		if eq, _ := p.peek(); eq.Kind == token.OpEq {
			p.next()
			val, err := p.parseExpr(CntxtStmt, true)
			if err != nil {
				return nil, err
			}
			decl.Add(val)
		}
		group.Add(decl)
		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		if sep.Kind == token.SemiColon {
			break
		}
		if sep.Kind != token.Comma {
			return nil, newError(sep, ", or ;")
		}
	}
	if len(group.Children) == 1 {
		return group.Children[0], nil
	}
	return group, nil
}

// parseTypedef handles `typedef [class Name;] | [type name;] | [type
// name unpacked_dims;]` and the forward-declaration form.
func (p *Parser) parseTypedef(tok token.Token) (*ast.Node, error) {
	p.next()
	if pk, _ := p.peek(); pk.Kind == token.KwClass {
		p.next()
		nameTok, err := p.expect(token.Ident, "typedef class name")
		if err != nil {
			return nil, err
		}
		n := ast.NewNode(ast.Typedef, tok.Pos)
		n.SetAttr("name", nameTok.Value)
		n.SetAttr("forward", "class")
		if _, err := p.expect(token.SemiColon, "typedef"); err != nil {
			return nil, err
		}
		return n, nil
	}

	typ, err := p.parseDataType(allowTypeKw)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident, "typedef name")
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Typedef, tok.Pos)
	n.SetAttr("name", nameTok.Value)
	n.Add(typ)
	for {
		t3, _ := p.peek()
		if t3.Kind != token.SquareLeft {
			break
		}
		p.next()
		sl, err := p.parseSlice(t3.Pos)
		if err != nil {
			return nil, err
		}
		n.Add(sl)
	}
	if _, err := p.expect(token.SemiColon, "typedef"); err != nil {
		return nil, err
	}
	return n, nil
}

// parsePrimitive handles UDP bodies at header level only: name, port list,
// and a skip to endprimitive — the level-sensitive/edge-sensitive truth
// table inside is out of scope for the checks this tree feeds.
func (p *Parser) parsePrimitive() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident, "primitive name")
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Primitive, kw.Pos)
	n.SetAttr("name", nameTok.Value)
	if pk, _ := p.peek(); pk.Kind == token.ParenLeft {
		ports, err := p.parsePortList(pk.Pos)
		if err != nil {
			return nil, err
		}
		n.Add(ports)
	}
	if _, err := p.expect(token.SemiColon, "primitive header"); err != nil {
		return nil, err
	}
	if err := p.skipToEndKw(token.KwEndPrimitive); err != nil {
		return nil, err
	}
	return n, nil
}

// parseBind handles `bind target_scope [: inst,...] inst_type [#(params)]
// inst_name (connections);`.
func (p *Parser) parseBind() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	targetTok, err := p.expect(token.Ident, "bind target")
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Bind, kw.Pos)
	n.SetAttr("target", targetTok.Value)

	if pk, _ := p.peek(); pk.Kind == token.Colon {
		p.next()
		for {
			if _, err := p.expect(token.Ident, "bind instance name"); err != nil {
				return nil, err
			}
			sep, err := p.peek()
			if err != nil {
				return nil, err
			}
			if sep.Kind == token.Comma {
				p.next()
				continue
			}
			break
		}
	}

	typeTok, err := p.expect(token.Ident, "bind instance type")
	if err != nil {
		return nil, err
	}
	inst := ast.NewNode(ast.Instance, typeTok.Pos)
	inst.SetAttr("type", typeTok.Value)
	if pk, _ := p.peek(); pk.Kind == token.Hash {
		params, err := p.parseParamList(pk.Pos)
		if err != nil {
			return nil, err
		}
		inst.Add(params)
	}
	nameTok, err := p.expect(token.Ident, "bind instance name")
	if err != nil {
		return nil, err
	}
	inst.SetAttr("name", nameTok.Value)
	if _, err := p.expect(token.ParenLeft, "bind port connections"); err != nil {
		return nil, err
	}
	conns, err := p.parsePortConnections()
	if err != nil {
		return nil, err
	}
	for _, c := range conns {
		inst.Add(c)
	}
	n.Add(inst)
	if _, err := p.expect(token.SemiColon, "bind"); err != nil {
		return nil, err
	}
	return n, nil
}

// parseConfig handles a config block's header and name, skipping its
// design/instance/cell rule body (`config` blocks select library cells and
// don't affect the checks this tree feeds).
func (p *Parser) parseConfig() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident, "config name")
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Config, kw.Pos)
	n.SetAttr("name", nameTok.Value)
	if _, err := p.expect(token.SemiColon, "config header"); err != nil {
		return nil, err
	}
	if err := p.skipToEndKw(token.KwEndConfig); err != nil {
		return nil, err
	}
	return n, nil
}
