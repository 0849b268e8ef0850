package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// parseModuleLike handles module/interface/program, which share a header
// (optional label, params, ports) and a body terminated by endKw with an
// optional matching `: label`.
func (p *Parser) parseModuleLike(kind ast.Kind, endKw token.Kind) (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident, "name")
	if err != nil {
		return nil, err
	}

	header := ast.NewNode(ast.Header, kw.Pos)
	header.SetAttr("name", nameTok.Value)

	if tok, _ := p.peek(); tok.Kind == token.Hash {
		params, err := p.parseParamList(tok.Pos)
		if err != nil {
			return nil, err
		}
		header.Add(params)
	}
	if tok, _ := p.peek(); tok.Kind == token.ParenLeft {
		ports, err := p.parsePortList(tok.Pos)
		if err != nil {
			return nil, err
		}
		header.Add(ports)
	}
	if _, err := p.expect(token.SemiColon, "module header"); err != nil {
		return nil, err
	}

	body, err := p.parseModuleBody(endKw)
	if err != nil {
		return nil, err
	}

	if err := p.expectEndLabel(endKw, nameTok.Value); err != nil {
		return nil, err
	}

	root := ast.NewNode(kind, kw.Pos)
	root.SetAttr("name", nameTok.Value)
	root.Add(header)
	root.Add(body)
	return root, nil
}

// expectEndLabel consumes endKw and an optional `: label`, reporting
// ErrSyntax if the label doesn't match openName (spec §4.4's "Label
// checking" / testable property #6).
func (p *Parser) expectEndLabel(endKw token.Kind, openName string) error {
	if _, err := p.expect(endKw, "end keyword"); err != nil {
		return err
	}
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind != token.Colon {
		return nil
	}
	p.next()
	label, err := p.expect(token.Ident, "end label")
	if err != nil {
		return err
	}
	if label.Value != openName {
		p.reportExplain(label, openName, label.Value)
		return newError(label, "label "+openName)
	}
	return nil
}

func (p *Parser) reportExplain(tok token.Token, expected, actual string) {
	if p.rep == nil {
		return
	}
	p.rep.Explain(p.file, tok.Pos, expected, actual)
}

// parseModuleBody collects body items until endKw is seen (without
// consuming it), dispatching each on its leading token.
func (p *Parser) parseModuleBody(endKw token.Kind) (*ast.Node, error) {
	body := ast.NewNode(ast.Body, p.ts.GetPos())
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == endKw || tok.Kind == token.Eof {
			return body, nil
		}
		item, err := p.parseBodyItem(tok)
		if err != nil {
			p.report_ErrSyntax(tok, "module body")
			p.recoverToSemicolon()
			continue
		}
		if item != nil {
			body.Add(item)
		}
	}
}

func (p *Parser) recoverToSemicolon() {
	for {
		tok, err := p.next()
		if err != nil || tok.Kind == token.Eof || tok.Kind == token.SemiColon {
			return
		}
	}
}

func (p *Parser) parseBodyItem(tok token.Token) (*ast.Node, error) {
	switch tok.Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwAlways, token.KwAlwaysC, token.KwAlwaysF, token.KwAlwaysL, token.KwInitial, token.KwFinal:
		return p.parseProcess(tok)
	case token.KwAssign:
		return p.parseAssign(tok)
	case token.KwGenvar:
		return p.parseGenvarDecl(tok)
	case token.KwGenerate:
		p.next()
		body, err := p.parseModuleBody(token.KwEndGenerate)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KwEndGenerate, "generate block"); err != nil {
			return nil, err
		}
		gen := ast.NewNode(ast.Generate, tok.Pos)
		gen.Add(body)
		return gen, nil
	case token.KwIf, token.KwFor, token.KwCase:
		return p.parseStatement(true)
	case token.Macro:
		return p.parseDirective()
	case token.KwInput, token.KwOutput, token.KwInout, token.KwRef:
		return p.parsePortRedecl(tok)
	case token.KwModport:
		return p.parseModport(tok)
	case token.KwClocking:
		return p.parseClocking(tok)
	case token.Comment, token.Attribute:
		p.next()
		return nil, nil
	case token.Ident:
		return p.parseDeclOrInstance(tok)
	case token.KwTypedef:
		return p.parseTypedef(tok)
	case token.KwFunction, token.KwTask:
		return p.parseMethod()
	case token.KwClass:
		return p.parseClass()
	case token.TypeIntAtom, token.TypeIntVector, token.TypeReal, token.TypeString,
		token.TypeCHandle, token.TypeEvent, token.KwEnum, token.KwStruct, token.KwUnion:
		return p.parseDeclaration(tok)
	default:
		p.next()
		return nil, newError(tok, "module body item")
	}
}

// parseImport handles `import pkg::name;` / `import pkg::*;`.
func (p *Parser) parseImport() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	pkg, err := p.expect(token.Ident, "package name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Scope, "::"); err != nil {
		return nil, err
	}
	member, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Import, kw.Pos)
	n.SetAttr("package", pkg.Value)
	n.SetAttr("member", member.Value)
	if _, err := p.expect(token.SemiColon, "import"); err != nil {
		return nil, err
	}
	return n, nil
}

// parseProcess handles always*/initial/final followed by a single
// statement (commonly a Block).
func (p *Parser) parseProcess(tok token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Block, tok.Pos)
	n.SetAttr("process", tok.Kind.String())
	if pk, _ := p.peek(); pk.Kind == token.At {
		sens, err := p.parseSensitivity()
		if err != nil {
			return nil, err
		}
		n.Add(sens)
	}
	stmt, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	n.Add(stmt)
	return n, nil
}

func (p *Parser) parseSensitivity() (*ast.Node, error) {
	at, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Sensitivity, at.Pos)
	if pk, _ := p.peek(); pk.Kind == token.SensiAll {
		p.next()
		n.SetAttr("all", "1")
		return n, nil
	}
	hasParen := false
	if pk, _ := p.peek(); pk.Kind == token.ParenLeft {
		p.next()
		hasParen = true
	}
	for {
		if hasParen {
			if pk, _ := p.peek(); pk.Kind == token.ParenRight {
				p.next()
				return n, nil
			}
		}
		ev := ast.NewNode(ast.Event, p.ts.GetPos())
		if pk, _ := p.peek(); pk.Kind == token.KwEdge {
			e, _ := p.next()
			ev.SetAttr("edge", e.Value)
		}
		expr, err := p.parseExpr(CntxtSensitivity, false)
		if err != nil {
			return nil, err
		}
		ev.Add(expr)
		n.Add(ev)
		if !hasParen {
			return n, nil
		}
		sep, err := p.peek()
		if err != nil {
			return nil, err
		}
		if sep.Kind == token.KwOr || sep.Kind == token.Comma {
			p.next()
			continue
		}
		if sep.Kind == token.ParenRight {
			p.next()
			return n, nil
		}
		return n, nil
	}
}

func (p *Parser) parseAssign(tok token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Assign, tok.Pos)
	lhs, err := p.parseExpr(CntxtStmt, false)
	if err != nil {
		return nil, err
	}
	n.Add(lhs)
	if _, err := p.expect(token.OpEq, "assign"); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpr(CntxtStmt, true)
	if err != nil {
		return nil, err
	}
	n.Add(rhs)
	if _, err := p.expect(token.SemiColon, "assign"); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseGenvarDecl(tok token.Token) (*ast.Node, error) {
	p.next()
	id, err := p.expect(token.Ident, "genvar name")
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Declaration, tok.Pos)
	n.SetAttr("name", id.Value)
	n.SetAttr("genvar", "1")
	if _, err := p.expect(token.SemiColon, "genvar"); err != nil {
		return nil, err
	}
	return n, nil
}

// parsePortRedecl handles a non-Ansi port re-declaration inside a module
// body (`input logic clk;`): a direction keyword with no preceding `#(`
// rebinds the matching pre-declared header port rather than introducing a
// new one (spec §4.4's "a Port AstNode with no dir attribute" distinction
// is inverted here — a body Port node always carries "dir" explicitly,
// which is exactly what tells the elaborator it is a rebind rather than a
// fresh Ansi port).
func (p *Parser) parsePortRedecl(tok token.Token) (*ast.Node, error) {
	p.next()
	dir := dirKeywords[tok.Kind]
	var typ *ast.Node
	if t2, _ := p.peek(); isTypeStart(t2.Kind) && !isPlainPortName(p) {
		var err error
		typ, err = p.parseDataType(0)
		if err != nil {
			return nil, err
		}
	}
	group := ast.NewNode(ast.Ports, tok.Pos)
	for {
		id, err := p.expect(token.Ident, "port name")
		if err != nil {
			return nil, err
		}
		port := ast.NewNode(ast.Port, id.Pos)
		port.SetAttr("name", id.Value)
		port.SetAttr("dir", dir)
		if typ != nil {
			port.Add(typ)
		}
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
			port.Add(sl)
		}
		group.Add(port)
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

func (p *Parser) parseModport(tok token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Modport, tok.Pos)
	name, err := p.expect(token.Ident, "modport name")
	if err != nil {
		return nil, err
	}
	n.SetAttr("name", name.Value)
	if _, err := p.expect(token.ParenLeft, "modport ports"); err != nil {
		return nil, err
	}
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		if t.Kind == token.ParenRight {
			break
		}
		if dir, ok := dirKeywords[t.Kind]; ok {
			id, err := p.expect(token.Ident, "modport signal")
			if err != nil {
				return nil, err
			}
			port := ast.NewNode(ast.Port, t.Pos)
			port.SetAttr("name", id.Value)
			port.SetAttr("dir", dir)
			n.Add(port)
		}
	}
	if _, err := p.expect(token.SemiColon, "modport"); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseClocking(tok token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Clocking, tok.Pos)
	if id, _ := p.peek(); id.Kind == token.Ident {
		p.next()
		n.SetAttr("name", id.Value)
	}
	if _, err := p.expect(token.At, "clocking event"); err != nil {
		return nil, err
	}
	ev, err := p.parseExpr(CntxtStmt, false)
	if err != nil {
		return nil, err
	}
	n.Add(ev)
	if _, err := p.expect(token.SemiColon, "clocking"); err != nil {
		return nil, err
	}
	if err := p.skipToEndKw(token.KwEndClocking); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) skipToEndKw(end token.Kind) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}
		if tok.Kind == end || tok.Kind == token.Eof {
			return nil
		}
	}
}
