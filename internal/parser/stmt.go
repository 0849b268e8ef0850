package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// parseStatement parses one statement. isGen marks generate-block context
// (for/if/case inside a module body act as generate constructs, sharing
// the same routines per spec §4.4's "is_gen flag").
func (p *Parser) parseStatement(isGen bool) (*ast.Node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case token.KwUnique, token.KwUnique0, token.KwPriority:
		p.next()
		qualifier := tok.Value
		nxt, err := p.peek()
		if err != nil {
			return nil, err
		}
		if nxt.Kind == token.KwCase {
			return p.parseCase(qualifier)
		}
		if nxt.Kind == token.KwIf {
			n, err := p.parseIf(isGen)
			if err != nil {
				return nil, err
			}
			n.SetAttr("qualifier", qualifier)
			return n, nil
		}
		return nil, newError(nxt, "if or case")
	case token.KwBegin:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf(isGen)
	case token.KwCase:
		return p.parseCase("")
	case token.KwFor:
		return p.parseFor(isGen)
	case token.KwWhile:
		return p.parseWhileLike(tok, ast.Loop)
	case token.KwForever:
		p.next()
		n := ast.NewNode(ast.Loop, tok.Pos)
		n.SetAttr("kind", "forever")
		body, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		n.Add(body)
		return n, nil
	case token.KwRepeat, token.KwForeach:
		return p.parseWhileLike(tok, ast.Loop)
	case token.KwDo:
		return p.parseDoWhile(tok)
	case token.KwFork:
		return p.parseFork(tok)
	case token.KwWait:
		return p.parseWait(tok)
	case token.KwAssert, token.KwAssume, token.KwCover:
		return p.parseAssert(tok)
	case token.KwReturn:
		p.next()
		n := ast.NewNode(ast.Return, tok.Pos)
		if pk, _ := p.peek(); pk.Kind != token.SemiColon {
			val, err := p.parseExpr(CntxtStmt, true)
			if err != nil {
				return nil, err
			}
			n.Add(val)
		}
		if _, err := p.expect(token.SemiColon, "return"); err != nil {
			return nil, err
		}
		return n, nil
	case token.KwBreak, token.KwContinue:
		p.next()
		n := ast.NewNode(ast.Statement, tok.Pos)
		n.SetAttr("kind", tok.Kind.String())
		if _, err := p.expect(token.SemiColon, tok.Kind.String()); err != nil {
			return nil, err
		}
		return n, nil
	case token.KwDisable:
		p.next()
		id, err := p.expect(token.Ident, "disable target")
		if err != nil {
			return nil, err
		}
		n := ast.NewNode(ast.Statement, tok.Pos)
		n.SetAttr("kind", "disable")
		n.SetAttr("target", id.Value)
		if _, err := p.expect(token.SemiColon, "disable"); err != nil {
			return nil, err
		}
		return n, nil
	case token.At:
		evc, err := p.parseSensitivity()
		if err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		wrap := ast.NewNode(ast.EventCtrl, tok.Pos)
		wrap.Add(evc)
		wrap.Add(stmt)
		return wrap, nil
	case token.SemiColon:
		p.next()
		return ast.NewNode(ast.Statement, tok.Pos), nil
	case token.KwImport:
		return p.parseImport()
	case token.Macro:
		return p.parseDirective()
	case token.TypeIntAtom, token.TypeIntVector, token.TypeReal, token.TypeString,
		token.TypeCHandle, token.TypeEvent, token.KwEnum, token.KwStruct, token.KwUnion:
		return p.parseDeclaration(tok)
	case token.SystemTask:
		return p.parseSystemTaskStmt()
	case token.Ident:
		return p.parseIdentLedStatement(tok)
	default:
		p.next()
		return nil, newError(tok, "statement")
	}
}

// parseBlock parses `begin [: label] ... end [: label]`.
func (p *Parser) parseBlock() (*ast.Node, error) {
	beg, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Block, beg.Pos)
	label := ""
	if pk, _ := p.peek(); pk.Kind == token.Colon {
		p.next()
		id, err := p.expect(token.Ident, "block label")
		if err != nil {
			return nil, err
		}
		label = id.Value
		n.SetAttr("label", label)
	}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.KwEnd || tok.Kind == token.Eof {
			break
		}
		stmt, err := p.parseStatement(false)
		if err != nil {
			p.report_ErrSyntax(tok, "block")
			p.recoverToSemicolon()
			continue
		}
		if stmt != nil {
			n.Add(stmt)
		}
	}
	if err := p.expectEndLabel(token.KwEnd, label); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseIf(isGen bool) (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenLeft, "if condition"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(CntxtExprGroup, false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenRight, "if condition"); err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Branch, kw.Pos)
	if isGen {
		n.SetAttr("gen", "1")
	}
	n.Add(cond)
	then, err := p.parseStatement(isGen)
	if err != nil {
		return nil, err
	}
	n.Add(then)
	if pk, _ := p.peek(); pk.Kind == token.KwElse {
		p.next()
		els, err := p.parseStatement(isGen)
		if err != nil {
			return nil, err
		}
		n.Add(els)
	}
	return n, nil
}

func (p *Parser) parseFor(isGen bool) (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.LoopFor, kw.Pos)
	if isGen {
		n.SetAttr("gen", "1")
	}
	if _, err := p.expect(token.ParenLeft, "for header"); err != nil {
		return nil, err
	}
	init, err := p.parseExpr(CntxtStmt, true)
	if err != nil {
		return nil, err
	}
	n.Add(init)
	if _, err := p.expect(token.SemiColon, "for header"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(CntxtStmt, false)
	if err != nil {
		return nil, err
	}
	n.Add(cond)
	if _, err := p.expect(token.SemiColon, "for header"); err != nil {
		return nil, err
	}
	step, err := p.parseExpr(CntxtExprGroup, true)
	if err != nil {
		return nil, err
	}
	n.Add(step)
	if _, err := p.expect(token.ParenRight, "for header"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(isGen)
	if err != nil {
		return nil, err
	}
	n.Add(body)
	return n, nil
}

func (p *Parser) parseWhileLike(kw token.Token, kind ast.Kind) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(kind, kw.Pos)
	n.SetAttr("kind", kw.Kind.String())
	if _, err := p.expect(token.ParenLeft, "loop condition"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(CntxtExprGroup, false)
	if err != nil {
		return nil, err
	}
	n.Add(cond)
	if _, err := p.expect(token.ParenRight, "loop condition"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	n.Add(body)
	return n, nil
}

func (p *Parser) parseDoWhile(kw token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Loop, kw.Pos)
	n.SetAttr("kind", "do")
	body, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	n.Add(body)
	if _, err := p.expect(token.KwWhile, "do-while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenLeft, "do-while"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(CntxtExprGroup, false)
	if err != nil {
		return nil, err
	}
	n.Add(cond)
	if _, err := p.expect(token.ParenRight, "do-while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SemiColon, "do-while"); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseFork(kw token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Fork, kw.Pos)
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.KwJoin || tok.Kind == token.Eof {
			p.next()
			return n, nil
		}
		stmt, err := p.parseStatement(false)
		if err != nil {
			p.report_ErrSyntax(tok, "fork")
			p.recoverToSemicolon()
			continue
		}
		if stmt != nil {
			n.Add(stmt)
		}
	}
}

func (p *Parser) parseWait(kw token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Wait, kw.Pos)
	if _, err := p.expect(token.ParenLeft, "wait condition"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(CntxtExprGroup, false)
	if err != nil {
		return nil, err
	}
	n.Add(cond)
	if _, err := p.expect(token.ParenRight, "wait condition"); err != nil {
		return nil, err
	}
	if pk, _ := p.peek(); pk.Kind != token.SemiColon {
		stmt, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		n.Add(stmt)
	} else {
		p.next()
	}
	return n, nil
}

func (p *Parser) parseAssert(kw token.Token) (*ast.Node, error) {
	p.next()
	n := ast.NewNode(ast.Assert, kw.Pos)
	n.SetAttr("kind", kw.Kind.String())
	if pk, _ := p.peek(); pk.Kind == token.KwProperty {
		p.next()
	}
	if _, err := p.expect(token.ParenLeft, "assert condition"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(CntxtExprGroup, false)
	if err != nil {
		return nil, err
	}
	n.Add(cond)
	if _, err := p.expect(token.ParenRight, "assert condition"); err != nil {
		return nil, err
	}
	if pk, _ := p.peek(); pk.Kind != token.SemiColon {
		stmt, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		n.Add(stmt)
	} else {
		p.next()
	}
	return n, nil
}

// parseSystemTaskStmt handles `$display(...);` and similar system task
// calls used as statements (scenario A).
func (p *Parser) parseSystemTaskStmt() (*ast.Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.SystemTask, tok.Pos)
	n.SetAttr("name", tok.Value)
	if pk, _ := p.peek(); pk.Kind == token.ParenLeft {
		p.next()
		ports := ast.NewNode(ast.Ports, pk.Pos)
		args, err := p.parseArgListBody()
		if err != nil {
			return nil, err
		}
		for _, a := range args {
			ports.Add(a)
		}
		n.Add(ports)
	}
	if _, err := p.expect(token.SemiColon, "system task"); err != nil {
		return nil, err
	}
	return n, nil
}

// parseIdentLedStatement disambiguates declaration / assignment / call /
// instance forms starting with a bare Ident, using one or two tokens of
// lookahead per spec §4.4.
func (p *Parser) parseIdentLedStatement(tok token.Token) (*ast.Node, error) {
	nxt, err := p.peekN(1)
	if err != nil {
		return nil, err
	}
	switch nxt.Kind {
	case token.Ident, token.Scope, token.Hash:
		return p.parseDeclOrInstance(tok)
	case token.OpEq, token.OpCompAss, token.OpIncrDecr, token.OpLTE:
		return p.parseAssignStmt(tok)
	case token.ParenLeft:
		p.next()
		p.next()
		call, err := p.parseCallArgs(tok)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.SemiColon, "call"); err != nil {
			return nil, err
		}
		return call, nil
	default:
		return p.parseAssignStmt(tok)
	}
}

// parseLValue parses a variable_lvalue: an identifier with optional
// bit-select/member chains, or a `{...}` concatenation of lvalues. Kept
// separate from parseExpr because `<=` is both the non-blocking-assignment
// operator and a comparison operator — an lvalue production never needs
// the comparison reading, so there is no ambiguity to resolve here.
func (p *Parser) parseLValue() (*ast.Node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.CurlyLeft {
		p.next()
		items, err := p.parseCommaList(CntxtFieldList)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CurlyRight, "lvalue concatenation"); err != nil {
			return nil, err
		}
		n := ast.NewNode(ast.Concat, tok.Pos)
		for _, it := range items {
			n.Add(it)
		}
		return n, nil
	}

	idTok, err := p.expect(token.Ident, "lvalue")
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Value, idTok.Pos)
	n.SetAttr("text", idTok.Value)
	n.SetAttr("kind", token.Ident.String())
	for {
		pk, err := p.peek()
		if err != nil {
			return nil, err
		}
		if pk.Kind == token.SquareLeft {
			p.next()
			sl, err := p.parseSlice(pk.Pos)
			if err != nil {
				return nil, err
			}
			n.Add(sl)
			continue
		}
		if pk.Kind == token.Dot {
			p.next()
			member, err := p.expect(token.Ident, "member")
			if err != nil {
				return nil, err
			}
			dotN := ast.NewNode(ast.Operation, pk.Pos)
			dotN.SetAttr("kind", token.Dot.String())
			val := ast.NewNode(ast.Value, member.Pos)
			val.SetAttr("text", member.Value)
			dotN.Add(n)
			dotN.Add(val)
			n = dotN
			continue
		}
		break
	}
	return n, nil
}

func (p *Parser) parseAssignStmt(tok token.Token) (*ast.Node, error) {
	lhs, err := p.parseLValue()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Assign, tok.Pos)
	n.Add(lhs)
	if pk, _ := p.peek(); pk.Kind != token.SemiColon {
		op, err := p.next()
		if err != nil {
			return nil, err
		}
		n.SetAttr("op", op.Kind.String())
		if pk2, _ := p.peek(); pk2.Kind != token.SemiColon {
			rhs, err := p.parseExpr(CntxtStmt, true)
			if err != nil {
				return nil, err
			}
			n.Add(rhs)
		}
	}
	if _, err := p.expect(token.SemiColon, "assignment"); err != nil {
		return nil, err
	}
	return n, nil
}

// parseDeclaration parses a base-type-led declaration: `type name [=expr]
// [, name2 ...];` (class/function-body and module-body variable decls).
func (p *Parser) parseDeclaration(tok token.Token) (*ast.Node, error) {
	typ, err := p.parseDataType(allowTypeKw)
	if err != nil {
		return nil, err
	}
	group := ast.NewNode(ast.Declaration, tok.Pos)
	for {
		id, err := p.expect(token.Ident, "declarator name")
		if err != nil {
			return nil, err
		}
		decl := ast.NewNode(ast.Declaration, id.Pos)
		decl.SetAttr("name", id.Value)
		decl.Add(typ)
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
			decl.Add(sl)
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

// parseDeclOrInstance handles `Ident ...` where Ident names a user type
// or a module being instantiated — the shapes are identical until the
// declarator name is followed by `(` (instance) or not (declaration).
func (p *Parser) parseDeclOrInstance(tok token.Token) (*ast.Node, error) {
	typeTok, err := p.next()
	if err != nil {
		return nil, err
	}
	typeNode := ast.NewNode(ast.Type, typeTok.Pos)
	typeNode.SetAttr("name", typeTok.Value)

	if pk, _ := p.peek(); pk.Kind == token.Scope {
		p.next()
		member, err := p.expect(token.Ident, "scoped type name")
		if err != nil {
			return nil, err
		}
		typeNode.SetAttr("scope", typeTok.Value)
		typeNode.SetAttr("name", member.Value)
	}

	var paramsNode *ast.Node
	if pk, _ := p.peek(); pk.Kind == token.Hash {
		pl, err := p.parseParamList(pk.Pos)
		if err != nil {
			return nil, err
		}
		paramsNode = pl
	}

	declGroup := ast.NewNode(ast.Declaration, tok.Pos)
	var instGroup *ast.Node

	for {
		nameTok, err := p.expect(token.Ident, "declarator name")
		if err != nil {
			return nil, err
		}
		pk, err := p.peek()
		if err != nil {
			return nil, err
		}
		if pk.Kind == token.ParenLeft {
			p.next()
			inst := ast.NewNode(ast.Instance, nameTok.Pos)
			inst.SetAttr("name", nameTok.Value)
			inst.SetAttr("type", typeNode.Attr("name"))
			if paramsNode != nil {
				inst.Add(paramsNode)
			}
			conns, err := p.parsePortConnections()
			if err != nil {
				return nil, err
			}
			for _, c := range conns {
				inst.Add(c)
			}
			if instGroup == nil {
				instGroup = ast.NewNode(ast.Instances, tok.Pos)
				instGroup.SetAttr("type", typeNode.Attr("name"))
			}
			instGroup.Add(inst)
		} else {
			decl := ast.NewNode(ast.Declaration, nameTok.Pos)
			decl.SetAttr("name", nameTok.Value)
			decl.Add(typeNode)
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
				decl.Add(sl)
			}
			if eq, _ := p.peek(); eq.Kind == token.OpEq {
				p.next()
				val, err := p.parseExpr(CntxtStmt, true)
				if err != nil {
					return nil, err
				}
				decl.Add(val)
			}
			declGroup.Add(decl)
		}
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

	if instGroup != nil {
		return instGroup, nil
	}
	if len(declGroup.Children) == 1 {
		return declGroup.Children[0], nil
	}
	return declGroup, nil
}

// parsePortConnections parses `( .name(expr), .name2(expr2), ... )` or a
// positional connection list, already positioned just past the opening
// `(`.
func (p *Parser) parsePortConnections() ([]*ast.Node, error) {
	var conns []*ast.Node
	for {
		pk, err := p.peek()
		if err != nil {
			return nil, err
		}
		if pk.Kind == token.ParenRight {
			p.next()
			return conns, nil
		}
		if pk.Kind == token.Dot {
			p.next()
			nameTok, err := p.expect(token.Ident, "port connection name")
			if err != nil {
				return nil, err
			}
			port := ast.NewNode(ast.Port, pk.Pos)
			port.SetAttr("name", nameTok.Value)
			if _, err := p.expect(token.ParenLeft, "port connection"); err != nil {
				return nil, err
			}
			if inner, _ := p.peek(); inner.Kind != token.ParenRight {
				val, err := p.parseExpr(CntxtArg, true)
				if err != nil {
					return nil, err
				}
				port.Add(val)
			}
			if _, err := p.expect(token.ParenRight, "port connection"); err != nil {
				return nil, err
			}
			conns = append(conns, port)
		} else if pk.Kind == token.DotStar {
			p.next()
			n := ast.NewNode(ast.Port, pk.Pos)
			n.SetAttr("implicit", "1")
			conns = append(conns, n)
		} else {
			val, err := p.parseExpr(CntxtArgList, true)
			if err != nil {
				return nil, err
			}
			port := ast.NewNode(ast.Port, pk.Pos)
			port.Add(val)
			conns = append(conns, port)
		}
		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		if sep.Kind == token.ParenRight {
			return conns, nil
		}
		if sep.Kind != token.Comma {
			return nil, newError(sep, ", or )")
		}
	}
}
