package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// ExprCntxt tells parseExpr which tokens terminate the expression it is
// reading, so the same routine serves function arguments, struct
// initializers, case labels, array bounds, and sensitivity lists alike
// (spec §4.4's "context-carrying expression parser").
type ExprCntxt int

const (
	CntxtArgList ExprCntxt = iota
	CntxtArg
	CntxtExprGroup
	CntxtStmtList
	CntxtStmt
	CntxtCaseItemList
	CntxtFieldList
	CntxtSensitivity
	CntxtBracketMsb
	CntxtBracketLsb
	CntxtQuestion
)

// terminators returns the token kinds that end an expression in cntxt.
func terminators(cntxt ExprCntxt) map[token.Kind]bool {
	switch cntxt {
	case CntxtArgList:
		return map[token.Kind]bool{token.Comma: true, token.ParenRight: true}
	case CntxtArg:
		return map[token.Kind]bool{token.ParenRight: true}
	case CntxtExprGroup:
		return map[token.Kind]bool{token.ParenRight: true}
	case CntxtStmtList, CntxtStmt:
		return map[token.Kind]bool{token.SemiColon: true}
	case CntxtCaseItemList:
		return map[token.Kind]bool{token.Comma: true, token.Colon: true}
	case CntxtFieldList:
		return map[token.Kind]bool{token.Comma: true, token.CurlyRight: true}
	case CntxtSensitivity:
		return map[token.Kind]bool{token.KwOr: true, token.Comma: true, token.ParenRight: true}
	case CntxtBracketMsb:
		return map[token.Kind]bool{token.Colon: true, token.SquareRight: true}
	case CntxtBracketLsb:
		return map[token.Kind]bool{token.SquareRight: true}
	case CntxtQuestion:
		return map[token.Kind]bool{token.Colon: true}
	default:
		return map[token.Kind]bool{}
	}
}

// unaryOps are accepted only where an operand is expected.
var unaryOps = map[token.Kind]bool{
	token.OpPlus: true, token.OpMinus: true, token.OpBang: true, token.OpTilde: true,
	token.OpAnd: true, token.OpNand: true, token.OpOr: true, token.OpNor: true,
	token.OpXor: true, token.OpXnor: true, token.OpIncrDecr: true,
}

var binaryOps = map[token.Kind]bool{
	token.OpPlus: true, token.OpMinus: true, token.OpStar: true, token.OpDiv: true,
	token.OpMod: true, token.OpPow: true, token.OpEq2: true, token.OpEq3: true,
	token.OpEq2Que: true, token.OpDiff: true, token.OpDiff2: true, token.OpDiffQue: true,
	token.OpLogicAnd: true, token.OpLogicOr: true, token.OpAnd: true, token.OpOr: true,
	token.OpXor: true, token.OpXnor: true, token.OpLT: true, token.OpLTE: true,
	token.OpGT: true, token.OpGTE: true, token.OpSL: true, token.OpSR: true,
	token.OpSShift: true, token.Dot: true, token.Scope: true, token.KwInside: true,
}

// parseExpr reads an expression under cntxt, alternating between "expect
// operand" and "expect operator" rather than encoding precedence
// explicitly — an Operation node's kind-attr carries the operator
// spelling and its two children are the operands, so precedence can be
// layered on top by a consumer without changing this shape (spec §9).
func (p *Parser) parseExpr(cntxt ExprCntxt, allowType bool) (*ast.Node, error) {
	term := terminators(cntxt)
	group := ast.NewNode(ast.Expr, p.ts.GetPos())

	expectOperand := true

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.Eof {
			break
		}
		if term[tok.Kind] {
			break
		}

		switch tok.Kind {
		case token.ParenLeft:
			if !expectOperand {
				// A "(" where an operator was expected ends this
				// expression rather than being consumed — the caller
				// (e.g. a call-argument terminator) decides what to do
				// with it next.
				return group, nil
			}
			p.next()
			inner, err := p.parseExpr(CntxtExprGroup, allowType)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.ParenRight, "expr group"); err != nil {
				return nil, err
			}
			eg := ast.NewNode(ast.ExprGroup, tok.Pos)
			eg.Add(inner)
			group.Add(eg)
			expectOperand = false
		case token.CurlyLeft:
			if !expectOperand {
				// `{` after an operand ends this expression; parseBraceExpr
				// reads it as the body of a replication `{N{...}}`.
				return group, nil
			}
			p.next()
			rep, err := p.parseBraceExpr(tok.Pos)
			if err != nil {
				return nil, err
			}
			group.Add(rep)
			expectOperand = false
		case token.Integer, token.Real, token.Str, token.Ident, token.IdentInterpolated, token.SystemTask, token.Casting:
			p.next()
			val := ast.NewNode(ast.Value, tok.Pos)
			val.SetAttr("text", tok.Value)
			val.SetAttr("kind", tok.Kind.String())
			// sized-literal merge: the lexer reads `8'hFF` as one token, but
			// `8 'hFF` (split by whitespace) arrives as two Integer tokens,
			// which are merged into one Value here.
			if tok.Kind == token.Integer {
				if nxt, _ := p.peek(); nxt.Kind == token.Integer && len(nxt.Value) > 0 && nxt.Value[0] == '\'' {
					p.next()
					val.SetAttr("text", tok.Value+nxt.Value)
				}
			}
			if tok.Kind == token.Ident {
				nxt, _ := p.peek()
				if nxt.Kind == token.ParenLeft {
					p.next()
					call, err := p.parseCallArgs(tok)
					if err != nil {
						return nil, err
					}
					group.Add(call)
					expectOperand = false
					continue
				}
			}
			group.Add(val)
			expectOperand = false
		case token.KwNew:
			p.next()
			nn := ast.NewNode(ast.New, tok.Pos)
			if pk, _ := p.peek(); pk.Kind == token.ParenLeft {
				p.next()
				args, err := p.parseArgListBody()
				if err != nil {
					return nil, err
				}
				for _, a := range args {
					nn.Add(a)
				}
			}
			group.Add(nn)
			expectOperand = false
		case token.Que:
			p.next()
			then, err := p.parseExpr(CntxtQuestion, allowType)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Colon, "ternary"); err != nil {
				return nil, err
			}
			els, err := p.parseExpr(cntxt, allowType)
			if err != nil {
				return nil, err
			}
			op := ast.NewNode(ast.Operation, tok.Pos)
			op.SetAttr("kind", "?:")
			op.Add(then)
			op.Add(els)
			group.Add(op)
			return group, nil
		default:
			if expectOperand && unaryOps[tok.Kind] {
				p.next()
				group.Add(operatorNode(tok))
				continue
			}
			if !expectOperand && binaryOps[tok.Kind] {
				p.next()
				group.Add(operatorNode(tok))
				expectOperand = true
				continue
			}
			if tok.Kind == token.SquareLeft {
				p.next()
				sl, err := p.parseSlice(tok.Pos)
				if err != nil {
					return nil, err
				}
				group.Add(sl)
				expectOperand = false
				continue
			}
			// Unrecognized token where neither an operand nor an operator
			// fits: stop rather than looping forever; the caller's
			// terminator check (or EOF) will have already broken out in
			// the common case, this is the defensive fallback.
			return group, nil
		}
	}
	return group, nil
}

func operatorNode(tok token.Token) *ast.Node {
	n := ast.NewNode(ast.Operation, tok.Pos)
	n.SetAttr("kind", tok.Kind.String())
	return n
}

// parseBraceExpr handles `{` after an operand position: either a
// replication `{N{...}}`, a concatenation `{a,b,c}`, or a struct/array
// initializer with a closing `}`.
func (p *Parser) parseBraceExpr(pos token.Position) (*ast.Node, error) {
	first, err := p.parseExpr(CntxtFieldList, true)
	if err != nil {
		return nil, err
	}
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.CurlyLeft {
		// replication: {count{expr,...}}
		p.next()
		items, err := p.parseCommaList(CntxtFieldList)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CurlyRight, "replication body"); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CurlyRight, "replication"); err != nil {
			return nil, err
		}
		rep := ast.NewNode(ast.Replication, pos)
		rep.Add(first)
		for _, it := range items {
			rep.Add(it)
		}
		return rep, nil
	}

	items := []*ast.Node{first}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.Comma {
			p.next()
			item, err := p.parseExpr(CntxtFieldList, true)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			continue
		}
		break
	}
	if _, err := p.expect(token.CurlyRight, "concatenation"); err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Concat, pos)
	for _, it := range items {
		n.Add(it)
	}
	return n, nil
}

// parseCommaList collects expressions separated by commas under cntxt
// until the context's terminator is reached (without consuming it).
func (p *Parser) parseCommaList(cntxt ExprCntxt) ([]*ast.Node, error) {
	var items []*ast.Node
	for {
		tok, err := p.peek()
		if err != nil {
			return items, err
		}
		if tok.Kind == token.CurlyRight || tok.Kind == token.ParenRight || tok.Kind == token.Eof {
			return items, nil
		}
		item, err := p.parseExpr(cntxt, true)
		if err != nil {
			return items, err
		}
		items = append(items, item)
		nxt, err := p.peek()
		if err != nil {
			return items, err
		}
		if nxt.Kind == token.Comma {
			p.next()
			continue
		}
		return items, nil
	}
}

// parseSlice parses a `[msb:lsb]` or `[idx]` bit/array selector already
// past the opening `[`.
func (p *Parser) parseSlice(pos token.Position) (*ast.Node, error) {
	n := ast.NewNode(ast.Slice, pos)
	msb, err := p.parseExpr(CntxtBracketMsb, false)
	if err != nil {
		return nil, err
	}
	n.Add(msb)
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.Colon {
		p.next()
		lsb, err := p.parseExpr(CntxtBracketLsb, false)
		if err != nil {
			return nil, err
		}
		n.Add(lsb)
	}
	if _, err := p.expect(token.SquareRight, "slice"); err != nil {
		return nil, err
	}
	return n, nil
}

// parseCallArgs parses `(arg, arg, ...)` already past the identifier,
// positioned right before the opening `(` was already consumed by caller.
func (p *Parser) parseCallArgs(name token.Token) (*ast.Node, error) {
	n := ast.NewNode(ast.MethodCall, name.Pos)
	n.SetAttr("name", name.Value)
	args, err := p.parseArgListBody()
	if err != nil {
		return nil, err
	}
	for _, a := range args {
		n.Add(a)
	}
	return n, nil
}

// parseArgListBody reads a comma-separated argument list up to and
// including the closing `)`, assuming the opening `(` is already consumed.
func (p *Parser) parseArgListBody() ([]*ast.Node, error) {
	var args []*ast.Node
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.ParenRight {
		p.next()
		return args, nil
	}
	for {
		arg, err := p.parseExpr(CntxtArgList, true)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.ParenRight {
			return args, nil
		}
		if tok.Kind != token.Comma {
			return args, newError(tok, ", or )")
		}
	}
}
