package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

var dirKeywords = map[token.Kind]string{
	token.KwInput: "input", token.KwOutput: "output", token.KwInout: "inout", token.KwRef: "ref",
}

// parseParamList parses `#( ... )` already positioned at the `#`.
func (p *Parser) parseParamList(pos token.Position) (*ast.Node, error) {
	if _, err := p.expect(token.Hash, "parameter list"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ParenLeft, "parameter list"); err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Params, pos)
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.ParenRight {
			p.next()
			return n, nil
		}
		if tok.Kind == token.KwParam || tok.Kind == token.KwLParam {
			p.next()
		}
		// optional type before the parameter name; an Ident immediately
		// followed by another Ident is a typed parameter, otherwise the
		// leading Ident is itself the parameter name (implicit int type).
		var typ *ast.Node
		if tok2, _ := p.peek(); isTypeStart(tok2.Kind) {
			typed := true
			if tok2.Kind == token.Ident {
				if nxt, _ := p.peekN(1); nxt.Kind != token.Ident {
					typed = false
				}
			}
			if typed {
				typ, err = p.parseDataType(allowTypeKw | allowGenvar)
				if err != nil {
					return nil, err
				}
			}
		}
		id, err := p.expect(token.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		param := ast.NewNode(ast.Param, id.Pos)
		param.SetAttr("name", id.Value)
		if typ != nil {
			param.Add(typ)
		}
		if eq, _ := p.peek(); eq.Kind == token.OpEq {
			p.next()
			val, err := p.parseExpr(CntxtArgList, true)
			if err != nil {
				return nil, err
			}
			param.Add(val)
		}
		n.Add(param)
		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		if sep.Kind == token.ParenRight {
			return n, nil
		}
		if sep.Kind != token.Comma {
			return nil, newError(sep, ", or )")
		}
	}
}

func isTypeStart(k token.Kind) bool {
	switch k {
	case token.TypeIntAtom, token.TypeIntVector, token.TypeReal, token.TypeString,
		token.TypeCHandle, token.TypeEvent, token.TypeVoid, token.TypeGenvar,
		token.KwEnum, token.KwStruct, token.KwUnion, token.KwVirtual, token.Ident:
		return true
	default:
		return false
	}
}

// parsePortList parses `( ... )` already positioned at the opening `(`,
// distinguishing Ansi (direction/type-led entries) from non-Ansi (bare
// identifier lists whose direction is bound later, in the body).
func (p *Parser) parsePortList(pos token.Position) (*ast.Node, error) {
	if _, err := p.expect(token.ParenLeft, "port list"); err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Ports, pos)
	lastDir := ""
	idx := 0
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.ParenRight {
			p.next()
			return n, nil
		}

		port := ast.NewNode(ast.Port, tok.Pos)
		if dir, ok := dirKeywords[tok.Kind]; ok {
			p.next()
			lastDir = dir
			port.SetAttr("dir", dir)
		} else if lastDir != "" {
			port.SetAttr("dir", lastDir)
		}

		if t2, _ := p.peek(); isTypeStart(t2.Kind) && !isPlainPortName(p) {
			typ, err := p.parseDataType(0)
			if err != nil {
				return nil, err
			}
			port.Add(typ)
			if pk := typ.Attr("packed"); pk != "" {
				port.SetAttr("packed", pk)
			}
		}

		id, err := p.expect(token.Ident, "port name")
		if err != nil {
			return nil, err
		}
		port.SetAttr("name", id.Value)
		port.SetAttr("index", itoa(idx))
		idx++

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

		if eq, _ := p.peek(); eq.Kind == token.OpEq {
			p.next()
			val, err := p.parseExpr(CntxtArgList, true)
			if err != nil {
				return nil, err
			}
			port.Add(val)
		}

		n.Add(port)
		sep, err := p.next()
		if err != nil {
			return nil, err
		}
		if sep.Kind == token.ParenRight {
			return n, nil
		}
		if sep.Kind != token.Comma {
			return nil, newError(sep, ", or )")
		}
	}
}

// isPlainPortName reports whether the upcoming Ident is the port name
// itself rather than a user type name — true when the token after it is a
// separator (`,`, `)`, `=`, `[`) rather than another Ident (which would
// mean "typename portname").
func isPlainPortName(p *Parser) bool {
	tok, err := p.peek()
	if err != nil || tok.Kind != token.Ident {
		return false
	}
	nxt, err := p.peekN(1)
	if err != nil {
		return false
	}
	switch nxt.Kind {
	case token.Comma, token.ParenRight, token.OpEq, token.SquareLeft:
		return true
	default:
		return false
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}
