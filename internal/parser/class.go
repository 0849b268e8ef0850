package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// classQualifiers maps the keyword tokens that can prefix a class member
// to their attribute name. Each is accepted at most once per member (spec
// §4.4's "qualifier gate").
var classQualifiers = map[token.Kind]string{
	token.KwVirtual: "virtual", token.KwPure: "pure", token.KwExtern: "extern",
	token.KwStatic: "static", token.KwLocal: "local", token.KwProtected: "protected",
	token.KwConst: "const", token.KwRand: "rand", token.KwRandc: "rand",
}

// parseClass handles `[virtual] class Name [#(params)] [extends Base]
// [implements If,...]; ... endclass [: Name]`.
func (p *Parser) parseClass() (*ast.Node, error) {
	virtual := false
	if pk, _ := p.peek(); pk.Kind == token.KwVirtual {
		p.next()
		virtual = true
	}
	kw, err := p.expect(token.KwClass, "class")
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.Ident, "class name")
	if err != nil {
		return nil, err
	}

	n := ast.NewNode(ast.Class, kw.Pos)
	n.SetAttr("name", nameTok.Value)
	if virtual {
		n.SetAttr("virtual", "1")
	}

	if pk, _ := p.peek(); pk.Kind == token.Hash {
		params, err := p.parseParamList(pk.Pos)
		if err != nil {
			return nil, err
		}
		n.Add(params)
	}
	if pk, _ := p.peek(); pk.Kind == token.KwExtends {
		p.next()
		baseTok, err := p.expect(token.Ident, "base class name")
		if err != nil {
			return nil, err
		}
		ext := ast.NewNode(ast.Extends, baseTok.Pos)
		ext.SetAttr("name", baseTok.Value)
		if pk2, _ := p.peek(); pk2.Kind == token.ParenLeft {
			p.next()
			args, err := p.parseArgListBody()
			if err != nil {
				return nil, err
			}
			for _, a := range args {
				ext.Add(a)
			}
		}
		n.Add(ext)
	}
	if pk, _ := p.peek(); pk.Kind == token.KwImplements {
		p.next()
		for {
			ifTok, err := p.expect(token.Ident, "implemented interface name")
			if err != nil {
				return nil, err
			}
			impl := ast.NewNode(ast.Implements, ifTok.Pos)
			impl.SetAttr("name", ifTok.Value)
			n.Add(impl)
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
	if _, err := p.expect(token.SemiColon, "class header"); err != nil {
		return nil, err
	}

	body := ast.NewNode(ast.Body, p.ts.GetPos())
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.KwEndClass || tok.Kind == token.Eof {
			break
		}
		item, err := p.parseClassItem()
		if err != nil {
			p.report_ErrSyntax(tok, "class body")
			p.recoverToSemicolon()
			continue
		}
		if item != nil {
			body.Add(item)
		}
	}
	n.Add(body)
	if err := p.expectEndLabel(token.KwEndClass, nameTok.Value); err != nil {
		return nil, err
	}
	return n, nil
}

// parseClassItem collects any qualifiers prefixing a member, dispatches on
// the remaining token, then stamps the qualifiers onto the resulting node.
func (p *Parser) parseClassItem() (*ast.Node, error) {
	seen := map[string]bool{}
	var quals []string
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		name, ok := classQualifiers[tok.Kind]
		if !ok {
			break
		}
		if seen[name] {
			p.report_ErrSyntax(tok, "duplicate qualifier "+name)
		}
		seen[name] = true
		quals = append(quals, name)
		p.next()
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var item *ast.Node
	switch tok.Kind {
	case token.SemiColon:
		p.next()
		return nil, nil
	case token.KwFunction, token.KwTask:
		item, err = p.parseMethod()
	case token.KwConstraint:
		item, err = p.parseConstraint()
	case token.KwCovergroup:
		item, err = p.parseCovergroup()
	case token.KwTypedef:
		item, err = p.parseTypedef(tok)
	case token.Ident:
		item, err = p.parseDeclOrInstance(tok)
	case token.TypeIntAtom, token.TypeIntVector, token.TypeReal, token.TypeString,
		token.TypeCHandle, token.TypeEvent, token.KwEnum, token.KwStruct, token.KwUnion:
		item, err = p.parseDeclaration(tok)
	default:
		p.next()
		return nil, newError(tok, "class item")
	}
	if err != nil {
		return nil, err
	}
	for _, q := range quals {
		item.SetAttr("qual_"+q, "1")
	}
	return item, nil
}

// parseMethodNameTok accepts an Ident or the `new` keyword as a method
// name.
func (p *Parser) parseMethodNameTok() (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != token.Ident && tok.Kind != token.KwNew {
		p.report_ErrSyntax(tok, "method name")
		return tok, newError(tok, "method name")
	}
	return tok, nil
}

// parseMethod handles `function|task [automatic|static] [type] name
// [(ports)]; ... endfunction|endtask [: name]`, including out-of-block
// `ClassName::name` definitions.
func (p *Parser) parseMethod() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	isFunction := kw.Kind == token.KwFunction

	if pk, _ := p.peek(); pk.Kind == token.KwAutomatic || pk.Kind == token.KwStatic {
		p.next()
	}

	var retType *ast.Node
	if isFunction {
		pk, err := p.peek()
		if err != nil {
			return nil, err
		}
		if pk.Kind == token.TypeVoid {
			p.next()
			retType = ast.NewNode(ast.Type, pk.Pos)
			retType.SetAttr("name", "void")
		} else if isTypeStart(pk.Kind) {
			consumeType := true
			if pk.Kind == token.Ident {
				nxt, err := p.peekN(1)
				if err != nil {
					return nil, err
				}
				if nxt.Kind == token.ParenLeft || nxt.Kind == token.SemiColon || nxt.Kind == token.Scope {
					consumeType = false
				}
			}
			if consumeType {
				t, err := p.parseDataType(allowTypeKw)
				if err != nil {
					return nil, err
				}
				retType = t
			}
		}
	}

	nameTok, err := p.parseMethodNameTok()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Method, kw.Pos)
	if isFunction {
		n.SetAttr("kind", "function")
	} else {
		n.SetAttr("kind", "task")
	}
	if pk, _ := p.peek(); pk.Kind == token.Scope {
		p.next()
		member, err := p.parseMethodNameTok()
		if err != nil {
			return nil, err
		}
		n.SetAttr("class", nameTok.Value)
		nameTok = member
	}
	n.SetAttr("name", nameTok.Value)
	if retType != nil {
		n.Add(retType)
	}
	if pk, _ := p.peek(); pk.Kind == token.ParenLeft {
		ports, err := p.parsePortList(pk.Pos)
		if err != nil {
			return nil, err
		}
		n.Add(ports)
	}
	if _, err := p.expect(token.SemiColon, "method header"); err != nil {
		return nil, err
	}

	endKw := token.KwEndFunction
	if !isFunction {
		endKw = token.KwEndTask
	}
	body, err := p.parseMethodBody(endKw)
	if err != nil {
		return nil, err
	}
	n.Add(body)
	if err := p.expectEndLabel(endKw, nameTok.Value); err != nil {
		return nil, err
	}
	return n, nil
}

// parseMethodBody collects statements (including local declarations) until
// endKw is seen, without consuming it.
func (p *Parser) parseMethodBody(endKw token.Kind) (*ast.Node, error) {
	body := ast.NewNode(ast.Body, p.ts.GetPos())
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == endKw || tok.Kind == token.Eof {
			return body, nil
		}
		stmt, err := p.parseStatement(false)
		if err != nil {
			p.report_ErrSyntax(tok, "method body")
			p.recoverToSemicolon()
			continue
		}
		if stmt != nil {
			body.Add(stmt)
		}
	}
}

// parseConstraint handles `constraint name { ... }`. The body's expression
// grammar (implication, foreach, soft, dist) is intentionally not modeled
// node-by-node; the brace-balanced body is consumed and discarded, so the
// Constraint node carries only the name.
func (p *Parser) parseConstraint() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Constraint, kw.Pos)
	nameTok, err := p.expect(token.Ident, "constraint name")
	if err != nil {
		return nil, err
	}
	n.SetAttr("name", nameTok.Value)
	if _, err := p.expect(token.CurlyLeft, "constraint body"); err != nil {
		return nil, err
	}
	depth := 1
	for depth > 0 {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.Eof {
			break
		}
		if tok.Kind == token.CurlyLeft {
			depth++
		} else if tok.Kind == token.CurlyRight {
			depth--
		}
	}
	return n, nil
}

// parseCovergroup captures the header (name, optional argument list,
// optional sampling event) and skips the bin/coverpoint/cross body, which
// is out of scope for the checks this tree feeds.
func (p *Parser) parseCovergroup() (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Covergroup, kw.Pos)
	if pk, _ := p.peek(); pk.Kind == token.Ident {
		nameTok, _ := p.next()
		n.SetAttr("name", nameTok.Value)
	}
	if pk, _ := p.peek(); pk.Kind == token.ParenLeft {
		p.next()
		if _, err := p.parsePortConnections(); err != nil {
			return nil, err
		}
	}
	if pk, _ := p.peek(); pk.Kind == token.At {
		if _, err := p.parseSensitivity(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.SemiColon, "covergroup header"); err != nil {
		return nil, err
	}
	if err := p.skipToEndKw(token.KwEndgroup); err != nil {
		return nil, err
	}
	return n, nil
}
