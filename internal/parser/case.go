package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// parseCase handles case/casex/casez, including the unique/priority
// qualifiers and `inside`/`matches` case expressions (testable property
// #8: case items are split on unquoted commas and each carries its own
// position for later overlap checks).
func (p *Parser) parseCase(qualifier string) (*ast.Node, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Case, kw.Pos)
	n.SetAttr("variant", kw.Value)
	if qualifier != "" {
		n.SetAttr("qualifier", qualifier)
	}
	if _, err := p.expect(token.ParenLeft, "case expression"); err != nil {
		return nil, err
	}
	if pk, _ := p.peek(); pk.Kind == token.KwTagged {
		p.next()
	}
	sel, err := p.parseExpr(CntxtExprGroup, false)
	if err != nil {
		return nil, err
	}
	n.Add(sel)
	if _, err := p.expect(token.ParenRight, "case expression"); err != nil {
		return nil, err
	}
	// `inside`/`matches` follow the closing paren: `case (x) inside ...`.
	inside := false
	if pk, _ := p.peek(); pk.Kind == token.KwInside || pk.Kind == token.KwMatch {
		p.next()
		inside = pk.Kind == token.KwInside
		if pk.Kind == token.KwMatch {
			n.SetAttr("matches", "1")
		}
	}
	n.SetAttr("inside", boolAttr(inside))

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.KwEndcase || tok.Kind == token.Eof {
			p.next()
			return n, nil
		}
		item, err := p.parseCaseItem()
		if err != nil {
			p.report_ErrSyntax(tok, "case item")
			p.recoverToSemicolon()
			continue
		}
		n.Add(item)
	}
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return ""
}

// hasOperation reports whether n (or any direct child) is an Operation
// node tagged with the given operator spelling.
func hasOperation(n *ast.Node, kind string) bool {
	if n.Kind == ast.Operation && n.Attr("kind") == kind {
		return true
	}
	for _, c := range n.Children {
		if c.Kind == ast.Operation && c.Attr("kind") == kind {
			return true
		}
	}
	return false
}

// parseCaseItem parses one `expr, expr, ... : stmt` or `default [:] stmt`.
func (p *Parser) parseCaseItem() (*ast.Node, error) {
	pos := p.ts.GetPos()
	n := ast.NewNode(ast.CaseItem, pos)
	if tok, _ := p.peek(); tok.Kind == token.KwDefault {
		p.next()
		n.SetAttr("default", "1")
		if c, _ := p.peek(); c.Kind == token.Colon {
			p.next()
		}
	} else {
		labels, err := p.parseCommaList(CntxtCaseItemList)
		if err != nil {
			return nil, err
		}
		for _, l := range labels {
			n.Add(l)
		}
		if _, err := p.expect(token.Colon, "case item"); err != nil {
			return nil, err
		}
	}
	body, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	n.Add(body)
	return n, nil
}
