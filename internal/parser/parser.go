package parser

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/reporter"
	"github.com/oxhq/svcheck/internal/token"
	"github.com/oxhq/svcheck/internal/tokenstream"
)

// Parser drives recursive-descent parsing over a TokenStream. It has one
// entry point per top-level SV construct (Parse, the only exported one,
// dispatches among them) and is stateless between top-level constructs except for the
// shared TokenStream and Reporter.
type Parser struct {
	ts   *tokenstream.TokenStream
	rep  *reporter.Reporter
	file string
}

// New builds a Parser over ts, reporting diagnostics through rep.
func New(ts *tokenstream.TokenStream, rep *reporter.Reporter, file string) *Parser {
	return &Parser{ts: ts, rep: rep, file: file}
}

// recoveryTokens are the boundary keywords the top-level driver scans to
// after a subparser fails, so one malformed construct never aborts the
// whole file (spec §4.4 "Failure semantics").
var recoveryTokens = map[token.Kind]bool{
	token.KwEndModule: true, token.KwEndPackage: true, token.KwEndClass: true,
	token.KwEndFunction: true, token.KwEndTask: true, token.KwEndInterface: true,
	token.KwEndProgram: true, token.KwEndPrimitive: true, token.KwEndConfig: true,
}

// Parse drives the whole file: repeatedly dispatches a top-level entry
// point until EOF, recovering from any subparser error by scanning to the
// next recovery boundary. Parsing a file always terminates; the returned
// Ast may be partial.
func (p *Parser) Parse() (*ast.Ast, error) {
	root := ast.NewNode(ast.Root, token.Position{})
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.Eof {
			break
		}

		node, perr := p.parseTopLevel(tok)
		if perr != nil {
			p.report(reporter.ErrSyntax, tok.Pos, tok.String(), tok.String(), "top-level construct")
			p.recover()
			continue
		}
		if node != nil {
			root.Add(node)
		}
	}
	return ast.New(p.file, root, p.ts.Defines()), nil
}

// parseTopLevel dispatches on the first token of a top-level construct.
func (p *Parser) parseTopLevel(tok token.Token) (*ast.Node, error) {
	switch tok.Kind {
	case token.KwModule:
		return p.parseModuleLike(ast.Module, token.KwEndModule)
	case token.KwInterface:
		return p.parseModuleLike(ast.Interface, token.KwEndInterface)
	case token.KwProgram:
		return p.parseModuleLike(ast.Program, token.KwEndProgram)
	case token.KwPackage:
		return p.parsePackage()
	case token.KwClass:
		return p.parseClass()
	case token.KwPrimitive:
		return p.parsePrimitive()
	case token.KwBind:
		return p.parseBind()
	case token.KwConfig:
		return p.parseConfig()
	case token.KwImport:
		n, err := p.parseImport()
		return n, err
	case token.KwFunction, token.KwTask:
		return p.parseMethod()
	case token.KwVirtual:
		return p.parseClass()
	case token.Macro:
		return p.parseDirective()
	case token.Comment, token.Attribute:
		_, err := p.next()
		return nil, err
	default:
		_, err := p.next()
		if err != nil {
			return nil, err
		}
		return nil, newError(tok, "top-level construct")
	}
}

// recover scans forward (consuming tokens) until it has consumed a recovery
// boundary keyword, or reaches EOF. Nesting depth is not tracked.
func (p *Parser) recover() {
	for {
		tok, err := p.next()
		if err != nil || tok.Kind == token.Eof {
			return
		}
		if recoveryTokens[tok.Kind] {
			return
		}
	}
}

func (p *Parser) next() (token.Token, error)  { return p.ts.Next() }
func (p *Parser) peek() (token.Token, error)  { return p.ts.PeekAt(0) }
func (p *Parser) peekN(n int) (token.Token, error) {
	return p.ts.PeekAt(n)
}

// expect consumes the next token and reports+returns an error if its kind
// doesn't match want.
func (p *Parser) expect(want token.Kind, context string) (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != want {
		p.report(reporter.ErrSyntax, tok.Pos, context, tok.String(), want.String())
		return tok, newError(tok, want.String())
	}
	return tok, nil
}

func (p *Parser) report(id reporter.MsgID, pos token.Position, context string, args ...any) {
	if p.rep == nil {
		return
	}
	p.rep.Report(id, p.file, pos, context, args...)
}

// parseDirective wraps a pass-through Macro token (`ifdef and friends,
// which the TokenStream never gates) in a Directive AstNode, per spec
// §4.3's "the TokenStream does not gate tokens itself."
func (p *Parser) parseDirective() (*ast.Node, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.Directive, tok.Pos)
	n.SetAttr("name", tok.Value)
	if tok.Value == "include" {
		n.SetAttr("include", tok.Value)
	}
	return n, nil
}
