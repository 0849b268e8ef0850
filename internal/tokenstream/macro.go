package tokenstream

import (
	"strconv"
	"strings"

	"github.com/oxhq/svcheck/internal/reporter"
	"github.com/oxhq/svcheck/internal/token"
)

// expansionFrame records an in-progress macro expansion. Expansion never
// pushes a frame onto TokenStream.expanding, so no macro cycle detection
// is performed; substitution order (body tokens
// are substituted before being enqueued) already gives nested macro calls
// the right argument values without an explicit args_caller stack, per
// original_source/src/tokenizer.rs's single-pass body walk.
type expansionFrame struct {
	name string
}

// nextRaw pulls the next comment/attribute-filtered token without macro
// expansion, draining the pending queue (unread/expansion remainder) first.
// Used by directive handling and argument/body capture, which must see
// macro bodies as literal tokens rather than expanded ones.
func (ts *TokenStream) nextRaw() (token.Token, error) {
	for {
		if len(ts.expansionQueue) > 0 {
			t := ts.expansionQueue[0]
			ts.expansionQueue = ts.expansionQueue[1:]
			return t, nil
		}
		t, err := ts.lex.Next()
		if err != nil {
			return token.Token{}, err
		}
		if t.Kind == token.Comment || t.Kind == token.Attribute {
			continue
		}
		return t, nil
	}
}

// pullOne returns the next parser-visible token: raw tokens pass through,
// MacroCall tokens are expanded (recursively, since expansion output can
// itself contain MacroCall tokens), and Macro directives are either
// consumed here (`define, `include) or passed through for the parser to
// wrap in a Directive node (`ifdef and friends).
func (ts *TokenStream) pullOne() (token.Token, error) {
	for {
		raw, err := ts.nextRaw()
		if err != nil {
			return token.Token{}, err
		}
		switch raw.Kind {
		case token.MacroCall:
			expanded, err := ts.expandMacroCall(raw)
			if err != nil {
				return token.Token{}, err
			}
			if len(expanded) == 0 {
				continue
			}
			// expanded[0] may itself be a MacroCall (nested `` ` `` invocation
			// in the body) or a Macro directive, so the whole slice is
			// requeued and re-dispatched through this same switch rather than
			// returned unconditionally.
			ts.expansionQueue = append(append([]token.Token{}, expanded...), ts.expansionQueue...)
			continue
		case token.Macro:
			handled, produced, err := ts.handleDirective(raw)
			if err != nil {
				return token.Token{}, err
			}
			if handled {
				if produced != nil {
					return *produced, nil
				}
				continue
			}
			return raw, nil
		default:
			return raw, nil
		}
	}
}

func (ts *TokenStream) handleDirective(raw token.Token) (bool, *token.Token, error) {
	switch raw.Value {
	case "define":
		return true, nil, ts.handleDefine()
	case "include":
		return true, nil, ts.handleInclude(raw)
	default:
		// ifdef/ifndef/elsif/else/endif/timescale/line/pragma/
		// default_nettype/begin_keywords/end_keywords/resetall/
		// celldefine/endcelldefine/unconnected_drive/nounconnected_drive/
		// undefineall: the stream does not gate tokens on these — it
		// passes the directive through as a token so the parser can
		// attach it to the current scope as a Directive AstNode.
		return false, nil, nil
	}
}

func adjacent(a, b token.Token) bool {
	return a.Pos.Line == b.Pos.Line && b.Pos.Col == a.Pos.Col+len([]rune(a.Value))
}

// handleDefine captures a `define: the name, an optional adjacent
// parameter list, and the body up to end of line. Redefinition silently
// overwrites, per spec.
func (ts *TokenStream) handleDefine() error {
	nameTok, err := ts.nextRaw()
	if err != nil {
		return err
	}
	if nameTok.Kind != token.Ident && nameTok.Kind != token.MacroCall {
		ts.report(reporter.ErrSyntax, nameTok.Pos, "", nameTok.String(), "`define name")
		return nil
	}
	name := nameTok.Value

	next, err := ts.nextRaw()
	if err != nil {
		return err
	}

	var ports []token.MacroPort
	hasParams := false
	if next.Kind == token.ParenLeft && adjacent(nameTok, next) {
		hasParams = true
		ports, err = ts.parseMacroPorts()
		if err != nil {
			return err
		}
	} else {
		ts.unread(next)
		if next.Pos.Line != nameTok.Pos.Line {
			// Nothing follows the name on its own line: a null body.
			ts.defines[name] = nil
			return nil
		}
	}

	body, err := ts.CollectUntil(false)
	if err != nil {
		return err
	}

	if !hasParams && len(body) == 0 {
		ts.defines[name] = nil
		return nil
	}
	ts.defines[name] = &token.MacroDef{Ports: ports, Body: body}
	return nil
}

// parseMacroPorts reads an ordered parameter list after the opening `(`
// has already been consumed by the caller: NAME [= default-tokens], ...
func (ts *TokenStream) parseMacroPorts() ([]token.MacroPort, error) {
	var ports []token.MacroPort
	for {
		tok, err := ts.nextRaw()
		if err != nil {
			return ports, err
		}
		if tok.Kind == token.ParenRight || tok.Kind == token.Eof {
			return ports, nil
		}
		if tok.Kind == token.Comma {
			continue
		}
		if tok.Kind != token.Ident {
			ts.report(reporter.ErrSyntax, tok.Pos, "", tok.String(), "macro parameter name")
			continue
		}
		port := token.MacroPort{Name: tok.Value}
		nxt, err := ts.nextRaw()
		if err != nil {
			return ports, err
		}
		if nxt.Kind == token.OpEq {
			def, err := ts.CollectUntil(true)
			if err != nil {
				return ports, err
			}
			port.Default = def
		} else {
			ts.unread(nxt)
		}
		ports = append(ports, port)
	}
}

// handleInclude resolves the file named by the token following `include
// (a Str literal, or a `<name>` bracket form) through the Host, then
// splices its macro table into this stream's defines. It emits no tokens
// of its own — `` `include `` never reaches the parser.
func (ts *TokenStream) handleInclude(directive token.Token) error {
	tok, err := ts.nextRaw()
	if err != nil {
		return err
	}

	var name string
	bracket := false
	switch {
	case tok.Kind == token.Str:
		name = strings.Trim(tok.Value, `"`)
	case tok.Kind == token.OpLT:
		bracket = true
		var b strings.Builder
		for {
			t, err := ts.nextRaw()
			if err != nil {
				return err
			}
			if t.Kind == token.OpGT || t.Kind == token.Eof {
				break
			}
			b.WriteString(t.Value)
		}
		name = b.String()
	default:
		ts.report(reporter.ErrSyntax, directive.Pos, "", tok.String(), "`include filename")
		return nil
	}

	if ts.host == nil {
		return nil
	}
	incAst, err := ts.host.CompileInclude(ts.dir, name, bracket)
	if err != nil {
		ts.report(reporter.ErrFile, directive.Pos, name, name)
		return nil
	}
	for k, v := range incAst.Defines {
		ts.defines[k] = v
	}
	return nil
}

// expandMacroCall expands a single MacroCall token (already consumed from
// the raw stream) into its substituted body tokens, per
// original_source/src/tokenizer.rs's macro expansion contract: built-ins
// first, then argument binding, then a single token-by-token substitution
// walk. Every produced token carries raw.Pos (the call site), never the
// macro definition's position.
func (ts *TokenStream) expandMacroCall(raw token.Token) ([]token.Token, error) {
	name := raw.Value
	switch name {
	case "__FILE__":
		return []token.Token{token.New(token.Str, `"`+ts.file+`"`, raw.Pos)}, nil
	case "__LINE__":
		return []token.Token{token.New(token.Integer, strconv.Itoa(raw.Pos.Line), raw.Pos)}, nil
	}

	def, ok := ts.defines[name]
	if !ok || def == nil {
		ts.report(reporter.ErrNotFound, raw.Pos, "macro:"+name, "`"+name)
		return nil, nil
	}

	args := make([][]token.Token, len(def.Ports))
	if len(def.Ports) > 0 {
		open, err := ts.nextRaw()
		if err != nil {
			return nil, err
		}
		if open.Kind != token.ParenLeft {
			ts.report(reporter.ErrArgMiss, raw.Pos, name, name, "(")
			ts.unread(open)
			return nil, nil
		}
		for i, port := range def.Ports {
			argToks, err := ts.CollectUntil(true)
			if err != nil {
				return nil, err
			}
			if len(argToks) == 0 {
				if port.Default != nil {
					argToks = port.Default
				} else {
					ts.report(reporter.ErrArgMiss, raw.Pos, name, name, port.Name)
				}
			}
			args[i] = argToks

			delim, err := ts.nextRaw()
			if err != nil {
				return nil, err
			}
			if i == len(def.Ports)-1 {
				if delim.Kind != token.ParenRight {
					ts.report(reporter.ErrArgExtra, raw.Pos, name, name, strconv.Itoa(len(def.Ports)))
					for delim.Kind != token.ParenRight && delim.Kind != token.Eof {
						delim, err = ts.nextRaw()
						if err != nil {
							return nil, err
						}
					}
				}
			} else if delim.Kind != token.Comma {
				ts.unread(delim)
			}
		}
	}

	paramIdx := make(map[string]int, len(def.Ports))
	for i, p := range def.Ports {
		paramIdx[p.Name] = i
	}

	var out []token.Token
	for _, bt := range def.Body {
		if (bt.Kind == token.Ident || bt.Kind == token.IdentInterpolated) && paramIdx != nil {
			if idx, ok := paramIdx[bt.Value]; ok {
				for _, at := range args[idx] {
					out = append(out, token.New(at.Kind, at.Value, raw.Pos))
				}
				continue
			}
		}
		out = append(out, token.New(bt.Kind, bt.Value, raw.Pos))
	}
	return out, nil
}

func (ts *TokenStream) report(id reporter.MsgID, pos token.Position, context string, args ...any) {
	if ts.rep == nil {
		return
	}
	ts.rep.Report(id, ts.file, pos, context, args...)
}
