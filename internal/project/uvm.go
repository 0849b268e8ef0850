package project

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// uvmMacroAst builds the synthetic Ast seeded at Includes["uvm_macros.svh"]
// so a testbench that does `` `include "uvm_macros.svh" `` resolves common
// UVM reporting macros without the real UVM package installed. Grounded on
// original_source/src/ast/uvm_macro.rs's built-in macro table, rewritten
// as idiomatic token.MacroDef construction rather than transliterating its
// literal token-push sequence. Body tokens carry a zero Position — every
// one is rewritten to the call site's position by
// tokenstream.expandMacroCall, so the position stored here is never seen.
func uvmMacroAst() *ast.Ast {
	defines := token.Defines{
		"uvm_info":    uvmReportMacro("uvm_report_info", "ID", "MSG", "VERBOSITY"),
		"uvm_warning": uvmReportMacro("uvm_report_warning", "ID", "MSG"),
		"uvm_error":   uvmReportMacro("uvm_report_error", "ID", "MSG"),
		"uvm_fatal":   uvmReportMacro("uvm_report_fatal", "ID", "MSG"),

		// Class-registration macros expand to nothing: the checker only
		// needs the call itself to resolve, not the registration body the
		// real uvm_macros.svh generates.
		"uvm_component_utils": {Ports: []token.MacroPort{{Name: "T"}}},
		"uvm_object_utils":    {Ports: []token.MacroPort{{Name: "T"}}},
		"uvm_field_int":       {Ports: []token.MacroPort{{Name: "ARG"}, {Name: "FLAG"}}},
		"uvm_field_object":    {Ports: []token.MacroPort{{Name: "ARG"}, {Name: "FLAG"}}},
	}
	root := ast.NewNode(ast.Root, token.Position{})
	return ast.New("uvm_macros.svh", root, defines)
}

// uvmReportMacro builds the `begin [if (uvm_report_enabled(VERBOSITY))]
// <fn>(ports...); end` shape shared by `` `uvm_info/warning/error/fatal ``.
// The verbosity gate is emitted only for a three-port macro, whose third
// port is the verbosity; the others call fn straight through. Every port
// is passed to fn, in declaration order.
func uvmReportMacro(fn string, ports ...string) *token.MacroDef {
	def := &token.MacroDef{}
	for _, name := range ports {
		def.Ports = append(def.Ports, token.MacroPort{Name: name})
	}

	var body []token.Token
	zp := token.Position{}
	tk := func(k token.Kind, v string) token.Token { return token.New(k, v, zp) }

	body = append(body, tk(token.KwBegin, "begin"))
	if len(ports) == 3 {
		body = append(body,
			tk(token.KwIf, "if"), tk(token.ParenLeft, "("),
			tk(token.Ident, "uvm_report_enabled"), tk(token.ParenLeft, "("),
			tk(token.Ident, ports[2]), tk(token.ParenRight, ")"),
			tk(token.ParenRight, ")"),
		)
	}
	body = append(body, tk(token.Ident, fn), tk(token.ParenLeft, "("))
	for i, name := range ports {
		if i > 0 {
			body = append(body, tk(token.Comma, ","))
		}
		body = append(body, tk(token.Ident, name))
	}
	body = append(body, tk(token.ParenRight, ")"), tk(token.SemiColon, ";"), tk(token.KwEnd, "end"))

	def.Body = body
	return def
}
