// Package tokenstream wraps internal/lexer with preprocessor semantics:
// macro expansion, `` `include `` splicing, and a peek/rewind/flush lookahead
// buffer for the parser. Grounded on original_source/src/tokenizer.rs
// (the next_t/peek/rewind/flush_rd surface) and src/ast/uvm_macro.rs (the
// built-in UVM macro seed, applied by internal/project rather than here).
package tokenstream

import (
	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/token"
)

// Host is the subset of Project that a TokenStream needs to resolve
// `` `include `` directives: searching the current file's directory then the
// incdir list, consulting (and populating) the shared include cache, and
// merging an included file's macro table into the includer's defines. It is
// defined here — not imported from internal/project — so internal/project
// can depend on internal/tokenstream without a cycle; internal/project's
// *Project satisfies this interface structurally.
type Host interface {
	// LookupInclude returns the cached Ast for an already-compiled include,
	// keyed by its textual include name (e.g. "common.svh").
	LookupInclude(name string) (*ast.Ast, bool)

	// CompileInclude resolves name relative to curDir/incdir, parses it if
	// not already cached, stores it in the include cache under name, and
	// returns the resulting Ast. Returns an error if the file cannot be
	// found in any search location.
	CompileInclude(curDir, name string, bracket bool) (*ast.Ast, error)
}
