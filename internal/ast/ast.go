package ast

import "github.com/oxhq/svcheck/internal/token"

// Ast is one compiled unit: the file it came from, its root Node, and the
// macro table accumulated while tokenizing it. Defines is shared by
// reference with whatever produced the tree (tokenstream.TokenStream) so
// an includer sees macros captured while splicing in an include file,
// matching spec's Ast.defines invariant.
type Ast struct {
	Path    string
	Root    *Node
	Defines token.Defines
}

// New wraps a root Node and its macro table into an Ast.
func New(path string, root *Node, defines token.Defines) *Ast {
	if defines == nil {
		defines = token.Defines{}
	}
	return &Ast{Path: path, Root: root, Defines: defines}
}

// TopLevel returns the direct children of the root node — the Modules,
// Interfaces, Packages, Classes, Programs, etc. declared at file scope.
func (a *Ast) TopLevel() []*Node {
	if a.Root == nil {
		return nil
	}
	return a.Root.Children
}
