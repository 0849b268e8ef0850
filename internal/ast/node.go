// Package ast defines the parser's output tree: AstNode/AstNodeKind, and
// the per-file Ast wrapper that carries the macro table alongside the tree.
// Grounded on original_source/src/ast/astnode.rs and src/ast/mod.rs, and on
// the teacher's tagged-union style for AST-adjacent data (internal/core/
// contracts.go's Query/Result are plain structs with a Kind field rather
// than an interface hierarchy — the same shape used here).
package ast

import "github.com/oxhq/svcheck/internal/token"

// Kind enumerates the grammar constructs a Node can represent. A closed
// set, as in spec §3.
type Kind int

const (
	Root Kind = iota
	Module
	Interface
	Program
	Primitive
	Config
	Bind
	Package
	Class
	Header
	Body
	Port
	Param
	Params
	Ports
	Import
	Export
	Declaration
	Identifier
	Type
	Scope
	Slice
	Enum
	EnumIdent
	Struct
	Union
	Typedef
	Define
	Directive
	Instance
	Instances
	Branch
	Case
	CaseItem
	Loop
	LoopFor
	Block
	Statement
	Fork
	Wait
	EventCtrl
	Event
	Sensitivity
	Assign
	Expr
	ExprGroup
	Operation
	Value
	Concat
	Replication
	StructInit
	New
	MethodCall
	SystemTask
	Macro
	MacroCall
	Constraint
	Covergroup
	Coverpoint
	Cross
	SvaProperty
	Sequence
	Modport
	Clocking
	VIntf
	Extends
	Implements
	Return
	Assert
	Generate
	Genvar
	Method
)

var kindNames = map[Kind]string{
	Root: "Root", Module: "Module", Interface: "Interface", Program: "Program",
	Primitive: "Primitive", Config: "Config", Bind: "Bind", Package: "Package",
	Class: "Class", Header: "Header", Body: "Body", Port: "Port", Param: "Param",
	Params: "Params", Ports: "Ports", Import: "Import", Export: "Export",
	Declaration: "Declaration", Identifier: "Identifier", Type: "Type",
	Scope: "Scope", Slice: "Slice", Enum: "Enum", EnumIdent: "EnumIdent",
	Struct: "Struct", Union: "Union", Typedef: "Typedef", Define: "Define",
	Directive: "Directive", Instance: "Instance", Instances: "Instances",
	Branch: "Branch", Case: "Case", CaseItem: "CaseItem", Loop: "Loop",
	LoopFor: "LoopFor", Block: "Block", Statement: "Statement", Fork: "Fork",
	Wait: "Wait", EventCtrl: "EventCtrl", Event: "Event", Sensitivity: "Sensitivity",
	Assign: "Assign", Expr: "Expr", ExprGroup: "ExprGroup", Operation: "Operation",
	Value: "Value", Concat: "Concat", Replication: "Replication",
	StructInit: "StructInit", New: "New", MethodCall: "MethodCall",
	SystemTask: "SystemTask", Macro: "Macro", MacroCall: "MacroCall",
	Constraint: "Constraint", Covergroup: "Covergroup", Coverpoint: "Coverpoint",
	Cross: "Cross", SvaProperty: "SvaProperty", Sequence: "Sequence",
	Modport: "Modport", Clocking: "Clocking", VIntf: "VIntf", Extends: "Extends",
	Implements: "Implements", Return: "Return", Assert: "Assert",
	Generate: "Generate", Genvar: "Genvar", Method: "Method",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Node is one element of the parse tree: a kind, a position, free-form
// string attributes, and ordered children. Attributes carry the semantic
// detail (name, type, dir, signing, packed, ...) so a consumer switches on
// Kind first and queries Attrs by name second, matching spec §3.
type Node struct {
	Kind     Kind
	Pos      token.Position
	Attrs    map[string]string
	Children []*Node
}

// NewNode allocates a Node with an initialized attribute map.
func NewNode(kind Kind, pos token.Position) *Node {
	return &Node{Kind: kind, Pos: pos, Attrs: map[string]string{}}
}

// Attr returns the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// SetAttr assigns an attribute, allocating the map on first use.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// Add appends a child node and returns it, for fluent construction.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// ChildrenOf returns the children whose Kind equals k, in order.
func (n *Node) ChildrenOf(k Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == k {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildOf returns the first child of kind k, or nil.
func (n *Node) FirstChildOf(k Kind) *Node {
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}
