package symbol

import "github.com/oxhq/svcheck/internal/token"

// Direction tags a DefPort's connection direction.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
	DirInout
	DirRef
	DirParam
	DirModport // an interface port restricted to a named modport view
)

// DefPort is a module/interface port or a module/class parameter: name,
// direction, resolved type, declaration order index, unpacked dimensions,
// and an optional default-value expression (kept as source text — the
// checker does not evaluate constant expressions per spec Non-goals).
type DefPort struct {
	Name         string
	Dir          Direction
	ModportName  string // populated only when Dir == DirModport
	Type         DefType
	Index        int
	UnpackedDims string
	Default      string
}

// DefMember is a class/struct/module-body data member.
type DefMember struct {
	Name string
	Type DefType
}

// DefMethod is a class function/task: its own nested scope (params plus
// locals) and a return type (Void for a task).
type DefMethod struct {
	Name       string
	Params     []*DefPort
	ReturnType DefType
	Defs       map[string]*ObjDef
	IsTask     bool
	IsVirtual  bool
	IsStatic   bool
	IsExtern   bool
}

// DefMacro mirrors token.MacroDef for symbol-table purposes, letting a
// macro name resolve through the same scope lookup as any other symbol.
type DefMacro struct {
	Ports []token.MacroPort
	Body  []token.Token
}

// DefBlock is an anonymous scope introduced by a generate/loop/branch
// body: it owns further instances and nested blocks but is not itself a
// named, separately-resolvable symbol beyond its parent's defs map.
type DefBlock struct {
	Label string
	Defs  map[string]*ObjDef
}

// DefModport is a named port-direction view exposed by an interface.
type DefModport struct {
	Name  string
	Ports []*DefPort
}

// DefClocking is a clocking block, recorded by name. The parser skips the
// clocking body, so the elaborator leaves Signals empty.
type DefClocking struct {
	Name    string
	Signals []string
}

// DefCovergroup is a covergroup, recorded by name. Covergroup bodies are
// skipped by the parser, so the elaborator leaves Coverpoints empty;
// crosses, bins and options are not modeled.
type DefCovergroup struct {
	Name        string
	Coverpoints []string
}

// DefModule is the scope for a module, interface, or program: an ordered
// parameter list, an ordered port list (modules/interfaces only), a flat
// defs map for everything declared in the body (nested scopes appear as
// ObjDef values inside this same map, never as a separate table), and the
// header/body import lists threaded separately per spec §4.6.
type DefModule struct {
	Name       string
	Params     []*DefPort
	Ports      []*DefPort
	Defs       map[string]*ObjDef
	ImportHdr  []string
	ImportBody []string
}

// DefClass is the scope for a class: params, an optional base class
// (resolved by name, never by pointer, to sidestep extends cycles), and a
// flat defs map for members/methods/nested classes/constraints.
type DefClass struct {
	Name       string
	Params     []*DefPort
	Base       *DefType // TypeUser when present
	Implements []string
	Defs       map[string]*ObjDef
	ImportHdr  []string
	ImportBody []string
}

// DefPackage is the scope for a package: typedefs, declarations, methods,
// and nested classes, all flattened into Defs. It has no import list; an
// import inside a package body is not recorded.
type DefPackage struct {
	Name string
	Defs map[string]*ObjDef
}

// Kind tags ObjDef's closed set of symbol shapes.
type Kind int

const (
	KindModule Kind = iota
	KindClass
	KindPackage
	KindBlock
	KindModport
	KindClocking
	KindMember
	KindPort
	KindInstance
	KindEnumValue
	KindMethod
	KindMacro
	KindType
	KindCovergroup
)

// ObjDef is the elaborator's symbol: a tagged union over everything a name
// inside a scope's Defs map can resolve to. Only the field matching Kind
// is populated — callers switch on Kind before reading a payload field,
// per spec §9's "pattern matching replaces kind-string comparisons."
type ObjDef struct {
	Kind Kind
	Pos  token.Position

	Module     *DefModule
	Class      *DefClass
	Package    *DefPackage
	Block      *DefBlock
	Modport    *DefModport
	Clocking   *DefClocking
	Member     *DefMember
	Port       *DefPort
	InstanceOf string // type-name, for KindInstance
	EnumOwner  string // owning typedef name, for KindEnumValue
	Method     *DefMethod
	Macro      *DefMacro
	Type       *DefType
	UnpackedDims string // paired with Type for KindType
	Covergroup *DefCovergroup

	// Linked is set by the elaborator's link pass on a KindInstance once its
	// type name has been resolved. Class bases and user types are resolved
	// without touching it.
	Linked bool
}

func newDefs() map[string]*ObjDef { return make(map[string]*ObjDef) }

// NewModule allocates an empty KindModule ObjDef.
func NewModule(name string, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindModule, Pos: pos, Module: &DefModule{Name: name, Defs: newDefs()}}
}

// NewClass allocates an empty KindClass ObjDef.
func NewClass(name string, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindClass, Pos: pos, Class: &DefClass{Name: name, Defs: newDefs()}}
}

// NewPackage allocates an empty KindPackage ObjDef.
func NewPackage(name string, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindPackage, Pos: pos, Package: &DefPackage{Name: name, Defs: newDefs()}}
}

// NewBlock allocates an empty KindBlock ObjDef for an anonymous
// generate/loop/branch scope.
func NewBlock(label string, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindBlock, Pos: pos, Block: &DefBlock{Label: label, Defs: newDefs()}}
}

// NewMember allocates a KindMember ObjDef.
func NewMember(name string, typ DefType, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindMember, Pos: pos, Member: &DefMember{Name: name, Type: typ}}
}

// NewInstance allocates a KindInstance ObjDef naming its module/interface
// type by text, resolved later during the link pass.
func NewInstance(typeName string, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindInstance, Pos: pos, InstanceOf: typeName}
}

// NewEnumValue allocates a KindEnumValue ObjDef pointing back at the
// typedef name that introduced it.
func NewEnumValue(owner string, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindEnumValue, Pos: pos, EnumOwner: owner}
}

// NewType allocates a KindType ObjDef.
func NewType(typ DefType, unpackedDims string, pos token.Position) *ObjDef {
	return &ObjDef{Kind: KindType, Pos: pos, Type: &typ, UnpackedDims: unpackedDims}
}

// DefsOf returns the flat defs map for any scope-bearing ObjDef (Module,
// Class, Package, Block), or nil for a leaf kind.
func (o *ObjDef) DefsOf() map[string]*ObjDef {
	switch o.Kind {
	case KindModule:
		return o.Module.Defs
	case KindClass:
		return o.Class.Defs
	case KindPackage:
		return o.Package.Defs
	case KindBlock:
		return o.Block.Defs
	default:
		return nil
	}
}
