// Package symbol holds the elaborator's output data model: ObjDef (a
// tagged union over the kinds of thing a name can resolve to) and the
// Def* payload structs. Grounded on original_source/comp/comp_obj.rs
// (ObjDef, DefModule/DefClass/DefPackage), comp/def_type.rs (DefType), and
// comp/prototype.rs (DefPort, DefMethod), with the same sum-type-over-
// inheritance substitution the spec calls for (§9 "Sum types in place of
// kind-dispatch").
package symbol

// TypeKind tags the closed set of type-shapes a DefType can be.
type TypeKind int

const (
	TypeNone TypeKind = iota
	TypeIntVector
	TypeIntAtom
	TypePrimary
	TypeStruct
	TypeEnum
	TypeVIntf
	TypeUser
)

// PrimaryKind further tags TypePrimary: the handful of base types that
// carry no width/signing of their own.
type PrimaryKind int

const (
	PrimaryReal PrimaryKind = iota
	PrimaryString
	PrimaryVoid
	PrimaryCHandle
	PrimaryEvent
	PrimaryType // the `type` keyword used as a formal-parameter kind
)

// DefType is the elaborator's type representation: one tagged shape per
// TypeKind, with only the fields relevant to that shape populated.
type DefType struct {
	Kind TypeKind

	// IntVector / IntAtom
	Name   string
	Signed bool
	Packed string // the literal packed-dimension text, e.g. "7:0"

	// Primary
	Primary PrimaryKind

	// Struct
	StructPacked bool
	Members      []*ObjDef

	// Enum
	EnumValues []string

	// VIntf
	VIntfName   string
	VIntfParams []string

	// User
	UserName   string
	UserScope  string // non-empty for a scoped reference like pkg::type_t
	UserPacked bool
	UserParams []KeyVal
}

// KeyVal is a named parameter-value pair, used by DefType.User and
// instance parameter overrides alike.
type KeyVal struct {
	Key   string
	Value string
}

// NewIntVector builds a 4-state vector type (bit/logic/reg).
func NewIntVector(name string, signed bool, packed string) DefType {
	return DefType{Kind: TypeIntVector, Name: name, Signed: signed, Packed: packed}
}

// NewIntAtom builds a 2-state scalar integer type (byte/int/longint/...).
func NewIntAtom(name string, signed bool) DefType {
	return DefType{Kind: TypeIntAtom, Name: name, Signed: signed}
}

// NewPrimary builds a type with no further shape (real/string/void/...).
func NewPrimary(p PrimaryKind) DefType {
	return DefType{Kind: TypePrimary, Primary: p}
}

// NewUser builds a reference to a user-defined type, resolved by name at
// lookup time rather than by pointer (spec §9 "Ownership").
func NewUser(name, scope string) DefType {
	return DefType{Kind: TypeUser, UserName: name, UserScope: scope}
}
