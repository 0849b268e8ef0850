// Package stdlib supplies the elaborator's seeded definitions: the
// built-in class-like types every SystemVerilog source can reference
// without an import (process, string, event, a class handle's default
// Object methods, a bare covergroup, and the generic array method
// sets), plus an optional uvm_pkg schema. Grounded on spec §4.6's "Seeded definitions" paragraph
// and original_source/src/comp/comp_lib.rs's CompLib::new, which inserts
// the same fixed set of built-ins into its global table before any file
// is elaborated. These are ordinary ObjDefs once built — internal/elaborate
// never special-cases them after Seed.
package stdlib

import (
	"github.com/oxhq/svcheck/internal/symbol"
	"github.com/oxhq/svcheck/internal/token"
)

var zeroPos token.Position

// Seed returns the built-in definitions every elaboration run starts
// with: process, string, event, class (a bare class handle's default
// Object methods), covergroup, and the four generic array method scopes
// (!array/!array!dyn/!array!dict/!array!queue) spec §4.6 names for
// generic array method lookup.
func Seed() map[string]*symbol.ObjDef {
	defs := map[string]*symbol.ObjDef{}
	defs["process"] = processClass()
	defs["string"] = stringClass()
	defs["event"] = eventClass()
	defs["class"] = objectClass()
	defs["covergroup"] = covergroupClass()
	defs["!array"] = arrayClass("size", "delete")
	defs["!array!dyn"] = arrayClass("size", "delete")
	defs["!array!dict"] = arrayClass("size", "exists", "delete", "first", "last", "next", "prev")
	defs["!array!queue"] = arrayClass("size", "delete", "push_back", "push_front", "pop_back", "pop_front", "insert")
	return defs
}

func newClass(name string) *symbol.ObjDef { return symbol.NewClass(name, zeroPos) }

func addMethod(def *symbol.ObjDef, name string, isTask bool, ret symbol.DefType, params ...*symbol.DefPort) {
	def.Class.Defs[name] = &symbol.ObjDef{
		Kind: symbol.KindMethod,
		Pos:  zeroPos,
		Method: &symbol.DefMethod{
			Name: name, IsTask: isTask, ReturnType: ret, Params: params, Defs: map[string]*symbol.ObjDef{},
		},
	}
}

func param(name string, typ symbol.DefType, idx int) *symbol.DefPort {
	return &symbol.DefPort{Name: name, Dir: symbol.DirInput, Type: typ, Index: idx}
}

// processClass models the built-in `process` handle returned by
// `process::self()`: status/control methods only, no data members.
func processClass() *symbol.ObjDef {
	c := newClass("process")
	void := symbol.NewPrimary(symbol.PrimaryVoid)
	intT := symbol.NewIntAtom("int", true)
	addMethod(c, "self", false, symbol.NewUser("process", ""))
	addMethod(c, "status", false, intT)
	addMethod(c, "kill", false, void)
	addMethod(c, "await", true, void)
	addMethod(c, "suspend", false, void)
	addMethod(c, "resume", false, void)
	return c
}

// stringClass models the built-in string methods SystemVerilog exposes
// on any `string` variable (IEEE 1800 §6.16.8).
func stringClass() *symbol.ObjDef {
	c := newClass("string")
	intT := symbol.NewIntAtom("int", true)
	str := symbol.NewPrimary(symbol.PrimaryString)
	realT := symbol.NewPrimary(symbol.PrimaryReal)
	addMethod(c, "len", false, intT)
	addMethod(c, "putc", false, symbol.NewPrimary(symbol.PrimaryVoid), param("i", intT, 0), param("c", intT, 1))
	addMethod(c, "getc", false, intT, param("i", intT, 0))
	addMethod(c, "toupper", false, str)
	addMethod(c, "tolower", false, str)
	addMethod(c, "compare", false, intT, param("s", str, 0))
	addMethod(c, "icompare", false, intT, param("s", str, 0))
	addMethod(c, "substr", false, str, param("i", intT, 0), param("j", intT, 1))
	addMethod(c, "atoi", false, intT)
	addMethod(c, "atohex", false, intT)
	addMethod(c, "atooct", false, intT)
	addMethod(c, "atobin", false, intT)
	addMethod(c, "atoreal", false, realT)
	addMethod(c, "itoa", false, symbol.NewPrimary(symbol.PrimaryVoid), param("i", intT, 0))
	return c
}

// eventClass models `event`'s one built-in property (accessed like a
// method here, same as the rest of the seeded scopes).
func eventClass() *symbol.ObjDef {
	c := newClass("event")
	addMethod(c, "triggered", false, symbol.NewIntVector("bit", false, ""))
	return c
}

// objectClass models the default methods any class handle carries,
// independent of UVM — `randomize`/`get_type_name` are available on a
// plain `class`-declared object without extending anything.
func objectClass() *symbol.ObjDef {
	c := newClass("class")
	intT := symbol.NewIntAtom("int", true)
	void := symbol.NewPrimary(symbol.PrimaryVoid)
	str := symbol.NewPrimary(symbol.PrimaryString)
	addMethod(c, "randomize", false, intT)
	addMethod(c, "pre_randomize", false, void)
	addMethod(c, "post_randomize", false, void)
	addMethod(c, "get_type_name", false, str)
	addMethod(c, "copy", false, void, param("rhs", symbol.NewUser("class", ""), 0))
	addMethod(c, "compare", false, intT, param("rhs", symbol.NewUser("class", ""), 0))
	return c
}

// covergroupClass models the bare `covergroup` built-in named as a seeded
// definition: a plain KindCovergroup ObjDef with no coverpoints, matching
// the glossary's "a covergroup body's bins/options are recognized and
// skipped" — it exists so `covergroup` resolves as a type name, not to
// model any method surface.
func covergroupClass() *symbol.ObjDef {
	return &symbol.ObjDef{
		Kind:       symbol.KindCovergroup,
		Pos:        zeroPos,
		Covergroup: &symbol.DefCovergroup{Name: "covergroup"},
	}
}

// arrayClass builds one of the generic array method scopes, each sharing
// the common size/delete pair plus whatever additional methods the
// specific array flavor (dynamic/associative/queue) adds.
func arrayClass(methods ...string) *symbol.ObjDef {
	c := newClass("!array")
	intT := symbol.NewIntAtom("int", true)
	void := symbol.NewPrimary(symbol.PrimaryVoid)
	for _, m := range methods {
		switch m {
		case "size", "num":
			addMethod(c, m, false, intT)
		case "exists":
			addMethod(c, m, false, intT, param("index", intT, 0))
		case "first", "last", "next", "prev":
			addMethod(c, m, false, intT, param("index", intT, 0))
		case "push_back", "push_front", "insert":
			addMethod(c, m, false, void, param("item", intT, 0))
		case "pop_back", "pop_front":
			addMethod(c, m, false, intT)
		default:
			addMethod(c, m, false, void)
		}
	}
	return c
}
