package stdlib

import "github.com/oxhq/svcheck/internal/symbol"

// UVMPackage returns the optional uvm_pkg schema spec §4.6 describes as
// "a large fixed schema of classes, macros, and enum values" — seeded
// only when a run opts in (internal/config's SVCHECK_UVM_SEED), since a
// source that never touches UVM has no use for it taking up scope lookup
// space. The class hierarchy and enum literals below are a representative
// slice of the real uvm_pkg rather than its full surface: enough that a
// typical testbench's `extends uvm_component`/`` `uvm_info``-style usage
// resolves without the real UVM installation.
func UVMPackage() map[string]*symbol.ObjDef {
	pkg := symbol.NewPackage("uvm_pkg", zeroPos)
	defs := pkg.Package.Defs

	defs["uvm_object"] = uvmClass("uvm_object", "")
	defs["uvm_transaction"] = uvmClass("uvm_transaction", "uvm_object")
	defs["uvm_component"] = uvmComponentClass("uvm_component", "uvm_object")
	defs["uvm_driver"] = uvmComponentClass("uvm_driver", "uvm_component")
	defs["uvm_monitor"] = uvmComponentClass("uvm_monitor", "uvm_component")
	defs["uvm_scoreboard"] = uvmComponentClass("uvm_scoreboard", "uvm_component")
	defs["uvm_agent"] = uvmComponentClass("uvm_agent", "uvm_component")
	defs["uvm_env"] = uvmComponentClass("uvm_env", "uvm_component")
	defs["uvm_test"] = uvmComponentClass("uvm_test", "uvm_component")
	defs["uvm_subscriber"] = uvmComponentClass("uvm_subscriber", "uvm_component")
	defs["uvm_sequence_item"] = uvmClass("uvm_sequence_item", "uvm_transaction")
	defs["uvm_sequencer"] = uvmComponentClass("uvm_sequencer", "uvm_component")
	defs["uvm_sequence"] = uvmSequenceClass("uvm_sequence", "uvm_sequence_item")
	defs["uvm_reg"] = uvmClass("uvm_reg", "uvm_object")
	defs["uvm_reg_block"] = uvmClass("uvm_reg_block", "uvm_object")

	for _, name := range []string{"UVM_NONE", "UVM_LOW", "UVM_MEDIUM", "UVM_HIGH", "UVM_FULL", "UVM_DEBUG"} {
		defs[name] = symbol.NewEnumValue("uvm_verbosity", zeroPos)
	}
	for _, name := range []string{"UVM_INFO", "UVM_WARNING", "UVM_ERROR", "UVM_FATAL"} {
		defs[name] = symbol.NewEnumValue("uvm_severity", zeroPos)
	}
	for _, name := range []string{"UVM_ACTIVE", "UVM_PASSIVE"} {
		defs[name] = symbol.NewEnumValue("uvm_active_passive_enum", zeroPos)
	}

	return map[string]*symbol.ObjDef{"uvm_pkg": pkg}
}

func uvmClass(name, base string) *symbol.ObjDef {
	c := symbol.NewClass(name, zeroPos)
	if base != "" {
		b := symbol.NewUser(base, "uvm_pkg")
		c.Class.Base = &b
	}
	str := symbol.NewPrimary(symbol.PrimaryString)
	void := symbol.NewPrimary(symbol.PrimaryVoid)
	addMethod(c, "get_type_name", false, str)
	addMethod(c, "get_name", false, str)
	addMethod(c, "get_full_name", false, str)
	addMethod(c, "print", false, void)
	return c
}

// uvmComponentClass adds the build/run-time phase methods every
// uvm_component-derived class can override, on top of uvmClass's base
// object methods.
func uvmComponentClass(name, base string) *symbol.ObjDef {
	c := uvmClass(name, base)
	void := symbol.NewPrimary(symbol.PrimaryVoid)
	phase := symbol.NewUser("uvm_phase", "uvm_pkg")
	addMethod(c, "build_phase", false, void, param("phase", phase, 0))
	addMethod(c, "connect_phase", false, void, param("phase", phase, 0))
	addMethod(c, "run_phase", true, void, param("phase", phase, 0))
	addMethod(c, "end_of_elaboration_phase", false, void, param("phase", phase, 0))
	addMethod(c, "report_phase", false, void, param("phase", phase, 0))
	return c
}

func uvmSequenceClass(name, base string) *symbol.ObjDef {
	c := uvmClass(name, base)
	void := symbol.NewPrimary(symbol.PrimaryVoid)
	addMethod(c, "body", true, void)
	addMethod(c, "start", true, void, param("sequencer", symbol.NewUser("uvm_sequencer", "uvm_pkg"), 0))
	return c
}
