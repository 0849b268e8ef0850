package token

// Kind is a closed tagged set of lexical token kinds. It mirrors
// original_source/src/token.rs's TokenKind enum: one variant per reserved
// word family, one per base type, one per literal/punctuation/operator
// spelling. Grouping keywords into families (KwEdge covers posedge/negedge/
// edge, KwNetType covers wire/tri/wand/..., KwSigning covers signed/unsigned)
// keeps the set closed without needing one variant per literal spelling of
// every keyword — the exact spelling survives in Token.Value.
type Kind int

const (
	Illegal Kind = iota
	Eof
	Null // internal sentinel, never surfaced to a user

	// Keywords
	KwModule
	KwEndModule
	KwInterface
	KwEndInterface
	KwProgram
	KwEndProgram
	KwPrimitive
	KwEndPrimitive
	KwConfig
	KwEndConfig
	KwBind
	KwImport
	KwExport
	KwParam
	KwLParam
	KwAssign
	KwStatic
	KwAutomatic
	KwInput
	KwOutput
	KwInout
	KwRef
	KwVar
	KwIntf
	KwModport
	KwClocking
	KwEndClocking
	KwNetType
	KwSupply
	KwSigning
	KwEnum
	KwStruct
	KwUnion
	KwPacked
	KwTypedef
	KwAlways
	KwAlwaysC
	KwAlwaysF
	KwAlwaysL
	KwInitial
	KwFinal
	KwEdge
	KwOr
	KwIff
	KwBegin
	KwEnd
	KwIf
	KwElse
	KwFor
	KwForeach
	KwWhile
	KwDo
	KwRepeat
	KwForever
	KwFork
	KwJoin
	KwDisable
	KwWait
	KwReturn
	KwBreak
	KwContinue
	KwCase
	KwEndcase
	KwDefault
	KwMatch
	KwInside
	KwUnique
	KwUnique0
	KwPriority
	KwTagged
	KwPackage
	KwEndPackage
	KwGenerate
	KwEndGenerate
	KwGenvar
	KwClass
	KwEndClass
	KwExtends
	KwImplements
	KwVirtual
	KwPure
	KwExtern
	KwLocal
	KwProtected
	KwConst
	KwRand
	KwRandc
	KwNew
	KwFunction
	KwEndFunction
	KwTask
	KwEndTask
	KwConstraint
	KwEndConstraint
	KwCovergroup
	KwEndgroup
	KwCoverpoint
	KwCross
	KwProperty
	KwEndProperty
	KwSequence
	KwEndSequence
	KwAssert
	KwAssume
	KwCover
	KwReg
	KwVector
	KwDrive
	KwCharge
	Keyword // reserved word with no dedicated family above

	// Base types
	TypeIntAtom
	TypeIntVector
	TypeReal
	TypeGenvar
	TypeString
	TypeCHandle
	TypeVoid
	TypeEvent

	// Literals
	SystemTask
	Casting
	Macro
	MacroCall
	IdentInterpolated
	Ident
	Comment
	Attribute
	Str
	Integer
	Real
	Kw1step

	// Operators
	OpPlus
	OpMinus
	OpIncrDecr
	OpBang
	OpTilde
	OpAnd
	OpNand
	OpOr
	OpNor
	OpXor
	OpXnor
	OpStar
	OpDiv
	OpMod
	OpEq
	OpEq2
	OpEq3
	OpEq2Que
	OpDiff
	OpDiff2
	OpDiffQue
	OpTimingAnd
	OpLogicAnd
	OpLogicOr
	OpPow
	OpLT
	OpLTE
	OpGT
	OpGTE
	OpSL
	OpSR
	OpSShift
	OpImpl
	OpSeqRel
	OpFatArrL
	OpStarLT
	OpEquiv
	OpCompAss
	OpDist
	OpRange
	SensiAll

	// Punctuation
	ParenLeft
	ParenRight
	CurlyLeft
	CurlyRight
	SquareLeft
	SquareRight
	TickCurly
	Comma
	Que
	Colon
	Scope
	SemiColon
	At
	At2
	Hash
	Hash2
	Dot
	DotStar
	Dollar
	Backtick
	LineCont
)

var kindNames = map[Kind]string{
	Illegal: "Illegal", Eof: "Eof", Null: "Null",
	KwModule: "module", KwEndModule: "endmodule", KwInterface: "interface",
	KwEndInterface: "endinterface", KwProgram: "program", KwEndProgram: "endprogram",
	KwPrimitive: "primitive", KwEndPrimitive: "endprimitive", KwConfig: "config",
	KwEndConfig: "endconfig", KwBind: "bind", KwImport: "import", KwExport: "export",
	KwParam: "parameter", KwLParam: "localparam", KwAssign: "assign",
	KwStatic: "static", KwAutomatic: "automatic", KwInput: "input",
	KwOutput: "output", KwInout: "inout", KwRef: "ref", KwVar: "var",
	KwIntf: "interface-type", KwModport: "modport", KwClocking: "clocking",
	KwEndClocking: "endclocking", KwNetType: "nettype", KwSupply: "supply",
	KwSigning: "signing", KwEnum: "enum", KwStruct: "struct", KwUnion: "union",
	KwPacked: "packed", KwTypedef: "typedef", KwAlways: "always",
	KwAlwaysC: "always_comb", KwAlwaysF: "always_ff", KwAlwaysL: "always_latch",
	KwInitial: "initial", KwFinal: "final", KwEdge: "edge", KwOr: "or", KwIff: "iff",
	KwBegin: "begin", KwEnd: "end", KwIf: "if", KwElse: "else", KwFor: "for",
	KwForeach: "foreach", KwWhile: "while", KwDo: "do", KwRepeat: "repeat",
	KwForever: "forever", KwFork: "fork", KwJoin: "join", KwDisable: "disable",
	KwWait: "wait", KwReturn: "return", KwBreak: "break", KwContinue: "continue",
	KwCase: "case", KwEndcase: "endcase", KwDefault: "default", KwMatch: "matches",
	KwInside: "inside", KwUnique: "unique", KwUnique0: "unique0",
	KwPriority: "priority", KwTagged: "tagged", KwPackage: "package",
	KwEndPackage: "endpackage", KwGenerate: "generate", KwEndGenerate: "endgenerate",
	KwGenvar: "genvar", KwClass: "class", KwEndClass: "endclass",
	KwExtends: "extends", KwImplements: "implements", KwVirtual: "virtual",
	KwPure: "pure", KwExtern: "extern", KwLocal: "local", KwProtected: "protected",
	KwConst: "const", KwRand: "rand", KwRandc: "randc", KwNew: "new",
	KwFunction: "function", KwEndFunction: "endfunction", KwTask: "task",
	KwEndTask: "endtask", KwConstraint: "constraint", KwEndConstraint: "endconstraint",
	KwCovergroup: "covergroup", KwEndgroup: "endgroup", KwCoverpoint: "coverpoint",
	KwCross: "cross", KwProperty: "property", KwEndProperty: "endproperty",
	KwSequence: "sequence", KwEndSequence: "endsequence", KwAssert: "assert",
	KwAssume: "assume", KwCover: "cover", KwReg: "reg", KwVector: "vector",
	KwDrive: "drive", KwCharge: "charge", Keyword: "keyword",
	TypeIntAtom: "int-atom", TypeIntVector: "int-vector", TypeReal: "real-type",
	TypeGenvar: "genvar-type", TypeString: "string-type", TypeCHandle: "chandle",
	TypeVoid: "void", TypeEvent: "event-type",
	SystemTask: "system-task", Casting: "casting", Macro: "macro",
	MacroCall: "macro-call", IdentInterpolated: "ident-interp", Ident: "ident",
	Comment: "comment", Attribute: "attribute", Str: "string", Integer: "integer",
	Real: "real", Kw1step: "1step",
	OpPlus: "+", OpMinus: "-", OpIncrDecr: "++/--", OpBang: "!", OpTilde: "~",
	OpAnd: "&", OpNand: "~&", OpOr: "|", OpNor: "~|", OpXor: "^", OpXnor: "~^",
	OpStar: "*", OpDiv: "/", OpMod: "%", OpEq: "=", OpEq2: "==", OpEq3: "===",
	OpEq2Que: "==?", OpDiff: "!=", OpDiff2: "!==", OpDiffQue: "!=?",
	OpTimingAnd: "&&&", OpLogicAnd: "&&", OpLogicOr: "||", OpPow: "**",
	OpLT: "<", OpLTE: "<=", OpGT: ">", OpGTE: ">=", OpSL: "<<", OpSR: ">>",
	OpSShift: "<<</>>>", OpImpl: "->", OpSeqRel: "|->/#-#", OpFatArrL: "=>",
	OpStarLT: "*>", OpEquiv: "<->", OpCompAss: "compound-assign",
	OpDist: ":=/:/:", OpRange: "+:/-:", SensiAll: "(*)",
	ParenLeft: "(", ParenRight: ")", CurlyLeft: "{", CurlyRight: "}",
	SquareLeft: "[", SquareRight: "]", TickCurly: "'{", Comma: ",", Que: "?",
	Colon: ":", Scope: "::", SemiColon: ";", At: "@", At2: "@@", Hash: "#",
	Hash2: "##", Dot: ".", DotStar: ".*", Dollar: "$", Backtick: "`",
	LineCont: "\\\n",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Keywords maps reserved-word spellings to their Kind. Only the spelling
// is case-sensitive and exact — SystemVerilog keywords are always lowercase.
var Keywords = map[string]Kind{
	"module": KwModule, "endmodule": KwEndModule,
	"interface": KwInterface, "endinterface": KwEndInterface,
	"program": KwProgram, "endprogram": KwEndProgram,
	"primitive": KwPrimitive, "endprimitive": KwEndPrimitive,
	"config": KwConfig, "endconfig": KwEndConfig,
	"bind": KwBind, "import": KwImport, "export": KwExport,
	"parameter": KwParam, "localparam": KwLParam, "assign": KwAssign,
	"static": KwStatic, "automatic": KwAutomatic,
	"input": KwInput, "output": KwOutput, "inout": KwInout, "ref": KwRef,
	"var": KwVar, "modport": KwModport, "clocking": KwClocking, "endclocking": KwEndClocking,
	"wire": KwNetType, "tri": KwNetType, "triand": KwNetType, "trior": KwNetType,
	"wand": KwNetType, "wor": KwNetType, "tri0": KwNetType, "tri1": KwNetType,
	"uwire": KwNetType, "trireg": KwNetType,
	"supply0": KwSupply, "supply1": KwSupply,
	"signed": KwSigning, "unsigned": KwSigning,
	"enum": KwEnum, "struct": KwStruct, "union": KwUnion, "packed": KwPacked,
	"typedef": KwTypedef,
	"always": KwAlways, "always_comb": KwAlwaysC, "always_ff": KwAlwaysF,
	"always_latch": KwAlwaysL, "initial": KwInitial, "final": KwFinal,
	"posedge": KwEdge, "negedge": KwEdge, "edge": KwEdge,
	"or": KwOr, "iff": KwIff,
	"begin": KwBegin, "end": KwEnd, "if": KwIf, "else": KwElse, "for": KwFor,
	"foreach": KwForeach, "while": KwWhile, "do": KwDo, "repeat": KwRepeat,
	"forever": KwForever, "fork": KwFork, "join": KwJoin, "join_any": KwJoin,
	"join_none": KwJoin, "disable": KwDisable, "wait": KwWait, "return": KwReturn,
	"break": KwBreak, "continue": KwContinue,
	"case": KwCase, "casex": KwCase, "casez": KwCase, "endcase": KwEndcase,
	"default": KwDefault, "matches": KwMatch, "inside": KwInside,
	"unique": KwUnique, "unique0": KwUnique0, "priority": KwPriority, "tagged": KwTagged,
	"package": KwPackage, "endpackage": KwEndPackage,
	"generate": KwGenerate, "endgenerate": KwEndGenerate, "genvar": KwGenvar,
	"class": KwClass, "endclass": KwEndClass, "extends": KwExtends,
	"implements": KwImplements, "virtual": KwVirtual, "pure": KwPure,
	"extern": KwExtern, "local": KwLocal, "protected": KwProtected,
	"const": KwConst, "rand": KwRand, "randc": KwRandc, "new": KwNew,
	"function": KwFunction, "endfunction": KwEndFunction,
	"task": KwTask, "endtask": KwEndTask,
	"constraint": KwConstraint, "endconstraint": KwEndConstraint,
	"covergroup": KwCovergroup, "endgroup": KwEndgroup,
	"coverpoint": KwCoverpoint, "cross": KwCross,
	"property": KwProperty, "endproperty": KwEndProperty,
	"sequence": KwSequence, "endsequence": KwEndSequence,
	"assert": KwAssert, "assume": KwAssume, "cover": KwCover,
	"vectored": KwVector, "scalared": KwVector,
	"highz0": KwDrive, "highz1": KwDrive, "strong0": KwDrive, "strong1": KwDrive,
	"pull0": KwDrive, "pull1": KwDrive, "weak0": KwDrive, "weak1": KwDrive,
	"small": KwCharge, "medium": KwCharge, "large": KwCharge,
}

// BaseTypes maps base-type keyword spellings to their Kind.
var BaseTypes = map[string]Kind{
	"byte": TypeIntAtom, "shortint": TypeIntAtom, "int": TypeIntAtom,
	"longint": TypeIntAtom, "integer": TypeIntAtom, "time": TypeIntAtom,
	"bit": TypeIntVector, "logic": TypeIntVector, "reg": TypeIntVector,
	"real": TypeReal, "shortreal": TypeReal, "realtime": TypeReal,
	"genvar": TypeGenvar,
	"string": TypeString, "chandle": TypeCHandle, "void": TypeVoid,
	"event": TypeEvent,
}
