package hlbytecode

// Native is a function reference that carries no bytecode of its own,
// only the name of the host library it is loaded from. The decompiler
// only ever needs its name and signature for resolution; it never
// decompiles a native's body (spec.md Non-goals).
type Native struct {
	Name   RefString
	Lib    RefString
	Sig    RefType
	FIndex RefFun
}

// Function is a single function definition: its signature, its typed
// register array, its ordered opcode vector, and optional debug metadata.
type Function struct {
	Name   *RefString
	Sig    RefType
	FIndex RefFun

	// Regs holds the type of every register used by this function.
	Regs []RefType

	// Ops is the function's instruction sequence in program order.
	Ops []Op

	// Assigns is optional debug metadata: each entry names a variable
	// and the opcode position (1-based, 0 reserved for arguments) at
	// which it was introduced. It drives push_expr's inline-vs-
	// materialize decision.
	Assigns []VarAssign

	// Parent is the Obj/Struct type this function is a member of, if
	// any. This alone does not mean the function is a method — see
	// IsMethod.
	Parent *RefType
}

// VarAssign is one entry of a function's debug assigns table: a
// variable name introduced at a given opcode position, or (for
// position 0) an argument name.
type VarAssign struct {
	Name RefString
	Pos  int
}

// RegType returns the declared type of a register.
func (f *Function) RegType(r Reg) RefType { return f.Regs[r] }

// IsMethod reports whether this function's first register's type
// equals its parent type — i.e. it receives an implicit `this`.
func (f *Function) IsMethod() bool {
	if f.Parent == nil || len(f.Regs) == 0 {
		return false
	}
	return f.Regs[0] == *f.Parent
}

// ArgName resolves the name of the i'th argument from the debug assigns
// table (position 0), or ("", false) if unavailable.
func (f *Function) ArgName(m *Module, i int) (string, bool) {
	j := 0
	for _, a := range f.Assigns {
		if a.Pos != 0 {
			continue
		}
		if j == i {
			return a.Name.Resolve(m), true
		}
		j++
	}
	return "", false
}

// VarName resolves the variable name introduced at opcode position pos,
// or ("", false) if the position introduces none.
func (f *Function) VarName(m *Module, pos int) (string, bool) {
	for _, a := range f.Assigns {
		if int(a.Pos) == pos+1 {
			return a.Name.Resolve(m), true
		}
	}
	return "", false
}

// Args returns the argument types of this function's signature.
func (f *Function) Args(m *Module) []RefType {
	sig, _ := f.Sig.ResolveAsFun(m)
	return sig.Args
}

// Ret returns the return type of this function's signature.
func (f *Function) Ret(m *Module) Type {
	sig, _ := f.Sig.ResolveAsFun(m)
	return sig.Ret.Resolve(m)
}

// FunPtr is a resolved function-or-native reference.
type FunPtr struct {
	Fun    *Function // nil if Native is set
	Native *Native
}

// IsMethod reports whether the resolved target is a Function that is
// itself a method (has an implicit `this`).
func (p FunPtr) IsMethod() bool {
	return p.Fun != nil && p.Fun.IsMethod()
}

// Name resolves the display name of the function or native.
func (p FunPtr) Name(m *Module) string {
	if p.Fun != nil {
		if p.Fun.Name != nil {
			return p.Fun.Name.Resolve(m)
		}
		return "_"
	}
	return p.Native.Name.Resolve(m)
}

// Sig resolves the function-or-native's call signature.
func (p FunPtr) Sig(m *Module) TFun {
	if p.Fun != nil {
		sig, _ := p.Fun.Sig.ResolveAsFun(m)
		return sig
	}
	sig, _ := p.Native.Sig.ResolveAsFun(m)
	return sig
}

// GlobalInit records what a global slot is initialized to, when known
// (e.g. bound to a constant struct literal). Unresolved globals simply
// have no entry.
type GlobalInit struct {
	Global RefGlobal
	// FieldInts holds one pool index per field of the constant, in
	// declaration order (mirrors HashLink's ConstantDef). Which pool an
	// entry indexes depends on that field's type: for the bytes field of
	// a string constant it is a string-pool index.
	FieldInts []RefInt
}

// Module is the read-only bytecode model the decompiler consumes:
// constant pools, type table, globals, natives, and functions. Nothing
// in this package constructs a Module from a real .hl file — that is
// external, out of this spec's scope.
type Module struct {
	Ints    []int32
	Floats  []float64
	Strings []string
	Types   []Type

	// Globals holds the declared type of every global slot.
	Globals []RefType
	// ConstantInits describes which globals have a known constant
	// initializer and what it points at.
	ConstantInits []GlobalInit

	Functions []*Function
	Natives   []*Native

	// FIndexTable maps a RefFun to either a Functions index or a
	// Natives index, mirroring HashLink's shared findex space.
	FIndexTable []FIndexEntry
}

// FIndexEntry is one slot of the shared function/native index space.
type FIndexEntry struct {
	IsNative bool
	Index    int
}

// ResolveAsFn resolves a function reference, returning nil if the
// reference names a native instead.
func (m *Module) ResolveAsFn(r RefFun) *Function {
	if int(r) < 0 || int(r) >= len(m.FIndexTable) {
		return nil
	}
	e := m.FIndexTable[r]
	if e.IsNative {
		return nil
	}
	return m.Functions[e.Index]
}

// Resolve resolves a function-or-native reference to whichever it
// points at.
func (m *Module) Resolve(r RefFun) FunPtr {
	e := m.FIndexTable[r]
	if e.IsNative {
		return FunPtr{Native: m.Natives[e.Index]}
	}
	return FunPtr{Fun: m.Functions[e.Index]}
}

// GetTypeObj resolves a type reference to its TypeObj shape (Obj or
// Struct only), mirroring Type::get_type_obj.
func (m *Module) GetTypeObj(r RefType) (*TypeObj, bool) {
	return r.ResolveAsObj(m)
}

// Method returns the idx'th method prototype of the Obj/Struct type t
// resolves to.
func (t RefType) Method(m *Module, idx int) (ObjProto, bool) {
	obj, ok := t.ResolveAsObj(m)
	if !ok || idx < 0 || idx >= len(obj.Protos) {
		return ObjProto{}, false
	}
	return obj.Protos[idx], true
}

// Field returns the idx'th field of the Obj/Struct type t resolves to,
// counted over the flattened field list (ancestors' fields first).
func (t RefType) Field(m *Module, idx int) (ObjField, bool) {
	obj, ok := t.ResolveAsObj(m)
	if !ok || idx < 0 || idx >= len(obj.Fields) {
		return ObjField{}, false
	}
	return obj.Fields[idx], true
}

// TypeName renders a type for display, breaking cycles by tracking the
// trail of type-pool indices already visited (spec.md §9: cyclic type
// references). A self-reference encountered while already on the trail
// renders as "Self", mirroring hlbc's EnhancedFmt parents trail.
func TypeName(m *Module, r RefType, trail []RefType) string {
	for _, seen := range trail {
		if seen == r {
			return "Self"
		}
	}
	trail = append(trail, r)

	switch t := r.Resolve(m).(type) {
	case TVoid:
		return "Void"
	case TI32:
		return "Int"
	case TF64, TF32:
		return "Float"
	case TBool:
		return "Bool"
	case TBytes:
		return "hl.Bytes"
	case TDyn:
		return "Dynamic"
	case TArray:
		return "Array"
	case TObj:
		return t.Def.Name.Resolve(m)
	case TStruct:
		return t.Def.Name.Resolve(m)
	case TVirtual:
		names := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			names[i] = f.Name.Resolve(m) + ": " + TypeName(m, f.Type, trail)
		}
		return "{ " + joinComma(names) + " }"
	case TEnum:
		return t.Name.Resolve(m)
	case TAbstract:
		return t.Name.Resolve(m)
	case TNull:
		return "Null<" + TypeName(m, t.Of, trail) + ">"
	case TRef:
		return "Ref<" + TypeName(m, t.Of, trail) + ">"
	default:
		return "Unknown"
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
