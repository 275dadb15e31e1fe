// Package hlbytecode models the read-only bytecode surface that the
// decompiler consumes: constant pools, the type table, globals, natives,
// and function bodies (typed registers plus an ordered opcode vector).
//
// Nothing in this package is produced here — parsing a real HashLink
// module (.hl file) into these types is a separate, external concern.
// This package only defines the shape a parser would hand to the
// decompiler, and a small set of resolver helpers mirroring the ones the
// decompiler is specified to call.
package hlbytecode

// Reg identifies a slot in a function's register array.
type Reg int

// RefInt indexes the module's i32 constant pool.
type RefInt int

// RefFloat indexes the module's f64 constant pool.
type RefFloat int

// RefString indexes the module's string constant pool.
type RefString int

// RefType indexes the module's type pool.
type RefType int

// RefField indexes a field within an object/struct type's field list.
type RefField int

// RefGlobal indexes the module's global slot array.
type RefGlobal int

// RefFun indexes the module's findex table (functions and natives share
// this index space).
type RefFun int

// Resolve returns the int constant this reference points to.
func (r RefInt) Resolve(m *Module) int32 { return m.Ints[r] }

// Resolve returns the float constant this reference points to.
func (r RefFloat) Resolve(m *Module) float64 { return m.Floats[r] }

// Resolve returns the string constant this reference points to.
func (r RefString) Resolve(m *Module) string { return m.Strings[r] }

// Resolve returns the type this reference points to.
func (r RefType) Resolve(m *Module) Type { return m.Types[r] }

// IsVoid reports whether this type reference is the well-known void type,
// which HashLink always places at index 0 of the type pool.
func (r RefType) IsVoid() bool { return r == 0 }

// ResolveAsFun returns the function-signature shape of this type
// reference, if the referenced type is Fun or Method.
func (r RefType) ResolveAsFun(m *Module) (TFun, bool) {
	switch t := r.Resolve(m).(type) {
	case TFun:
		return t, true
	case TMethod:
		return TFun(t), true
	}
	return TFun{}, false
}

// ResolveAsObj returns the object shape of this type reference, if the
// referenced type is Obj or Struct.
func (r RefType) ResolveAsObj(m *Module) (*TypeObj, bool) {
	switch t := r.Resolve(m).(type) {
	case TObj:
		return t.Def, true
	case TStruct:
		return t.Def, true
	}
	return nil, false
}
