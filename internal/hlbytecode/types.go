package hlbytecode

// Type is the closed set of HashLink type-pool entries. Only a tag
// interface is needed by the decompiler; concrete shape data lives on
// the variant carrying it (Obj/Struct/Virtual/Enum/Fun/Method).
type Type interface {
	typeTag() string
}

// Primitive and opaque types that carry no extra shape data.
type (
	TVoid    struct{}
	TUI8     struct{}
	TUI16    struct{}
	TI32     struct{}
	TI64     struct{}
	TF32     struct{}
	TF64     struct{}
	TBool    struct{}
	TBytes   struct{}
	TDyn     struct{}
	TArray   struct{}
	TType    struct{}
	TDynObj  struct{}
)

func (TVoid) typeTag() string   { return "Void" }
func (TUI8) typeTag() string    { return "UI8" }
func (TUI16) typeTag() string   { return "UI16" }
func (TI32) typeTag() string    { return "I32" }
func (TI64) typeTag() string    { return "I64" }
func (TF32) typeTag() string    { return "F32" }
func (TF64) typeTag() string    { return "F64" }
func (TBool) typeTag() string   { return "Bool" }
func (TBytes) typeTag() string  { return "Bytes" }
func (TDyn) typeTag() string    { return "Dyn" }
func (TArray) typeTag() string  { return "Array" }
func (TType) typeTag() string   { return "Type" }
func (TDynObj) typeTag() string { return "DynObj" }

// TRef is an indirection to another type (used for `ref T` parameters).
type TRef struct{ Of RefType }

func (TRef) typeTag() string { return "Ref" }

// TNull wraps a nullable value of another type.
type TNull struct{ Of RefType }

func (TNull) typeTag() string { return "Null" }

// TPacked wraps a packed (unboxed struct) value of another type.
type TPacked struct{ Of RefType }

func (TPacked) typeTag() string { return "Packed" }

// TAbstract is an opaque host type identified only by name.
type TAbstract struct{ Name RefString }

func (TAbstract) typeTag() string { return "Abstract" }

// TFun is the shape shared by function and method types.
type TFun struct {
	Args []RefType
	Ret  RefType
}

func (TFun) typeTag() string { return "Fun" }

// TMethod is a TFun bound as an instance method signature.
type TMethod TFun

func (TMethod) typeTag() string { return "Method" }

// ObjField is one field of an Obj/Struct/Virtual type.
type ObjField struct {
	Name RefString
	Type RefType
}

// ObjProto is a non-dynamic method bound to an Obj/Struct type.
type ObjProto struct {
	Name    RefString
	FIndex  RefFun
	PIndex  int
}

// TypeObj is the shape shared by Obj and Struct types: a class with
// fields, methods ("protos"), dynamic-method bindings, and an optional
// parent.
type TypeObj struct {
	Name       RefString
	Super      *RefType
	Global     RefGlobal
	OwnFields  []ObjField
	Protos     []ObjProto
	// Bindings maps a field index to the findex of the function backing
	// it, i.e. this "field" is actually a dynamic method.
	Bindings map[RefField]RefFun

	// Fields is OwnFields prefixed with every ancestor's OwnFields,
	// root-most first. Not part of the wire format; filled in by the
	// bytecode loader the way the parser would.
	Fields []ObjField
}

// GetStaticType returns the static counterpart of this class, resolved
// through its Global slot, mirroring the reference decompiler's
// TypeObj::get_static_type.
func (o *TypeObj) GetStaticType(m *Module) (*TypeObj, bool) {
	if o.Global <= 0 || int(o.Global)-1 >= len(m.Globals) {
		return nil, false
	}
	globalType := m.Globals[o.Global-1]
	return typeObjOrNil(globalType.Resolve(m))
}

func (TObj) typeTag() string    { return "Obj" }
func (TStruct) typeTag() string { return "Struct" }

// TObj is a reference-semantics class type.
type TObj struct{ Def *TypeObj }

// TStruct is a value-semantics class type (same shape as TObj).
type TStruct struct{ Def *TypeObj }

// TVirtual is a structural (anonymous) object type identified by its
// field list rather than by name.
type TVirtual struct{ Fields []ObjField }

func (TVirtual) typeTag() string { return "Virtual" }

// EnumConstruct is one variant of an Enum type.
type EnumConstruct struct {
	Name   RefString // may be empty for an unnamed variant
	Params []RefType
}

// TEnum is a tagged-union type.
type TEnum struct {
	Name       RefString
	Global     RefGlobal
	Constructs []EnumConstruct
}

func (TEnum) typeTag() string { return "Enum" }

// typeObjOrNil mirrors Type::get_type_obj, used by the class lifter.
func typeObjOrNil(t Type) (*TypeObj, bool) {
	switch v := t.(type) {
	case TObj:
		return v.Def, true
	case TStruct:
		return v.Def, true
	}
	return nil, false
}
