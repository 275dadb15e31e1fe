package decompiler

import (
	"testing"

	"hlbcgo/internal/hlbytecode"
)

func TestDecompileClassSkipsBoundFields(t *testing.T) {
	boundMethodName := hlbytecode.RefString(4)
	ctorFn := &hlbytecode.Function{
		Name: &boundMethodName,
		Regs: []hlbytecode.RefType{0},
		Ops:  []hlbytecode.Op{hlbytecode.OpRet{Ret: 0}},
	}
	mod := &hlbytecode.Module{
		Types:       []hlbytecode.Type{hlbytecode.TVoid{}},
		Strings:     []string{"Foo", "a", "b", "c", "m"},
		Functions:   []*hlbytecode.Function{ctorFn},
		FIndexTable: []hlbytecode.FIndexEntry{{IsNative: false, Index: 0}},
	}
	fields := []hlbytecode.ObjField{{Name: 1}, {Name: 2}, {Name: 3}}
	obj := &hlbytecode.TypeObj{
		Name:      0,
		OwnFields: fields,
		Fields:    fields,
		Bindings:  map[hlbytecode.RefField]hlbytecode.RefFun{1: 0},
	}

	class := DecompileClass(mod, obj, nil, Options{})

	if class.Name != "Foo" {
		t.Fatalf("expected class name Foo, got %q", class.Name)
	}
	if class.Parent != nil {
		t.Fatalf("expected no parent, got %q", *class.Parent)
	}
	if len(class.Fields) != 2 {
		t.Fatalf("expected the bound field to be skipped, got %d fields: %#v", len(class.Fields), class.Fields)
	}
	if class.Fields[0].Name != "a" || class.Fields[1].Name != "c" {
		t.Fatalf("expected fields [a c] in declaration order, got %#v", class.Fields)
	}
	if len(class.Methods) != 1 {
		t.Fatalf("expected exactly one dynamic method, got %d", len(class.Methods))
	}
	m := class.Methods[0]
	if m.Name != "m" || !m.IsDynamic || m.IsStatic {
		t.Fatalf("unexpected method shape: %#v", m)
	}
	if len(m.Statements) != 0 {
		t.Fatalf("expected the bound method's body to be empty (bare void return), got %#v", m.Statements)
	}
}

func TestDecompileFunctionAsStaticMethod(t *testing.T) {
	mod := &hlbytecode.Module{Types: []hlbytecode.Type{hlbytecode.TVoid{}}}
	name := hlbytecode.RefString(0)
	mod.Strings = []string{"main"}
	fn := &hlbytecode.Function{
		Name: &name,
		Regs: []hlbytecode.RefType{0},
		Ops:  []hlbytecode.Op{hlbytecode.OpRet{Ret: 0}},
	}

	method, err := DecompileFunction(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !method.IsStatic || method.IsDynamic {
		t.Fatalf("expected a plain static method, got %#v", method)
	}
	if method.Name != "main" {
		t.Fatalf("expected method name main, got %q", method.Name)
	}
}
