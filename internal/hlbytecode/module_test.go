package hlbytecode

import "testing"

func TestTypeNameBreaksSelfReferentialCycles(t *testing.T) {
	// Type 1 is a Virtual whose only field refers back to type 1 itself,
	// the shape a linked-list node's structural type would take.
	mod := &Module{
		Strings: []string{"next"},
		Types: []Type{
			TVoid{},
			TVirtual{Fields: []ObjField{{Name: 0, Type: 1}}},
		},
	}
	got := TypeName(mod, 1, nil)
	want := "{ next: Self }"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTypeNameResolvesNamedObj(t *testing.T) {
	def := &TypeObj{Name: 0}
	mod := &Module{
		Strings: []string{"Point"},
		Types:   []Type{TVoid{}, TObj{Def: def}},
	}
	if got := TypeName(mod, 1, nil); got != "Point" {
		t.Fatalf("expected Point, got %q", got)
	}
}

func TestResolveAsObjOnlyMatchesObjAndStruct(t *testing.T) {
	objDef := &TypeObj{Name: 0}
	mod := &Module{
		Strings: []string{"Foo"},
		Types:   []Type{TVoid{}, TObj{Def: objDef}, TI32{}},
	}
	if _, ok := RefType(1).ResolveAsObj(mod); !ok {
		t.Fatalf("expected Obj to resolve as an object shape")
	}
	if _, ok := RefType(2).ResolveAsObj(mod); ok {
		t.Fatalf("expected a primitive type not to resolve as an object shape")
	}
}

func TestFunctionVarNameAndArgName(t *testing.T) {
	mod := &Module{Strings: []string{"total", "x"}}
	fn := &Function{
		Assigns: []VarAssign{
			{Name: 1, Pos: 0}, // argument name for reg 0
			{Name: 0, Pos: 3}, // local introduced at opcode index 2
		},
	}
	if name, ok := fn.ArgName(mod, 0); !ok || name != "x" {
		t.Fatalf("expected arg 0 to resolve to x, got %q (%v)", name, ok)
	}
	if name, ok := fn.VarName(mod, 2); !ok || name != "total" {
		t.Fatalf("expected the variable introduced at opcode 2 to be total, got %q (%v)", name, ok)
	}
	if _, ok := fn.VarName(mod, 5); ok {
		t.Fatalf("expected no variable name at an opcode position with no assign entry")
	}
}
