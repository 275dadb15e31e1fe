package decompiler

import (
	"reflect"
	"testing"

	"hlbcgo/internal/hlast"
	"hlbcgo/internal/hlbytecode"
)

// All fixtures below hand-assemble a minimal Module/Function the way a
// real bytecode loader would, rather than parsing source text: the
// decompiler's input is already-parsed bytecode, not Haxe source.

func strp(s string) *string { return &s }

func TestDecompileVoidReturnOnly(t *testing.T) {
	mod := &hlbytecode.Module{Types: []hlbytecode.Type{hlbytecode.TVoid{}}}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{0},
		Ops:  []hlbytecode.Op{hlbytecode.OpRet{Ret: 0}},
	}
	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 0 {
		t.Fatalf("expected no statements for a bare void return, got %#v", stmts)
	}
}

func TestDecompileWhileLoop(t *testing.T) {
	mod := &hlbytecode.Module{
		Types:   []hlbytecode.Type{hlbytecode.TVoid{}, hlbytecode.TI32{}},
		Strings: []string{"x"},
	}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{0, 1, 1, 1},
		Ops: []hlbytecode.Op{
			/*0*/ hlbytecode.OpInt{Dst: 1, Value: 0},
			/*1*/ hlbytecode.OpLabel{},
			/*2*/ hlbytecode.OpJSLt{A: 1, B: 2, Offset: 2},
			/*3*/ hlbytecode.OpAdd{Dst: 1, A: 1, B: 3},
			/*4*/ hlbytecode.OpJAlways{Offset: -3},
			/*5*/ hlbytecode.OpRet{Ret: 0},
		},
		Assigns: []hlbytecode.VarAssign{{Name: 0, Pos: 4}},
	}
	// One int constant so OpInt resolves; value itself is irrelevant here.
	mod.Ints = []int32{0}

	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one top-level statement (the while loop), got %d: %#v", len(stmts), stmts)
	}
	while, ok := stmts[0].(hlast.While)
	if !ok {
		t.Fatalf("expected a While statement, got %T", stmts[0])
	}
	if len(while.Body) != 1 {
		t.Fatalf("expected the loop body to hold one statement, got %d", len(while.Body))
	}
	assign, ok := while.Body[0].(hlast.Assign)
	if !ok {
		t.Fatalf("expected the loop body statement to be an Assign, got %T", while.Body[0])
	}
	if !assign.Declaration {
		t.Fatalf("expected the loop body's first assignment to x to be a declaration")
	}
	if _, ok := assign.Rhs.(hlast.BinaryOp); !ok {
		t.Fatalf("expected the assignment's rhs to be a BinaryOp, got %T", assign.Rhs)
	}
}

func TestDecompileIfElseFoldsToTernary(t *testing.T) {
	mod := &hlbytecode.Module{
		Types:   []hlbytecode.Type{hlbytecode.TVoid{}, hlbytecode.TI32{}},
		Ints:    []int32{0, 1},
		Strings: []string{"x"},
	}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{1, 1, 1, 0},
		Ops: []hlbytecode.Op{
			/*0*/ hlbytecode.OpBool{Dst: 0, Value: true},
			/*1*/ hlbytecode.OpJFalse{Cond: 0, Offset: 2},
			/*2*/ hlbytecode.OpInt{Dst: 1, Value: 0}, // then: x = 0
			/*3*/ hlbytecode.OpJAlways{Offset: 2},
			/*4*/ hlbytecode.OpInt{Dst: 1, Value: 1}, // else: x = 1
			/*5*/ hlbytecode.OpToDyn{Dst: 2, Src: 2}, // filler so the else scope's end-offset falls inside the op range
			/*6*/ hlbytecode.OpRet{Ret: 3},            // reg 3 is void-typed; the fold must be the only statement
		},
		Assigns: []hlbytecode.VarAssign{
			{Name: 0, Pos: 3},
			{Name: 0, Pos: 5},
		},
	}

	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected the if/else to fold into a single assignment, got %d statements: %#v", len(stmts), stmts)
	}
	assign, ok := stmts[0].(hlast.Assign)
	if !ok {
		t.Fatalf("expected an Assign, got %T", stmts[0])
	}
	tern, ok := assign.Rhs.(hlast.TernaryOp)
	if !ok {
		t.Fatalf("expected the assignment's rhs to be a TernaryOp, got %T", assign.Rhs)
	}
	if _, ok := tern.Then.(hlast.IntLit); !ok {
		t.Fatalf("expected the ternary's then branch to be an int literal, got %T", tern.Then)
	}
	if _, ok := tern.Else.(hlast.IntLit); !ok {
		t.Fatalf("expected the ternary's else branch to be an int literal, got %T", tern.Else)
	}
}

func TestDecompileConstructorStitching(t *testing.T) {
	objDef := &hlbytecode.TypeObj{Name: 0}
	mod := &hlbytecode.Module{
		Types:   []hlbytecode.Type{hlbytecode.TVoid{}, hlbytecode.TObj{Def: objDef}, hlbytecode.TI32{}},
		Ints:    []int32{0},
		Strings: []string{"Point", "obj"},
	}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{1, 2, 0},
		Ops: []hlbytecode.Op{
			/*0*/ hlbytecode.OpNew{Dst: 0},
			/*1*/ hlbytecode.OpInt{Dst: 1, Value: 0},
			/*2*/ hlbytecode.OpCall2{Dst: 2, Fun: 99, Arg0: 0, Arg1: 1},
			/*3*/ hlbytecode.OpRet{Ret: 2},
		},
		Assigns: []hlbytecode.VarAssign{{Name: 1, Pos: 1}},
	}

	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one statement (no separate New statement), got %d: %#v", len(stmts), stmts)
	}
	assign, ok := stmts[0].(hlast.Assign)
	if !ok {
		t.Fatalf("expected an Assign, got %T", stmts[0])
	}
	ctor, ok := assign.Rhs.(hlast.ConstructorCall)
	if !ok {
		t.Fatalf("expected a ConstructorCall, got %T", assign.Rhs)
	}
	if ctor.Type != 1 {
		t.Fatalf("expected the constructor call's type to be the New's destination type, got %v", ctor.Type)
	}
	if len(ctor.Args) != 1 {
		t.Fatalf("expected one constructor arg (the receiver is consumed, not passed), got %d", len(ctor.Args))
	}
	if lit, ok := ctor.Args[0].(hlast.IntLit); !ok || lit.Value != 0 {
		t.Fatalf("expected the sole constructor arg to be IntLit(0), got %#v", ctor.Args[0])
	}
}

func TestDecompileAnonymousStructure(t *testing.T) {
	virt := hlbytecode.TVirtual{Fields: []hlbytecode.ObjField{{Name: 1}, {Name: 2}}}
	mod := &hlbytecode.Module{
		Types:   []hlbytecode.Type{hlbytecode.TVoid{}, virt, hlbytecode.TI32{}},
		Ints:    []int32{10, 20},
		Strings: []string{"obj", "a", "b"},
	}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{1, 2, 2, 0},
		Ops: []hlbytecode.Op{
			/*0*/ hlbytecode.OpNew{Dst: 0},
			/*1*/ hlbytecode.OpInt{Dst: 1, Value: 0},
			/*2*/ hlbytecode.OpSetField{Obj: 0, Field: 0, Src: 1},
			/*3*/ hlbytecode.OpInt{Dst: 2, Value: 1},
			/*4*/ hlbytecode.OpSetField{Obj: 0, Field: 1, Src: 2},
			/*5*/ hlbytecode.OpRet{Ret: 3},
		},
		Assigns: []hlbytecode.VarAssign{{Name: 0, Pos: 1}},
	}

	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected the field-sets to fold into a single statement, got %d: %#v", len(stmts), stmts)
	}
	assign, ok := stmts[0].(hlast.Assign)
	if !ok {
		t.Fatalf("expected an Assign, got %T", stmts[0])
	}
	anon, ok := assign.Rhs.(hlast.Anonymous)
	if !ok {
		t.Fatalf("expected an Anonymous structure literal, got %T", assign.Rhs)
	}
	if len(anon.Fields) != 2 {
		t.Fatalf("expected both fields to be captured, got %d", len(anon.Fields))
	}
	if lit, ok := anon.Fields[0].(hlast.IntLit); !ok || lit.Value != 10 {
		t.Fatalf("field 0 mismatch: %#v", anon.Fields[0])
	}
	if lit, ok := anon.Fields[1].(hlast.IntLit); !ok || lit.Value != 20 {
		t.Fatalf("field 1 mismatch: %#v", anon.Fields[1])
	}
}

func TestDecompileContinueOnRepeatedBackwardJump(t *testing.T) {
	mod := &hlbytecode.Module{Types: []hlbytecode.Type{hlbytecode.TVoid{}}}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{0},
		Ops: []hlbytecode.Op{
			/*0*/ hlbytecode.OpInt{Dst: 0, Value: 0},
			/*1*/ hlbytecode.OpLabel{},
			/*2*/ hlbytecode.OpJAlways{Offset: -2}, // targets the header (2-2+1=1); another backward jump below also targets it
			/*3*/ hlbytecode.OpJAlways{Offset: -3}, // the loop's real closing edge (3-3+1=1)
			/*4*/ hlbytecode.OpRet{Ret: 0},
		},
	}
	mod.Ints = []int32{0}

	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected one While statement, got %#v", stmts)
	}
	while, ok := stmts[0].(hlast.While)
	if !ok {
		t.Fatalf("expected a While, got %T", stmts[0])
	}
	if len(while.Body) != 1 {
		t.Fatalf("expected a single continue in the loop body, got %#v", while.Body)
	}
	if _, ok := while.Body[0].(hlast.Continue); !ok {
		t.Fatalf("expected Continue, got %T", while.Body[0])
	}
}

func TestDecompileBreakOnForwardJumpToLoopClose(t *testing.T) {
	mod := &hlbytecode.Module{Types: []hlbytecode.Type{hlbytecode.TVoid{}}}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{0},
		Ops: []hlbytecode.Op{
			/*0*/ hlbytecode.OpInt{Dst: 0, Value: 0},
			/*1*/ hlbytecode.OpLabel{},
			/*2*/ hlbytecode.OpJAlways{Offset: 2}, // lands on op 5, just past the loop's backward-closing edge
			/*3*/ hlbytecode.OpInt{Dst: 0, Value: 0},
			/*4*/ hlbytecode.OpJAlways{Offset: -3}, // the loop's real closing edge, header = 1
			/*5*/ hlbytecode.OpRet{Ret: 0},
		},
	}
	mod.Ints = []int32{0}

	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected one While statement, got %#v", stmts)
	}
	while, ok := stmts[0].(hlast.While)
	if !ok {
		t.Fatalf("expected a While, got %T", stmts[0])
	}
	if len(while.Body) != 1 {
		t.Fatalf("expected a single break in the loop body, got %#v", while.Body)
	}
	if _, ok := while.Body[0].(hlast.Break); !ok {
		t.Fatalf("expected Break, got %T", while.Body[0])
	}
}

func TestDecompileCallThisReturn(t *testing.T) {
	objDef := &hlbytecode.TypeObj{
		Name:      0,
		Fields:    []hlbytecode.ObjField{{Name: 1}},
		OwnFields: []hlbytecode.ObjField{{Name: 1}},
	}
	mod := &hlbytecode.Module{
		Types:   []hlbytecode.Type{hlbytecode.TVoid{}, hlbytecode.TObj{Def: objDef}, hlbytecode.TI32{}},
		Strings: []string{"Foo", "f"},
	}
	parent := hlbytecode.RefType(1)
	fn := &hlbytecode.Function{
		Parent: &parent,
		Regs:   []hlbytecode.RefType{1, 2},
		Ops: []hlbytecode.Op{
			/*0*/ hlbytecode.OpCallThis{Dst: 1, Field: 0},
			/*1*/ hlbytecode.OpRet{Ret: 1},
		},
	}

	stmts, err := DecompileCode(mod, fn, nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected exactly one Return statement, got %d: %#v", len(stmts), stmts)
	}
	ret, ok := stmts[0].(hlast.Return)
	if !ok {
		t.Fatalf("expected a Return, got %T", stmts[0])
	}
	call, ok := ret.Value.(hlast.Call)
	if !ok {
		t.Fatalf("expected the return value to be a Call, got %T", ret.Value)
	}
	field, ok := call.Callee.(hlast.Field)
	if !ok {
		t.Fatalf("expected the call's callee to be a Field access, got %T", call.Callee)
	}
	if _, ok := field.Receiver.(hlast.This); !ok {
		t.Fatalf("expected the field's receiver to be This, got %T", field.Receiver)
	}
	if field.Name != "f" {
		t.Fatalf("expected the field name to resolve to %q, got %q", "f", field.Name)
	}
}

func TestMissingRegisterDegradesToUnknown(t *testing.T) {
	mod := &hlbytecode.Module{Types: []hlbytecode.Type{hlbytecode.TVoid{}, hlbytecode.TI32{}}}
	fn := &hlbytecode.Function{
		Regs: []hlbytecode.RefType{1, 1},
		Ops: []hlbytecode.Op{
			// Reg 1 is read (via Add) before anything ever wrote it.
			hlbytecode.OpAdd{Dst: 0, A: 0, B: 1},
			hlbytecode.OpRet{Ret: 0},
		},
	}
	st := newState(mod, fn, nil, Options{})
	got := st.expr(1)
	if _, ok := got.(hlast.Unknown); !ok {
		t.Fatalf("expected reading an unwritten register to yield Unknown, got %T", got)
	}
	if !reflect.DeepEqual(got, hlast.Unknown{Message: "missing expr"}) {
		t.Fatalf("unexpected Unknown payload: %#v", got)
	}
}
