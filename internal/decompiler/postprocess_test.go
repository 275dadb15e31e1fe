package decompiler

import (
	"reflect"
	"testing"

	"hlbcgo/internal/hlast"
)

func TestVisitExprFoldsStringConcatAndStripsItos(t *testing.T) {
	itosName := "itos"
	call := hlast.Call{
		Callee: hlast.Field{Receiver: hlast.StringLit{Value: "x"}, Name: "+"},
		Args: []hlast.Expression{
			hlast.Call{Callee: hlast.Variable{Name: &itosName}, Args: []hlast.Expression{hlast.IntLit{Value: 5}}},
		},
	}

	got := visitExpr(call)
	want := hlast.BinaryOp{Kind: hlast.BinAdd, Lhs: hlast.StringLit{Value: "x"}, Rhs: hlast.IntLit{Value: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected the call to fold to %#v, got %#v", want, got)
	}
}

func TestVisitExprTwoArgPlusCallIsNotAConcatFold(t *testing.T) {
	call := hlast.Call{
		Callee: hlast.Field{Receiver: hlast.IntLit{Value: 1}, Name: "+"},
		Args:   []hlast.Expression{hlast.IntLit{Value: 2}, hlast.IntLit{Value: 3}},
	}
	got := visitExpr(call)
	if _, ok := got.(hlast.BinaryOp); ok {
		t.Fatalf("a two-arg '+' call is not the synthesized concat shape and must not fold, got %#v", got)
	}
}

func TestVisitExprStripsTraceDebugArgs(t *testing.T) {
	call := hlast.Call{
		Callee: hlast.Field{Receiver: hlast.This{}, Name: "trace"},
		Args: []hlast.Expression{
			hlast.StringLit{Value: "hello"},
			hlast.StringLit{Value: "main.hx"},
			hlast.IntLit{Value: 12},
		},
	}
	got, ok := visitExpr(call).(hlast.Call)
	if !ok {
		t.Fatalf("expected a Call, got %T", visitExpr(call))
	}
	if len(got.Args) != 1 {
		t.Fatalf("expected the file/line debug args to be stripped, got %d args: %#v", len(got.Args), got.Args)
	}
	v, ok := got.Callee.(hlast.Variable)
	if !ok || v.Name == nil || *v.Name != "trace" {
		t.Fatalf("expected the callee to be rewritten to a bare trace reference, got %#v", got.Callee)
	}
}

func TestVisitExprIsIdempotent(t *testing.T) {
	itosName := "itos"
	call := hlast.Call{
		Callee: hlast.Field{Receiver: hlast.StringLit{Value: "x"}, Name: "+"},
		Args: []hlast.Expression{
			hlast.Call{Callee: hlast.Variable{Name: &itosName}, Args: []hlast.Expression{hlast.IntLit{Value: 5}}},
		},
	}
	once := visitExpr(call)
	twice := visitExpr(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected a second pass to be a no-op: %#v vs %#v", once, twice)
	}
}

func TestFoldIfExpressionRequiresSingleAssignBranches(t *testing.T) {
	ifStmt := hlast.If{
		Cond: hlast.BoolLit{Value: true},
		Then: []hlast.Statement{
			hlast.Assign{Lhs: hlast.Variable{Reg: 1}, Rhs: hlast.IntLit{Value: 1}},
			hlast.ExprStmt{Expr: hlast.IntLit{Value: 2}},
		},
		Else: []hlast.Statement{
			hlast.Assign{Lhs: hlast.Variable{Reg: 1}, Rhs: hlast.IntLit{Value: 2}},
		},
	}
	got := foldIfExpression(ifStmt)
	if _, ok := got.(hlast.If); !ok {
		t.Fatalf("a multi-statement then-branch must not fold to a ternary, got %T", got)
	}
}

func TestFoldIfExpressionRequiresMatchingLvalue(t *testing.T) {
	ifStmt := hlast.If{
		Cond: hlast.BoolLit{Value: true},
		Then: []hlast.Statement{hlast.Assign{Lhs: hlast.Variable{Reg: 1}, Rhs: hlast.IntLit{Value: 1}}},
		Else: []hlast.Statement{hlast.Assign{Lhs: hlast.Variable{Reg: 2}, Rhs: hlast.IntLit{Value: 2}}},
	}
	got := foldIfExpression(ifStmt)
	if _, ok := got.(hlast.If); !ok {
		t.Fatalf("assignments to different registers must not fold, got %T", got)
	}
}
