package decompiler

import (
	"hlbcgo/internal/hlast"
	"hlbcgo/internal/hlbytecode"
)

// applyPostProcess runs the ordered post-processing visitors over a
// lifted statement list in a single traversal (spec.md §4.10). The
// bytecode module is accepted for symmetry with a richer visitor set
// that might need name resolution; the current visitors are purely
// syntactic and do not use it.
func applyPostProcess(_ *hlbytecode.Module, stmts []hlast.Statement) {
	visitStatements(stmts)
}

// visitStatements rewrites every statement in place: expressions are
// folded first (StringConcat, Itos, Trace), then IfExpressions collapses
// a same-lvalue if/else into a single ternary assignment. Running this
// twice over an already-processed tree is a no-op, since every rewrite
// produces a shape none of the visitors match again.
func visitStatements(stmts []hlast.Statement) {
	for i, s := range stmts {
		stmts[i] = foldIfExpression(visitStatement(s))
	}
}

func visitStatement(s hlast.Statement) hlast.Statement {
	switch v := s.(type) {
	case hlast.Assign:
		v.Lhs = visitExpr(v.Lhs)
		v.Rhs = visitExpr(v.Rhs)
		return v
	case hlast.ExprStmt:
		v.Expr = visitExpr(v.Expr)
		return v
	case hlast.Return:
		if v.Value != nil {
			v.Value = visitExpr(v.Value)
		}
		return v
	case hlast.If:
		v.Cond = visitExpr(v.Cond)
		visitStatements(v.Then)
		if v.Else != nil {
			visitStatements(v.Else)
		}
		return v
	case hlast.While:
		v.Cond = visitExpr(v.Cond)
		visitStatements(v.Body)
		return v
	case hlast.Switch:
		v.Scrutinee = visitExpr(v.Scrutinee)
		for i := range v.Cases {
			visitStatements(v.Cases[i].Body)
		}
		return v
	case hlast.Try:
		visitStatements(v.Body)
		if v.Catch != nil {
			visitStatements(v.Catch)
		}
		return v
	case hlast.Throw:
		v.Value = visitExpr(v.Value)
		return v
	default:
		return s
	}
}

func visitExpr(e hlast.Expression) hlast.Expression {
	switch v := e.(type) {
	case hlast.BinaryOp:
		v.Lhs = visitExpr(v.Lhs)
		v.Rhs = visitExpr(v.Rhs)
		return v
	case hlast.UnaryOp:
		v.Operand = visitExpr(v.Operand)
		return v
	case hlast.Field:
		v.Receiver = visitExpr(v.Receiver)
		return v
	case hlast.ArrayIndex:
		v.Receiver = visitExpr(v.Receiver)
		v.Index = visitExpr(v.Index)
		return v
	case hlast.Call:
		v.Callee = visitExpr(v.Callee)
		for i := range v.Args {
			v.Args[i] = visitExpr(v.Args[i])
		}
		return rewriteCall(v)
	case hlast.ConstructorCall:
		for i := range v.Args {
			v.Args[i] = visitExpr(v.Args[i])
		}
		return v
	case hlast.EnumConstr:
		for i := range v.Args {
			v.Args[i] = visitExpr(v.Args[i])
		}
		return v
	case hlast.Anonymous:
		for k, val := range v.Fields {
			v.Fields[k] = visitExpr(val)
		}
		return v
	case hlast.TernaryOp:
		v.Cond = visitExpr(v.Cond)
		v.Then = visitExpr(v.Then)
		v.Else = visitExpr(v.Else)
		return v
	case hlast.Closure:
		visitStatements(v.Body)
		return v
	default:
		return e
	}
}

// rewriteCall applies the StringConcat and Trace folds to a call
// expression whose children have already been visited.
func rewriteCall(c hlast.Call) hlast.Expression {
	f, ok := c.Callee.(hlast.Field)
	if !ok {
		return c
	}
	switch f.Name {
	case "+":
		if len(c.Args) == 1 {
			return stripItos(hlast.BinaryOp{Kind: hlast.BinAdd, Lhs: f.Receiver, Rhs: c.Args[0]})
		}
	case "trace":
		args := c.Args
		if len(args) >= 2 {
			args = args[:len(args)-2]
		}
		name := "trace"
		return hlast.Call{Callee: hlast.Variable{Name: &name}, Args: args}
	}
	return c
}

// stripItos removes synthesized int-to-string conversion calls on
// either operand of a string-concatenation BinaryOp.
func stripItos(b hlast.BinaryOp) hlast.Expression {
	if b.Kind != hlast.BinAdd {
		return b
	}
	b.Lhs = unwrapItos(b.Lhs)
	b.Rhs = unwrapItos(b.Rhs)
	return b
}

func unwrapItos(e hlast.Expression) hlast.Expression {
	c, ok := e.(hlast.Call)
	if !ok || len(c.Args) != 1 {
		return e
	}
	if name, ok := calleeName(c.Callee); ok && name == "itos" {
		return c.Args[0]
	}
	return e
}

func calleeName(e hlast.Expression) (string, bool) {
	switch v := e.(type) {
	case hlast.Variable:
		if v.Name != nil {
			return *v.Name, true
		}
	case hlast.Field:
		return v.Name, true
	}
	return "", false
}

// foldIfExpression collapses `if (c) lhs = a else lhs = b` into a
// single `lhs = (c ? a : b)` assignment when both branches are a lone
// Assign to the same lvalue.
func foldIfExpression(s hlast.Statement) hlast.Statement {
	ifStmt, ok := s.(hlast.If)
	if !ok || ifStmt.Else == nil {
		return s
	}
	if len(ifStmt.Then) != 1 || len(ifStmt.Else) != 1 {
		return s
	}
	thenAssign, ok1 := ifStmt.Then[0].(hlast.Assign)
	elseAssign, ok2 := ifStmt.Else[0].(hlast.Assign)
	if !ok1 || !ok2 || !sameLvalue(thenAssign.Lhs, elseAssign.Lhs) {
		return s
	}
	return hlast.Assign{
		Declaration: thenAssign.Declaration || elseAssign.Declaration,
		Lhs:         thenAssign.Lhs,
		Rhs:         hlast.TernaryOp{Cond: ifStmt.Cond, Then: thenAssign.Rhs, Else: elseAssign.Rhs},
	}
}

func sameLvalue(a, b hlast.Expression) bool {
	switch av := a.(type) {
	case hlast.Variable:
		bv, ok := b.(hlast.Variable)
		return ok && av.Reg == bv.Reg
	case hlast.Field:
		bv, ok := b.(hlast.Field)
		return ok && av.Name == bv.Name && sameLvalue(av.Receiver, bv.Receiver)
	case hlast.ArrayIndex:
		bv, ok := b.(hlast.ArrayIndex)
		return ok && sameLvalue(av.Receiver, bv.Receiver) && sameLvalue(av.Index, bv.Index)
	case hlast.This:
		_, ok := b.(hlast.This)
		return ok
	default:
		return false
	}
}
