// Package decompiler lifts a HashLink function's opcode stream into a
// typed statement tree, and assembles per-class ASTs from the
// functions bound to a type. It is a pure function of its bytecode
// input: two calls against the same function produce the same tree.
package decompiler

import (
	"strconv"

	"hlbcgo/internal/hlast"
	"hlbcgo/internal/hlbytecode"
)

// DecompileCode lifts a single function body to a statement list. It
// never returns an error for soft resolution failures — those degrade
// to inline Unknown/Comment nodes — but a structural violation in the
// scope stack aborts the lift and returns it as an error.
func DecompileCode(mod *hlbytecode.Module, fn *hlbytecode.Function, diag Diagnostics, opts Options) (stmts []hlast.Statement, err error) {
	defer recoverStructural(&err, diagOrDiscard(diag), "decompile_code")

	st := newState(mod, fn, diag, opts)
	for i, op := range fn.Ops {
		dispatch(st, i, op)
		st.scopes.advance(i)
	}
	stmts = st.scopes.finalize()
	applyPostProcess(mod, stmts)
	return stmts, nil
}

func diagOrDiscard(d Diagnostics) Diagnostics {
	if d == nil {
		return discardDiagnostics{}
	}
	return d
}

// dispatch handles one opcode, grouped by semantic area mirroring
// spec.md §4.3-§4.9. Opcodes not recognized here fall through to the
// catch-all at the bottom (spec.md §7: silently ignored, optionally
// commented under Options.CommentUnknownOpcodes).
func dispatch(st *state, i int, op hlbytecode.Op) {
	switch o := op.(type) {

	// --- control flow ---
	case hlbytecode.OpJTrue:
		st.pushJmp(i, o.Offset, unary(hlast.UnaryNot, st.expr(o.Cond)))
	case hlbytecode.OpJFalse:
		st.pushJmp(i, o.Offset, st.expr(o.Cond))
	case hlbytecode.OpJNull:
		st.pushJmp(i, o.Offset, binary(hlast.BinNotEq, st.expr(o.Cond), hlast.NullLit{}))
	case hlbytecode.OpJNotNull:
		st.pushJmp(i, o.Offset, binary(hlast.BinEq, st.expr(o.Cond), hlast.NullLit{}))
	case hlbytecode.OpJSGte:
		st.pushJmp(i, o.Offset, binary(hlast.BinGt, st.expr(o.B), st.expr(o.A)))
	case hlbytecode.OpJUGte:
		st.pushJmp(i, o.Offset, binary(hlast.BinGt, st.expr(o.B), st.expr(o.A)))
	case hlbytecode.OpJSGt:
		st.pushJmp(i, o.Offset, binary(hlast.BinGte, st.expr(o.B), st.expr(o.A)))
	case hlbytecode.OpJSLte:
		st.pushJmp(i, o.Offset, binary(hlast.BinLt, st.expr(o.B), st.expr(o.A)))
	case hlbytecode.OpJSLt:
		st.pushJmp(i, o.Offset, binary(hlast.BinLte, st.expr(o.B), st.expr(o.A)))
	case hlbytecode.OpJULt:
		st.pushJmp(i, o.Offset, binary(hlast.BinLte, st.expr(o.B), st.expr(o.A)))
	case hlbytecode.OpJEq:
		st.pushJmp(i, o.Offset, binary(hlast.BinNotEq, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpJNotEq:
		st.pushJmp(i, o.Offset, binary(hlast.BinEq, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpJAlways:
		dispatchJAlways(st, i, o)
	case hlbytecode.OpSwitch:
		targets := make([]int, len(o.Offsets))
		for k, off := range o.Offsets {
			targets[k] = i + off
		}
		st.scopes.pushSwitch(i+o.End, st.expr(o.Cond), targets)
	case hlbytecode.OpLabel:
		st.scopes.pushLoop(i)
	case hlbytecode.OpRet:
		isVoid := st.fn.RegType(o.Ret).IsVoid()
		switch {
		case st.scopes.hasScopes():
			if isVoid {
				st.pushStmt(hlast.Return{})
			} else {
				st.pushStmt(hlast.Return{Value: st.expr(o.Ret)})
			}
		case !isVoid:
			st.pushStmt(hlast.Return{Value: st.expr(o.Ret)})
		}

	// --- exceptions ---
	case hlbytecode.OpTrap:
		st.scopes.pushTry(i + o.Offset)
	case hlbytecode.OpEndTrap:
		// Acknowledged but not attached to a Catch frame — documented gap
		// (spec.md §9, DESIGN.md's try/catch decision).

	// --- constants ---
	case hlbytecode.OpInt:
		st.pushExpr(i, o.Dst, hlast.IntLit{Value: o.Value.Resolve(st.mod)})
	case hlbytecode.OpFloat:
		st.pushExpr(i, o.Dst, hlast.FloatLit{Value: o.Value.Resolve(st.mod)})
	case hlbytecode.OpBool:
		st.pushExpr(i, o.Dst, hlast.BoolLit{Value: o.Value})
	case hlbytecode.OpString:
		st.pushExpr(i, o.Dst, hlast.StringLit{Value: o.Value.Resolve(st.mod)})
	case hlbytecode.OpNull:
		st.pushExpr(i, o.Dst, hlast.NullLit{})

	// --- operators ---
	case hlbytecode.OpMov:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
		name, _ := st.fn.VarName(st.mod, i)
		var namePtr *string
		if name != "" {
			namePtr = &name
		}
		st.regs[o.Src] = hlast.Variable{Reg: o.Dst, Name: namePtr}
	case hlbytecode.OpAdd:
		st.pushExpr(i, o.Dst, binary(hlast.BinAdd, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpSub:
		st.pushExpr(i, o.Dst, binary(hlast.BinSub, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpMul:
		st.pushExpr(i, o.Dst, binary(hlast.BinMul, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpSDiv:
		st.pushExpr(i, o.Dst, binary(hlast.BinDiv, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpUDiv:
		st.pushExpr(i, o.Dst, binary(hlast.BinDiv, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpSMod:
		st.pushExpr(i, o.Dst, binary(hlast.BinMod, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpUMod:
		st.pushExpr(i, o.Dst, binary(hlast.BinMod, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpShl:
		st.pushExpr(i, o.Dst, binary(hlast.BinShl, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpSShr:
		st.pushExpr(i, o.Dst, binary(hlast.BinShr, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpUShr:
		st.pushExpr(i, o.Dst, binary(hlast.BinShr, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpAnd:
		st.pushExpr(i, o.Dst, binary(hlast.BinAnd, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpOr:
		st.pushExpr(i, o.Dst, binary(hlast.BinOr, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpXor:
		st.pushExpr(i, o.Dst, binary(hlast.BinXor, st.expr(o.A), st.expr(o.B)))
	case hlbytecode.OpNeg:
		st.pushExpr(i, o.Dst, unary(hlast.UnaryNeg, st.expr(o.Src)))
	case hlbytecode.OpNot:
		st.pushExpr(i, o.Dst, unary(hlast.UnaryNot, st.expr(o.Src)))
	case hlbytecode.OpIncr:
		st.pushStmt(hlast.ExprStmt{Expr: unary(hlast.UnaryIncr, st.expr(o.Dst))})
	case hlbytecode.OpDecr:
		st.pushStmt(hlast.ExprStmt{Expr: unary(hlast.UnaryDecr, st.expr(o.Dst))})

	// --- calls ---
	case hlbytecode.OpCall0:
		dispatchCall0(st, i, o)
	case hlbytecode.OpCall1:
		st.pushCall(i, o.Dst, o.Fun, []hlbytecode.Reg{o.Arg0})
	case hlbytecode.OpCall2:
		st.pushCall(i, o.Dst, o.Fun, []hlbytecode.Reg{o.Arg0, o.Arg1})
	case hlbytecode.OpCall3:
		st.pushCall(i, o.Dst, o.Fun, []hlbytecode.Reg{o.Arg0, o.Arg1, o.Arg2})
	case hlbytecode.OpCall4:
		st.pushCall(i, o.Dst, o.Fun, []hlbytecode.Reg{o.Arg0, o.Arg1, o.Arg2, o.Arg3})
	case hlbytecode.OpCallN:
		st.pushCall(i, o.Dst, o.Fun, o.Args)
	case hlbytecode.OpCallMethod:
		dispatchCallMethod(st, i, o)
	case hlbytecode.OpCallThis:
		dispatchCallThis(st, i, o)
	case hlbytecode.OpCallClosure:
		dispatchCallClosure(st, i, o)

	// --- closures ---
	case hlbytecode.OpStaticClosure:
		dispatchStaticClosure(st, i, o)
	case hlbytecode.OpInstanceClosure:
		dispatchInstanceClosure(st, i, o)

	// --- field / array / mem access ---
	case hlbytecode.OpField:
		st.pushExpr(i, o.Dst, hlast.Field{Receiver: st.expr(o.Obj), Name: fieldName(st.mod, st.fn.RegType(o.Obj), o.Field)})
	case hlbytecode.OpSetField:
		dispatchSetField(st, o)
	case hlbytecode.OpGetThis:
		st.pushExpr(i, o.Dst, hlast.Field{Receiver: hlast.This{}, Name: fieldName(st.mod, st.fn.RegType(0), o.Field)})
	case hlbytecode.OpSetThis:
		st.pushStmt(hlast.Assign{
			Lhs: hlast.Field{Receiver: hlast.This{}, Name: fieldName(st.mod, st.fn.RegType(0), o.Field)},
			Rhs: st.expr(o.Src),
		})
	case hlbytecode.OpDynGet:
		st.pushExpr(i, o.Dst, hlast.ArrayIndex{Receiver: st.expr(o.Obj), Index: hlast.StringLit{Value: o.Field.Resolve(st.mod)}})
	case hlbytecode.OpDynSet:
		st.pushStmt(hlast.Assign{
			Lhs: hlast.ArrayIndex{Receiver: st.expr(o.Obj), Index: hlast.StringLit{Value: o.Field.Resolve(st.mod)}},
			Rhs: st.expr(o.Src),
		})
	case hlbytecode.OpArraySize:
		st.pushExpr(i, o.Dst, hlast.Field{Receiver: st.expr(o.Array), Name: "length"})
	case hlbytecode.OpGetArray:
		st.pushExpr(i, o.Dst, hlast.ArrayIndex{Receiver: st.expr(o.Array), Index: st.expr(o.Index)})
	case hlbytecode.OpSetArray:
		st.pushStmt(hlast.Assign{Lhs: hlast.ArrayIndex{Receiver: st.expr(o.Array), Index: st.expr(o.Index)}, Rhs: st.expr(o.Src)})
	case hlbytecode.OpGetMem:
		st.pushExpr(i, o.Dst, hlast.ArrayIndex{Receiver: st.expr(o.Bytes), Index: st.expr(o.Index)})
	case hlbytecode.OpSetMem:
		st.pushStmt(hlast.Assign{Lhs: hlast.ArrayIndex{Receiver: st.expr(o.Bytes), Index: st.expr(o.Index)}, Rhs: st.expr(o.Src)})

	// --- globals ---
	case hlbytecode.OpGetGlobal:
		dispatchGetGlobal(st, i, o)

	// --- values / casts ---
	case hlbytecode.OpToDyn:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpToSFloat:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpToUFloat:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpToInt:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpSafeCast:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpUnsafeCast:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpToVirtual:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpRef:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpUnref:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpRefData:
		st.pushExpr(i, o.Dst, st.expr(o.Src))
	case hlbytecode.OpSetref:
		st.pushStmt(hlast.Assign{Lhs: st.expr(o.Dst), Rhs: st.expr(o.Value)})
	case hlbytecode.OpNew:
		dispatchNew(st, i, o)

	// --- enums ---
	case hlbytecode.OpEnumAlloc:
		st.pushExpr(i, o.Dst, hlast.EnumConstr{Type: st.fn.RegType(o.Dst), Variant: o.Construct})
	case hlbytecode.OpMakeEnum:
		st.pushExpr(i, o.Dst, hlast.EnumConstr{Type: st.fn.RegType(o.Dst), Variant: o.Construct, Args: st.argsExpr(o.Args)})
	case hlbytecode.OpEnumIndex:
		st.pushExpr(i, o.Dst, hlast.Field{Receiver: st.expr(o.Value), Name: "constructorIndex"})
	case hlbytecode.OpEnumField:
		st.pushExpr(i, o.Dst, hlast.Field{Receiver: st.expr(o.Value), Name: strconv.Itoa(o.Field)})
	case hlbytecode.OpSetEnumField:
		dispatchSetEnumField(st, o)

	default:
		if st.options.CommentUnknownOpcodes {
			st.pushStmt(hlast.Comment{Text: "unhandled opcode"})
		}
	}
}

func dispatchJAlways(st *state, i int, o hlbytecode.OpJAlways) {
	if o.Offset < 0 {
		loopStart, ok := st.scopes.lastLoopStart()
		if !ok {
			panic(&StructuralError{"backward jump outside any loop"})
		}
		if jumpTargetsLoop(st.fn, i, loopStart) {
			st.pushStmt(hlast.Continue{})
			return
		}
		st.pushStmt(st.scopes.endLastLoop())
		return
	}

	if targets, ok := st.scopes.lastIsSwitchCtx(); ok {
		pos := indexOf(targets, i)
		if pos < 0 {
			panic(&StructuralError{"no matching offset for switch case"})
		}
		st.scopes.pushSwitchCase(pos)
		return
	}
	if _, ok := st.scopes.lastLoopStart(); ok {
		target := i + o.Offset
		if target >= 0 && target < len(st.fn.Ops) {
			if ja, ok := st.fn.Ops[target].(hlbytecode.OpJAlways); ok && ja.Offset < 0 {
				st.pushStmt(hlast.Break{})
				return
			}
		}
	}
	if st.scopes.lastIsIf() {
		st.scopes.pushElse(i + o.Offset)
		return
	}
	st.diag.Printf("%d: JAlways has no matching scope", i)
}

// jumpTargetsLoop scans forward from i+1 for another backward JAlways
// that targets the same loop header; if found, the jump at i is a
// continue rather than the loop's closing edge (spec.md §4.3).
func jumpTargetsLoop(fn *hlbytecode.Function, i, loopStart int) bool {
	for j := i + 1; j < len(fn.Ops); j++ {
		ja, ok := fn.Ops[j].(hlbytecode.OpJAlways)
		if ok && j+ja.Offset+1 == loopStart {
			return true
		}
	}
	return false
}

func indexOf(xs []int, v int) int {
	for k, x := range xs {
		if x == v {
			return k
		}
	}
	return -1
}

func dispatchCall0(st *state, i int, o hlbytecode.OpCall0) {
	ptr := st.mod.Resolve(o.Fun)
	call := hlast.Call{Callee: funRefExpr(st.mod, o.Fun)}
	if ptr.Sig(st.mod).Ret.IsVoid() {
		st.pushStmt(hlast.ExprStmt{Expr: call})
	} else {
		st.pushExpr(i, o.Dst, call)
	}
}

func dispatchCallMethod(st *state, i int, o hlbytecode.OpCallMethod) {
	receiver := o.Args[0]
	recvType := st.fn.RegType(receiver)
	proto, hasMethod := recvType.Method(st.mod, int(o.Field))
	call := hlast.Call{
		Callee: hlast.Field{Receiver: st.expr(receiver), Name: fieldName(st.mod, recvType, hlbytecode.RefField(o.Field))},
		Args:   st.argsExpr(o.Args[1:]),
	}
	isVoid := hasMethod && st.mod.Resolve(proto.FIndex).Sig(st.mod).Ret.IsVoid()
	if isVoid {
		st.pushStmt(hlast.ExprStmt{Expr: call})
	} else {
		st.pushExpr(i, o.Dst, call)
	}
}

func dispatchCallThis(st *state, i int, o hlbytecode.OpCallThis) {
	thisType := st.fn.RegType(0)
	proto, hasMethod := thisType.Method(st.mod, int(o.Field))
	name := fieldName(st.mod, thisType, hlbytecode.RefField(o.Field))
	call := hlast.Call{Callee: hlast.Field{Receiver: hlast.This{}, Name: name}, Args: st.argsExpr(o.Args)}
	isVoid := hasMethod && st.mod.Resolve(proto.FIndex).Sig(st.mod).Ret.IsVoid()
	if isVoid {
		st.pushStmt(hlast.ExprStmt{Expr: call})
	} else {
		st.pushExpr(i, o.Dst, call)
	}
}

func dispatchCallClosure(st *state, i int, o hlbytecode.OpCallClosure) {
	call := hlast.Call{Callee: st.expr(o.Fun), Args: st.argsExpr(o.Args)}
	sig, ok := st.fn.RegType(o.Fun).ResolveAsFun(st.mod)
	if ok && sig.Ret.IsVoid() {
		st.pushStmt(hlast.ExprStmt{Expr: call})
	} else {
		st.pushExpr(i, o.Dst, call)
	}
}

func dispatchStaticClosure(st *state, i int, o hlbytecode.OpStaticClosure) {
	st.pushStmt(hlast.Comment{Text: "closure: " + callDisplayID(st.mod, o.Fun)})
	body := decompileClosureBody(st, o.Fun)
	st.pushExpr(i, o.Dst, hlast.Closure{FunRef: o.Fun, Body: body})
}

func dispatchInstanceClosure(st *state, i int, o hlbytecode.OpInstanceClosure) {
	st.pushStmt(hlast.Comment{Text: "closure: " + callDisplayID(st.mod, o.Fun)})
	// An Enum-typed captured environment means the closure body fully
	// captures its environment as an anonymous record; anything else is
	// a bound instance method reference (spec.md §4.9, §9).
	if _, isEnum := st.fn.RegType(o.Obj).Resolve(st.mod).(hlbytecode.TEnum); isEnum {
		body := decompileClosureBody(st, o.Fun)
		st.pushExpr(i, o.Dst, hlast.Closure{FunRef: o.Fun, Body: body})
		return
	}
	st.pushExpr(i, o.Dst, hlast.Field{Receiver: st.expr(o.Obj), Name: callDisplayID(st.mod, o.Fun)})
}

// decompileClosureBody lifts a closure's target function body via a
// recursive call, per spec.md §4.9 and §5's bounded-recursion model.
func decompileClosureBody(st *state, fun hlbytecode.RefFun) []hlast.Statement {
	target := st.mod.ResolveAsFn(fun)
	if target == nil {
		return nil
	}
	body, err := DecompileCode(st.mod, target, st.diag, st.options)
	if err != nil {
		return []hlast.Statement{hlast.Comment{Text: "closure body failed to lift: " + err.Error()}}
	}
	return body
}

func dispatchSetField(st *state, o hlbytecode.OpSetField) {
	// Only an Anonymous accumulation consumes this SetField. Any other
	// pending context (e.g. a Constructor awaiting its call) is left
	// untouched on the stack and suppresses the plain field-set Assign
	// below — only a SetField with no pending context at all falls
	// through to it.
	if anon, ok := st.topCtx().(*ctxAnonymous); ok {
		st.popCtx()
		if _, exists := anon.fields[o.Field]; !exists {
			anon.order = append(anon.order, o.Field)
		}
		anon.fields[o.Field] = st.expr(o.Src)
		anon.remaining--
		if anon.remaining <= 0 {
			st.pushExpr(anon.pos, o.Obj, hlast.Anonymous{Type: st.fn.RegType(o.Obj), Fields: anon.fields, Order: anon.order})
		} else {
			st.pushCtx(anon)
		}
		return
	}
	if st.topCtx() != nil {
		return
	}
	st.pushStmt(hlast.Assign{
		Lhs: hlast.Field{Receiver: st.expr(o.Obj), Name: fieldName(st.mod, st.fn.RegType(o.Obj), o.Field)},
		Rhs: st.expr(o.Src),
	})
}

func dispatchGetGlobal(st *state, i int, o hlbytecode.OpGetGlobal) {
	dstType := st.fn.RegType(o.Dst)
	if lit, ok := resolveGlobalStringInit(st.mod, dstType, o.Global); ok {
		st.pushExpr(i, o.Dst, hlast.StringLit{Value: lit})
		return
	}
	switch t := dstType.Resolve(st.mod).(type) {
	case hlbytecode.TObj:
		name := t.Def.Name.Resolve(st.mod)
		st.pushExpr(i, o.Dst, hlast.Variable{Reg: o.Dst, Name: &name})
	case hlbytecode.TStruct:
		name := t.Def.Name.Resolve(st.mod)
		st.pushExpr(i, o.Dst, hlast.Variable{Reg: o.Dst, Name: &name})
	case hlbytecode.TEnum:
		st.pushExpr(i, o.Dst, hlast.Unknown{Message: "unknown enum variant"})
	}
}

// resolveGlobalStringInit handles the special case of a global whose
// declared type is hl's Bytes representation (the runtime's string
// encoding) and whose initializer is a resolvable constant, rendering
// it as a literal instead of a bare variable reference.
func resolveGlobalStringInit(m *hlbytecode.Module, dstType hlbytecode.RefType, global hlbytecode.RefGlobal) (string, bool) {
	if _, ok := dstType.Resolve(m).(hlbytecode.TBytes); !ok {
		return "", false
	}
	for _, init := range m.ConstantInits {
		if init.Global == global && len(init.FieldInts) > 0 {
			return m.Strings[init.FieldInts[0]], true
		}
	}
	return "", false
}

func dispatchSetEnumField(st *state, o hlbytecode.OpSetEnumField) {
	if _, isVar := st.expr(o.Value).(hlast.Variable); !isVar {
		st.pushStmt(hlast.Comment{Text: "closure capture"})
	}
	st.pushStmt(hlast.Assign{
		Lhs: hlast.Field{Receiver: st.expr(o.Value), Name: strconv.Itoa(o.Field)},
		Rhs: st.expr(o.Src),
	})
}

func dispatchNew(st *state, i int, o hlbytecode.OpNew) {
	t := st.fn.RegType(o.Dst)
	switch rt := t.Resolve(st.mod).(type) {
	case hlbytecode.TObj:
		st.pushCtx(ctxConstructor{reg: o.Dst, pos: i})
	case hlbytecode.TStruct:
		st.pushCtx(ctxConstructor{reg: o.Dst, pos: i})
	case hlbytecode.TVirtual:
		st.pushCtx(&ctxAnonymous{pos: i, fields: make(map[hlbytecode.RefField]hlast.Expression, len(rt.Fields)), remaining: len(rt.Fields)})
	default:
		st.pushExpr(i, o.Dst, hlast.ConstructorCall{Type: t})
	}
}

// fieldName resolves a field reference's display name against the
// owning type's flattened field list.
func fieldName(m *hlbytecode.Module, t hlbytecode.RefType, field hlbytecode.RefField) string {
	f, ok := t.Field(m, int(field))
	if !ok {
		return "field" + strconv.Itoa(int(field))
	}
	return f.Name.Resolve(m)
}

func unary(kind hlast.UnaryKind, operand hlast.Expression) hlast.Expression {
	return hlast.UnaryOp{Kind: kind, Operand: operand}
}

func binary(kind hlast.BinaryKind, lhs, rhs hlast.Expression) hlast.Expression {
	return hlast.BinaryOp{Kind: kind, Lhs: lhs, Rhs: rhs}
}
