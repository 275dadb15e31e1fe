package decompiler

import (
	"hlbcgo/internal/hlast"
	"hlbcgo/internal/hlbytecode"
)

// exprCtx is a pending multi-opcode expression under construction: a
// constructor call waiting for its call opcode, or an anonymous
// structure waiting for its field-set opcodes (spec.md §4.5, §9 "second
// small pass done lazily").
type exprCtx interface{ exprCtxMarker() }

type ctxConstructor struct {
	reg hlbytecode.Reg
	pos int
}

type ctxAnonymous struct {
	pos       int
	fields    map[hlbytecode.RefField]hlast.Expression
	order     []hlbytecode.RefField
	remaining int
}

func (ctxConstructor) exprCtxMarker() {}
func (*ctxAnonymous) exprCtxMarker()  {}

// state is the per-function working memory the lifter mutates while
// walking one function's opcode stream: the scope stack, the register
// expression map, the pending multi-opcode context stack, and the set
// of already-declared variable names.
type state struct {
	scopes  *scopeStack
	regs    map[hlbytecode.Reg]hlast.Expression
	ctxs    []exprCtx
	seen    map[string]bool
	fn      *hlbytecode.Function
	mod     *hlbytecode.Module
	diag    Diagnostics
	options Options
}

// Options controls optional lifter behavior (spec.md §7's opt-in
// "comment unknown opcodes" and similar debug-only toggles).
type Options struct {
	// CommentUnknownOpcodes asks the lifter to emit a Comment for any
	// opcode it does not recognize, instead of silently ignoring it.
	CommentUnknownOpcodes bool
}

func newState(mod *hlbytecode.Module, fn *hlbytecode.Function, diag Diagnostics, opts Options) *state {
	if diag == nil {
		diag = discardDiagnostics{}
	}
	st := &state{
		scopes:  newScopeStack(),
		regs:    make(map[hlbytecode.Reg]hlast.Expression, len(fn.Regs)),
		seen:    make(map[string]bool),
		fn:      fn,
		mod:     mod,
		diag:    diag,
		options: opts,
	}

	start := 0
	if fn.IsMethod() || (fn.Name != nil && fn.Name.Resolve(mod) == "__constructor__") {
		st.regs[0] = hlast.This{}
		start = 1
	}

	args := fn.Args(mod)
	for i := start; i < len(args); i++ {
		r := hlbytecode.Reg(i)
		name, ok := fn.ArgName(mod, i-start)
		var namePtr *string
		if ok {
			namePtr = &name
			st.seen[name] = true
		}
		st.regs[r] = hlast.Variable{Reg: r, Name: namePtr}
	}

	return st
}

// pushStmt appends a statement to the innermost open scope (delegates
// to the scope stack, which is switch-case aware).
func (s *state) pushStmt(stmt hlast.Statement) { s.scopes.pushStmt(stmt) }

// pushExpr records dst's computed expression, materializing it as a
// declared-or-reassigned variable when the debug assigns table names
// opcode position i; otherwise the expression is left inlined for
// future reads of dst (spec.md §4.2).
func (s *state) pushExpr(i int, dst hlbytecode.Reg, expr hlast.Expression) {
	name, ok := s.fn.VarName(s.mod, i)
	if !ok {
		s.regs[dst] = expr
		return
	}
	s.regs[dst] = hlast.Variable{Reg: dst, Name: &name}
	declaration := !s.seen[name]
	s.seen[name] = true
	s.pushStmt(hlast.Assign{
		Declaration: declaration,
		Lhs:         hlast.Variable{Reg: dst, Name: &name},
		Rhs:         expr,
	})
}

// expr returns the current symbolic expression of reg, falling back to
// Unknown("missing expr") per spec.md §3's invariant (never panics).
func (s *state) expr(reg hlbytecode.Reg) hlast.Expression {
	if e, ok := s.regs[reg]; ok {
		return e
	}
	return hlast.Unknown{Message: "missing expr"}
}

// argsExpr expands the expression of each register in order.
func (s *state) argsExpr(regs []hlbytecode.Reg) []hlast.Expression {
	out := make([]hlast.Expression, len(regs))
	for i, r := range regs {
		out[i] = s.expr(r)
	}
	return out
}

func (s *state) topCtx() exprCtx {
	if len(s.ctxs) == 0 {
		return nil
	}
	return s.ctxs[len(s.ctxs)-1]
}

func (s *state) popCtx() exprCtx {
	if len(s.ctxs) == 0 {
		return nil
	}
	top := s.ctxs[len(s.ctxs)-1]
	s.ctxs = s.ctxs[:len(s.ctxs)-1]
	return top
}

func (s *state) pushCtx(c exprCtx) { s.ctxs = append(s.ctxs, c) }

// pushCall folds dst = call(fun, args) into a ConstructorCall when the
// topmost pending context is a matching Constructor; otherwise emits
// the ordinary call expression/statement (spec.md §4.5).
func (s *state) pushCall(i int, dst hlbytecode.Reg, fun hlbytecode.RefFun, args []hlbytecode.Reg) {
	if len(args) > 0 {
		if c, ok := s.topCtx().(ctxConstructor); ok && c.reg == args[0] {
			s.popCtx()
			s.pushExpr(c.pos, c.reg, hlast.ConstructorCall{
				Type: s.fn.RegType(c.reg),
				Args: s.argsExpr(args[1:]),
			})
			return
		}
	}

	s.pushStmt(hlast.Comment{Text: callDisplayID(s.mod, fun)})

	ptr := s.mod.Resolve(fun)
	var call hlast.Expression
	if ptr.Fun != nil && ptr.Fun.IsMethod() && len(args) > 0 {
		call = hlast.Call{
			Callee: hlast.Field{Receiver: s.expr(args[0]), Name: ptr.Name(s.mod)},
			Args:   s.argsExpr(args[1:]),
		}
	} else {
		call = hlast.Call{Callee: funRefExpr(s.mod, fun), Args: s.argsExpr(args)}
	}

	if ptr.Sig(s.mod).Ret.IsVoid() {
		s.pushStmt(hlast.ExprStmt{Expr: call})
	} else {
		s.pushExpr(i, dst, call)
	}
}

// pushJmp processes a conditional-jump's fall-through condition,
// distinguishing a loop's exit test from a plain if (spec.md §4.3).
func (s *state) pushJmp(i int, offset int, cond hlast.Expression) {
	if offset <= 0 {
		return
	}
	target := i + offset
	if target < len(s.fn.Ops) {
		if ja, ok := s.fn.Ops[target].(hlbytecode.OpJAlways); ok && ja.Offset < 0 {
			if loopCond := s.scopes.lastLoopCond(); loopCond != nil {
				if _, stillUnknown := (*loopCond).(hlast.Unknown); stillUnknown {
					*loopCond = cond
					return
				}
			}
		}
	}
	s.scopes.pushIf(target, cond)
}

// funRefExpr renders a bare function reference as a Variable carrying
// its display name, used as a call's callee when it isn't bound
// through a method receiver.
func funRefExpr(m *hlbytecode.Module, fun hlbytecode.RefFun) hlast.Expression {
	name := callDisplayID(m, fun)
	return hlast.Variable{Name: &name}
}

// callDisplayID renders a function reference's display name for
// diagnostic comments and bare call callees.
func callDisplayID(m *hlbytecode.Module, fun hlbytecode.RefFun) string {
	ptr := m.Resolve(fun)
	return ptr.Name(m)
}
