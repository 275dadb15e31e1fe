package decompiler

import "hlbcgo/internal/hlast"

// scopeKind tags what kind of structured control-flow frame a scope
// represents.
type scopeKind int

const (
	scopeRoot scopeKind = iota
	scopeLoop
	scopeIf
	scopeElse
	scopeSwitch
	scopeTry
)

// scope is one frame of the scope-reconstruction stack. The root and
// loop scopes have no end-offset (a loop closes when its backward jump
// is lifted); every other scope closes exactly once, at the opcode
// index recorded when it was pushed.
type scope struct {
	kind   scopeKind
	end    int // absolute opcode index at which this scope closes; unused for Root, -1 for Loop
	stmts  []hlast.Statement

	// Loop-only.
	loopHeader int
	loopCond   hlast.Expression // Unknown until the exit jump is discovered

	// If-only: kept so push_else can convert it.
	ifCond hlast.Expression

	// Switch-only.
	scrutinee   hlast.Expression
	caseTargets []int
	cases       []hlast.SwitchCase
	curCase     int // index into cases currently accumulating statements
}

// scopeStack reconstructs structured control flow from raw jump
// offsets. It always holds at least the root scope until the function
// has been finalized (spec.md §3 invariant).
type scopeStack struct {
	frames []*scope
}

func newScopeStack() *scopeStack {
	return &scopeStack{frames: []*scope{{kind: scopeRoot}}}
}

func (s *scopeStack) top() *scope { return s.frames[len(s.frames)-1] }

// hasScopes reports whether any non-root scope is currently open.
func (s *scopeStack) hasScopes() bool { return len(s.frames) > 1 }

// pushStmt appends a statement to the innermost open scope. Inside a
// Switch scope this appends to the currently accumulating case instead
// of the scope's own statement list.
func (s *scopeStack) pushStmt(stmt hlast.Statement) {
	top := s.top()
	if top.kind == scopeSwitch {
		top.cases[top.curCase].Body = append(top.cases[top.curCase].Body, stmt)
		return
	}
	top.stmts = append(top.stmts, stmt)
}

func (s *scopeStack) pushLoop(header int) {
	s.frames = append(s.frames, &scope{kind: scopeLoop, end: -1, loopHeader: header, loopCond: hlast.Unknown{Message: "unresolved loop condition"}})
}

func (s *scopeStack) pushIf(end int, cond hlast.Expression) {
	s.frames = append(s.frames, &scope{kind: scopeIf, end: end, ifCond: cond})
}

// pushElse closes the just-finished If scope itself — folding it into
// the enclosing scope's statements right away, rather than waiting for
// advance to reach it, since an Else frame is about to sit on top of it
// — and opens a new Else scope in its place. When the Else scope later
// closes via advance, it attaches its statements back onto this same If.
func (s *scopeStack) pushElse(end int) {
	top := s.top()
	if top.kind != scopeIf {
		panic(&StructuralError{"push_else with no open if"})
	}
	s.frames = s.frames[:len(s.frames)-1]
	s.pushStmt(hlast.If{Cond: top.ifCond, Then: top.stmts})
	s.frames = append(s.frames, &scope{kind: scopeElse, end: end})
}

func (s *scopeStack) pushSwitch(end int, scrutinee hlast.Expression, caseTargets []int) {
	f := &scope{
		kind:        scopeSwitch,
		end:         end,
		scrutinee:   scrutinee,
		caseTargets: caseTargets,
		// Slot 0 is the implicit default case (the segment before any
		// push_switch_case); one slot per entry in caseTargets follows.
		cases:   make([]hlast.SwitchCase, len(caseTargets)+1),
		curCase: 0,
	}
	s.frames = append(s.frames, f)
}

// pushSwitchCase starts accumulating statements into the case at
// caseIndex (a position within the switch's case-target vector, so the
// overall case slot is caseIndex+1 once the leading default is
// accounted for).
func (s *scopeStack) pushSwitchCase(caseIndex int) {
	top := s.top()
	if top.kind != scopeSwitch {
		panic(&StructuralError{"push_switch_case with no open switch"})
	}
	slot := caseIndex + 1
	if slot < 0 || slot >= len(top.cases) {
		panic(&StructuralError{"push_switch_case index out of range"})
	}
	top.curCase = slot
}

func (s *scopeStack) pushTry(end int) {
	s.frames = append(s.frames, &scope{kind: scopeTry, end: end})
}

// lastIsIf reports whether the innermost open scope is an If.
func (s *scopeStack) lastIsIf() bool { return s.top().kind == scopeIf }

// lastIsSwitchCtx returns the current switch's case targets, if the
// innermost open scope is a Switch.
func (s *scopeStack) lastIsSwitchCtx() ([]int, bool) {
	top := s.top()
	if top.kind != scopeSwitch {
		return nil, false
	}
	return top.caseTargets, true
}

// lastLoopStart returns the innermost loop's header index, searching
// outward through enclosing scopes (an If/Switch/Try may be nested
// inside a loop).
func (s *scopeStack) lastLoopStart() (int, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == scopeLoop {
			return s.frames[i].loopHeader, true
		}
	}
	return 0, false
}

// lastLoopCond returns a pointer to the innermost loop's mutable
// condition expression, so the caller can both read and assign it.
func (s *scopeStack) lastLoopCond() *hlast.Expression {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].kind == scopeLoop {
			return &s.frames[i].loopCond
		}
	}
	return nil
}

// endLastLoop closes the innermost loop explicitly (used when a
// backward JAlways fires) and returns the resulting While statement.
// Panics if the innermost scope is not a loop — a structural violation
// per spec.md §7.
func (s *scopeStack) endLastLoop() hlast.While {
	top := s.top()
	if top.kind != scopeLoop {
		panic(&StructuralError{"end_last_loop called with non-loop innermost scope"})
	}
	s.frames = s.frames[:len(s.frames)-1]
	return hlast.While{Cond: top.loopCond, Body: top.stmts}
}

// advance is called once per opcode, after the opcode at position i has
// been dispatched. If the innermost scope's end-offset is i, fold it
// into a structured statement and append it to the enclosing scope.
// Scopes can close back-to-back (an If ending exactly where its
// enclosing Switch case ends, say), so this loops until no more frames
// close at i.
func (s *scopeStack) advance(i int) {
	for len(s.frames) > 1 && s.top().end == i {
		top := s.frames[len(s.frames)-1]
		s.frames = s.frames[:len(s.frames)-1]

		switch top.kind {
		case scopeIf:
			s.pushStmt(hlast.If{Cond: top.ifCond, Then: top.stmts})
		case scopeElse:
			// Convert the enclosing scope's last statement (an If) into
			// an If/Else by attaching this branch's statements.
			// Inside a Switch the If was pushed into the current case.
			parent := s.top()
			body := &parent.stmts
			if parent.kind == scopeSwitch {
				body = &parent.cases[parent.curCase].Body
			}
			if n := len(*body); n > 0 {
				if asIf, ok := (*body)[n-1].(hlast.If); ok {
					asIf.Else = top.stmts
					(*body)[n-1] = asIf
					continue
				}
			}
			// No matching If to attach to — degrade to a bare block.
			*body = append(*body, top.stmts...)
		case scopeSwitch:
			s.pushStmt(hlast.Switch{Scrutinee: top.scrutinee, Cases: top.cases})
		case scopeTry:
			s.pushStmt(hlast.Try{Body: top.stmts})
		case scopeLoop:
			// Loops close explicitly via endLastLoop, never via
			// end-offset folding, but guard against it anyway.
			s.pushStmt(hlast.While{Cond: top.loopCond, Body: top.stmts})
		}
	}
}

// finalize returns the root scope's accumulated statements. Call only
// after the opcode cursor has passed the end of the function.
func (s *scopeStack) finalize() []hlast.Statement {
	return s.frames[0].stmts
}
