// Package printer turns a decompiled class or method into indented
// Haxe-like source text. It is a thin, purely syntactic formatter: the
// decompiler core (internal/decompiler) produces the AST; this package
// only renders it for humans. Wiring a real pretty-printer with
// comment placement, import resolution, and line-width wrapping is an
// external concern this module does not attempt.
package printer

import (
	"fmt"
	"strings"

	"hlbcgo/internal/hlast"
)

// Class renders a full class: fields, then methods, each indented one
// level under the class body.
func Class(c hlast.Class) string {
	var b strings.Builder
	fmt.Fprintf(&b, "class %s", c.Name)
	if c.Parent != nil {
		fmt.Fprintf(&b, " extends %s", *c.Parent)
	}
	b.WriteString(" {\n")
	for _, f := range c.Fields {
		b.WriteString("\t")
		if f.Static {
			b.WriteString("static ")
		}
		fmt.Fprintf(&b, "var %s;\n", f.Name)
	}
	if len(c.Fields) > 0 && len(c.Methods) > 0 {
		b.WriteString("\n")
	}
	for i, m := range c.Methods {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(indentBlock(Method(m), 1))
	}
	b.WriteString("}\n")
	return b.String()
}

// Method renders a single method signature and body.
func Method(m hlast.Method) string {
	var b strings.Builder
	if m.IsStatic {
		b.WriteString("static ")
	}
	if m.IsDynamic {
		b.WriteString("dynamic ")
	}
	fmt.Fprintf(&b, "function %s() {\n", m.Name)
	b.WriteString(Statements(m.Statements, 1))
	b.WriteString("}\n")
	return b.String()
}

// Statements renders a statement list at the given indentation depth,
// one statement per line, recursing into nested bodies.
func Statements(stmts []hlast.Statement, depth int) string {
	var b strings.Builder
	pad := strings.Repeat("\t", depth)
	for _, s := range stmts {
		switch v := s.(type) {
		case hlast.If:
			fmt.Fprintf(&b, "%sif (%s) {\n", pad, v.Cond.String())
			b.WriteString(Statements(v.Then, depth+1))
			if v.Else != nil {
				fmt.Fprintf(&b, "%s} else {\n", pad)
				b.WriteString(Statements(v.Else, depth+1))
			}
			fmt.Fprintf(&b, "%s}\n", pad)
		case hlast.While:
			fmt.Fprintf(&b, "%swhile (%s) {\n", pad, v.Cond.String())
			b.WriteString(Statements(v.Body, depth+1))
			fmt.Fprintf(&b, "%s}\n", pad)
		case hlast.Switch:
			fmt.Fprintf(&b, "%sswitch (%s) {\n", pad, v.Scrutinee.String())
			for i, c := range v.Cases {
				fmt.Fprintf(&b, "%s\tcase %d:\n", pad, i)
				b.WriteString(Statements(c.Body, depth+2))
			}
			fmt.Fprintf(&b, "%s}\n", pad)
		case hlast.Try:
			fmt.Fprintf(&b, "%stry {\n", pad)
			b.WriteString(Statements(v.Body, depth+1))
			if v.Catch != nil {
				fmt.Fprintf(&b, "%s} catch (e) {\n", pad)
				b.WriteString(Statements(v.Catch, depth+1))
			}
			fmt.Fprintf(&b, "%s}\n", pad)
		default:
			fmt.Fprintf(&b, "%s%s\n", pad, s.String())
		}
	}
	return b.String()
}

func indentBlock(block string, depth int) string {
	pad := strings.Repeat("\t", depth)
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n") + "\n"
}
