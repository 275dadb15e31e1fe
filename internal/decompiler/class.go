package decompiler

import (
	"hlbcgo/internal/hlast"
	"hlbcgo/internal/hlbytecode"
)

// DecompileFunction lifts a standalone function as a static method,
// convenient for entry points and top-level functions that aren't
// bound to any class (spec.md §6).
func DecompileFunction(mod *hlbytecode.Module, fn *hlbytecode.Function, diag Diagnostics, opts Options) (hlast.Method, error) {
	stmts, err := DecompileCode(mod, fn, diag, opts)
	return hlast.Method{
		FunRef:     fn.FIndex,
		Name:       methodName(mod, fn),
		IsStatic:   true,
		IsDynamic:  false,
		Statements: stmts,
	}, err
}

// DecompileClass assembles the AST for an entire class: its fields and
// methods, instance and static alike (spec.md §4.11). A structural
// failure while lifting one method is recovered and recorded as a
// Comment in that method's body rather than aborting the whole class
// (spec.md §7's "only the current function's lift is aborted").
func DecompileClass(mod *hlbytecode.Module, obj *hlbytecode.TypeObj, diag Diagnostics, opts Options) hlast.Class {
	if diag == nil {
		diag = discardDiagnostics{}
	}
	staticType, hasStatic := obj.GetStaticType(mod)

	fields := classFields(mod, obj, false)
	if hasStatic {
		fields = append(fields, classFields(mod, staticType, true)...)
	}

	var methods []hlast.Method
	for _, fn := range obj.Bindings {
		methods = append(methods, liftMethod(mod, fn, false, true, diag, opts))
	}
	if hasStatic {
		for _, fn := range staticType.Bindings {
			methods = append(methods, liftMethod(mod, fn, true, true, diag, opts))
		}
	}
	for _, proto := range obj.Protos {
		methods = append(methods, liftMethod(mod, proto.FIndex, false, false, diag, opts))
	}

	var parent *string
	if obj.Super != nil {
		if super, ok := obj.Super.ResolveAsObj(mod); ok {
			name := super.Name.Resolve(mod)
			parent = &name
		}
	}

	return hlast.Class{
		Name:    obj.Name.Resolve(mod),
		Parent:  parent,
		Fields:  fields,
		Methods: methods,
	}
}

// classFields produces one ClassField per own field that isn't backed
// by a dynamic-method binding (a bindings entry means that "field" is
// really a method, not data).
func classFields(mod *hlbytecode.Module, obj *hlbytecode.TypeObj, static bool) []hlast.ClassField {
	base := len(obj.Fields) - len(obj.OwnFields)
	fields := make([]hlast.ClassField, 0, len(obj.OwnFields))
	for i, f := range obj.OwnFields {
		if _, isBinding := obj.Bindings[hlbytecode.RefField(base+i)]; isBinding {
			continue
		}
		fields = append(fields, hlast.ClassField{
			Name:   f.Name.Resolve(mod),
			Static: static,
			Type:   f.Type,
		})
	}
	return fields
}

func liftMethod(mod *hlbytecode.Module, fref hlbytecode.RefFun, static, dynamic bool, diag Diagnostics, opts Options) hlast.Method {
	fn := mod.ResolveAsFn(fref)
	if fn == nil {
		return hlast.Method{FunRef: fref, IsStatic: static, IsDynamic: dynamic, Name: "_"}
	}
	stmts, err := DecompileCode(mod, fn, diag, opts)
	if err != nil {
		diag.Printf("method %s: %s", methodName(mod, fn), err.Error())
		stmts = []hlast.Statement{hlast.Comment{Text: "lift aborted: " + err.Error()}}
	}
	return hlast.Method{
		FunRef:     fref,
		Name:       methodName(mod, fn),
		IsStatic:   static,
		IsDynamic:  dynamic,
		Statements: stmts,
	}
}

func methodName(mod *hlbytecode.Module, fn *hlbytecode.Function) string {
	if fn.Name != nil {
		return fn.Name.Resolve(mod)
	}
	return "_"
}
