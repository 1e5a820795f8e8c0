package check

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

// synthVar resolves a Var against the term binding space, narrowing its
// ResolvedNames candidate set and setting its Typeof to either the
// single binding's type or, when more than one candidate resolves, an
// OverloadType the enclosing Call must disambiguate. Mirrors the Var
// case of type_synth_term.
func synthVar(ctx *Context, v *ast.Var, e env.Env) (ast.Term, error) {
	if len(v.ResolvedNames) == 0 {
		v.ResolvedNames = []string{v.Name}
	}
	if len(v.ResolvedNames) == 1 {
		name := v.ResolvedNames[0]
		cand := ast.NewVar(v.At, name, name)
		if err := e.ResolveVar(cand, ast.FlavorTerm); err != nil {
			return nil, diag.New(diag.UndefinedName, v.At, "undefined name "+name)
		}
		typ, err := e.GetTypeOfTermVar(cand)
		if err != nil {
			return nil, diag.New(diag.UndefinedName, v.At, err.Error())
		}
		v.Index, v.Flavor = cand.Index, cand.Flavor
		v.SetTypeof(typ)
		return v, nil
	}

	var overloads []ast.Overload
	var cands diag.Candidates
	for _, name := range v.ResolvedNames {
		cand := ast.NewVar(v.At, name, name)
		if err := e.ResolveVar(cand, ast.FlavorTerm); err != nil {
			cands.Try(err)
			continue
		}
		typ, err := e.GetTypeOfTermVar(cand)
		if err != nil {
			cands.Try(err)
			continue
		}
		overloads = append(overloads, ast.Overload{Name: name, Type: typ})
	}
	if len(overloads) == 0 {
		return nil, diag.New(diag.UndefinedName, v.At, "undefined name "+v.Name).WithNote(cands.Err().Error())
	}
	v.SetTypeof(&ast.OverloadType{Overloads: overloads})
	return v, nil
}

// synthCall type-checks a function call without a surrounding checking
// context, mirroring type_synth_term's Call case.
func synthCall(ctx *Context, t *ast.Call, e env.Env) (ast.Term, error) {
	rator, err := SynthTerm(ctx, t.Rator, e)
	if err != nil {
		return nil, err
	}
	t.Rator = rator
	return synthCallWithRator(ctx, t, rator, e, nil)
}

func synthCallWithRator(ctx *Context, t *ast.Call, rator ast.Term, e env.Env, expectedReturn ast.Term) (ast.Term, error) {
	switch rt := rator.Typeof().(type) {
	case *ast.OverloadType:
		return synthOverloadCall(ctx, t, rt, e)
	case *ast.FunctionType:
		return synthFunctionCall(ctx, t, rt, e, expectedReturn)
	default:
		return nil, diag.New(diag.TypeMismatch, t.At, fmt.Sprintf("%s is not callable (has type %s)", rator, rator.Typeof()))
	}
}

// checkCall type-checks a function call whose result type is already
// known, using it to seed type-argument inference before falling back
// to inference from argument types — needed for calls like an empty
// generic constructor whose arguments alone can't determine its type
// parameter (mirrors the way type_check_term defers to
// type_check_call_funty with the goal type in hand).
func checkCall(ctx *Context, t *ast.Call, expected ast.Term, e env.Env) (ast.Term, error) {
	rator, err := SynthTerm(ctx, t.Rator, e)
	if err != nil {
		return nil, err
	}
	t.Rator = rator
	synthed, err := synthCallWithRator(ctx, t, rator, e, expected)
	if err != nil {
		return nil, err
	}
	return reconcile(synthed, expected)
}

// synthFunctionCall checks a call against a (possibly generic)
// FunctionType: arity, type-argument inference (seeded from
// expectedReturn when given, then from argument types), and each
// argument in turn.
func synthFunctionCall(ctx *Context, t *ast.Call, ft *ast.FunctionType, e env.Env, expectedReturn ast.Term) (ast.Term, error) {
	if len(ft.Params) != len(t.Args) {
		return nil, diag.New(diag.ArityMismatch, t.At,
			fmt.Sprintf("expected %d arguments, got %d", len(ft.Params), len(t.Args)))
	}

	subst := map[string]ast.Term{}
	if len(ft.TypeParams) > 0 && expectedReturn != nil {
		typeMatch(ft.Return, expectedReturn, ft.TypeParams, subst)
	}

	argTypes := make([]ast.Term, len(t.Args))
	for i, a := range t.Args {
		if len(ft.TypeParams) > 0 && containsTypeParam(ft.Params[i], ft.TypeParams) && !allBound(ft.Params[i], ft.TypeParams, subst) {
			synthed, err := SynthTerm(ctx, a, e)
			if err != nil {
				return nil, err
			}
			t.Args[i] = synthed
			argTypes[i] = synthed.Typeof()
			typeMatch(ft.Params[i], argTypes[i], ft.TypeParams, subst)
		}
	}

	for _, tp := range ft.TypeParams {
		if _, ok := subst[tp]; !ok {
			return nil, diag.New(diag.TypeMismatch, t.At, "cannot infer type argument "+tp+"; write it explicitly").
				WithHelp("add an explicit type instantiation, e.g. f<T>(...)")
		}
	}

	for i, p := range ft.Params {
		want := substType(p, subst)
		checked, err := CheckTerm(ctx, t.Args[i], want, e)
		if err != nil {
			return nil, err
		}
		t.Args[i] = checked
	}

	if err := checkStructuralRecursion(ctx, t); err != nil {
		return nil, err
	}

	t.SetTypeof(substType(ft.Return, subst))
	return t, nil
}

type overloadMatch struct {
	name  string
	ft    *ast.FunctionType
	subst map[string]ast.Term
}

// synthOverloadCall disambiguates a Var's overload candidate set by
// arity and argument type, mirroring type_check_call's search over
// overload candidates. Arguments are synthesized once, independent of
// candidate — this checker does not support inferring a parameter's
// expected type from the chosen overload for argument forms (such as a
// bare Lambda) that need a checking context, a scope simplification
// recorded in DESIGN.md.
func synthOverloadCall(ctx *Context, t *ast.Call, ot *ast.OverloadType, e env.Env) (ast.Term, error) {
	argTypes := make([]ast.Term, len(t.Args))
	for i, a := range t.Args {
		synthed, err := SynthTerm(ctx, a, e)
		if err != nil {
			return nil, err
		}
		t.Args[i] = synthed
		argTypes[i] = synthed.Typeof()
	}

	var cands diag.Candidates
	var matched []overloadMatch
	for _, o := range ot.Overloads {
		ft, ok := o.Type.(*ast.FunctionType)
		if !ok || len(ft.Params) != len(t.Args) {
			cands.Try(fmt.Errorf("%s: not applicable to %d arguments", o.Name, len(t.Args)))
			continue
		}
		subst := map[string]ast.Term{}
		matches := true
		for i, p := range ft.Params {
			if len(ft.TypeParams) > 0 {
				if !typeMatch(p, argTypes[i], ft.TypeParams, subst) {
					matches = false
					break
				}
			} else if !ast.Equal(p, argTypes[i]) {
				matches = false
				break
			}
		}
		if !matches {
			cands.Try(fmt.Errorf("%s: argument types do not match", o.Name))
			continue
		}
		matched = append(matched, overloadMatch{name: o.Name, ft: ft, subst: subst})
	}

	switch len(matched) {
	case 0:
		return nil, diag.New(diag.OverloadNoMatch, t.At,
			fmt.Sprintf("no overload of %s matches the given arguments", t.Rator)).WithNote(cands.Err().Error())
	case 1:
		m := matched[0]
		if v, ok := t.Rator.(*ast.Var); ok {
			v.ResolvedNames = []string{m.name}
			cand := ast.NewVar(v.At, m.name, m.name)
			if err := e.ResolveVar(cand, ast.FlavorTerm); err == nil {
				v.Index, v.Flavor = cand.Index, cand.Flavor
			}
			v.SetTypeof(m.ft)
		}
		for i, p := range m.ft.Params {
			want := substType(p, m.subst)
			checked, err := CheckTerm(ctx, t.Args[i], want, e)
			if err != nil {
				return nil, err
			}
			t.Args[i] = checked
		}
		t.SetTypeof(substType(m.ft.Return, m.subst))
		return t, nil
	default:
		names := make([]string, len(matched))
		for i, m := range matched {
			names[i] = m.name
		}
		return nil, diag.New(diag.OverloadAmbiguous, t.At,
			fmt.Sprintf("call to %s is ambiguous between %d overloads", t.Rator, len(matched))).
			WithNote(fmt.Sprintf("candidates: %v", names))
	}
}

// synthTermInst checks an explicit generic instantiation `f<T1,...>`.
func synthTermInst(ctx *Context, t *ast.TermInst, e env.Env) (ast.Term, error) {
	subject, err := SynthTerm(ctx, t.Subject, e)
	if err != nil {
		return nil, err
	}
	t.Subject = subject
	for _, a := range t.TypeArgs {
		if err := CheckType(a, e); err != nil {
			return nil, err
		}
	}
	ft, ok := subject.Typeof().(*ast.FunctionType)
	if !ok || len(ft.TypeParams) != len(t.TypeArgs) {
		return nil, diag.New(diag.ArityMismatch, t.At,
			fmt.Sprintf("expected %d type arguments, got %d", lenTypeParams(subject), len(t.TypeArgs)))
	}
	subst := map[string]ast.Term{}
	for i, tp := range ft.TypeParams {
		subst[tp] = t.TypeArgs[i]
	}
	params := make([]ast.Term, len(ft.Params))
	for i, p := range ft.Params {
		params[i] = substType(p, subst)
	}
	t.SetTypeof(&ast.FunctionType{Params: params, Return: substType(ft.Return, subst)})
	return t, nil
}

func lenTypeParams(term ast.Term) int {
	if ft, ok := term.Typeof().(*ast.FunctionType); ok {
		return len(ft.TypeParams)
	}
	return 0
}

// typeMatch unifies pattern (a type possibly mentioning names in
// typeParams) against actual, recording bindings in subst; a name
// already bound must agree (structurally) with every later occurrence.
// Mirrors type_match.
func typeMatch(pattern, actual ast.Term, typeParams []string, subst map[string]ast.Term) bool {
	if v, ok := pattern.(*ast.Var); ok && containsString(typeParams, v.Name) {
		if bound, ok := subst[v.Name]; ok {
			return ast.Equal(bound, actual)
		}
		subst[v.Name] = actual
		return true
	}
	switch p := pattern.(type) {
	case *ast.TypeInst:
		a, ok := actual.(*ast.TypeInst)
		if !ok || len(p.Args) != len(a.Args) {
			return false
		}
		if !typeMatch(p.Head, a.Head, typeParams, subst) {
			return false
		}
		for i := range p.Args {
			if !typeMatch(p.Args[i], a.Args[i], typeParams, subst) {
				return false
			}
		}
		return true
	case *ast.ArrayType:
		a, ok := actual.(*ast.ArrayType)
		return ok && typeMatch(p.Elem, a.Elem, typeParams, subst)
	case *ast.FunctionType:
		a, ok := actual.(*ast.FunctionType)
		if !ok || len(p.Params) != len(a.Params) {
			return false
		}
		for i := range p.Params {
			if !typeMatch(p.Params[i], a.Params[i], typeParams, subst) {
				return false
			}
		}
		return typeMatch(p.Return, a.Return, typeParams, subst)
	case *ast.GenericUnknownInst:
		a, ok := actual.(*ast.GenericUnknownInst)
		return ok && typeMatch(p.Head, a.Head, typeParams, subst)
	default:
		return ast.Equal(pattern, actual)
	}
}

// containsTypeParam reports whether typ mentions any name in
// typeParams.
func containsTypeParam(typ ast.Term, typeParams []string) bool {
	switch t := typ.(type) {
	case *ast.Var:
		return containsString(typeParams, t.Name)
	case *ast.TypeInst:
		if containsTypeParam(t.Head, typeParams) {
			return true
		}
		for _, a := range t.Args {
			if containsTypeParam(a, typeParams) {
				return true
			}
		}
		return false
	case *ast.ArrayType:
		return containsTypeParam(t.Elem, typeParams)
	case *ast.FunctionType:
		for _, p := range t.Params {
			if containsTypeParam(p, typeParams) {
				return true
			}
		}
		return containsTypeParam(t.Return, typeParams)
	case *ast.GenericUnknownInst:
		return containsTypeParam(t.Head, typeParams)
	default:
		return false
	}
}

// allBound reports whether every type-parameter name typ mentions is
// already present in subst.
func allBound(typ ast.Term, typeParams []string, subst map[string]ast.Term) bool {
	switch t := typ.(type) {
	case *ast.Var:
		if !containsString(typeParams, t.Name) {
			return true
		}
		_, ok := subst[t.Name]
		return ok
	case *ast.TypeInst:
		if !allBound(t.Head, typeParams, subst) {
			return false
		}
		for _, a := range t.Args {
			if !allBound(a, typeParams, subst) {
				return false
			}
		}
		return true
	case *ast.ArrayType:
		return allBound(t.Elem, typeParams, subst)
	case *ast.FunctionType:
		for _, p := range t.Params {
			if !allBound(p, typeParams, subst) {
				return false
			}
		}
		return allBound(t.Return, typeParams, subst)
	case *ast.GenericUnknownInst:
		return allBound(t.Head, typeParams, subst)
	default:
		return true
	}
}

// substType applies every binding in subst to typ, at the type level —
// ast.Substitute deliberately leaves type-former nodes untouched (it
// only rewrites term-level names), so type-argument instantiation needs
// its own walk.
func substType(typ ast.Term, subst map[string]ast.Term) ast.Term {
	for name, val := range subst {
		typ = substTypeParam(typ, name, val)
	}
	return typ
}

func substTypeParam(typ ast.Term, name string, replacement ast.Term) ast.Term {
	switch t := typ.(type) {
	case *ast.Var:
		if t.Name == name {
			return replacement
		}
		return t
	case *ast.TypeInst:
		args := make([]ast.Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = substTypeParam(a, name, replacement)
		}
		return &ast.TypeInst{Head: substTypeParam(t.Head, name, replacement), Args: args}
	case *ast.ArrayType:
		return &ast.ArrayType{Elem: substTypeParam(t.Elem, name, replacement)}
	case *ast.FunctionType:
		params := make([]ast.Term, len(t.Params))
		for i, p := range t.Params {
			params[i] = substTypeParam(p, name, replacement)
		}
		return &ast.FunctionType{TypeParams: t.TypeParams, Params: params, Return: substTypeParam(t.Return, name, replacement)}
	case *ast.GenericUnknownInst:
		return &ast.GenericUnknownInst{Head: substTypeParam(t.Head, name, replacement)}
	default:
		return t
	}
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// checkStructuralRecursion enforces that a recursive call to the
// enclosing RecFun's own name passes, as its first argument, one of the
// current case's pattern-bound parameters — the decreasing measure
// original_source/proof_checker.py's type_check_rec_call checks for.
// Under StructuralRecursionStrict a violation is fatal; otherwise it is
// accepted permissively (mirrors the Python checker, which never
// enforces this outside of pattern-bound first arguments to begin
// with).
func checkStructuralRecursion(ctx *Context, t *ast.Call) error {
	if ctx.RecFunName == "" {
		return nil
	}
	v, ok := t.Rator.(*ast.Var)
	if !ok || v.Name != ctx.RecFunName || len(t.Args) == 0 {
		return nil
	}
	arg, ok := t.Args[0].(*ast.Var)
	if ok && containsString(ctx.PatParams, arg.Name) {
		return nil
	}
	if ctx.StructuralRecursionStrict {
		return diag.New(diag.RecursionNotStructural, t.At,
			fmt.Sprintf("recursive call to %s must deconstruct a pattern-bound parameter, not %s", ctx.RecFunName, t.Args[0])).
			WithHelp("recurse on one of the parameters bound by this case's pattern")
	}
	return nil
}
