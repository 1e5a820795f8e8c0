package check

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

// SynthTerm infers term's type in e, mirroring type_synth_term.
func SynthTerm(ctx *Context, term ast.Term, e env.Env) (ast.Term, error) {
	switch t := term.(type) {
	case *ast.Var:
		return synthVar(ctx, t, e)

	case *ast.Int:
		t.SetTypeof(&ast.IntType{})
		return t, nil

	case *ast.Bool:
		t.SetTypeof(&ast.BoolType{})
		return t, nil

	case *ast.Hole:
		return nil, diag.New(diag.TypeMismatch, t.At, "cannot infer the type of a hole; an explicit type or checking context is required")

	case *ast.Omitted:
		return nil, diag.New(diag.TypeMismatch, t.At, "cannot infer the type of an omitted term")

	case *ast.Lambda:
		body := e
		for _, p := range t.Params {
			if p.Type == nil {
				return nil, diag.New(diag.TypeMismatch, t.At, "a lambda outside a checking context needs parameter type annotations")
			}
			if err := CheckType(p.Type, body); err != nil {
				return nil, err
			}
			body = body.DeclareTermVar(p.Name, p.Type)
		}
		newBody, err := SynthTerm(ctx, t.Body, body)
		if err != nil {
			return nil, err
		}
		params := make([]ast.Term, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.Type
		}
		t.SetTypeof(&ast.FunctionType{Params: params, Return: newBody.Typeof()})
		return t, nil

	case *ast.Generic:
		body := e.DeclareTypeVars(t.TypeParams)
		newBody, err := SynthTerm(ctx, t.Body, body)
		if err != nil {
			return nil, err
		}
		t.SetTypeof(&ast.FunctionType{TypeParams: t.TypeParams, Return: newBody.Typeof()})
		return t, nil

	case *ast.Call:
		return synthCall(ctx, t, e)

	case *ast.TermInst:
		return synthTermInst(ctx, t, e)

	case *ast.Conditional:
		cond, err := CheckTerm(ctx, t.Cond, &ast.BoolType{}, e)
		if err != nil {
			return nil, err
		}
		t.Cond = cond
		then, err := SynthTerm(ctx, t.Then, e)
		if err != nil {
			return nil, err
		}
		els, err := CheckTerm(ctx, t.Else, then.Typeof(), e)
		if err != nil {
			return nil, err
		}
		t.Then, t.Else = then, els
		t.SetTypeof(then.Typeof())
		return t, nil

	case *ast.TLet:
		rhs, err := SynthTerm(ctx, t.Rhs, e)
		if err != nil {
			return nil, err
		}
		t.Rhs = rhs
		body, err := SynthTerm(ctx, t.Body, e.DefineTermVar(t.Name, rhs.Typeof(), rhs))
		if err != nil {
			return nil, err
		}
		t.Body = body
		t.SetTypeof(body.Typeof())
		return t, nil

	case *ast.Switch:
		return nil, diag.New(diag.TypeMismatch, t.At, "switch needs a checking context to know its result type; annotate the enclosing definition")

	case *ast.MakeArray:
		if len(t.Elems) == 0 {
			return nil, diag.New(diag.TypeMismatch, t.At, "cannot infer the element type of an empty array literal")
		}
		first, err := SynthTerm(ctx, t.Elems[0], e)
		if err != nil {
			return nil, err
		}
		t.Elems[0] = first
		for i := 1; i < len(t.Elems); i++ {
			el, err := CheckTerm(ctx, t.Elems[i], first.Typeof(), e)
			if err != nil {
				return nil, err
			}
			t.Elems[i] = el
		}
		t.SetTypeof(&ast.ArrayType{Elem: first.Typeof()})
		return t, nil

	case *ast.ArrayGet:
		arr, err := SynthTerm(ctx, t.Array, e)
		if err != nil {
			return nil, err
		}
		at, ok := arr.Typeof().(*ast.ArrayType)
		if !ok {
			return nil, typeMismatch(t.At, &ast.ArrayType{}, arr)
		}
		idx, err := CheckTerm(ctx, t.Index, &ast.IntType{}, e)
		if err != nil {
			return nil, err
		}
		t.Array, t.Index = arr, idx
		t.SetTypeof(at.Elem)
		return t, nil

	case *ast.Mark:
		inner, err := SynthTerm(ctx, t.Subject, e)
		if err != nil {
			return nil, err
		}
		t.Subject = inner
		t.SetTypeof(inner.Typeof())
		return t, nil

	case *ast.And:
		for i, a := range t.Args {
			arg, err := CheckTerm(ctx, a, &ast.BoolType{}, e)
			if err != nil {
				return nil, err
			}
			t.Args[i] = arg
		}
		t.SetTypeof(&ast.BoolType{})
		return t, nil

	case *ast.Or:
		for i, a := range t.Args {
			arg, err := CheckTerm(ctx, a, &ast.BoolType{}, e)
			if err != nil {
				return nil, err
			}
			t.Args[i] = arg
		}
		t.SetTypeof(&ast.BoolType{})
		return t, nil

	case *ast.IfThen:
		premise, err := CheckTerm(ctx, t.Premise, &ast.BoolType{}, e)
		if err != nil {
			return nil, err
		}
		conclusion, err := CheckTerm(ctx, t.Conclusion, &ast.BoolType{}, e)
		if err != nil {
			return nil, err
		}
		t.Premise, t.Conclusion = premise, conclusion
		t.SetTypeof(&ast.BoolType{})
		return t, nil

	case *ast.All:
		if err := CheckType(t.Var.Type, e); err != nil {
			return nil, err
		}
		body, err := CheckTerm(ctx, t.Body, &ast.BoolType{}, bindQuantVar(e, t.Var))
		if err != nil {
			return nil, err
		}
		t.Body = body
		t.SetTypeof(&ast.BoolType{})
		return t, nil

	case *ast.Some:
		body := e
		for _, v := range t.Vars {
			if err := CheckType(v.Type, e); err != nil {
				return nil, err
			}
			body = bindQuantVar(body, v)
		}
		newBody, err := CheckTerm(ctx, t.Body, &ast.BoolType{}, body)
		if err != nil {
			return nil, err
		}
		t.Body = newBody
		t.SetTypeof(&ast.BoolType{})
		return t, nil

	default:
		return nil, diag.New(diag.TypeMismatch, term.Pos(), fmt.Sprintf("cannot infer the type of %s", term))
	}
}

// bindQuantVar declares a quantified variable as a type or term variable
// depending on its sort, mirroring the original's treatment of All/Some
// over TypeType-sorted quantifiers as type-parameter binders.
func bindQuantVar(e env.Env, v ast.QuantVar) env.Env {
	if _, ok := v.Type.(*ast.TypeType); ok {
		return e.DeclareType(v.Name)
	}
	return e.DeclareTermVar(v.Name, v.Type)
}

// CheckTerm checks term against expected in e, mirroring type_check_term.
// Forms with no distinguished checking rule fall back to synthesis
// followed by a type-equality comparison (structural, per ast.Equal —
// the checker never needs to compare types up to delta-reduction since
// every type-former it supports is already in normal form by
// construction).
func CheckTerm(ctx *Context, term ast.Term, expected ast.Term, e env.Env) (ast.Term, error) {
	switch t := term.(type) {
	case *ast.Hole:
		t.SetTypeof(expected)
		return t, nil

	case *ast.Omitted:
		t.SetTypeof(expected)
		return t, nil

	case *ast.Lambda:
		ft, ok := expected.(*ast.FunctionType)
		if !ok {
			return nil, typeMismatch(t.At, expected, t)
		}
		if len(ft.Params) != len(t.Params) {
			return nil, diag.New(diag.ArityMismatch, t.At,
				fmt.Sprintf("expected %d parameters, got %d", len(ft.Params), len(t.Params)))
		}
		body := e
		for i := range t.Params {
			if t.Params[i].Type == nil {
				t.Params[i].Type = ft.Params[i]
			}
			body = body.DeclareTermVar(t.Params[i].Name, ft.Params[i])
		}
		newBody, err := CheckTerm(ctx, t.Body, ft.Return, body)
		if err != nil {
			return nil, err
		}
		t.Body = newBody
		t.SetTypeof(expected)
		return t, nil

	case *ast.Conditional:
		cond, err := CheckTerm(ctx, t.Cond, &ast.BoolType{}, e)
		if err != nil {
			return nil, err
		}
		then, err := CheckTerm(ctx, t.Then, expected, e)
		if err != nil {
			return nil, err
		}
		els, err := CheckTerm(ctx, t.Else, expected, e)
		if err != nil {
			return nil, err
		}
		t.Cond, t.Then, t.Else = cond, then, els
		t.SetTypeof(expected)
		return t, nil

	case *ast.TLet:
		rhs, err := SynthTerm(ctx, t.Rhs, e)
		if err != nil {
			return nil, err
		}
		body, err := CheckTerm(ctx, t.Body, expected, e.DefineTermVar(t.Name, rhs.Typeof(), rhs))
		if err != nil {
			return nil, err
		}
		t.Rhs, t.Body = rhs, body
		t.SetTypeof(expected)
		return t, nil

	case *ast.Switch:
		return checkSwitch(ctx, t, expected, e)

	case *ast.Call:
		return checkCall(ctx, t, expected, e)

	case *ast.Var:
		// A call to a recursive function's own name inside its body is
		// where the structural-recursion check belongs; plain variable
		// uses always synthesize.
		synthed, err := synthVar(ctx, t, e)
		if err != nil {
			return nil, err
		}
		return reconcile(synthed, expected)

	default:
		synthed, err := SynthTerm(ctx, term, e)
		if err != nil {
			return nil, err
		}
		return reconcile(synthed, expected)
	}
}

// reconcile confirms a synthesized term's type matches expected,
// resolving an OverloadType against expected if the call site already
// knows which alternative it needs (e.g. passing a bare overloaded name
// where a concrete function type is expected).
func reconcile(term ast.Term, expected ast.Term) (ast.Term, error) {
	switch ot := term.Typeof().(type) {
	case *ast.OverloadType:
		for _, o := range ot.Overloads {
			if ast.Equal(o.Type, expected) {
				if v, ok := term.(*ast.Var); ok {
					v.ResolvedNames = []string{o.Name}
				}
				term.SetTypeof(o.Type)
				return term, nil
			}
		}
		return nil, diag.New(diag.OverloadNoMatch, term.Pos(),
			fmt.Sprintf("no overload of %s matches the expected type\n\t%s", term, expected))
	default:
		if !ast.Equal(term.Typeof(), expected) {
			return nil, typeMismatch(term.Pos(), expected, term)
		}
		return term, nil
	}
}
