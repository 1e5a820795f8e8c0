package check

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

// checkSwitch checks a Switch term against expected: each case's
// pattern against the subject's type, each body against expected, and
// the whole set of patterns for exhaustiveness. Mirrors
// type_check_term's Switch case together with check_pattern.
func checkSwitch(ctx *Context, t *ast.Switch, expected ast.Term, e env.Env) (ast.Term, error) {
	subject, err := SynthTerm(ctx, t.Subject, e)
	if err != nil {
		return nil, err
	}
	t.Subject = subject
	subjectType := subject.Typeof()

	present := map[string]bool{}
	cases := make([]ast.SwitchCase, len(t.Cases))
	for i, c := range t.Cases {
		caseEnv, err := checkPattern(c.At, c.Pattern, subjectType, e, ctx.Unions, present)
		if err != nil {
			return nil, err
		}
		body, err := CheckTerm(ctx, c.Body, expected, caseEnv)
		if err != nil {
			return nil, err
		}
		cases[i] = ast.SwitchCase{At: c.At, Pattern: c.Pattern, Body: body}
	}
	t.Cases = cases

	if err := checkExhaustive(t.At, subjectType, ctx.Unions, present); err != nil {
		return nil, err
	}
	t.SetTypeof(expected)
	return t, nil
}

// checkPattern checks pat against typ, returning the environment
// extended with whatever term variables the pattern binds, and records
// which case it covers in present.
func checkPattern(at ast.Position, pat ast.Pattern, typ ast.Term, e env.Env, unions map[string]*ast.Union, present map[string]bool) (env.Env, error) {
	switch p := pat.(type) {
	case *ast.PatternBool:
		if _, ok := typ.(*ast.BoolType); !ok {
			return env.Empty, diag.New(diag.PatternBadConstructor, at,
				fmt.Sprintf("expected a pattern of type\n\t%s\nbut got\n\t%t", typ, p.Value))
		}
		present[fmt.Sprintf("%t", p.Value)] = true
		return e, nil

	case *ast.PatternCons:
		return checkConstructorPattern(at, p, typ, e, unions, present)

	default:
		return env.Empty, diag.New(diag.PatternBadConstructor, at, "expected a pattern")
	}
}

func checkConstructorPattern(at ast.Position, p *ast.PatternCons, typ ast.Term, e env.Env, unions map[string]*ast.Union, present map[string]bool) (env.Env, error) {
	uni, targs, err := LookupUnion(typ, unions)
	if err != nil {
		return env.Empty, diag.New(diag.PatternBadConstructor, at, err.Error())
	}
	var ctor *ast.Constructor
	for i := range uni.Constructors {
		if uni.Constructors[i].Name == p.Constructor {
			ctor = &uni.Constructors[i]
			break
		}
	}
	if ctor == nil {
		return env.Empty, diag.New(diag.PatternBadConstructor, at,
			fmt.Sprintf("%s is not a constructor of %s", p.Constructor, uni.Name))
	}
	if len(ctor.FieldTypes) != len(p.Params) {
		return env.Empty, diag.New(diag.ArityMismatch, at,
			fmt.Sprintf("constructor %s expects %d parameters, got %d", p.Constructor, len(ctor.FieldTypes), len(p.Params)))
	}

	subst := map[string]ast.Term{}
	for i, tp := range uni.TypeParams {
		if i < len(targs) {
			subst[tp] = targs[i]
		}
	}
	body := e
	for i, name := range p.Params {
		body = body.DeclareTermVar(name, substType(ctor.FieldTypes[i], subst))
	}
	present[p.Constructor] = true
	return body, nil
}

// checkExhaustive requires that present cover every constructor of typ
// (or both booleans, for BoolType). Mirrors the "missing function case"
// / switch-completeness checks scattered through process_declaration
// and type_check_stmt's RecFun case.
func checkExhaustive(at ast.Position, typ ast.Term, unions map[string]*ast.Union, present map[string]bool) error {
	if _, ok := typ.(*ast.BoolType); ok {
		if !present["true"] || !present["false"] {
			return diag.New(diag.PatternNonExhaustive, at, "switch over Bool must cover both true and false").
				WithHelp("add the missing true/false case")
		}
		return nil
	}
	uni, _, err := LookupUnion(typ, unions)
	if err != nil {
		return diag.New(diag.PatternNonExhaustive, at, err.Error())
	}
	var missing []string
	for _, c := range uni.Constructors {
		if !present[c.Name] {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return diag.New(diag.PatternNonExhaustive, at,
			fmt.Sprintf("missing case(s) for %v", missing)).
			WithHelp(fmt.Sprintf("add a case for %v", missing))
	}
	return nil
}

// LookupUnion resolves typ to its union declaration and, if typ is an
// instantiation (List<Nat>), the type arguments it supplies. Mirrors
// lookup_union.
func LookupUnion(typ ast.Term, unions map[string]*ast.Union) (*ast.Union, []ast.Term, error) {
	switch t := typ.(type) {
	case *ast.Var:
		u, ok := unions[t.Name]
		if !ok {
			return nil, nil, fmt.Errorf("%s is not a union type", t.Name)
		}
		return u, nil, nil

	case *ast.TypeInst:
		name, ok := headName(t.Head)
		if !ok {
			return nil, nil, fmt.Errorf("%s is not a union type", t.Head)
		}
		u, ok := unions[name]
		if !ok {
			return nil, nil, fmt.Errorf("%s is not a union type", name)
		}
		return u, t.Args, nil

	case *ast.GenericUnknownInst:
		return LookupUnion(t.Head, unions)

	default:
		return nil, nil, fmt.Errorf("%s is not a union type", typ)
	}
}

func headName(t ast.Term) (string, bool) {
	if v, ok := t.(*ast.Var); ok {
		return v.Name, true
	}
	return "", false
}
