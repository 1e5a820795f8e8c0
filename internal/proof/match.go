package proof

import "deduce/internal/ast"

// formulaMatch finds a value for varName that makes pattern, after
// substituting varName throughout, structurally equal to actual — e.g.
// matching `n = n` against `3 = 3` infers n := 3. This is the
// "formula_match"-style unifier spec's universal-LHS instantiation rule
// needs: a universally quantified implication applied to an argument
// whose synthesized formula doesn't literally mention the bound
// variable's eventual witness has to recover that witness from shape
// alone, the same way synthFunctionCall's typeMatch recovers a generic
// call's type arguments from its actual argument types.
func formulaMatch(pattern, actual ast.Term, varName string) (ast.Term, bool) {
	var found ast.Term
	if !matchWalk(pattern, actual, varName, &found) || found == nil {
		return nil, false
	}
	return found, true
}

func bindOrCheck(a ast.Term, found *ast.Term) bool {
	if *found == nil {
		*found = a
		return true
	}
	return ast.Equal(*found, a)
}

func matchWalk(pattern, actual ast.Term, varName string, found *ast.Term) bool {
	if pattern == nil || actual == nil {
		return pattern == actual
	}
	if v, ok := pattern.(*ast.Var); ok && v.Name == varName {
		return bindOrCheck(actual, found)
	}
	switch p := pattern.(type) {
	case *ast.Var:
		a, ok := actual.(*ast.Var)
		return ok && a.Name == p.Name

	case *ast.Int:
		a, ok := actual.(*ast.Int)
		return ok && a.Value == p.Value

	case *ast.Bool:
		a, ok := actual.(*ast.Bool)
		return ok && a.Value == p.Value

	case *ast.Call:
		a, ok := actual.(*ast.Call)
		if !ok || len(a.Args) != len(p.Args) {
			return false
		}
		if !matchWalk(p.Rator, a.Rator, varName, found) {
			return false
		}
		for i := range p.Args {
			if !matchWalk(p.Args[i], a.Args[i], varName, found) {
				return false
			}
		}
		return true

	case *ast.And:
		a, ok := actual.(*ast.And)
		if !ok || len(a.Args) != len(p.Args) {
			return false
		}
		for i := range p.Args {
			if !matchWalk(p.Args[i], a.Args[i], varName, found) {
				return false
			}
		}
		return true

	case *ast.Or:
		a, ok := actual.(*ast.Or)
		if !ok || len(a.Args) != len(p.Args) {
			return false
		}
		for i := range p.Args {
			if !matchWalk(p.Args[i], a.Args[i], varName, found) {
				return false
			}
		}
		return true

	case *ast.IfThen:
		a, ok := actual.(*ast.IfThen)
		return ok && matchWalk(p.Premise, a.Premise, varName, found) && matchWalk(p.Conclusion, a.Conclusion, varName, found)

	case *ast.TermInst:
		a, ok := actual.(*ast.TermInst)
		if !ok || len(a.TypeArgs) != len(p.TypeArgs) {
			return false
		}
		if !matchWalk(p.Subject, a.Subject, varName, found) {
			return false
		}
		for i := range p.TypeArgs {
			if !ast.Equal(p.TypeArgs[i], a.TypeArgs[i]) {
				return false
			}
		}
		return true

	default:
		return ast.Equal(pattern, actual)
	}
}
