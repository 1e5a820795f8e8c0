package check

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

// CheckRecFun type-checks a recursive function's cases against its
// declared signature, one case at a time: the scrutinee (first
// parameter) is matched against each case's pattern the way checkSwitch
// matches a Switch's subject, the remaining parameters are bound by
// name from r.ParamTypes[1:], and the body is checked against
// r.ReturnType under a Context naming this case's pattern-bound
// parameters as the only ones a recursive call may structurally
// decrease on. Mirrors the RecFun handling folded into
// type_check_stmt/process_declaration in the original, split out here
// the way checkSwitch already separates Switch from the rest of
// CheckTerm.
func CheckRecFun(ctx *Context, r *ast.RecFun, e env.Env) error {
	if len(r.ParamTypes) == 0 {
		return diag.New(diag.ArityMismatch, r.At, "a recursive function needs at least one parameter, to recurse on")
	}
	typeEnv := e.DeclareTypeVars(r.TypeParams)
	scrutineeType := r.ParamTypes[0]
	restTypes := r.ParamTypes[1:]
	present := map[string]bool{}

	for i := range r.Cases {
		c := &r.Cases[i]
		caseEnv, err := checkPattern(c.At, c.Pattern, scrutineeType, typeEnv, ctx.Unions, present)
		if err != nil {
			return err
		}
		if len(c.Params) != len(restTypes) {
			return diag.New(diag.ArityMismatch, c.At,
				fmt.Sprintf("expected %d additional parameter(s), got %d", len(restTypes), len(c.Params)))
		}
		for i, name := range c.Params {
			caseEnv = caseEnv.DeclareTermVar(name, restTypes[i])
		}
		patParams := patternParamNames(c.Pattern)
		body, err := CheckTerm(ctx.InRecFun(r.Name, patParams), c.Body, r.ReturnType, caseEnv)
		if err != nil {
			return err
		}
		c.Body = body
	}
	return checkExhaustive(r.At, scrutineeType, ctx.Unions, present)
}

func patternParamNames(p ast.Pattern) []string {
	if pc, ok := p.(*ast.PatternCons); ok {
		out := make([]string, len(pc.Params))
		copy(out, pc.Params)
		return out
	}
	return nil
}
