package proof

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/check"
	"deduce/internal/diag"
	"deduce/internal/env"
)

func findConstructor(uni *ast.Union, name string) *ast.Constructor {
	for i := range uni.Constructors {
		if uni.Constructors[i].Name == name {
			return &uni.Constructors[i]
		}
	}
	return nil
}

func substMap(typ ast.Term, subst map[string]ast.Term) ast.Term {
	for name, val := range subst {
		typ = substAny(typ, name, val)
	}
	return typ
}

// checkInduction proves `all x:T. φ(x)` by structural induction over
// T's union, one case per constructor, each binding an induction
// hypothesis per recursive field. Mirrors check_proof_of's Induction
// case.
func checkInduction(ctx *Context, pr *ast.Induction, goal ast.Term, e env.Env) error {
	all, ok := goal.(*ast.All)
	if !ok {
		return entailErr(pr.At, goal, "a universally quantified formula")
	}
	if !ast.Equal(pr.Type, all.Var.Type) {
		return diag.New(diag.TypeMismatch, pr.At, "induction's stated type does not match the quantifier's")
	}
	uni, targs, err := check.LookupUnion(all.Var.Type, ctx.Unions)
	if err != nil {
		return diag.New(diag.EntailmentFailure, pr.At, err.Error())
	}

	typeSubst := map[string]ast.Term{}
	for i, tp := range uni.TypeParams {
		if i < len(targs) {
			typeSubst[tp] = targs[i]
		}
	}

	covered := map[string]bool{}
	for _, c := range pr.Cases {
		ctor := findConstructor(uni, c.Pattern.Constructor)
		if ctor == nil {
			return diag.New(diag.PatternBadConstructor, c.At, c.Pattern.Constructor+" is not a constructor of "+uni.Name)
		}
		if len(ctor.FieldTypes) != len(c.Pattern.Params) {
			return diag.New(diag.ArityMismatch, c.At,
				fmt.Sprintf("constructor %s expects %d parameters, got %d", ctor.Name, len(ctor.FieldTypes), len(c.Pattern.Params)))
		}

		fieldTypes := make([]ast.Term, len(ctor.FieldTypes))
		for i, ft := range ctor.FieldTypes {
			fieldTypes[i] = substMap(ft, typeSubst)
		}

		e2 := e
		for i, name := range c.Pattern.Params {
			e2 = e2.DeclareTermVar(name, fieldTypes[i])
		}

		recIdx := 0
		for i, name := range c.Pattern.Params {
			if !ast.Equal(fieldTypes[i], all.Var.Type) {
				continue
			}
			if recIdx >= len(c.InductionHypotheses) {
				return diag.New(diag.EntailmentFailure, c.At, "missing induction hypothesis for recursive parameter "+name)
			}
			ih := c.InductionHypotheses[recIdx]
			recIdx++
			fresh := ast.NewVar(c.At, name, name)
			e2.ResolveVar(fresh, ast.FlavorTerm) //nolint:errcheck // always succeeds: name was just declared
			ihFormula := substAny(all.Body, all.Var.Name, fresh)
			if ih.Formula != nil && !formulasEqual(ctx, ih.Formula, ihFormula, e2) {
				return diag.New(diag.EntailmentFailure, c.At, "the restated induction hypothesis does not match")
			}
			e2 = e2.DeclareProofVar(ih.Label, ihFormula)
		}
		if recIdx != len(c.InductionHypotheses) {
			return diag.New(diag.EntailmentFailure, c.At, "more induction hypotheses were named than this case has recursive parameters")
		}

		patternTerm := ast.PatternTerm(c.At, c.Pattern)
		caseGoal := substAny(all.Body, all.Var.Name, patternTerm)
		if err := CheckProofOf(ctx, c.Body, caseGoal, e2); err != nil {
			return err
		}
		covered[ctor.Name] = true
	}

	var missing []string
	for _, c := range uni.Constructors {
		if !covered[c.Name] {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return diag.New(diag.PatternNonExhaustive, pr.At, fmt.Sprintf("induction is missing case(s) for %v", missing)).
			WithHelp(fmt.Sprintf("add a case for %v", missing))
	}
	return nil
}

// checkSwitchProof proves goal by case analysis on a term (a union
// value or a Bool), without induction hypotheses. Mirrors
// check_proof_of's SwitchProof case.
func checkSwitchProof(ctx *Context, pr *ast.SwitchProof, goal ast.Term, e env.Env) error {
	subjType := pr.Subject.Typeof()
	if subjType == nil {
		return diag.New(diag.TypeMismatch, pr.At, "a switch-proof's subject must already be type-checked")
	}

	isBool := false
	var uni *ast.Union
	var targs []ast.Term
	if _, ok := subjType.(*ast.BoolType); ok {
		isBool = true
	} else {
		var err error
		uni, targs, err = check.LookupUnion(subjType, ctx.Unions)
		if err != nil {
			return diag.New(diag.EntailmentFailure, pr.At, err.Error())
		}
	}
	typeSubst := map[string]ast.Term{}
	if uni != nil {
		for i, tp := range uni.TypeParams {
			if i < len(targs) {
				typeSubst[tp] = targs[i]
			}
		}
	}

	covered := map[string]bool{}
	subjectVar, subjectIsVar := pr.Subject.(*ast.Var)

	for _, c := range pr.Cases {
		e2 := e
		var patternTerm ast.Term

		switch pat := c.Pattern.(type) {
		case *ast.PatternBool:
			if !isBool {
				return diag.New(diag.PatternBadConstructor, c.At, "expected a boolean pattern")
			}
			covered[fmt.Sprintf("%t", pat.Value)] = true
			patternTerm = &ast.Bool{Value: pat.Value}

		case *ast.PatternCons:
			if isBool {
				return diag.New(diag.PatternBadConstructor, c.At, "expected a constructor pattern")
			}
			ctor := findConstructor(uni, pat.Constructor)
			if ctor == nil {
				return diag.New(diag.PatternBadConstructor, c.At, pat.Constructor+" is not a constructor of "+uni.Name)
			}
			if len(ctor.FieldTypes) != len(pat.Params) {
				return diag.New(diag.ArityMismatch, c.At, "constructor arity mismatch")
			}
			for i, name := range pat.Params {
				e2 = e2.DeclareTermVar(name, substMap(ctor.FieldTypes[i], typeSubst))
			}
			covered[pat.Constructor] = true
			patternTerm = ast.PatternTerm(c.At, pat)

		default:
			return diag.New(diag.PatternBadConstructor, c.At, "unrecognized pattern")
		}

		caseGoal := goal
		if subjectIsVar {
			caseGoal = substAny(goal, subjectVar.Name, patternTerm)
		}
		for _, asm := range c.Assumptions {
			eq := mkEqual(c.At, pr.Subject, patternTerm)
			if asm.Formula != nil && !formulasEqual(ctx, asm.Formula, eq, e2) {
				return diag.New(diag.EntailmentFailure, c.At, "the restated equation does not match this case")
			}
			e2 = e2.DeclareProofVar(asm.Label, eq)
		}
		if err := CheckProofOf(ctx, c.Body, caseGoal, e2); err != nil {
			return err
		}
	}

	if isBool {
		if !covered["true"] || !covered["false"] {
			return diag.New(diag.PatternNonExhaustive, pr.At, "switch-proof over Bool must cover both true and false")
		}
		return nil
	}
	var missing []string
	for _, c := range uni.Constructors {
		if !covered[c.Name] {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return diag.New(diag.PatternNonExhaustive, pr.At, fmt.Sprintf("switch-proof is missing case(s) for %v", missing))
	}
	return nil
}
