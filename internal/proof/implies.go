package proof

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

// checkImplies decides whether proved entails goal when neither is
// literally the other (formulasEqual already covers that base case and
// is tried first). This is the fallback every CheckProofOf case reaches
// for once it has synthesized a formula from some proof term and needs
// to know whether that's enough for the current goal — a strictly more
// permissive relation than equality, covering:
//
//   - goal a conjunction: proved must entail every conjunct
//   - proved a disjunction: every disjunct must entail goal
//   - proved a conjunction: some conjunct entails goal outright, or
//     (conjunct-weakening with an implicit modus ponens) one conjunct is
//     an implication whose premise another conjunct already discharges
//   - goal a disjunction: proved must entail at least one disjunct
//   - both implications: contravariant on the premise, covariant on the
//     conclusion
//   - both universals over the same type: alpha-rename to a shared fresh
//     name and recurse on the bodies
//   - proved a universal, goal not a matching universal: instantiate
//     proved's bound variable by matching its body's shape against goal
//     (formulaMatch) and recurse
//
// Mirrors proof_checker.py's check_implies, called wherever the
// original falls back from a literal formula match to something looser
// (module ordinary entailment, not a specific proof rule).
func checkImplies(ctx *Context, proved, goal ast.Term, e env.Env) error {
	if formulasEqual(ctx, proved, goal, e) {
		return nil
	}

	if g, ok := goal.(*ast.And); ok {
		for _, part := range g.Args {
			if err := checkImplies(ctx, proved, part, e); err != nil {
				return err
			}
		}
		return nil
	}

	if p, ok := proved.(*ast.Or); ok {
		for _, part := range p.Args {
			if err := checkImplies(ctx, part, goal, e); err != nil {
				return err
			}
		}
		return nil
	}

	if p, ok := proved.(*ast.And); ok {
		var cands diag.Candidates
		for i, part := range p.Args {
			if cands.Try(checkImplies(ctx, part, goal, e)) {
				return nil
			}
			if impl, isImp := part.(*ast.IfThen); isImp {
				for j, other := range p.Args {
					if i == j || !formulasEqual(ctx, other, impl.Premise, e) {
						continue
					}
					if cands.Try(checkImplies(ctx, impl.Conclusion, goal, e)) {
						return nil
					}
				}
			}
		}
		return diag.New(diag.EntailmentFailure, goal.Pos(),
			fmt.Sprintf("no conjunct of\n\t%s\nentails\n\t%s", proved, goal)).WithNote(cands.Err().Error())
	}

	if g, ok := goal.(*ast.Or); ok {
		var cands diag.Candidates
		for _, part := range g.Args {
			if cands.Try(checkImplies(ctx, proved, part, e)) {
				return nil
			}
		}
		return diag.New(diag.EntailmentFailure, goal.Pos(),
			fmt.Sprintf("%s does not entail any disjunct of\n\t%s", proved, goal)).WithNote(cands.Err().Error())
	}

	if p, ok := proved.(*ast.IfThen); ok {
		if g, ok := goal.(*ast.IfThen); ok {
			if err := checkImplies(ctx, g.Premise, p.Premise, e); err != nil {
				return diag.New(diag.EntailmentFailure, goal.Pos(),
					"the goal's premise does not entail the proved implication's premise")
			}
			return checkImplies(ctx, p.Conclusion, g.Conclusion, e)
		}
	}

	if p, ok := proved.(*ast.All); ok {
		if g, ok := goal.(*ast.All); ok && ast.Equal(p.Var.Type, g.Var.Type) {
			fresh := ctx.FreshName(p.Var.Name)
			pBody, e2 := openAll(p, fresh, e)
			gBody, _ := openAll(g, fresh, e)
			return checkImplies(ctx, pBody, gBody, e2)
		}
		if witness, ok := formulaMatch(p.Body, goal, p.Var.Name); ok {
			instantiated := substAny(p.Body, p.Var.Name, witness)
			if err := checkImplies(ctx, instantiated, goal, e); err == nil {
				return nil
			}
		}
	}

	return diag.New(diag.EntailmentFailure, goal.Pos(),
		fmt.Sprintf("this proves\n\t%s\nbut the goal is\n\t%s", proved, goal))
}
