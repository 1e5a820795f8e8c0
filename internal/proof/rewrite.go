package proof

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
	"deduce/internal/reduce"
)

// applyRewrites synthesizes each equation proof's formula and rewrites
// the goal with it, left to right, one equation at a time. If the goal
// contains a Mark, each rewrite is confined to the marked subterm and
// the mark is then discarded (focused rewriting); otherwise every
// occurrence of the equation's left side anywhere in the goal is
// replaced. Shared by RewriteGoal and Rewrite.
func applyRewrites(ctx *Context, equations []ast.Proof, goal ast.Term, e env.Env) (ast.Term, error) {
	current := goal
	for _, eqProof := range equations {
		formula, err := SynthProof(ctx, eqProof, e)
		if err != nil {
			return nil, err
		}
		lhs, rhs, ok := splitEquation(formula)
		if !ok {
			return nil, diag.New(diag.EntailmentFailure, eqProof.Pos(),
				fmt.Sprintf("rewrite expects a proof of an equation, but this proves\n\t%s", formula))
		}

		var next ast.Term
		var count int
		if hasMark(current) {
			next, count = rewriteAtMark(current, lhs, rhs)
		} else {
			next, count = replaceAll(current, lhs, rhs)
		}
		if count == 0 {
			return nil, diag.New(diag.RewriteNoMatch, eqProof.Pos(),
				fmt.Sprintf("could not find\n\t%s\nin the goal to rewrite", lhs))
		}
		current = next
	}
	return current, nil
}

// applyDefinitions unfolds defs in goal (scoped to the marked subterm
// if one is present, the whole goal otherwise) by running the reducer
// with reduce_only limited to defs. Shared by ApplyDefsGoal and
// ApplyDefs.
func applyDefinitions(ctx *Context, defs []ast.Term, goal ast.Term, e env.Env) ast.Term {
	if hasMark(goal) {
		return unfoldAtMark(ctx, defs, goal, e)
	}
	var result ast.Term
	reduce.WithOnly(ctx.Reduce, defs, func() {
		result = reduce.Reduce(ctx.Reduce, goal, e)
	})
	return result
}

func unfoldAtMark(ctx *Context, defs []ast.Term, term ast.Term, e env.Env) ast.Term {
	switch t := term.(type) {
	case *ast.Mark:
		var result ast.Term
		reduce.WithOnly(ctx.Reduce, defs, func() {
			result = reduce.Reduce(ctx.Reduce, t.Subject, e)
		})
		return result

	case *ast.Call:
		return &ast.Call{Rator: unfoldAtMark(ctx, defs, t.Rator, e), Args: unfoldAtMarkList(ctx, defs, t.Args, e)}
	case *ast.And:
		return &ast.And{Args: unfoldAtMarkList(ctx, defs, t.Args, e)}
	case *ast.Or:
		return &ast.Or{Args: unfoldAtMarkList(ctx, defs, t.Args, e)}
	case *ast.IfThen:
		return &ast.IfThen{Premise: unfoldAtMark(ctx, defs, t.Premise, e), Conclusion: unfoldAtMark(ctx, defs, t.Conclusion, e)}
	case *ast.Conditional:
		return &ast.Conditional{Cond: unfoldAtMark(ctx, defs, t.Cond, e), Then: unfoldAtMark(ctx, defs, t.Then, e), Else: unfoldAtMark(ctx, defs, t.Else, e)}
	case *ast.TLet:
		return &ast.TLet{Name: t.Name, Rhs: unfoldAtMark(ctx, defs, t.Rhs, e), Body: unfoldAtMark(ctx, defs, t.Body, e)}
	case *ast.Switch:
		cases := make([]ast.SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			cases[i] = ast.SwitchCase{At: c.At, Pattern: c.Pattern, Body: unfoldAtMark(ctx, defs, c.Body, e)}
		}
		return &ast.Switch{Subject: unfoldAtMark(ctx, defs, t.Subject, e), Cases: cases}
	case *ast.MakeArray:
		return &ast.MakeArray{Elems: unfoldAtMarkList(ctx, defs, t.Elems, e)}
	case *ast.ArrayGet:
		return &ast.ArrayGet{Array: unfoldAtMark(ctx, defs, t.Array, e), Index: unfoldAtMark(ctx, defs, t.Index, e)}
	case *ast.TermInst:
		return &ast.TermInst{Subject: unfoldAtMark(ctx, defs, t.Subject, e), TypeArgs: t.TypeArgs, Inferred: t.Inferred}
	case *ast.All:
		return &ast.All{Var: t.Var, Body: unfoldAtMark(ctx, defs, t.Body, e)}
	case *ast.Some:
		return &ast.Some{Vars: t.Vars, Body: unfoldAtMark(ctx, defs, t.Body, e)}
	case *ast.Lambda:
		return &ast.Lambda{Params: t.Params, Body: unfoldAtMark(ctx, defs, t.Body, e)}

	default:
		return term
	}
}

func unfoldAtMarkList(ctx *Context, defs []ast.Term, terms []ast.Term, e env.Env) []ast.Term {
	out := make([]ast.Term, len(terms))
	for i, t := range terms {
		out[i] = unfoldAtMark(ctx, defs, t, e)
	}
	return out
}

// hasMark reports whether term contains an ast.Mark anywhere below it.
func hasMark(term ast.Term) bool {
	switch t := term.(type) {
	case *ast.Mark:
		return true
	case *ast.Call:
		return hasMark(t.Rator) || hasMarkList(t.Args)
	case *ast.And:
		return hasMarkList(t.Args)
	case *ast.Or:
		return hasMarkList(t.Args)
	case *ast.IfThen:
		return hasMark(t.Premise) || hasMark(t.Conclusion)
	case *ast.Conditional:
		return hasMark(t.Cond) || hasMark(t.Then) || hasMark(t.Else)
	case *ast.TLet:
		return hasMark(t.Rhs) || hasMark(t.Body)
	case *ast.Switch:
		if hasMark(t.Subject) {
			return true
		}
		for _, c := range t.Cases {
			if hasMark(c.Body) {
				return true
			}
		}
		return false
	case *ast.MakeArray:
		return hasMarkList(t.Elems)
	case *ast.ArrayGet:
		return hasMark(t.Array) || hasMark(t.Index)
	case *ast.TermInst:
		return hasMark(t.Subject)
	case *ast.All:
		return hasMark(t.Body)
	case *ast.Some:
		return hasMark(t.Body)
	case *ast.Lambda:
		return hasMark(t.Body)
	default:
		return false
	}
}

func hasMarkList(terms []ast.Term) bool {
	for _, t := range terms {
		if hasMark(t) {
			return true
		}
	}
	return false
}

// rewriteAtMark finds the (at most one, by invariant) Mark below term
// and rewrites lhs to rhs within its subject only, returning the
// rewritten subject in the Mark's place (the mark itself does not
// survive into the result). Nodes outside the marked subtree are left
// untouched even if they happen to contain lhs.
func rewriteAtMark(term ast.Term, lhs, rhs ast.Term) (ast.Term, int) {
	switch t := term.(type) {
	case *ast.Mark:
		return replaceAll(t.Subject, lhs, rhs)

	case *ast.Call:
		rator, n1 := rewriteAtMark(t.Rator, lhs, rhs)
		args, n2 := rewriteAtMarkList(t.Args, lhs, rhs)
		return &ast.Call{Rator: rator, Args: args}, n1 + n2
	case *ast.And:
		args, n := rewriteAtMarkList(t.Args, lhs, rhs)
		return &ast.And{Args: args}, n
	case *ast.Or:
		args, n := rewriteAtMarkList(t.Args, lhs, rhs)
		return &ast.Or{Args: args}, n
	case *ast.IfThen:
		p, n1 := rewriteAtMark(t.Premise, lhs, rhs)
		c, n2 := rewriteAtMark(t.Conclusion, lhs, rhs)
		return &ast.IfThen{Premise: p, Conclusion: c}, n1 + n2
	case *ast.Conditional:
		cond, n1 := rewriteAtMark(t.Cond, lhs, rhs)
		then, n2 := rewriteAtMark(t.Then, lhs, rhs)
		els, n3 := rewriteAtMark(t.Else, lhs, rhs)
		return &ast.Conditional{Cond: cond, Then: then, Else: els}, n1 + n2 + n3
	case *ast.TLet:
		r, n1 := rewriteAtMark(t.Rhs, lhs, rhs)
		b, n2 := rewriteAtMark(t.Body, lhs, rhs)
		return &ast.TLet{Name: t.Name, Rhs: r, Body: b}, n1 + n2
	case *ast.Switch:
		subj, n := rewriteAtMark(t.Subject, lhs, rhs)
		cases := make([]ast.SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			body, cn := rewriteAtMark(c.Body, lhs, rhs)
			n += cn
			cases[i] = ast.SwitchCase{At: c.At, Pattern: c.Pattern, Body: body}
		}
		return &ast.Switch{Subject: subj, Cases: cases}, n
	case *ast.MakeArray:
		elems, n := rewriteAtMarkList(t.Elems, lhs, rhs)
		return &ast.MakeArray{Elems: elems}, n
	case *ast.ArrayGet:
		arr, n1 := rewriteAtMark(t.Array, lhs, rhs)
		idx, n2 := rewriteAtMark(t.Index, lhs, rhs)
		return &ast.ArrayGet{Array: arr, Index: idx}, n1 + n2
	case *ast.TermInst:
		subj, n := rewriteAtMark(t.Subject, lhs, rhs)
		return &ast.TermInst{Subject: subj, TypeArgs: t.TypeArgs, Inferred: t.Inferred}, n
	case *ast.All:
		body, n := rewriteAtMark(t.Body, lhs, rhs)
		return &ast.All{Var: t.Var, Body: body}, n
	case *ast.Some:
		body, n := rewriteAtMark(t.Body, lhs, rhs)
		return &ast.Some{Vars: t.Vars, Body: body}, n
	case *ast.Lambda:
		body, n := rewriteAtMark(t.Body, lhs, rhs)
		return &ast.Lambda{Params: t.Params, Body: body}, n

	default:
		return term, 0
	}
}

func rewriteAtMarkList(terms []ast.Term, lhs, rhs ast.Term) ([]ast.Term, int) {
	out := make([]ast.Term, len(terms))
	total := 0
	for i, t := range terms {
		next, n := rewriteAtMark(t, lhs, rhs)
		out[i] = next
		total += n
	}
	return out, total
}

// replaceAll rewrites every occurrence of lhs (compared structurally)
// to rhs anywhere in term, outside-in: a node that matches lhs is
// replaced whole, without recursing into its children.
func replaceAll(term ast.Term, lhs, rhs ast.Term) (ast.Term, int) {
	if ast.Equal(term, lhs) {
		return rhs, 1
	}
	switch t := term.(type) {
	case *ast.Call:
		rator, n1 := replaceAll(t.Rator, lhs, rhs)
		args, n2 := replaceAllList(t.Args, lhs, rhs)
		return &ast.Call{Rator: rator, Args: args}, n1 + n2
	case *ast.And:
		args, n := replaceAllList(t.Args, lhs, rhs)
		return &ast.And{Args: args}, n
	case *ast.Or:
		args, n := replaceAllList(t.Args, lhs, rhs)
		return &ast.Or{Args: args}, n
	case *ast.IfThen:
		p, n1 := replaceAll(t.Premise, lhs, rhs)
		c, n2 := replaceAll(t.Conclusion, lhs, rhs)
		return &ast.IfThen{Premise: p, Conclusion: c}, n1 + n2
	case *ast.Conditional:
		cond, n1 := replaceAll(t.Cond, lhs, rhs)
		then, n2 := replaceAll(t.Then, lhs, rhs)
		els, n3 := replaceAll(t.Else, lhs, rhs)
		return &ast.Conditional{Cond: cond, Then: then, Else: els}, n1 + n2 + n3
	case *ast.TLet:
		r, n1 := replaceAll(t.Rhs, lhs, rhs)
		b, n2 := replaceAll(t.Body, lhs, rhs)
		return &ast.TLet{Name: t.Name, Rhs: r, Body: b}, n1 + n2
	case *ast.Switch:
		subj, n := replaceAll(t.Subject, lhs, rhs)
		cases := make([]ast.SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			body, cn := replaceAll(c.Body, lhs, rhs)
			n += cn
			cases[i] = ast.SwitchCase{At: c.At, Pattern: c.Pattern, Body: body}
		}
		return &ast.Switch{Subject: subj, Cases: cases}, n
	case *ast.MakeArray:
		elems, n := replaceAllList(t.Elems, lhs, rhs)
		return &ast.MakeArray{Elems: elems}, n
	case *ast.ArrayGet:
		arr, n1 := replaceAll(t.Array, lhs, rhs)
		idx, n2 := replaceAll(t.Index, lhs, rhs)
		return &ast.ArrayGet{Array: arr, Index: idx}, n1 + n2
	case *ast.TermInst:
		subj, n := replaceAll(t.Subject, lhs, rhs)
		return &ast.TermInst{Subject: subj, TypeArgs: t.TypeArgs, Inferred: t.Inferred}, n
	case *ast.Mark:
		subj, n := replaceAll(t.Subject, lhs, rhs)
		return &ast.Mark{Subject: subj}, n
	case *ast.All:
		body, n := replaceAll(t.Body, lhs, rhs)
		return &ast.All{Var: t.Var, Body: body}, n
	case *ast.Some:
		body, n := replaceAll(t.Body, lhs, rhs)
		return &ast.Some{Vars: t.Vars, Body: body}, n
	case *ast.Lambda:
		body, n := replaceAll(t.Body, lhs, rhs)
		return &ast.Lambda{Params: t.Params, Body: body}, n

	default:
		return term, 0
	}
}

func replaceAllList(terms []ast.Term, lhs, rhs ast.Term) ([]ast.Term, int) {
	out := make([]ast.Term, len(terms))
	total := 0
	for i, t := range terms {
		next, n := replaceAll(t, lhs, rhs)
		out[i] = next
		total += n
	}
	return out, total
}
