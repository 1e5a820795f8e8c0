package proof

import (
	"fmt"
	"strings"

	"deduce/internal/ast"
)

// proofAdvice builds the advice notes attached to an IncompleteProof
// diagnostic (spec §7's "advice block describing the proof skeleton
// that would discharge the goal"), grounded on proof_checker.py's
// proof_advice: for a goal `all x:T. phi(x)`, the advice always
// suggests `arbitrary`, and additionally an `induction` skeleton (with
// case and IH names pre-filled) when T names a union this module
// declared. Returns nil when goal isn't a universal (there's nothing
// shape-specific to suggest beyond the bare warning already reported).
func proofAdvice(ctx *Context, goal ast.Term) []string {
	all, ok := goal.(*ast.All)
	if !ok {
		return nil
	}

	notes := []string{fmt.Sprintf("arbitrary %s:%s", all.Var.Name, all.Var.Type)}

	name, ok := unionHeadName(all.Var.Type)
	if !ok {
		return notes
	}
	u, ok := ctx.Unions[name]
	if !ok {
		return notes
	}
	notes = append(notes, inductionSkeleton(name, u))
	return notes
}

// unionHeadName extracts the union name a type term denotes, whether
// bare (`Nat`) or applied to type arguments (`List<Nat>`, via TypeInst).
func unionHeadName(t ast.Term) (string, bool) {
	switch ty := t.(type) {
	case *ast.Var:
		return ty.Name, true
	case *ast.TypeInst:
		if v, ok := ty.Head.(*ast.Var); ok {
			return v.Name, true
		}
	}
	return "", false
}

// inductionSkeleton renders `induction <name> { case C1(..) suppose IH.. {
// ... } ... }`, one case per constructor, naming a fresh parameter per
// field and an induction hypothesis label for every field that recurs
// on the same union (mirrors proof_advice's per-case IH numbering,
// incrementing across the whole skeleton rather than restarting per
// case, since the rendered labels must stay distinct within one proof).
func inductionSkeleton(name string, u *ast.Union) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "induction %s {", name)
	ihNum := 0
	for _, c := range u.Constructors {
		sb.WriteString(" ")
		if len(c.FieldTypes) == 0 {
			fmt.Fprintf(&sb, "case %s { ... }", c.Name)
			continue
		}
		params := make([]string, len(c.FieldTypes))
		var ihs []string
		for fi, ft := range c.FieldTypes {
			params[fi] = fmt.Sprintf("%s%d", strings.ToLower(name[:1]), fi+1)
			if headName, ok := unionHeadName(ft); ok && headName == name {
				ihNum++
				ihs = append(ihs, fmt.Sprintf("IH%d", ihNum))
			}
		}
		fmt.Fprintf(&sb, "case %s(%s)", c.Name, strings.Join(params, ", "))
		if len(ihs) > 0 {
			fmt.Fprintf(&sb, " suppose %s", strings.Join(ihs, ", "))
		}
		sb.WriteString(" { ... }")
	}
	sb.WriteString(" }")
	return sb.String()
}
