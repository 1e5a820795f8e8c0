// Package reduce implements the normalizer (component C4): β-reduction
// for Lambda/Generic application, δ-reduction (definitional unfolding,
// gated by the current selective-δ set), ι-reduction for Switch, and
// pattern-directed RecFun dispatch, plus congruence on everything else.
//
// Grounded on proof_checker.py's pervasive `.reduce(env)` calls and the
// reduce_all/reduce_only toggle pair it saves and restores around
// EnableDefs/ApplyDefs/Evaluate forms (spec §4.1); reduce_all and
// reduce_only are modeled here as explicit Context fields instead of
// module-level globals, per the design decision recorded in DESIGN.md.
package reduce

import (
	"deduce/internal/ast"
	"deduce/internal/env"
)

// Context carries the reducer's process-scoped toggles. Exactly one of
// All or Only is meaningful at a time in the original checker; here that
// invariant is just convention (Only is ignored while All is true)
// rather than enforced, since nothing in this package sets both.
type Context struct {
	All  bool
	Only []ast.Term // Var terms naming the definitions currently permitted to unfold

	// Reduced accumulates the names of every term variable actually
	// delta-unfolded during the current top-level reduce, so callers
	// like ApplyDefs can tell whether a requested definition ever fired.
	Reduced map[string]bool
}

// NewContext returns a Context with neither toggle active.
func NewContext() *Context { return &Context{Reduced: map[string]bool{}} }

// WithAll runs fn with All set, restoring the previous value afterward
// even if fn panics — the Go analogue of set_reduce_all(true)/…(false)
// bracketing every EvaluateGoal/EvaluateFact in the original.
func WithAll(ctx *Context, fn func()) {
	old := ctx.All
	ctx.All = true
	defer func() { ctx.All = old }()
	fn()
}

// WithOnly runs fn with Only extended by defs (outermost first, so a
// nested EnableDefs adds to, rather than replaces, the enclosing set),
// restoring the previous set afterward.
func WithOnly(ctx *Context, defs []ast.Term, fn func()) {
	old := ctx.Only
	ctx.Only = append(append([]ast.Term{}, defs...), old...)
	defer func() { ctx.Only = old }()
	fn()
}

func (ctx *Context) mayUnfold(v *ast.Var) bool {
	if ctx.All {
		return true
	}
	for _, d := range ctx.Only {
		if dv, ok := d.(*ast.Var); ok && ast.Equal(dv, v) {
			return true
		}
	}
	return false
}

// Reduce normalizes term under e to a point where no further β/δ/ι step
// or RecFun dispatch applies at the head, recursively normalizing
// subterms first (congruence). The bodies of Lambda, Generic and RecFun
// terms are returned as written, not reduced.
func Reduce(ctx *Context, term ast.Term, e env.Env) ast.Term {
	if term == nil {
		return nil
	}
	switch t := term.(type) {
	case *ast.Var:
		if !t.Resolved() || t.Flavor != ast.FlavorTerm {
			return t
		}
		val, err := e.GetValueOfTermVar(t)
		if err != nil || val == nil {
			return t
		}
		if !ctx.mayUnfold(t) {
			return t
		}
		ctx.Reduced[t.ResolvedNames[0]] = true
		return Reduce(ctx, val, e)

	case *ast.Int, *ast.Bool, *ast.Hole, *ast.Omitted,
		*ast.IntType, *ast.BoolType, *ast.TypeType:
		return t

	case *ast.Lambda:
		return &ast.Lambda{Params: t.Params, Body: t.Body}

	case *ast.Generic:
		return &ast.Generic{TypeParams: t.TypeParams, Body: t.Body}

	case *ast.RecFun:
		return t

	case *ast.Call:
		rator := Reduce(ctx, t.Rator, e)
		args := reduceAll(ctx, t.Args, e)
		return reduceCall(ctx, rator, args, e)

	case *ast.TermInst:
		subject := Reduce(ctx, t.Subject, e)
		if g, ok := subject.(*ast.Generic); ok {
			body := g.Body
			for i, tp := range g.TypeParams {
				if i < len(t.TypeArgs) {
					body = ast.Substitute(body, tp, t.TypeArgs[i])
				}
			}
			return Reduce(ctx, body, e)
		}
		return &ast.TermInst{Subject: subject, TypeArgs: t.TypeArgs, Inferred: t.Inferred}

	case *ast.Conditional:
		cond := Reduce(ctx, t.Cond, e)
		if b, ok := cond.(*ast.Bool); ok {
			if b.Value {
				return Reduce(ctx, t.Then, e)
			}
			return Reduce(ctx, t.Else, e)
		}
		return &ast.Conditional{Cond: cond, Then: Reduce(ctx, t.Then, e), Else: Reduce(ctx, t.Else, e)}

	case *ast.TLet:
		rhs := Reduce(ctx, t.Rhs, e)
		return Reduce(ctx, ast.Substitute(t.Body, t.Name, rhs), e)

	case *ast.Switch:
		subject := Reduce(ctx, t.Subject, e)
		if arm, bindings, ok := matchSwitch(subject, t.Cases); ok {
			body := arm.Body
			for name, val := range bindings {
				body = ast.Substitute(body, name, val)
			}
			return Reduce(ctx, body, e)
		}
		cases := make([]ast.SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			cases[i] = ast.SwitchCase{At: c.At, Pattern: c.Pattern, Body: Reduce(ctx, c.Body, e)}
		}
		return &ast.Switch{Subject: subject, Cases: cases}

	case *ast.MakeArray:
		return &ast.MakeArray{Elems: reduceAll(ctx, t.Elems, e)}

	case *ast.ArrayGet:
		return &ast.ArrayGet{Array: Reduce(ctx, t.Array, e), Index: Reduce(ctx, t.Index, e)}

	case *ast.Mark:
		return &ast.Mark{Subject: Reduce(ctx, t.Subject, e)}

	case *ast.And:
		return &ast.And{Args: reduceAll(ctx, t.Args, e)}

	case *ast.Or:
		return &ast.Or{Args: reduceAll(ctx, t.Args, e)}

	case *ast.IfThen:
		return &ast.IfThen{Premise: Reduce(ctx, t.Premise, e), Conclusion: Reduce(ctx, t.Conclusion, e)}

	case *ast.All:
		return &ast.All{Var: t.Var, Body: Reduce(ctx, t.Body, e)}

	case *ast.Some:
		return &ast.Some{Vars: t.Vars, Body: Reduce(ctx, t.Body, e)}

	default:
		return t
	}
}

func reduceAll(ctx *Context, terms []ast.Term, e env.Env) []ast.Term {
	out := make([]ast.Term, len(terms))
	for i, t := range terms {
		out[i] = Reduce(ctx, t, e)
	}
	return out
}

// reduceCall handles β-reduction of a Lambda application and RecFun
// dispatch: when rator reduces to a RecFun, the first argument's head
// constructor selects a case, that case's pattern binds the remaining
// sub-arguments, and the chosen body is reduced with all parameters
// substituted in.
func reduceCall(ctx *Context, rator ast.Term, args []ast.Term, e env.Env) ast.Term {
	switch r := rator.(type) {
	case *ast.Lambda:
		body := r.Body
		for i, p := range r.Params {
			if i < len(args) {
				body = ast.Substitute(body, p.Name, args[i])
			}
		}
		return Reduce(ctx, body, e)

	case *ast.RecFun:
		if len(args) == 0 {
			return &ast.Call{Rator: r, Args: args}
		}
		scrutinee := args[0]
		for _, c := range r.Cases {
			bindings, ok := matchPattern(scrutinee, c.Pattern)
			if !ok {
				continue
			}
			body := c.Body
			body = ast.Substitute(body, r.Name, r)
			for i, param := range c.Params {
				if i+1 < len(args) {
					body = ast.Substitute(body, param, args[i+1])
				}
			}
			for name, val := range bindings {
				body = ast.Substitute(body, name, val)
			}
			return Reduce(ctx, body, e)
		}
		return &ast.Call{Rator: r, Args: args}

	case *ast.Var:
		if result, ok := evalPrimitive(r.Name, args); ok {
			return result
		}
		return &ast.Call{Rator: rator, Args: args}

	default:
		return &ast.Call{Rator: rator, Args: args}
	}
}

// evalPrimitive computes the builtin operators internal/builtins seeds
// into every environment (arithmetic and comparison over Int, boolean
// connectives over Bool, and polymorphic equality) once their arguments
// have already reduced to literals — the checker's one hard-coded delta
// rule, the same way a kernel hard-codes its primitive-recursive
// arithmetic rather than defining it from pattern-matching clauses.
// Anything these names are applied to that isn't a literal (a variable,
// an un-evaluated constructor application) is left as an ordinary
// congruence-reduced Call for a later rewrite/induction step to handle.
func evalPrimitive(name string, args []ast.Term) (ast.Term, bool) {
	switch name {
	case "+", "-", "*", "/", "%":
		a, b, ok := intArgs(args)
		if !ok {
			return nil, false
		}
		switch name {
		case "+":
			return &ast.Int{Value: a + b}, true
		case "-":
			return &ast.Int{Value: a - b}, true
		case "*":
			return &ast.Int{Value: a * b}, true
		case "/":
			if b == 0 {
				return nil, false
			}
			return &ast.Int{Value: a / b}, true
		case "%":
			if b == 0 {
				return nil, false
			}
			return &ast.Int{Value: a % b}, true
		}

	case "<", "<=", ">", ">=":
		a, b, ok := intArgs(args)
		if !ok {
			return nil, false
		}
		switch name {
		case "<":
			return &ast.Bool{Value: a < b}, true
		case "<=":
			return &ast.Bool{Value: a <= b}, true
		case ">":
			return &ast.Bool{Value: a > b}, true
		case ">=":
			return &ast.Bool{Value: a >= b}, true
		}

	case "and", "or":
		if len(args) != 2 {
			return nil, false
		}
		a, ok1 := args[0].(*ast.Bool)
		b, ok2 := args[1].(*ast.Bool)
		if !ok1 || !ok2 {
			return nil, false
		}
		if name == "and" {
			return &ast.Bool{Value: a.Value && b.Value}, true
		}
		return &ast.Bool{Value: a.Value || b.Value}, true

	case "not":
		if len(args) != 1 {
			return nil, false
		}
		a, ok := args[0].(*ast.Bool)
		if !ok {
			return nil, false
		}
		return &ast.Bool{Value: !a.Value}, true

	case "=":
		// Deliberately restricted to the two genuinely primitive literal
		// types. Deciding equality of two arbitrary normal forms (e.g.
		// two constructor applications, or a free variable against
		// anything) is not sound here: a free variable isn't known to
		// differ from whatever it's compared against just because the
		// two terms aren't syntactically identical. Equality over
		// algebraic data and open terms stays an un-evaluated Call,
		// left for reflexivity (which compares both sides' normal forms
		// structurally) or an explicit proof rule to settle.
		if len(args) != 2 {
			return nil, false
		}
		if a, ok := args[0].(*ast.Int); ok {
			if b, ok := args[1].(*ast.Int); ok {
				return &ast.Bool{Value: a.Value == b.Value}, true
			}
			return nil, false
		}
		if a, ok := args[0].(*ast.Bool); ok {
			if b, ok := args[1].(*ast.Bool); ok {
				return &ast.Bool{Value: a.Value == b.Value}, true
			}
			return nil, false
		}
	}
	return nil, false
}

func intArgs(args []ast.Term) (a, b int64, ok bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	x, okX := args[0].(*ast.Int)
	y, okY := args[1].(*ast.Int)
	if !okX || !okY {
		return 0, 0, false
	}
	return x.Value, y.Value, true
}

// matchSwitch finds the first case whose pattern matches subject.
func matchSwitch(subject ast.Term, cases []ast.SwitchCase) (ast.SwitchCase, map[string]ast.Term, bool) {
	for _, c := range cases {
		if bindings, ok := matchPattern(subject, c.Pattern); ok {
			return c, bindings, true
		}
	}
	return ast.SwitchCase{}, nil, false
}

// matchPattern reports whether subject (assumed already reduced to a
// constructor-headed Call or a Bool) matches pat, and if so, the
// bindings it introduces.
func matchPattern(subject ast.Term, pat ast.Pattern) (map[string]ast.Term, bool) {
	switch p := pat.(type) {
	case *ast.PatternCons:
		name, fields, ok := headAndArgs(subject)
		if !ok || name != p.Constructor || len(fields) != len(p.Params) {
			return nil, false
		}
		bindings := make(map[string]ast.Term, len(p.Params))
		for i, param := range p.Params {
			bindings[param] = fields[i]
		}
		return bindings, true

	case *ast.PatternBool:
		b, ok := subject.(*ast.Bool)
		return nil, ok && b.Value == p.Value

	default:
		return nil, false
	}
}

// headAndArgs reports the constructor name and field terms of a
// constructor-headed subject, whether it's a zero-arity Var naming the
// constructor or a Call applying it to fields.
func headAndArgs(subject ast.Term) (string, []ast.Term, bool) {
	switch s := subject.(type) {
	case *ast.Var:
		if s.Resolved() {
			return s.ResolvedNames[0], nil, true
		}
		return s.Name, nil, true
	case *ast.Call:
		rator, ok := s.Rator.(*ast.Var)
		if !ok {
			return "", nil, false
		}
		name := rator.Name
		if rator.Resolved() {
			name = rator.ResolvedNames[0]
		}
		return name, s.Args, true
	default:
		return "", nil, false
	}
}
