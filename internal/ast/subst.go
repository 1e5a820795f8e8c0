package ast

// Substitute replaces every free occurrence of the variable named `name`
// in term with replacement, mirroring the `.substitute(sub)` calls
// throughout the original checker (beta-reduction's parameter binding,
// All/Some instantiation, apply_definitions' unfolding). Substitution
// stops at any binder that rebinds `name` — the original source generates
// fresh names for every binder (here: proof.Context.FreshName), so shadowing
// rather than full alpha-renaming is sufficient to avoid capture here.
func Substitute(term Term, name string, replacement Term) Term {
	if term == nil {
		return nil
	}
	switch t := term.(type) {
	case *Var:
		if t.Name == name && t.Flavor != FlavorType {
			return replacement
		}
		return t

	case *Int, *Bool, *Hole, *Omitted, *IntType, *BoolType, *TypeType:
		return t

	case *Lambda:
		if shadowsParam(t.Params, name) {
			return t
		}
		return &Lambda{termBase: t.termBase, Params: t.Params, Body: Substitute(t.Body, name, replacement)}

	case *Generic:
		return &Generic{termBase: t.termBase, TypeParams: t.TypeParams, Body: Substitute(t.Body, name, replacement)}

	case *Call:
		return &Call{termBase: t.termBase, Rator: Substitute(t.Rator, name, replacement), Args: substituteAll(t.Args, name, replacement)}

	case *TermInst:
		return &TermInst{termBase: t.termBase, Subject: Substitute(t.Subject, name, replacement), TypeArgs: t.TypeArgs, Inferred: t.Inferred}

	case *Conditional:
		return &Conditional{termBase: t.termBase, Cond: Substitute(t.Cond, name, replacement), Then: Substitute(t.Then, name, replacement), Else: Substitute(t.Else, name, replacement)}

	case *TLet:
		rhs := Substitute(t.Rhs, name, replacement)
		if t.Name == name {
			return &TLet{termBase: t.termBase, Name: t.Name, Rhs: rhs, Body: t.Body}
		}
		return &TLet{termBase: t.termBase, Name: t.Name, Rhs: rhs, Body: Substitute(t.Body, name, replacement)}

	case *Switch:
		cases := make([]SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			if patternShadows(c.Pattern, name) {
				cases[i] = c
				continue
			}
			cases[i] = SwitchCase{At: c.At, Pattern: c.Pattern, Body: Substitute(c.Body, name, replacement)}
		}
		return &Switch{termBase: t.termBase, Subject: Substitute(t.Subject, name, replacement), Cases: cases}

	case *MakeArray:
		return &MakeArray{termBase: t.termBase, Elems: substituteAll(t.Elems, name, replacement)}

	case *ArrayGet:
		return &ArrayGet{termBase: t.termBase, Array: Substitute(t.Array, name, replacement), Index: Substitute(t.Index, name, replacement)}

	case *Mark:
		return &Mark{termBase: t.termBase, Subject: Substitute(t.Subject, name, replacement)}

	case *RecFun:
		if t.Name == name {
			return t
		}
		cases := make([]RecFunCase, len(t.Cases))
		for i, c := range t.Cases {
			if patternShadows(c.Pattern, name) || containsString(c.Params, name) {
				cases[i] = c
				continue
			}
			cases[i] = RecFunCase{At: c.At, Pattern: c.Pattern, Params: c.Params, Body: Substitute(c.Body, name, replacement)}
		}
		return &RecFun{termBase: t.termBase, Name: t.Name, TypeParams: t.TypeParams, ParamTypes: t.ParamTypes, ReturnType: t.ReturnType, Cases: cases}

	case *FunctionType:
		return t

	case *TypeInst:
		return t

	case *GenericUnknownInst:
		return t

	case *ArrayType:
		return t

	case *OverloadType:
		return t

	case *And:
		return &And{termBase: t.termBase, Args: substituteAll(t.Args, name, replacement)}

	case *Or:
		return &Or{termBase: t.termBase, Args: substituteAll(t.Args, name, replacement)}

	case *IfThen:
		return &IfThen{termBase: t.termBase, Premise: Substitute(t.Premise, name, replacement), Conclusion: Substitute(t.Conclusion, name, replacement)}

	case *All:
		if t.Var.Name == name {
			return t
		}
		return &All{termBase: t.termBase, Var: t.Var, Body: Substitute(t.Body, name, replacement)}

	case *Some:
		for _, v := range t.Vars {
			if v.Name == name {
				return t
			}
		}
		return &Some{termBase: t.termBase, Vars: t.Vars, Body: Substitute(t.Body, name, replacement)}

	default:
		return t
	}
}

func substituteAll(terms []Term, name string, replacement Term) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = Substitute(t, name, replacement)
	}
	return out
}

func shadowsParam(params []Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func patternShadows(p Pattern, name string) bool {
	pc, ok := p.(*PatternCons)
	if !ok {
		return false
	}
	return containsString(pc.Params, name)
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
