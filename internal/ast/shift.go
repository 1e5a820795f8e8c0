package ast

// ShiftFlavor adjusts the De Bruijn index of every free Var of the given
// flavor in term: indices at or above cutoff are incremented by amount
// (amount may be negative). This is env's tool for keeping a value pulled
// out from under N bindings consistent with the caller's shallower
// context — see env's shiftResult, which calls this once per flavor with
// the number of bindings of that flavor walked past on the way to a binding.
//
// Only Var.Index of matching Flavor is ever touched; everything else is
// rebuilt structurally so the original term is left untouched (terms are
// otherwise immutable once built).
func ShiftFlavor(term Term, flavor Flavor, cutoff, amount int) Term {
	if term == nil {
		return nil
	}
	switch t := term.(type) {
	case *Var:
		if t.Flavor != flavor || t.Index < cutoff {
			return t
		}
		shifted := *t
		shifted.Index += amount
		return &shifted

	case *Int, *Bool, *Hole, *Omitted, *IntType, *BoolType, *TypeType:
		return t

	case *Lambda:
		params := shiftParams(t.Params, flavor, cutoff, amount)
		innerCutoff := cutoff
		if flavor == FlavorTerm {
			innerCutoff += len(t.Params)
		}
		return &Lambda{termBase: t.termBase, Params: params, Body: ShiftFlavor(t.Body, flavor, innerCutoff, amount)}

	case *Generic:
		innerCutoff := cutoff
		if flavor == FlavorType {
			innerCutoff += len(t.TypeParams)
		}
		return &Generic{termBase: t.termBase, TypeParams: t.TypeParams, Body: ShiftFlavor(t.Body, flavor, innerCutoff, amount)}

	case *Call:
		return &Call{termBase: t.termBase, Rator: ShiftFlavor(t.Rator, flavor, cutoff, amount), Args: shiftAll(t.Args, flavor, cutoff, amount)}

	case *TermInst:
		return &TermInst{termBase: t.termBase, Subject: ShiftFlavor(t.Subject, flavor, cutoff, amount), TypeArgs: shiftAll(t.TypeArgs, flavor, cutoff, amount), Inferred: t.Inferred}

	case *Conditional:
		return &Conditional{termBase: t.termBase, Cond: ShiftFlavor(t.Cond, flavor, cutoff, amount), Then: ShiftFlavor(t.Then, flavor, cutoff, amount), Else: ShiftFlavor(t.Else, flavor, cutoff, amount)}

	case *TLet:
		innerCutoff := cutoff
		if flavor == FlavorTerm {
			innerCutoff++
		}
		return &TLet{termBase: t.termBase, Name: t.Name, Rhs: ShiftFlavor(t.Rhs, flavor, cutoff, amount), Body: ShiftFlavor(t.Body, flavor, innerCutoff, amount)}

	case *Switch:
		cases := make([]SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			cases[i] = SwitchCase{At: c.At, Pattern: c.Pattern, Body: ShiftFlavor(c.Body, flavor, cutoff+patternBindings(c.Pattern, flavor), amount)}
		}
		return &Switch{termBase: t.termBase, Subject: ShiftFlavor(t.Subject, flavor, cutoff, amount), Cases: cases}

	case *MakeArray:
		return &MakeArray{termBase: t.termBase, Elems: shiftAll(t.Elems, flavor, cutoff, amount)}

	case *ArrayGet:
		return &ArrayGet{termBase: t.termBase, Array: ShiftFlavor(t.Array, flavor, cutoff, amount), Index: ShiftFlavor(t.Index, flavor, cutoff, amount)}

	case *Mark:
		return &Mark{termBase: t.termBase, Subject: ShiftFlavor(t.Subject, flavor, cutoff, amount)}

	case *RecFun:
		innerCutoff := cutoff
		if flavor == FlavorType {
			innerCutoff += len(t.TypeParams)
		}
		paramTypes := shiftAll(t.ParamTypes, flavor, innerCutoff, amount)
		returnType := ShiftFlavor(t.ReturnType, flavor, innerCutoff, amount)
		cases := make([]RecFunCase, len(t.Cases))
		bodyCutoff := innerCutoff
		if flavor == FlavorTerm {
			bodyCutoff++ // the function binds its own name for recursive calls
		}
		for i, c := range t.Cases {
			caseCutoff := bodyCutoff
			if flavor == FlavorTerm {
				caseCutoff += len(c.Params) + patternBindings(c.Pattern, flavor)
			}
			cases[i] = RecFunCase{At: c.At, Pattern: c.Pattern, Params: c.Params, Body: ShiftFlavor(c.Body, flavor, caseCutoff, amount)}
		}
		return &RecFun{termBase: t.termBase, Name: t.Name, TypeParams: t.TypeParams, ParamTypes: paramTypes, ReturnType: returnType, Cases: cases}

	case *FunctionType:
		innerCutoff := cutoff
		if flavor == FlavorType {
			innerCutoff += len(t.TypeParams)
		}
		return &FunctionType{termBase: t.termBase, TypeParams: t.TypeParams, Params: shiftAll(t.Params, flavor, innerCutoff, amount), Return: ShiftFlavor(t.Return, flavor, innerCutoff, amount)}

	case *TypeInst:
		return &TypeInst{termBase: t.termBase, Head: ShiftFlavor(t.Head, flavor, cutoff, amount), Args: shiftAll(t.Args, flavor, cutoff, amount)}

	case *GenericUnknownInst:
		return &GenericUnknownInst{termBase: t.termBase, Head: ShiftFlavor(t.Head, flavor, cutoff, amount)}

	case *ArrayType:
		return &ArrayType{termBase: t.termBase, Elem: ShiftFlavor(t.Elem, flavor, cutoff, amount)}

	case *OverloadType:
		overloads := make([]Overload, len(t.Overloads))
		for i, o := range t.Overloads {
			overloads[i] = Overload{Name: o.Name, Type: ShiftFlavor(o.Type, flavor, cutoff, amount)}
		}
		return &OverloadType{termBase: t.termBase, Overloads: overloads}

	case *And:
		return &And{termBase: t.termBase, Args: shiftAll(t.Args, flavor, cutoff, amount)}

	case *Or:
		return &Or{termBase: t.termBase, Args: shiftAll(t.Args, flavor, cutoff, amount)}

	case *IfThen:
		return &IfThen{termBase: t.termBase, Premise: ShiftFlavor(t.Premise, flavor, cutoff, amount), Conclusion: ShiftFlavor(t.Conclusion, flavor, cutoff, amount)}

	case *All:
		innerCutoff := cutoff + quantVarBindings(t.Var, flavor)
		return &All{termBase: t.termBase, Var: QuantVar{Name: t.Var.Name, Type: ShiftFlavor(t.Var.Type, flavor, cutoff, amount)}, Body: ShiftFlavor(t.Body, flavor, innerCutoff, amount)}

	case *Some:
		innerCutoff := cutoff
		vars := make([]QuantVar, len(t.Vars))
		for i, v := range t.Vars {
			vars[i] = QuantVar{Name: v.Name, Type: ShiftFlavor(v.Type, flavor, cutoff, amount)}
			innerCutoff += quantVarBindings(v, flavor)
		}
		return &Some{termBase: t.termBase, Vars: vars, Body: ShiftFlavor(t.Body, flavor, innerCutoff, amount)}

	default:
		return t
	}
}

func shiftAll(terms []Term, flavor Flavor, cutoff, amount int) []Term {
	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = ShiftFlavor(t, flavor, cutoff, amount)
	}
	return out
}

func shiftParams(params []Param, flavor Flavor, cutoff, amount int) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		out[i] = Param{Name: p.Name, Type: ShiftFlavor(p.Type, flavor, cutoff, amount)}
	}
	return out
}

// quantVarBindings reports how many flavor-matching bindings a QuantVar
// introduces: one, if the variable ranges over that flavor's space
// (Type-sorted quantifiers bind a type variable; everything else binds a
// term variable), zero otherwise.
func quantVarBindings(v QuantVar, flavor Flavor) int {
	_, isTypeSorted := v.Type.(*TypeType)
	if isTypeSorted {
		if flavor == FlavorType {
			return 1
		}
		return 0
	}
	if flavor == FlavorTerm {
		return 1
	}
	return 0
}

// patternBindings reports how many flavor-matching bindings a pattern
// introduces (a PatternCons binds one term variable per field; a
// PatternBool binds none).
func patternBindings(p Pattern, flavor Flavor) int {
	if flavor != FlavorTerm {
		return 0
	}
	if pc, ok := p.(*PatternCons); ok {
		return len(pc.Params)
	}
	return 0
}
