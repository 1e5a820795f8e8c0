package ast

// Equal reports whether a and b are the same term up to structure —
// positions and Typeof annotations are ignored, matching the `==`
// comparisons the original checker relies on throughout check_implies,
// rewrite, and formula_match before falling back to isolate_difference.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name

	case *Int:
		y, ok := b.(*Int)
		return ok && x.Value == y.Value

	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.Value == y.Value

	case *Hole:
		_, ok := b.(*Hole)
		return ok

	case *Omitted:
		_, ok := b.(*Omitted)
		return ok

	case *IntType:
		_, ok := b.(*IntType)
		return ok

	case *BoolType:
		_, ok := b.(*BoolType)
		return ok

	case *TypeType:
		_, ok := b.(*TypeType)
		return ok

	case *Lambda:
		y, ok := b.(*Lambda)
		if !ok || len(x.Params) != len(y.Params) {
			return false
		}
		for i := range x.Params {
			if x.Params[i].Name != y.Params[i].Name || !Equal(x.Params[i].Type, y.Params[i].Type) {
				return false
			}
		}
		return Equal(x.Body, y.Body)

	case *Generic:
		y, ok := b.(*Generic)
		return ok && equalStrings(x.TypeParams, y.TypeParams) && Equal(x.Body, y.Body)

	case *Call:
		y, ok := b.(*Call)
		return ok && Equal(x.Rator, y.Rator) && equalAll(x.Args, y.Args)

	case *TermInst:
		y, ok := b.(*TermInst)
		return ok && Equal(x.Subject, y.Subject) && equalAll(x.TypeArgs, y.TypeArgs)

	case *Conditional:
		y, ok := b.(*Conditional)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)

	case *TLet:
		y, ok := b.(*TLet)
		return ok && x.Name == y.Name && Equal(x.Rhs, y.Rhs) && Equal(x.Body, y.Body)

	case *Switch:
		y, ok := b.(*Switch)
		if !ok || !Equal(x.Subject, y.Subject) || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i := range x.Cases {
			if !equalPattern(x.Cases[i].Pattern, y.Cases[i].Pattern) || !Equal(x.Cases[i].Body, y.Cases[i].Body) {
				return false
			}
		}
		return true

	case *MakeArray:
		y, ok := b.(*MakeArray)
		return ok && equalAll(x.Elems, y.Elems)

	case *ArrayGet:
		y, ok := b.(*ArrayGet)
		return ok && Equal(x.Array, y.Array) && Equal(x.Index, y.Index)

	case *Mark:
		y, ok := b.(*Mark)
		return ok && Equal(x.Subject, y.Subject)

	case *RecFun:
		y, ok := b.(*RecFun)
		if !ok || x.Name != y.Name || !equalStrings(x.TypeParams, y.TypeParams) || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i := range x.Cases {
			if !equalPattern(x.Cases[i].Pattern, y.Cases[i].Pattern) || !equalStrings(x.Cases[i].Params, y.Cases[i].Params) || !Equal(x.Cases[i].Body, y.Cases[i].Body) {
				return false
			}
		}
		return true

	case *FunctionType:
		y, ok := b.(*FunctionType)
		return ok && equalStrings(x.TypeParams, y.TypeParams) && equalAll(x.Params, y.Params) && Equal(x.Return, y.Return)

	case *TypeInst:
		y, ok := b.(*TypeInst)
		return ok && Equal(x.Head, y.Head) && equalAll(x.Args, y.Args)

	case *GenericUnknownInst:
		y, ok := b.(*GenericUnknownInst)
		return ok && Equal(x.Head, y.Head)

	case *ArrayType:
		y, ok := b.(*ArrayType)
		return ok && Equal(x.Elem, y.Elem)

	case *OverloadType:
		y, ok := b.(*OverloadType)
		if !ok || len(x.Overloads) != len(y.Overloads) {
			return false
		}
		for i := range x.Overloads {
			if x.Overloads[i].Name != y.Overloads[i].Name || !Equal(x.Overloads[i].Type, y.Overloads[i].Type) {
				return false
			}
		}
		return true

	case *And:
		y, ok := b.(*And)
		return ok && equalAll(x.Args, y.Args)

	case *Or:
		y, ok := b.(*Or)
		return ok && equalAll(x.Args, y.Args)

	case *IfThen:
		y, ok := b.(*IfThen)
		return ok && Equal(x.Premise, y.Premise) && Equal(x.Conclusion, y.Conclusion)

	case *All:
		y, ok := b.(*All)
		return ok && x.Var.Name == y.Var.Name && Equal(x.Var.Type, y.Var.Type) && Equal(x.Body, y.Body)

	case *Some:
		y, ok := b.(*Some)
		if !ok || len(x.Vars) != len(y.Vars) {
			return false
		}
		for i := range x.Vars {
			if x.Vars[i].Name != y.Vars[i].Name || !Equal(x.Vars[i].Type, y.Vars[i].Type) {
				return false
			}
		}
		return Equal(x.Body, y.Body)

	default:
		return false
	}
}

func equalAll(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalPattern(a, b Pattern) bool {
	switch x := a.(type) {
	case *PatternCons:
		y, ok := b.(*PatternCons)
		return ok && x.Constructor == y.Constructor && equalStrings(x.Params, y.Params)
	case *PatternBool:
		y, ok := b.(*PatternBool)
		return ok && x.Value == y.Value
	default:
		return false
	}
}
