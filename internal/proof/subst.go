package proof

import "deduce/internal/ast"

// substAny replaces every free occurrence of name with replacement,
// regardless of which binding space name belongs to and whether it
// occurs in a term or a type position. ast.Substitute deliberately
// skips type-flavored variables and leaves type-former nodes alone
// (substitution there is check's job, over concrete type arguments);
// All-elimination over a type-sorted quantifier and induction's
// per-constructor type-parameter instantiation both need a name
// replaced everywhere it appears, term or type position alike, so this
// package carries its own general walk instead.
func substAny(term ast.Term, name string, replacement ast.Term) ast.Term {
	if term == nil {
		return nil
	}
	switch t := term.(type) {
	case *ast.Var:
		if t.Name == name {
			return replacement
		}
		return t

	case *ast.Int, *ast.Bool, *ast.Hole, *ast.Omitted,
		*ast.IntType, *ast.BoolType, *ast.TypeType:
		return t

	case *ast.Lambda:
		if shadowsParam(t.Params, name) {
			return t
		}
		params := make([]ast.Param, len(t.Params))
		for i, p := range t.Params {
			params[i] = ast.Param{Name: p.Name, Type: substAny(p.Type, name, replacement)}
		}
		return &ast.Lambda{Params: params, Body: substAny(t.Body, name, replacement)}

	case *ast.Generic:
		if containsString(t.TypeParams, name) {
			return t
		}
		return &ast.Generic{TypeParams: t.TypeParams, Body: substAny(t.Body, name, replacement)}

	case *ast.Call:
		return &ast.Call{Rator: substAny(t.Rator, name, replacement), Args: substAnyAll(t.Args, name, replacement)}

	case *ast.TermInst:
		return &ast.TermInst{Subject: substAny(t.Subject, name, replacement), TypeArgs: substAnyAll(t.TypeArgs, name, replacement), Inferred: t.Inferred}

	case *ast.Conditional:
		return &ast.Conditional{Cond: substAny(t.Cond, name, replacement), Then: substAny(t.Then, name, replacement), Else: substAny(t.Else, name, replacement)}

	case *ast.TLet:
		rhs := substAny(t.Rhs, name, replacement)
		if t.Name == name {
			return &ast.TLet{Name: t.Name, Rhs: rhs, Body: t.Body}
		}
		return &ast.TLet{Name: t.Name, Rhs: rhs, Body: substAny(t.Body, name, replacement)}

	case *ast.Switch:
		cases := make([]ast.SwitchCase, len(t.Cases))
		for i, c := range t.Cases {
			if patternShadows(c.Pattern, name) {
				cases[i] = c
				continue
			}
			cases[i] = ast.SwitchCase{At: c.At, Pattern: c.Pattern, Body: substAny(c.Body, name, replacement)}
		}
		return &ast.Switch{Subject: substAny(t.Subject, name, replacement), Cases: cases}

	case *ast.MakeArray:
		return &ast.MakeArray{Elems: substAnyAll(t.Elems, name, replacement)}

	case *ast.ArrayGet:
		return &ast.ArrayGet{Array: substAny(t.Array, name, replacement), Index: substAny(t.Index, name, replacement)}

	case *ast.Mark:
		return &ast.Mark{Subject: substAny(t.Subject, name, replacement)}

	case *ast.RecFun:
		if t.Name == name {
			return t
		}
		cases := make([]ast.RecFunCase, len(t.Cases))
		for i, c := range t.Cases {
			if patternShadows(c.Pattern, name) || containsString(c.Params, name) {
				cases[i] = c
				continue
			}
			cases[i] = ast.RecFunCase{At: c.At, Pattern: c.Pattern, Params: c.Params, Body: substAny(c.Body, name, replacement)}
		}
		return &ast.RecFun{Name: t.Name, TypeParams: t.TypeParams, ParamTypes: substAnyAll(t.ParamTypes, name, replacement), ReturnType: substAny(t.ReturnType, name, replacement), Cases: cases}

	case *ast.FunctionType:
		if containsString(t.TypeParams, name) {
			return t
		}
		return &ast.FunctionType{TypeParams: t.TypeParams, Params: substAnyAll(t.Params, name, replacement), Return: substAny(t.Return, name, replacement)}

	case *ast.TypeInst:
		return &ast.TypeInst{Head: substAny(t.Head, name, replacement), Args: substAnyAll(t.Args, name, replacement)}

	case *ast.GenericUnknownInst:
		return &ast.GenericUnknownInst{Head: substAny(t.Head, name, replacement)}

	case *ast.ArrayType:
		return &ast.ArrayType{Elem: substAny(t.Elem, name, replacement)}

	case *ast.OverloadType:
		return t

	case *ast.And:
		return &ast.And{Args: substAnyAll(t.Args, name, replacement)}

	case *ast.Or:
		return &ast.Or{Args: substAnyAll(t.Args, name, replacement)}

	case *ast.IfThen:
		return &ast.IfThen{Premise: substAny(t.Premise, name, replacement), Conclusion: substAny(t.Conclusion, name, replacement)}

	case *ast.All:
		if t.Var.Name == name {
			return t
		}
		return &ast.All{Var: ast.QuantVar{Name: t.Var.Name, Type: substAny(t.Var.Type, name, replacement)}, Body: substAny(t.Body, name, replacement)}

	case *ast.Some:
		for _, v := range t.Vars {
			if v.Name == name {
				return t
			}
		}
		vars := make([]ast.QuantVar, len(t.Vars))
		for i, v := range t.Vars {
			vars[i] = ast.QuantVar{Name: v.Name, Type: substAny(v.Type, name, replacement)}
		}
		return &ast.Some{Vars: vars, Body: substAny(t.Body, name, replacement)}

	default:
		return t
	}
}

func substAnyAll(terms []ast.Term, name string, replacement ast.Term) []ast.Term {
	out := make([]ast.Term, len(terms))
	for i, t := range terms {
		out[i] = substAny(t, name, replacement)
	}
	return out
}

func shadowsParam(params []ast.Param, name string) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

func patternShadows(p ast.Pattern, name string) bool {
	pc, ok := p.(*ast.PatternCons)
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
