// Package prelude supplies the checker's standard algebraic types
// (component C9): Nat, List<T>, and Option<T>, expressed the same way a
// user module's own `union` declarations are — as ast.Stmt values run
// through the regular declare/type-check/collect passes — rather than
// as a special-cased table the driver has to know about separately.
// Grounded on original_source's bootstrap module (the handful of
// unions proof_checker.py's examples always assume are already in
// scope) and kanso/internal/stdlib's registry-of-definitions shape,
// adapted here from a lookup table into literal statements since this
// checker's "standard library" is itself just more input to C7.
package prelude

import "deduce/internal/ast"

// Stmts returns the prelude's union declarations, in dependency order
// (none of them actually depend on each other, but declarePass would
// tolerate either order regardless).
func Stmts() []ast.Stmt {
	return []ast.Stmt{natUnion(), listUnion(), optionUnion()}
}

func natUnion() *ast.Union {
	return &ast.Union{
		Name: "Nat",
		Constructors: []ast.Constructor{
			{Name: "Zero"},
			{Name: "Succ", FieldTypes: []ast.Term{selfRef("Nat")}},
		},
	}
}

func listUnion() *ast.Union {
	return &ast.Union{
		Name:       "List",
		TypeParams: []string{"T"},
		Constructors: []ast.Constructor{
			{Name: "Nil"},
			{Name: "Cons", FieldTypes: []ast.Term{
				tparam("T"),
				&ast.TypeInst{Head: selfRef("List"), Args: []ast.Term{tparam("T")}},
			}},
		},
	}
}

func optionUnion() *ast.Union {
	return &ast.Union{
		Name:       "Option",
		TypeParams: []string{"T"},
		Constructors: []ast.Constructor{
			{Name: "None"},
			{Name: "Some", FieldTypes: []ast.Term{tparam("T")}},
		},
	}
}

func selfRef(name string) ast.Term { return ast.NewVar(ast.Position{}, name, name) }
func tparam(name string) ast.Term  { return ast.NewVar(ast.Position{}, name, name) }
