// Package check implements the bidirectional type checker (component C5):
// a synth/check split over the term sum, overload resolution over
// OverloadType, Hindley-Milner-flavored type-argument inference for
// generic calls, type well-formedness checking, and pattern
// exhaustiveness checking for Switch/RecFun cases.
//
// Grounded on original_source/proof_checker.py's type_synth_term /
// type_check_term / check_type / check_pattern / type_check_call family,
// restructured into the file-per-concern layout kanso's
// internal/semantic package uses (analyzer_expression.go /
// analyzer_type.go / analyzer_helper.go split).
package check

import (
	"fmt"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

// Context carries the ambient state a single Define/RecFun body is
// checked under: the enclosing recursive function's name and the
// pattern-bound parameter names available for a strictly-smaller
// recursive call, mirroring the `name`/`pat_params` arguments threaded
// through every type_check_term/type_synth_term call in the original.
type Context struct {
	RecFunName string
	PatParams  []string

	// StructuralRecursionStrict, when true, turns a non-structural
	// recursive call into a hard error (RecursionNotStructural) instead
	// of a permissive no-op check; set from driver.Options.
	StructuralRecursionStrict bool

	// Unions maps every union type's name to its declaration, letting
	// pattern checking and exhaustiveness find a subject type's
	// constructors without env having to carry non-type-level payloads
	// in a type binding. Populated by the driver during its declaration
	// pass, mirroring the lookups process_declaration and check_pattern
	// perform against the module's union definitions.
	Unions map[string]*ast.Union
}

// New returns a Context with no enclosing recursive function, sharing
// unions with every other checking call in the same module.
func New(unions map[string]*ast.Union, structuralRecursionStrict bool) *Context {
	return &Context{Unions: unions, StructuralRecursionStrict: structuralRecursionStrict}
}

// TopLevel is a Context with no unions and no enclosing recursive
// function, for standalone tests.
func TopLevel() *Context { return &Context{Unions: map[string]*ast.Union{}} }

// InRecFun returns a child context naming the enclosing recursive
// function and its case's pattern parameters, for checking that case's
// body.
func (c *Context) InRecFun(name string, patParams []string) *Context {
	return &Context{RecFunName: name, PatParams: patParams, StructuralRecursionStrict: c.StructuralRecursionStrict, Unions: c.Unions}
}

// CheckFormula checks frm against BoolType, the entry point for a
// Theorem's or Assert's formula (mirrors check_formula).
func CheckFormula(ctx *Context, frm ast.Term, e env.Env) (ast.Term, error) {
	return CheckTerm(ctx, frm, &ast.BoolType{}, e)
}

// CheckType verifies that typ is a well-formed type expression in e:
// every named type variable and union it mentions must be in scope. A
// TypeInst's head and arguments are checked, but the number of type
// arguments is not compared with the union's type parameters.
// Mirrors check_type.
func CheckType(typ ast.Term, e env.Env) error {
	switch t := typ.(type) {
	case *ast.IntType, *ast.BoolType, *ast.TypeType:
		return nil

	case *ast.Var:
		cand := ast.NewVar(t.At, t.Name, t.Name)
		if err := e.ResolveVar(cand, ast.FlavorType); err != nil {
			return diag.New(diag.UndefinedName, t.At, "undefined type "+t.Name)
		}
		t.Index, t.Flavor = cand.Index, cand.Flavor
		t.ResolvedNames = []string{t.Name}
		return nil

	case *ast.FunctionType:
		body := e.DeclareTypeVars(t.TypeParams)
		for _, p := range t.Params {
			if err := CheckType(p, body); err != nil {
				return err
			}
		}
		return CheckType(t.Return, body)

	case *ast.TypeInst:
		if err := CheckType(t.Head, e); err != nil {
			return err
		}
		for _, a := range t.Args {
			if err := CheckType(a, e); err != nil {
				return err
			}
		}
		return nil

	case *ast.GenericUnknownInst:
		return CheckType(t.Head, e)

	case *ast.ArrayType:
		return CheckType(t.Elem, e)

	default:
		return diag.New(diag.TypeMismatch, typ.Pos(), fmt.Sprintf("expected a type, not %s", typ))
	}
}

// typeMismatch builds a standard "expected X, got Y" diagnostic.
func typeMismatch(at ast.Position, expected, term ast.Term) error {
	return diag.New(diag.TypeMismatch, at,
		fmt.Sprintf("expected a term of type\n\t%s\nbut got\n\t%s\nof type\n\t%s", expected, term, term.Typeof())).
		WithNote(fmt.Sprintf("term: %s", term))
}
