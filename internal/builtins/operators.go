// Package builtins seeds an environment with the checker's primitive
// operators (component C9): arithmetic and comparison over Int, boolean
// conjunction/disjunction/negation over Bool, and a polymorphic
// equality usable at any type. None of these have a source-level
// definition to check — they're axiomatic, the same way a host
// language's integer addition is never itself type-checked — so they
// enter the environment as declared (not defined) term variables,
// mirroring how original_source/env.py's bootstrap environment seeds
// `+`, `-`, `=`, and friends before any user module is processed.
package builtins

import (
	"deduce/internal/ast"
	"deduce/internal/env"
)

var intBinOps = []string{"+", "-", "*", "/", "%"}
var intCompareOps = []string{"<", "<=", ">", ">="}
var boolBinOps = []string{"and", "or"}

// Declare extends e with every builtin operator's signature.
func Declare(e env.Env) env.Env {
	for _, name := range intBinOps {
		e = e.DeclareTermVar(name, binary(&ast.IntType{}, &ast.IntType{}, &ast.IntType{}))
	}
	for _, name := range intCompareOps {
		e = e.DeclareTermVar(name, binary(&ast.IntType{}, &ast.IntType{}, &ast.BoolType{}))
	}
	for _, name := range boolBinOps {
		e = e.DeclareTermVar(name, binary(&ast.BoolType{}, &ast.BoolType{}, &ast.BoolType{}))
	}
	e = e.DeclareTermVar("not", &ast.FunctionType{
		Params: []ast.Term{&ast.BoolType{}},
		Return: &ast.BoolType{},
	})
	e = e.DeclareTermVar("=", &ast.FunctionType{
		TypeParams: []string{"T"},
		Params:     []ast.Term{tvar("T"), tvar("T")},
		Return:     &ast.BoolType{},
	})
	return e
}

func binary(a, b, r ast.Term) ast.Term {
	return &ast.FunctionType{Params: []ast.Term{a, b}, Return: r}
}

// tvar builds an unresolved type-parameter reference, the same way
// driver.declareUnion builds a constructor's self-referential return
// type: it's never looked up against an environment, only matched and
// substituted by name during call-site unification (internal/check's
// typeMatch/substType), so it needs no Index.
func tvar(name string) ast.Term { return ast.NewVar(ast.Position{}, name, name) }
