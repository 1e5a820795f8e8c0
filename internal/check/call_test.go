package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

func intFunctionType(n int) *ast.FunctionType {
	params := make([]ast.Term, n)
	for i := range params {
		params[i] = &ast.IntType{}
	}
	return &ast.FunctionType{Params: params, Return: &ast.IntType{}}
}

func TestSynthVarSingleCandidateResolves(t *testing.T) {
	ctx := TopLevel()
	e := env.Empty.DeclareTermVar("x", &ast.IntType{})
	v := resolvedVar("x")

	result, err := synthVar(ctx, v, e)

	assert.NoError(t, err)
	assert.IsType(t, &ast.IntType{}, result.Typeof())
	assert.Equal(t, ast.FlavorTerm, v.Flavor)
}

func TestSynthVarMultipleCandidatesBuildsOverloadType(t *testing.T) {
	ctx := TopLevel()
	e := env.Empty.
		DeclareTermVar("add_nat", intFunctionType(2)).
		DeclareTermVar("add_int", intFunctionType(2))
	v := ast.NewVar(p(), "+", "add_nat", "add_int")

	result, err := synthVar(ctx, v, e)

	assert.NoError(t, err)
	ot, ok := result.Typeof().(*ast.OverloadType)
	assert.True(t, ok)
	assert.Len(t, ot.Overloads, 2)
	assert.False(t, v.Resolved())
}

func TestSynthVarUndefinedNameErrors(t *testing.T) {
	ctx := TopLevel()
	v := resolvedVar("nope")

	_, err := synthVar(ctx, v, env.Empty)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.UndefinedName, de.Kind)
}

func TestSynthOverloadCallResolvesUniqueMatch(t *testing.T) {
	ctx := TopLevel()
	natType := ast.NewVar(p(), "Nat")
	natFt := &ast.FunctionType{Params: []ast.Term{natType, natType}, Return: natType}
	e := env.Empty.
		DeclareTermVar("add_nat", natFt).
		DeclareTermVar("add_int", intFunctionType(2))
	rator := ast.NewVar(p(), "+", "add_nat", "add_int")
	call := &ast.Call{Rator: rator, Args: []ast.Term{&ast.Int{Value: 1}, &ast.Int{Value: 2}}}

	result, err := SynthTerm(ctx, call, e)

	assert.NoError(t, err)
	assert.IsType(t, &ast.IntType{}, result.Typeof())
	assert.Equal(t, []string{"add_int"}, rator.ResolvedNames)
}

func TestSynthOverloadCallAmbiguous(t *testing.T) {
	ctx := TopLevel()
	e := env.Empty.
		DeclareTermVar("add_a", intFunctionType(2)).
		DeclareTermVar("add_b", intFunctionType(2))
	rator := ast.NewVar(p(), "+", "add_a", "add_b")
	call := &ast.Call{Rator: rator, Args: []ast.Term{&ast.Int{Value: 1}, &ast.Int{Value: 2}}}

	_, err := SynthTerm(ctx, call, e)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.OverloadAmbiguous, de.Kind)
}

func TestSynthOverloadCallNoMatch(t *testing.T) {
	ctx := TopLevel()
	boolFt := &ast.FunctionType{Params: []ast.Term{&ast.BoolType{}, &ast.BoolType{}}, Return: &ast.BoolType{}}
	e := env.Empty.
		DeclareTermVar("and_a", boolFt).
		DeclareTermVar("and_b", boolFt)
	rator := ast.NewVar(p(), "and", "and_a", "and_b")
	call := &ast.Call{Rator: rator, Args: []ast.Term{&ast.Int{Value: 1}, &ast.Int{Value: 2}}}

	_, err := SynthTerm(ctx, call, e)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.OverloadNoMatch, de.Kind)
}

func TestGenericCallInfersTypeParamFromArgument(t *testing.T) {
	ctx := TopLevel()
	tvar := ast.NewVar(p(), "T")
	idft := &ast.FunctionType{TypeParams: []string{"T"}, Params: []ast.Term{tvar}, Return: ast.NewVar(p(), "T")}
	e := env.Empty.DeclareTermVar("id", idft)
	call := &ast.Call{Rator: resolvedVar("id"), Args: []ast.Term{&ast.Int{Value: 5}}}

	result, err := SynthTerm(ctx, call, e)

	assert.NoError(t, err)
	assert.IsType(t, &ast.IntType{}, result.Typeof())
}

func TestCheckCallSeedsTypeParamFromExpectedReturn(t *testing.T) {
	ctx := TopLevel()
	nilListFt := &ast.FunctionType{
		TypeParams: []string{"T"},
		Params:     nil,
		Return:     &ast.ArrayType{Elem: ast.NewVar(p(), "T")},
	}
	e := env.Empty.DeclareTermVar("nilList", nilListFt)
	call := &ast.Call{Rator: resolvedVar("nilList"), Args: []ast.Term{}}
	expected := &ast.ArrayType{Elem: &ast.IntType{}}

	result, err := CheckTerm(ctx, call, expected, e)

	assert.NoError(t, err)
	assert.True(t, ast.Equal(expected, result.Typeof()))
}

func TestGenericCallUnresolvedTypeParamErrors(t *testing.T) {
	ctx := TopLevel()
	constFt := &ast.FunctionType{
		TypeParams: []string{"T"},
		Params:     []ast.Term{&ast.IntType{}},
		Return:     ast.NewVar(p(), "T"),
	}
	e := env.Empty.DeclareTermVar("const5", constFt)
	call := &ast.Call{Rator: resolvedVar("const5"), Args: []ast.Term{&ast.Int{Value: 5}}}

	_, err := SynthTerm(ctx, call, e)

	assert.Error(t, err)
}

func TestCheckStructuralRecursionStrictRejectsNonPatternArg(t *testing.T) {
	base := &Context{StructuralRecursionStrict: true, Unions: map[string]*ast.Union{}}
	ctx := base.InRecFun("fact", []string{"n"})
	e := env.Empty.
		DeclareTermVar("fact", intFunctionType(1)).
		DeclareTermVar("n", &ast.IntType{}).
		DeclareTermVar("m", &ast.IntType{})
	call := &ast.Call{Rator: resolvedVar("fact"), Args: []ast.Term{resolvedVar("m")}}

	_, err := SynthTerm(ctx, call, e)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.RecursionNotStructural, de.Kind)
}

func TestCheckStructuralRecursionPermissiveAcceptsNonPatternArg(t *testing.T) {
	base := &Context{StructuralRecursionStrict: false, Unions: map[string]*ast.Union{}}
	ctx := base.InRecFun("fact", []string{"n"})
	e := env.Empty.
		DeclareTermVar("fact", intFunctionType(1)).
		DeclareTermVar("n", &ast.IntType{}).
		DeclareTermVar("m", &ast.IntType{})
	call := &ast.Call{Rator: resolvedVar("fact"), Args: []ast.Term{resolvedVar("m")}}

	_, err := SynthTerm(ctx, call, e)

	assert.NoError(t, err)
}

func TestStructuralRecursionAllowsPatternBoundArg(t *testing.T) {
	base := &Context{StructuralRecursionStrict: true, Unions: map[string]*ast.Union{}}
	ctx := base.InRecFun("fact", []string{"n"})
	e := env.Empty.
		DeclareTermVar("fact", intFunctionType(1)).
		DeclareTermVar("n", &ast.IntType{})
	call := &ast.Call{Rator: resolvedVar("fact"), Args: []ast.Term{resolvedVar("n")}}

	_, err := SynthTerm(ctx, call, e)

	assert.NoError(t, err)
}
