package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

func p() ast.Position { return ast.Position{Filename: "t.ded", Line: 1, Column: 1} }

func resolvedVar(name string) *ast.Var {
	return ast.NewVar(p(), name, name)
}

func TestCheckTypeResolvesDeclaredTypeVar(t *testing.T) {
	e := env.Empty.DeclareType("Nat")
	typ := ast.NewVar(p(), "Nat")

	err := CheckType(typ, e)

	assert.NoError(t, err)
	assert.Equal(t, ast.FlavorType, typ.Flavor)
	assert.True(t, typ.Resolved())
}

func TestCheckTypeUndefinedNameErrors(t *testing.T) {
	typ := ast.NewVar(p(), "Foo")

	err := CheckType(typ, env.Empty)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.UndefinedName, de.Kind)
}

func TestCheckTypeFunctionTypeChecksParamsUnderTypeParams(t *testing.T) {
	ft := &ast.FunctionType{
		TypeParams: []string{"T"},
		Params:     []ast.Term{ast.NewVar(p(), "T")},
		Return:     ast.NewVar(p(), "T"),
	}

	assert.NoError(t, CheckType(ft, env.Empty))
}

func TestCheckFormulaRequiresBoolType(t *testing.T) {
	ctx := TopLevel()

	_, err := CheckFormula(ctx, &ast.Int{Value: 3}, env.Empty)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.TypeMismatch, de.Kind)
}

func TestCheckFormulaAcceptsBoolLiteral(t *testing.T) {
	ctx := TopLevel()

	result, err := CheckFormula(ctx, &ast.Bool{Value: true}, env.Empty)

	assert.NoError(t, err)
	assert.IsType(t, &ast.BoolType{}, result.Typeof())
}

func TestSynthIntAndBool(t *testing.T) {
	ctx := TopLevel()

	i, err := SynthTerm(ctx, &ast.Int{Value: 42}, env.Empty)
	assert.NoError(t, err)
	assert.IsType(t, &ast.IntType{}, i.Typeof())

	b, err := SynthTerm(ctx, &ast.Bool{Value: false}, env.Empty)
	assert.NoError(t, err)
	assert.IsType(t, &ast.BoolType{}, b.Typeof())
}

func TestSynthLambdaBuildsFunctionType(t *testing.T) {
	ctx := TopLevel()
	lam := &ast.Lambda{
		Params: []ast.Param{{Name: "x", Type: &ast.IntType{}}},
		Body:   resolvedVar("x"),
	}

	result, err := SynthTerm(ctx, lam, env.Empty)

	assert.NoError(t, err)
	ft, ok := result.Typeof().(*ast.FunctionType)
	assert.True(t, ok)
	assert.IsType(t, &ast.IntType{}, ft.Return)
}

func TestSynthLambdaWithoutAnnotationFails(t *testing.T) {
	ctx := TopLevel()
	lam := &ast.Lambda{
		Params: []ast.Param{{Name: "x"}},
		Body:   resolvedVar("x"),
	}

	_, err := SynthTerm(ctx, lam, env.Empty)

	assert.Error(t, err)
}

func TestCheckSwitchOverBoolNonExhaustive(t *testing.T) {
	ctx := TopLevel()
	e := env.Empty.DeclareTermVar("flag", &ast.BoolType{})
	subject := resolvedVar("flag")
	assert.NoError(t, e.ResolveVar(subject, ast.FlavorTerm))

	sw := &ast.Switch{
		Subject: subject,
		Cases: []ast.SwitchCase{
			{Pattern: &ast.PatternBool{Value: true}, Body: &ast.Int{Value: 1}},
		},
	}

	_, err := CheckTerm(ctx, sw, &ast.IntType{}, e)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.PatternNonExhaustive, de.Kind)
}

func TestCheckSwitchOverBoolExhaustivePasses(t *testing.T) {
	ctx := TopLevel()
	e := env.Empty.DeclareTermVar("flag", &ast.BoolType{})
	subject := resolvedVar("flag")
	assert.NoError(t, e.ResolveVar(subject, ast.FlavorTerm))

	sw := &ast.Switch{
		Subject: subject,
		Cases: []ast.SwitchCase{
			{Pattern: &ast.PatternBool{Value: true}, Body: &ast.Int{Value: 1}},
			{Pattern: &ast.PatternBool{Value: false}, Body: &ast.Int{Value: 0}},
		},
	}

	result, err := CheckTerm(ctx, sw, &ast.IntType{}, e)

	assert.NoError(t, err)
	assert.IsType(t, &ast.IntType{}, result.Typeof())
}
