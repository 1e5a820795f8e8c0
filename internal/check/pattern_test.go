package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deduce/internal/ast"
	"deduce/internal/diag"
	"deduce/internal/env"
)

// natUnion builds a small Nat{Zero, Succ(Nat)} union declaration, mirroring
// internal/prelude's shape, for tests that need a real recursive union
// without pulling in the whole prelude package.
func natUnion() *ast.Union {
	return &ast.Union{
		Name: "Nat",
		Constructors: []ast.Constructor{
			{Name: "Zero"},
			{Name: "Succ", FieldTypes: []ast.Term{ast.NewVar(p(), "Nat")}},
		},
	}
}

func natEnv() env.Env {
	nat := ast.NewVar(p(), "Nat")
	return env.Empty.
		DeclareType("Nat").
		DeclareTermVar("Zero", nat).
		DeclareTermVar("Succ", &ast.FunctionType{Params: []ast.Term{nat}, Return: nat})
}

func TestLookupUnionByVar(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}

	uni, targs, err := LookupUnion(ast.NewVar(p(), "Nat"), unions)

	assert.NoError(t, err)
	assert.Equal(t, "Nat", uni.Name)
	assert.Nil(t, targs)
}

func TestLookupUnionByTypeInst(t *testing.T) {
	list := &ast.Union{Name: "List", TypeParams: []string{"T"}, Constructors: []ast.Constructor{
		{Name: "Nil"},
		{Name: "Cons", FieldTypes: []ast.Term{ast.NewVar(p(), "T"), &ast.TypeInst{Head: ast.NewVar(p(), "List"), Args: []ast.Term{ast.NewVar(p(), "T")}}}},
	}}
	unions := map[string]*ast.Union{"List": list}
	typ := &ast.TypeInst{Head: ast.NewVar(p(), "List"), Args: []ast.Term{&ast.IntType{}}}

	uni, targs, err := LookupUnion(typ, unions)

	assert.NoError(t, err)
	assert.Equal(t, "List", uni.Name)
	assert.Len(t, targs, 1)
}

func TestCheckExhaustiveUnionMissingConstructor(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	present := map[string]bool{"Zero": true}

	err := checkExhaustive(p(), ast.NewVar(p(), "Nat"), unions, present)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.PatternNonExhaustive, de.Kind)
}

func TestCheckExhaustiveUnionAllCovered(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	present := map[string]bool{"Zero": true, "Succ": true}

	err := checkExhaustive(p(), ast.NewVar(p(), "Nat"), unions, present)

	assert.NoError(t, err)
}

func TestCheckConstructorPatternArityMismatch(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	pat := &ast.PatternCons{Constructor: "Succ", Params: []string{"a", "b"}}

	_, err := checkPattern(p(), pat, ast.NewVar(p(), "Nat"), env.Empty, unions, map[string]bool{})

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.ArityMismatch, de.Kind)
}

func TestCheckConstructorPatternUnknownConstructor(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	pat := &ast.PatternCons{Constructor: "Cons"}

	_, err := checkPattern(p(), pat, ast.NewVar(p(), "Nat"), env.Empty, unions, map[string]bool{})

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.PatternBadConstructor, de.Kind)
}

func TestCheckConstructorPatternDeclaresFieldVars(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	pat := &ast.PatternCons{Constructor: "Succ", Params: []string{"n2"}}

	body, err := checkPattern(p(), pat, ast.NewVar(p(), "Nat"), env.Empty, unions, map[string]bool{})

	assert.NoError(t, err)
	assert.True(t, body.TermVarDefined("n2"))
}

func TestCheckRecFunNonExhaustiveUnion(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	ctx := New(unions, false)
	r := &ast.RecFun{
		Name:       "isZero",
		ParamTypes: []ast.Term{ast.NewVar(p(), "Nat")},
		ReturnType: &ast.BoolType{},
		Cases: []ast.RecFunCase{
			{Pattern: &ast.PatternCons{Constructor: "Zero"}, Body: &ast.Bool{Value: true}},
		},
	}

	err := CheckRecFun(ctx, r, natEnv())

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.PatternNonExhaustive, de.Kind)
}

func TestCheckRecFunExhaustiveUnionPasses(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	ctx := New(unions, false)
	r := &ast.RecFun{
		Name:       "isZero",
		ParamTypes: []ast.Term{ast.NewVar(p(), "Nat")},
		ReturnType: &ast.BoolType{},
		Cases: []ast.RecFunCase{
			{Pattern: &ast.PatternCons{Constructor: "Zero"}, Body: &ast.Bool{Value: true}},
			{Pattern: &ast.PatternCons{Constructor: "Succ", Params: []string{"n2"}}, Body: &ast.Bool{Value: false}},
		},
	}

	assert.NoError(t, CheckRecFun(ctx, r, natEnv()))
}

func TestCheckRecFunRejectsWrongCaseArity(t *testing.T) {
	unions := map[string]*ast.Union{"Nat": natUnion()}
	ctx := New(unions, false)
	r := &ast.RecFun{
		Name:       "plus",
		ParamTypes: []ast.Term{ast.NewVar(p(), "Nat"), ast.NewVar(p(), "Nat")},
		ReturnType: ast.NewVar(p(), "Nat"),
		Cases: []ast.RecFunCase{
			{Pattern: &ast.PatternCons{Constructor: "Zero"}, Params: []string{"b", "extra"}, Body: resolvedVar("b")},
			{Pattern: &ast.PatternCons{Constructor: "Succ", Params: []string{"n2"}}, Params: []string{"b"}, Body: resolvedVar("b")},
		},
	}

	err := CheckRecFun(ctx, r, natEnv())

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.ArityMismatch, de.Kind)
}
