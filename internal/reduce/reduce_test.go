package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deduce/internal/ast"
	"deduce/internal/env"
)

func p() ast.Position { return ast.Position{Filename: "t.ded", Line: 1, Column: 1} }

func resolvedVar(name string) *ast.Var {
	v := ast.NewVar(p(), name, name)
	return v
}

func TestBetaReductionSubstitutesParams(t *testing.T) {
	lam := &ast.Lambda{
		Params: []ast.Param{{Name: "x"}},
		Body:   resolvedVar("x"),
	}
	call := &ast.Call{Rator: lam, Args: []ast.Term{&ast.Int{Value: 7}}}

	result := Reduce(NewContext(), call, env.Empty)
	assert.Equal(t, int64(7), result.(*ast.Int).Value)
}

func TestIotaReductionPicksMatchingCase(t *testing.T) {
	// switch (suc(zero)) { zero => false; suc(n) => true }
	subject := &ast.Call{Rator: resolvedVar("suc"), Args: []ast.Term{resolvedVar("zero")}}
	sw := &ast.Switch{
		Subject: subject,
		Cases: []ast.SwitchCase{
			{Pattern: &ast.PatternCons{Constructor: "zero"}, Body: &ast.Bool{Value: false}},
			{Pattern: &ast.PatternCons{Constructor: "suc", Params: []string{"n"}}, Body: &ast.Bool{Value: true}},
		},
	}

	result := Reduce(NewContext(), sw, env.Empty)
	assert.Equal(t, true, result.(*ast.Bool).Value)
}

func TestRecFunDispatchByHeadConstructor(t *testing.T) {
	// recfun isZero(n) { zero => true; suc(m) => false }
	isZero := &ast.RecFun{
		Name: "isZero",
		Cases: []ast.RecFunCase{
			{Pattern: &ast.PatternCons{Constructor: "zero"}, Body: &ast.Bool{Value: true}},
			{Pattern: &ast.PatternCons{Constructor: "suc", Params: []string{"m"}}, Body: &ast.Bool{Value: false}},
		},
	}
	call := &ast.Call{Rator: isZero, Args: []ast.Term{resolvedVar("zero")}}

	result := Reduce(NewContext(), call, env.Empty)
	assert.Equal(t, true, result.(*ast.Bool).Value)
}

func TestDeltaGatedByReduceOnly(t *testing.T) {
	e := env.Empty.DefineTermVar("two", &ast.IntType{}, &ast.Int{Value: 2})
	v := resolvedVar("two")
	assert.NoError(t, e.ResolveVar(v, ast.FlavorTerm))

	ctx := NewContext()
	result := Reduce(ctx, v, e)
	if _, stillVar := result.(*ast.Var); !stillVar {
		t.Fatalf("expected delta-reduction to stay gated off by default, got %#v", result)
	}

	var unfolded ast.Term
	WithOnly(ctx, []ast.Term{v}, func() {
		unfolded = Reduce(ctx, v, e)
	})
	assert.Equal(t, int64(2), unfolded.(*ast.Int).Value)
	assert.True(t, ctx.Reduced["two"])
}

func TestReduceAllUnfoldsUnconditionally(t *testing.T) {
	e := env.Empty.DefineTermVar("two", &ast.IntType{}, &ast.Int{Value: 2})
	v := resolvedVar("two")
	assert.NoError(t, e.ResolveVar(v, ast.FlavorTerm))

	ctx := NewContext()
	var result ast.Term
	WithAll(ctx, func() {
		result = Reduce(ctx, v, e)
	})
	assert.Equal(t, int64(2), result.(*ast.Int).Value)
	assert.False(t, ctx.All, "All must be restored after WithAll returns")
}
