package proof

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

func call(name string, args ...ast.Term) *ast.Call {
	return &ast.Call{Rator: resolvedVar(name), Args: args}
}

func intLit(n int64) *ast.Int { return &ast.Int{Value: n} }

func noUnions() map[string]*ast.Union { return map[string]*ast.Union{} }

func TestCheckProofOfHoleWarnsIncomplete(t *testing.T) {
	ctx := NewContext(noUnions())

	err := CheckProofOf(ctx, &ast.PHole{}, &ast.Bool{Value: true}, env.Empty)

	assert.NoError(t, err)
	assert.Len(t, ctx.Diagnostics, 1)
	assert.Equal(t, diag.IncompleteProof, ctx.Diagnostics[0].Kind)
	assert.True(t, ctx.Diagnostics[0].IsIncomplete)
}

func TestCheckProofOfSorryWarnsUnfinished(t *testing.T) {
	ctx := NewContext(noUnions())

	err := CheckProofOf(ctx, &ast.PSorry{}, &ast.Bool{Value: true}, env.Empty)

	assert.NoError(t, err)
	assert.Equal(t, diag.UnfinishedProof, ctx.Diagnostics[0].Kind)
}

func TestCheckProofOfTrueOnReducedComparison(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := call("<", intLit(1), intLit(2))

	assert.NoError(t, CheckProofOf(ctx, &ast.PTrue{}, goal, env.Empty))
}

func TestCheckProofOfTrueFailsWhenGoalDoesNotReduceToTrue(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := call("<", intLit(5), intLit(2))

	err := CheckProofOf(ctx, &ast.PTrue{}, goal, env.Empty)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.AssertionFailed, de.Kind)
}

func TestCheckProofOfReflexivePasses(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := mkEqual(p(), call("+", intLit(1), intLit(1)), intLit(2))

	assert.NoError(t, CheckProofOf(ctx, &ast.PReflexive{}, goal, env.Empty))
}

func TestCheckProofOfReflexiveFails(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := mkEqual(p(), call("+", intLit(1), intLit(1)), intLit(3))

	err := CheckProofOf(ctx, &ast.PReflexive{}, goal, env.Empty)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.EntailmentFailure, de.Kind)
}

func TestCheckProofOfReflexiveRequiresEquation(t *testing.T) {
	ctx := NewContext(noUnions())

	err := CheckProofOf(ctx, &ast.PReflexive{}, &ast.Bool{Value: true}, env.Empty)

	assert.Error(t, err)
}

func TestCheckProofOfSymmetric(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := mkEqual(p(), intLit(2), call("+", intLit(1), intLit(1)))

	assert.NoError(t, CheckProofOf(ctx, &ast.PSymmetric{Eq: &ast.PReflexive{}}, goal, env.Empty))
}

func TestCheckProofOfTransitive(t *testing.T) {
	ctx := NewContext(noUnions())
	e := env.Empty.
		DeclareProofVar("h1", mkEqual(p(), intLit(1), intLit(2))).
		DeclareProofVar("h2", mkEqual(p(), intLit(2), intLit(3)))
	goal := mkEqual(p(), intLit(1), intLit(3))
	proof := &ast.PTransitive{Eq1: &ast.PVar{Name: "h1"}, Eq2: &ast.PVar{Name: "h2"}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, e))
}

func TestCheckProofOfTransitiveMismatchFails(t *testing.T) {
	ctx := NewContext(noUnions())
	// h1's left side (5) does not match the goal's left side (1), so
	// transitivity must reject this chain regardless of h2.
	e := env.Empty.
		DeclareProofVar("h1", mkEqual(p(), intLit(5), intLit(9))).
		DeclareProofVar("h2", mkEqual(p(), intLit(2), intLit(3)))
	goal := mkEqual(p(), intLit(1), intLit(3))
	proof := &ast.PTransitive{Eq1: &ast.PVar{Name: "h1"}, Eq2: &ast.PVar{Name: "h2"}}

	assert.Error(t, CheckProofOf(ctx, proof, goal, e))
}

func TestCheckProofOfInjective(t *testing.T) {
	ctx := NewContext(noUnions())
	succ := resolvedVar("Succ")
	a, b := resolvedVar("a"), resolvedVar("b")
	e := env.Empty.DeclareProofVar("h", mkEqual(p(), &ast.Call{Rator: succ, Args: []ast.Term{a}}, &ast.Call{Rator: succ, Args: []ast.Term{b}}))
	goal := mkEqual(p(), a, b)
	proof := &ast.PInjective{Constructor: succ, Eq: &ast.PVar{Name: "h"}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, e))
}

func TestCheckProofOfExtensionality(t *testing.T) {
	ctx := NewContext(noUnions())
	f := resolvedVar("f")
	f.SetTypeof(&ast.FunctionType{Params: []ast.Term{&ast.IntType{}}, Return: &ast.IntType{}})
	goal := mkEqual(p(), f, f)
	proof := &ast.PExtensionality{Body: &ast.PReflexive{}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestCheckProofOfExtensionalityRequiresFunctionEquation(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := mkEqual(p(), intLit(1), intLit(1))

	err := CheckProofOf(ctx, &ast.PExtensionality{Body: &ast.PReflexive{}}, goal, env.Empty)

	assert.Error(t, err)
}

func TestCheckProofOfTuple(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := &ast.And{Args: []ast.Term{
		call("<", intLit(1), intLit(2)),
		call("=", intLit(3), intLit(3)),
	}}
	proof := &ast.PTuple{Parts: []ast.Proof{&ast.PTrue{}, &ast.PReflexive{}}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestCheckProofOfTupleArityMismatch(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := &ast.And{Args: []ast.Term{call("<", intLit(1), intLit(2))}}
	proof := &ast.PTuple{Parts: []ast.Proof{&ast.PTrue{}, &ast.PTrue{}}}

	assert.Error(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestCheckProofOfImpIntroUsesGoalPremise(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := &ast.IfThen{Premise: mkEqual(p(), intLit(1), intLit(1)), Conclusion: mkEqual(p(), intLit(2), intLit(2))}
	proof := &ast.ImpIntro{Label: "h", Body: &ast.PReflexive{}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestCheckProofOfImpIntroRestatedPremiseMustMatch(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := &ast.IfThen{Premise: mkEqual(p(), intLit(1), intLit(1)), Conclusion: mkEqual(p(), intLit(2), intLit(2))}
	// The restated premise (9=8, false) disagrees in truth value with the
	// goal's actual premise (1=1, true), so it cannot be accepted.
	proof := &ast.ImpIntro{Label: "h", Premise: mkEqual(p(), intLit(9), intLit(8)), Body: &ast.PReflexive{}}

	assert.Error(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestCheckProofOfAllIntro(t *testing.T) {
	ctx := NewContext(noUnions())
	nat := ast.NewVar(p(), "Nat")
	goal := &ast.All{Var: ast.QuantVar{Name: "n", Type: nat}, Body: mkEqual(p(), resolvedVar("n"), resolvedVar("n"))}
	proof := &ast.AllIntro{Var: ast.QuantVar{Name: "n", Type: ast.NewVar(p(), "Nat")}, Body: &ast.PReflexive{}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestCheckProofOfSomeIntroAndElim(t *testing.T) {
	ctx := NewContext(noUnions())
	some := &ast.Some{Vars: []ast.QuantVar{{Name: "x", Type: &ast.IntType{}}}, Body: mkEqual(p(), resolvedVar("x"), intLit(5))}
	introProof := &ast.SomeIntro{Witnesses: []ast.Term{intLit(5)}, Body: &ast.PReflexive{}}
	assert.NoError(t, CheckProofOf(ctx, introProof, some, env.Empty))

	e := env.Empty.DeclareProofVar("hsome", some)
	elimGoal := &ast.Bool{Value: true}
	elimProof := &ast.SomeElim{
		Witnesses: []string{"y"},
		Label:     "hy",
		Some:      &ast.PVar{Name: "hsome"},
		Body:      &ast.PTrue{},
	}
	assert.NoError(t, CheckProofOf(ctx, elimProof, elimGoal, e))
}

func TestCheckProofOfCases(t *testing.T) {
	ctx := NewContext(noUnions())
	or := &ast.Or{Args: []ast.Term{
		mkEqual(p(), intLit(1), intLit(1)),
		mkEqual(p(), intLit(2), intLit(2)),
	}}
	e := env.Empty.DeclareProofVar("hor", or)
	goal := mkEqual(p(), intLit(9), intLit(9))
	proof := &ast.Cases{
		Subject: &ast.PVar{Name: "hor"},
		Arms: []ast.CaseArm{
			{Label: "c1", Body: &ast.PReflexive{}},
			{Label: "c2", Body: &ast.PReflexive{}},
		},
	}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, e))
}

func TestCheckProofOfCasesArityMismatch(t *testing.T) {
	ctx := NewContext(noUnions())
	or := &ast.Or{Args: []ast.Term{mkEqual(p(), intLit(1), intLit(1))}}
	e := env.Empty.DeclareProofVar("hor", or)
	goal := mkEqual(p(), intLit(9), intLit(9))
	proof := &ast.Cases{
		Subject: &ast.PVar{Name: "hor"},
		Arms: []ast.CaseArm{
			{Label: "c1", Body: &ast.PReflexive{}},
			{Label: "c2", Body: &ast.PReflexive{}},
		},
	}

	assert.Error(t, CheckProofOf(ctx, proof, goal, e))
}

func TestModusPonensDirectImplication(t *testing.T) {
	ctx := NewContext(noUnions())
	e := env.Empty.DeclareProofVar("H", &ast.IfThen{
		Premise:    mkEqual(p(), intLit(1), intLit(1)),
		Conclusion: mkEqual(p(), intLit(2), intLit(2)),
	})
	goal := mkEqual(p(), intLit(2), intLit(2))
	proof := &ast.ModusPonens{Implication: &ast.PVar{Name: "H"}, Arg: &ast.PReflexive{}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, e))
}

// TestModusPonensUniversalInfersWitness mirrors applying a universally
// quantified implication ∀n. n=n ⇒ n+0=n to a proof of 3=3, inferring
// the witness n:=3 from the argument's shape (formulaMatch) rather than
// it being supplied explicitly.
func TestModusPonensUniversalInfersWitness(t *testing.T) {
	ctx := NewContext(noUnions())
	n := resolvedVar("n")
	universal := &ast.All{
		Var: ast.QuantVar{Name: "n", Type: &ast.IntType{}},
		Body: &ast.IfThen{
			Premise:    mkEqual(p(), n, n),
			Conclusion: mkEqual(p(), call("+", n, intLit(0)), n),
		},
	}
	e := env.Empty.
		DeclareProofVar("H", universal).
		DeclareProofVar("e3", mkEqual(p(), intLit(3), intLit(3)))
	goal := mkEqual(p(), call("+", intLit(3), intLit(0)), intLit(3))
	proof := &ast.ModusPonens{Implication: &ast.PVar{Name: "H"}, Arg: &ast.PVar{Name: "e3"}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, e))
}

func TestSuffices(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := mkEqual(p(), call("+", intLit(1), intLit(1)), intLit(2))
	proof := &ast.Suffices{
		Claim: mkEqual(p(), intLit(2), intLit(2)),
		Reason: &ast.ImpIntro{
			Label: "c",
			Body:  &ast.PReflexive{},
		},
		Rest: &ast.PReflexive{},
	}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestPLetBindsLocalHypothesis(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := mkEqual(p(), intLit(1), intLit(1))
	proof := &ast.PLet{
		Label:   "h",
		Formula: mkEqual(p(), intLit(2), intLit(2)),
		Reason:  &ast.PReflexive{},
		Rest:    &ast.PReflexive{},
	}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestPTLetNewDefinesLocalTerm(t *testing.T) {
	ctx := NewContext(noUnions())
	two := resolvedVar("two")
	// PTLetNew extends the same base env (env.Empty here) with
	// DefineTermVar("two", ...); resolving "two" against that same shape
	// up front gives it the index CheckProofOf will assign internally.
	assert.NoError(t, env.Empty.DefineTermVar("two", &ast.IntType{}, intLit(2)).ResolveVar(two, ast.FlavorTerm))
	goal := mkEqual(p(), two, intLit(2))
	proof := &ast.PTLetNew{
		Name: "two",
		Rhs:  intLit(2),
		Rest: &ast.PReflexive{},
	}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestPAnnotRestatesGoal(t *testing.T) {
	ctx := NewContext(noUnions())
	goal := mkEqual(p(), intLit(1), intLit(1))
	proof := &ast.PAnnot{Claim: mkEqual(p(), intLit(1), intLit(1)), Reason: &ast.PReflexive{}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestPAnnotMismatchFails(t *testing.T) {
	ctx := NewContext(noUnions())
	// goal normalizes to true, claim to false: a genuine mismatch, not
	// just a different (but equally true) restatement.
	goal := mkEqual(p(), intLit(1), intLit(1))
	proof := &ast.PAnnot{Claim: mkEqual(p(), intLit(2), intLit(3)), Reason: &ast.PSorry{}}

	assert.Error(t, CheckProofOf(ctx, proof, goal, env.Empty))
}

func TestPTermProvesSideFactWithoutChangingGoal(t *testing.T) {
	ctx := NewContext(noUnions())
	e := env.Empty.DeclareProofVar("h", mkEqual(p(), intLit(9), intLit(9)))
	goal := mkEqual(p(), intLit(1), intLit(1))
	proof := &ast.PTerm{
		Term:    intLit(9),
		Because: &ast.PVar{Name: "h"},
		Rest:    &ast.PReflexive{},
	}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, e))
}

func TestEnableDefsGatesDeltaWithinBody(t *testing.T) {
	ctx := NewContext(noUnions())
	e := env.Empty.DefineTermVar("two", &ast.IntType{}, intLit(2))
	two := resolvedVar("two")
	assert.NoError(t, e.ResolveVar(two, ast.FlavorTerm))
	goal := mkEqual(p(), two, intLit(2))
	proof := &ast.EnableDefs{Definitions: []ast.Term{two}, Body: &ast.PReflexive{}}

	assert.NoError(t, CheckProofOf(ctx, proof, goal, e))
	assert.Empty(t, ctx.Reduce.Only, "EnableDefs must restore the selective-unfold set after returning")
}

func TestPHelpUseAlwaysFails(t *testing.T) {
	ctx := NewContext(noUnions())
	e := env.Empty.DeclareProofVar("h", mkEqual(p(), intLit(1), intLit(1)))
	goal := mkEqual(p(), intLit(1), intLit(1))
	proof := &ast.PHelpUse{Subject: &ast.PVar{Name: "h"}}

	err := CheckProofOf(ctx, proof, goal, e)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.EntailmentFailure, de.Kind)
}

func TestSynthProofPVarUndefined(t *testing.T) {
	ctx := NewContext(noUnions())

	_, err := SynthProof(ctx, &ast.PVar{Name: "nope"}, env.Empty)

	assert.Error(t, err)
	de, ok := err.(*diag.Error)
	assert.True(t, ok)
	assert.Equal(t, diag.UndefinedName, de.Kind)
}

func TestSynthProofPRecallConjoinsFacts(t *testing.T) {
	ctx := NewContext(noUnions())
	e := env.Empty.
		DeclareProofVar("h1", mkEqual(p(), intLit(1), intLit(1))).
		DeclareProofVar("h2", mkEqual(p(), intLit(2), intLit(2)))

	formula, err := SynthProof(ctx, &ast.PRecall{Facts: []ast.Term{resolvedVar("h1"), resolvedVar("h2")}}, e)

	assert.NoError(t, err)
	and, ok := formula.(*ast.And)
	assert.True(t, ok)
	assert.Len(t, and.Args, 2)
}
