package driver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"deduce/internal/ast"
	"deduce/internal/diag"
)

func TestLoadOptionsDecodesYAML(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`
verbosity: full
reduce_only: ["foo", "bar"]
structural_recursion_strict: true
`))

	assert.NoError(t, err)
	assert.Equal(t, VerbosityFull, opts.Verbosity)
	assert.Equal(t, []string{"foo", "bar"}, opts.ReduceOnly)
	assert.True(t, opts.StructuralRecursionStrict)
}

func TestLoadOptionsRejectsUnknownVerbosity(t *testing.T) {
	_, err := LoadOptions(strings.NewReader(`verbosity: chatty`))
	assert.Error(t, err)
}

func TestLoadOptionsDefaultsToNoneWhenOmitted(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(`structural_recursion_strict: false`))

	assert.NoError(t, err)
	assert.Equal(t, VerbosityNone, opts.Verbosity)
}

// Scenario tests S1-S6 from spec.md §8's seed test suite, each driven
// through the real three-pass pipeline (driver.Seed + driver.CheckModule)
// rather than calling internal/check or internal/proof directly, so these
// exercise the whole C7 orchestration the way an end-to-end test should.

func p() ast.Position { return ast.Position{Filename: "t.ded", Line: 1, Column: 1} }

func resolvedVar(name string) *ast.Var { return ast.NewVar(p(), name, name) }

func call(name string, args ...ast.Term) *ast.Call {
	return &ast.Call{Rator: resolvedVar(name), Args: args}
}

func intLit(n int64) *ast.Int { return &ast.Int{Value: n} }

func natType() ast.Term { return ast.NewVar(p(), "Nat", "Nat") }

func mkEqual(lhs, rhs ast.Term) ast.Term {
	return &ast.Call{Rator: resolvedVar("="), Args: []ast.Term{lhs, rhs}}
}

func fatalDiags(diags []*diag.Error) []*diag.Error {
	var out []*diag.Error
	for _, d := range diags {
		if d.Level() == diag.LevelError {
			out = append(out, d)
		}
	}
	return out
}

// S1. Identity theorem.
//
//	theorem id: all x:Nat. x = x proof arbitrary x:Nat reflexive end
func TestScenarioS1IdentityTheoremAccepts(t *testing.T) {
	dc, base, err := Seed(Options{}, nil, nil)
	assert.NoError(t, err)

	formula := &ast.All{
		Var:  ast.QuantVar{Name: "x", Type: natType()},
		Body: mkEqual(resolvedVar("x"), resolvedVar("x")),
	}
	theorem := &ast.Theorem{
		Name:    "id",
		Formula: formula,
		Proof: &ast.AllIntro{
			Var:  ast.QuantVar{Name: "x", Type: natType()},
			Body: &ast.PReflexive{},
		},
	}

	_, diags := dc.CheckModule([]ast.Stmt{theorem}, "s1", base)
	assert.Empty(t, fatalDiags(diags))
}

// addRecFun grounds `x + 0 = x` over Nat: add(Zero, y) = y, add(Succ(n), y)
// = Succ(add(n, y)), recursing on its first parameter.
func addRecFun() *ast.RecFun {
	return &ast.RecFun{
		Name:       "add",
		ParamTypes: []ast.Term{natType(), natType()},
		ReturnType: natType(),
		Cases: []ast.RecFunCase{
			{
				Pattern: &ast.PatternCons{Constructor: "Zero"},
				Params:  []string{"y"},
				Body:    resolvedVar("y"),
			},
			{
				Pattern: &ast.PatternCons{Constructor: "Succ", Params: []string{"n2"}},
				Params:  []string{"y"},
				Body:    call("Succ", call("add", resolvedVar("n2"), resolvedVar("y"))),
			},
		},
	}
}

// S2. Rewrite fires.
//
//	theorem t: all x:Nat. x + 0 = x
//	proof induction Nat
//	  case zero { reflexive }
//	  case suc(n') suppose IH { rewrite IH }
//	end
//
// mutating `rewrite IH` to `reflexive` yields a TypeMismatch-shaped
// EntailmentFailure with a diff showing the two sides disagree.
func TestScenarioS2InductiveRewriteAccepts(t *testing.T) {
	dc, base, err := Seed(Options{}, nil, nil)
	assert.NoError(t, err)

	add := addRecFun()
	goalBody := mkEqual(call("add", resolvedVar("x"), call("Zero")), resolvedVar("x"))
	theorem := &ast.Theorem{
		Name:    "t",
		Formula: &ast.All{Var: ast.QuantVar{Name: "x", Type: natType()}, Body: goalBody},
		Proof: &ast.Induction{
			Type: natType(),
			Cases: []ast.IndCase{
				{Pattern: &ast.PatternCons{Constructor: "Zero"}, Body: &ast.PReflexive{}},
				{
					Pattern:             &ast.PatternCons{Constructor: "Succ", Params: []string{"n2"}},
					InductionHypotheses: []ast.IndHyp{{Label: "ih"}},
					Body: &ast.RewriteGoal{
						Equations: []ast.Proof{&ast.PVar{Name: "ih"}},
						Body:      &ast.PReflexive{},
					},
				},
			},
		},
	}

	_, diags := dc.CheckModule([]ast.Stmt{add, theorem}, "s2", base)
	assert.Empty(t, fatalDiags(diags))
}

// Mutating the successor case's proof from `rewrite IH` to a bare
// `reflexive` should fail: after one RecFun unfold the goal is
// `Succ(add(n2, Zero)) = Succ(n2)`, whose two sides don't normalize to
// the same term without using the induction hypothesis first.
func TestScenarioS2InductiveRewriteMutatedToReflexiveFails(t *testing.T) {
	dc, base, err := Seed(Options{}, nil, nil)
	assert.NoError(t, err)

	add := addRecFun()
	goalBody := mkEqual(call("add", resolvedVar("x"), call("Zero")), resolvedVar("x"))
	theorem := &ast.Theorem{
		Name:    "t",
		Formula: &ast.All{Var: ast.QuantVar{Name: "x", Type: natType()}, Body: goalBody},
		Proof: &ast.Induction{
			Type: natType(),
			Cases: []ast.IndCase{
				{Pattern: &ast.PatternCons{Constructor: "Zero"}, Body: &ast.PReflexive{}},
				{
					Pattern:             &ast.PatternCons{Constructor: "Succ", Params: []string{"n2"}},
					InductionHypotheses: []ast.IndHyp{{Label: "ih"}},
					Body:                &ast.PReflexive{},
				},
			},
		},
	}

	_, diags := dc.CheckModule([]ast.Stmt{add, theorem}, "s2b", base)
	fatal := fatalDiags(diags)
	assert.NotEmpty(t, fatal)
	assert.Equal(t, diag.EntailmentFailure, fatal[0].Kind)
}

// S3. Non-exhaustive switch.
//
//	fn f(xs: List<Nat>) -> Nat { case empty { Zero } }
func TestScenarioS3NonExhaustiveRecFunRejects(t *testing.T) {
	dc, base, err := Seed(Options{}, nil, nil)
	assert.NoError(t, err)

	listNat := &ast.TypeInst{Head: ast.NewVar(p(), "List", "List"), Args: []ast.Term{natType()}}
	f := &ast.RecFun{
		Name:       "f",
		ParamTypes: []ast.Term{listNat},
		ReturnType: natType(),
		Cases: []ast.RecFunCase{
			{Pattern: &ast.PatternCons{Constructor: "Nil"}, Body: call("Zero")},
		},
	}

	_, diags := dc.CheckModule([]ast.Stmt{f}, "s3", base)
	fatal := fatalDiags(diags)
	assert.NotEmpty(t, fatal)
	assert.Equal(t, diag.PatternNonExhaustive, fatal[0].Kind)
}

// S4. Overload ambiguous.
//
// Two `define +` overloads at the same (Int,Int)->Int signature; calling
// `+` on two arguments both overloads accept rejects with
// OverloadAmbiguous. (The scenario as written in spec.md calls `+` on two
// holes; this checker's overload resolution synthesizes every argument
// independent of which candidate is picked — see DESIGN.md's "known scope
// simplification" for internal/check's call.go — so a bare Hole can't
// stand in for the ambiguous argument; two identical-type overloads
// called with literals that both match equally reproduces the same
// OverloadAmbiguous outcome.)
func TestScenarioS4OverloadAmbiguousRejects(t *testing.T) {
	dc, base, err := Seed(Options{}, nil, nil)
	assert.NoError(t, err)

	intBinFt := &ast.FunctionType{Params: []ast.Term{&ast.IntType{}, &ast.IntType{}}, Return: &ast.IntType{}}
	addA := &ast.Define{
		Name:  "add_a",
		Type:  intBinFt,
		Value: &ast.Lambda{Params: []ast.Param{{Name: "a"}, {Name: "b"}}, Body: resolvedVar("a")},
	}
	addB := &ast.Define{
		Name:  "add_b",
		Type:  &ast.FunctionType{Params: []ast.Term{&ast.IntType{}, &ast.IntType{}}, Return: &ast.IntType{}},
		Value: &ast.Lambda{Params: []ast.Param{{Name: "a"}, {Name: "b"}}, Body: resolvedVar("b")},
	}
	ambiguousCall := &ast.Call{
		Rator: ast.NewVar(p(), "+", "add_a", "add_b"),
		Args:  []ast.Term{intLit(1), intLit(2)},
	}
	assertStmt := &ast.Assert{
		Formula: mkEqual(ambiguousCall, intLit(3)),
		Proof:   &ast.PHole{},
	}

	_, diags := dc.CheckModule([]ast.Stmt{addA, addB, assertStmt}, "s4", base)
	fatal := fatalDiags(diags)
	assert.NotEmpty(t, fatal)
	assert.Equal(t, diag.OverloadAmbiguous, fatal[0].Kind)
}

// S5. Hole advice.
//
//	goal: all x:List<Nat>. x = x, body: ?
//
// emits IncompleteProof whose advice contains both an `arbitrary`
// skeleton and an induction skeleton naming List's constructors and an
// induction-hypothesis label for its recursive field.
func TestScenarioS5HoleAdviceEnumeratesArbitraryAndInduction(t *testing.T) {
	dc, base, err := Seed(Options{}, nil, nil)
	assert.NoError(t, err)

	listNat := &ast.TypeInst{Head: ast.NewVar(p(), "List", "List"), Args: []ast.Term{natType()}}
	theorem := &ast.Theorem{
		Name:    "unfinished",
		Formula: &ast.All{Var: ast.QuantVar{Name: "x", Type: listNat}, Body: mkEqual(resolvedVar("x"), resolvedVar("x"))},
		Proof:   &ast.PHole{},
	}

	_, diags := dc.CheckModule([]ast.Stmt{theorem}, "s5", base)

	var hole *diag.Error
	for _, d := range diags {
		if d.Kind == diag.IncompleteProof {
			hole = d
			break
		}
	}
	if assert.NotNil(t, hole) {
		assert.True(t, hole.IsIncomplete)
		joined := strings.Join(hole.Notes, "\n")
		assert.Contains(t, joined, "arbitrary x:")
		assert.Contains(t, joined, "induction List")
		assert.Contains(t, joined, "case Nil")
		assert.Contains(t, joined, "case Cons")
		assert.Contains(t, joined, "IH1")
	}
}

// S6. Apply with quantified implication.
//
//	H: all n. n = n => n + 0 = n
//	E: 3 = 3
//	apply H to E synthesizes 3 + 0 = 3
//
// H and E are declared directly as proof hypotheses (the way
// proof_test.go's own ModusPonens cases do) rather than proven via their
// own Theorem statements: H's conclusion only normalizes for a literal
// argument (the builtin `+` only folds constant operands — see
// reduce.go's evalPrimitive), so discharging it for an abstract n would
// need its own induction, which isn't what this scenario is testing.
func TestScenarioS6ApplyQuantifiedImplication(t *testing.T) {
	dc, base, err := Seed(Options{}, nil, nil)
	assert.NoError(t, err)

	n := resolvedVar("n")
	hFormula := &ast.All{
		Var: ast.QuantVar{Name: "n", Type: &ast.IntType{}},
		Body: &ast.IfThen{
			Premise:    mkEqual(n, n),
			Conclusion: mkEqual(call("+", n, intLit(0)), n),
		},
	}
	e := base.
		DeclareProofVar("H", hFormula).
		DeclareProofVar("E", mkEqual(intLit(3), intLit(3)))

	goal := mkEqual(call("+", intLit(3), intLit(0)), intLit(3))
	main := &ast.Theorem{
		Name:    "main",
		Formula: goal,
		Proof: &ast.ModusPonens{
			Implication: &ast.PVar{Name: "H"},
			Arg:         &ast.PVar{Name: "E"},
		},
	}

	_, diags := dc.CheckModule([]ast.Stmt{main}, "s6", e)
	assert.Empty(t, fatalDiags(diags))
}

// Import memoization (spec §8 invariant 6): importing the same module
// twice from one importer checks its proofs exactly once. ProofCheckCount
// counts every module whose proof pass ran: util once, plus main itself.
func TestImportMemoizationChecksProofsOnce(t *testing.T) {
	util := []ast.Stmt{
		&ast.Theorem{Name: "trivial", Formula: &ast.Bool{Value: true}, Proof: &ast.PTrue{}},
	}
	modules := map[string][]ast.Stmt{"util": util}

	dc, base, err := Seed(Options{}, modules, nil)
	assert.NoError(t, err)

	main := []ast.Stmt{
		&ast.Import{Path: "util"},
		&ast.Import{Path: "util"},
	}
	_, diags := dc.CheckModule(main, "main", base)

	assert.Empty(t, fatalDiags(diags))
	assert.Equal(t, 2, dc.ProofCheckCount)
	assert.True(t, dc.CheckedModules["util"])
}
