// Package driver implements the three-pass module checker (component C7):
// original_source/proof_checker.py's check_deduce ties process_declaration,
// type_check_stmt, collect_env, and check_proofs together into one
// top-to-bottom pass over a module's statements. Context plays the role
// kanso/internal/semantic.Analyzer plays for that teacher's contracts:
// one struct accumulating diagnostics across a single Analyze-style call,
// rather than a free function threading state through return values.
package driver

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"deduce/internal/ast"
	"deduce/internal/check"
	"deduce/internal/diag"
	"deduce/internal/env"
	"deduce/internal/proof"
	"deduce/internal/reduce"
)

// Verbosity mirrors proof_checker.py's get_verbose()/set_verbose() levels,
// gating how much the driver narrates its own passes.
type Verbosity int

const (
	VerbosityNone Verbosity = iota
	VerbosityCurrOnly
	VerbosityFull
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityNone:
		return "none"
	case VerbosityCurrOnly:
		return "curr_only"
	case VerbosityFull:
		return "full"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
}

// UnmarshalYAML accepts "none"/"curr_only"/"full" (and bare integers, for
// round-tripping an already-serialized Options), matching
// driver.Options' yaml.v3 configuration surface. yaml.v3 calls this with
// the raw *yaml.Node rather than v2's unmarshal-closure shape, so the
// scalar is decoded into a string first and a bare integer is tried as
// a fallback.
func (v *Verbosity) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		switch s {
		case "none", "":
			*v = VerbosityNone
		case "curr_only":
			*v = VerbosityCurrOnly
		case "full":
			*v = VerbosityFull
		default:
			return fmt.Errorf("driver: unknown verbosity %q", s)
		}
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return err
	}
	*v = Verbosity(n)
	return nil
}

// LoadOptions decodes an Options value from YAML, the one piece of
// ambient file-based configuration this checker exposes (the checker
// itself never reads files; only callers that want it use this).
func LoadOptions(r io.Reader) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("driver: decoding options: %w", err)
	}
	return opts, nil
}

// Options configures one Context, unmarshalled from YAML by callers that
// want file-based configuration (the checker itself never reads files).
type Options struct {
	Verbosity                 Verbosity `yaml:"verbosity"`
	ReduceOnly                []string  `yaml:"reduce_only"`
	StructuralRecursionStrict bool      `yaml:"structural_recursion_strict"`
}

// Context carries everything process_declaration/type_check_stmt/
// collect_env/check_proofs thread as ambient state across one checking
// run, including the two import memoization sets check_deduce keeps as
// process globals (`imported_modules`, `checked_modules` in the
// original) — here they're plain struct fields instead, per spec.md §9.
type Context struct {
	Opts Options

	// Modules supplies the pre-parsed statement list for each import
	// path an Import statement may name. Resolving a path to a module
	// (finding the file, parsing it) is out of scope for this checker;
	// the driver only reacts to an already-resolved module, exactly as
	// stmt.go's Import doc comment records.
	Modules map[string][]ast.Stmt

	Unions          map[string]*ast.Union
	ImportedModules map[string]bool
	CheckedModules  map[string]bool

	// ProofCheckCount counts how many times checkProofsPass actually ran
	// a module's proofs (as opposed to reusing a cached import
	// environment). It exists purely so a test can observe that
	// importing the same module twice checks its proofs once — the Go
	// stand-in for the original's habit of printing a "already checked"
	// trace line under full verbosity.
	ProofCheckCount int

	// importEnvs caches each import path's fully processed environment,
	// so resolveImport only ever declares/type-checks/collects/proves a
	// given module once per driver.Context, no matter how many other
	// modules import it.
	importEnvs map[string]env.Env

	Out io.Writer

	Reduce *reduce.Context
	Proof  *proof.Context

	Diagnostics []*diag.Error

	freshCount *int
}

// NewContext returns a fresh driver.Context. out receives Print output;
// if nil, Print is a no-op beyond normalizing its subject.
func NewContext(opts Options, modules map[string][]ast.Stmt, out io.Writer) *Context {
	unions := map[string]*ast.Union{}
	fc := 0
	return &Context{
		Opts:            opts,
		Modules:         modules,
		Unions:          unions,
		ImportedModules: map[string]bool{},
		CheckedModules:  map[string]bool{},
		importEnvs:      map[string]env.Env{},
		Out:             out,
		Reduce:          reduce.NewContext(),
		Proof:           proof.NewContext(unions),
		freshCount:      &fc,
	}
}

func (dc *Context) checkCtx() *check.Context {
	return check.New(dc.Unions, dc.Opts.StructuralRecursionStrict)
}

// trace narrates a pass at the configured verbosity, mirroring the
// get_verbose()-gated prints scattered through process_declaration and
// check_proof/check_proof_of. curr reports whether this event concerns
// the module actively being checked (as opposed to one it imports);
// VerbosityCurrOnly only narrates those.
func (dc *Context) trace(curr bool, format string, args ...any) {
	if dc.Out == nil {
		return
	}
	switch dc.Opts.Verbosity {
	case VerbosityNone:
		return
	case VerbosityCurrOnly:
		if !curr {
			return
		}
	}
	fmt.Fprintf(dc.Out, format+"\n", args...)
}

func (dc *Context) freshName(base string) string {
	*dc.freshCount++
	return fmt.Sprintf("%s$%d", base, *dc.freshCount)
}

// CheckModule runs the four passes over stmts in order — declare, type
// check, collect, check proofs — starting from baseEnv (the caller's
// prelude/builtins seed — C9 — plus whatever an enclosing module has
// already imported), and returns the resulting environment plus every
// diagnostic collected along the way (warnings from PHole/PSorry, and at
// most one fatal error: checking stops at the first statement that
// fails, since every later statement's own checking assumes a
// consistent environment). moduleID names this module for the
// CheckedModules gate; the outermost call a caller makes should pass a
// module identity that no Import inside it will also use, so its own
// proofs always get checked exactly once regardless of whether
// something also imports it.
func (dc *Context) CheckModule(stmts []ast.Stmt, moduleID string, baseEnv env.Env) (env.Env, []*diag.Error) {
	dc.trace(true, "checking module %s", moduleID)

	e1, err := dc.declarePass(stmts, baseEnv, true)
	if err != nil {
		dc.Diagnostics = append(dc.Diagnostics, asDiagError(err))
		return baseEnv, dc.Diagnostics
	}

	e2, err := dc.typeCheckPass(stmts, e1, true)
	if err != nil {
		dc.Diagnostics = append(dc.Diagnostics, asDiagError(err))
		return e1, dc.Diagnostics
	}

	e3, err := dc.collectPass(stmts, e2, true)
	if err != nil {
		dc.Diagnostics = append(dc.Diagnostics, asDiagError(err))
		return e2, dc.Diagnostics
	}

	if !dc.CheckedModules[moduleID] {
		dc.CheckedModules[moduleID] = true
		dc.ProofCheckCount++
		if err := dc.checkProofsPass(stmts, e3, true); err != nil {
			dc.Diagnostics = append(dc.Diagnostics, asDiagError(err))
			return e3, dc.Diagnostics
		}
	}

	dc.Diagnostics = append(dc.Diagnostics, dc.Proof.Diagnostics...)
	return e3, dc.Diagnostics
}

// resolveImport runs every pass (including proof-checking, gated the
// same way CheckModule gates its own) over the statements registered
// under path in dc.Modules, starting from an empty environment — an
// imported module is checked as a self-contained unit, per stmt.go's
// Import doc comment — and caches the resulting environment so that
// importing the same path from several different modules only ever
// declares, type-checks, collects, and proves it once. Mirrors
// check_deduce's `imported_modules`/`checked_modules` memoization.
func (dc *Context) resolveImport(path string) (env.Env, error) {
	if e, ok := dc.importEnvs[path]; ok {
		return e, nil
	}
	stmts, ok := dc.Modules[path]
	if !ok {
		return env.Empty, fmt.Errorf("driver: no module registered for import %q", path)
	}
	dc.trace(false, "importing module %s", path)
	dc.ImportedModules[path] = true

	e1, err := dc.declarePass(stmts, env.Empty, false)
	if err != nil {
		return env.Empty, err
	}
	e2, err := dc.typeCheckPass(stmts, e1, false)
	if err != nil {
		return env.Empty, err
	}
	e3, err := dc.collectPass(stmts, e2, false)
	if err != nil {
		return env.Empty, err
	}
	if !dc.CheckedModules[path] {
		dc.CheckedModules[path] = true
		dc.ProofCheckCount++
		if err := dc.checkProofsPass(stmts, e3, false); err != nil {
			return env.Empty, err
		}
	}
	dc.importEnvs[path] = e3
	return e3, nil
}

// declarePass is process_declaration: it folds left to right over
// stmts, forward-declaring every name a later statement in the same
// module might reference before its own value is known — union types
// and their constructors, a recursive function's signature, a Define's
// declared type (if any) — so mutually-referencing top-level statements
// resolve regardless of source order within the module.
func (dc *Context) declarePass(stmts []ast.Stmt, base env.Env, curr bool) (env.Env, error) {
	e := base
	for _, stmt := range stmts {
		next, err := dc.declareStmt(stmt, e, curr)
		if err != nil {
			return e, err
		}
		e = next
	}
	return e, nil
}

func (dc *Context) declareStmt(stmt ast.Stmt, e env.Env, curr bool) (env.Env, error) {
	switch s := stmt.(type) {
	case *ast.Import:
		imported, err := dc.resolveImport(s.Path)
		if err != nil {
			return e, err
		}
		return e.Extend(imported), nil

	case *ast.Union:
		return dc.declareUnion(s, e, curr)

	case *ast.RecFun:
		dc.trace(curr, "declaring %s", s.Name)
		typeEnv := e.DeclareTypeVars(s.TypeParams)
		for _, pt := range s.ParamTypes {
			if err := check.CheckType(pt, typeEnv); err != nil {
				return e, err
			}
		}
		if err := check.CheckType(s.ReturnType, typeEnv); err != nil {
			return e, err
		}
		ft := &ast.FunctionType{TypeParams: s.TypeParams, Params: s.ParamTypes, Return: s.ReturnType}
		return e.DeclareTermVar(s.Name, ft), nil

	case *ast.Define:
		if s.Type == nil {
			return e, nil // no declared type: inferred from Value during typeCheckPass
		}
		if err := check.CheckType(s.Type, e); err != nil {
			return e, err
		}
		return e.DeclareTermVar(s.Name, s.Type), nil

	case *ast.Theorem, *ast.Assert, *ast.Print:
		return e, nil

	default:
		return e, fmt.Errorf("driver: unknown statement %T", stmt)
	}
}

// declareUnion registers u in dc.Unions and declares its type name plus
// one term-variable binding per constructor, typed as the function from
// its fields to the union applied to its own type parameters — e.g.
// Cons : <T> (T, List<T>) -> List<T>. Mirrors process_declaration's
// Union case, which both records the union (for check_pattern's later
// lookups) and introduces every constructor as a callable.
func (dc *Context) declareUnion(u *ast.Union, e env.Env, curr bool) (env.Env, error) {
	dc.trace(curr, "declaring union %s", u.Name)
	if _, exists := dc.Unions[u.Name]; exists {
		return e, fmt.Errorf("driver: %s is already declared", u.Name)
	}
	dc.Unions[u.Name] = u
	e = e.DeclareType(u.Name)

	typeEnv := e.DeclareTypeVars(u.TypeParams)
	for _, c := range u.Constructors {
		for _, ft := range c.FieldTypes {
			if err := check.CheckType(ft, typeEnv); err != nil {
				return e, err
			}
		}
	}

	var selfType ast.Term
	if len(u.TypeParams) == 0 {
		selfType = ast.NewVar(u.At, u.Name, u.Name)
	} else {
		args := make([]ast.Term, len(u.TypeParams))
		for i, tp := range u.TypeParams {
			args[i] = ast.NewVar(u.At, tp, tp)
		}
		selfType = &ast.TypeInst{Head: ast.NewVar(u.At, u.Name, u.Name), Args: args}
	}

	for _, c := range u.Constructors {
		ft := &ast.FunctionType{TypeParams: u.TypeParams, Params: c.FieldTypes, Return: selfType}
		e = e.DeclareTermVar(c.Name, ft)
	}
	return e, nil
}

// typeCheckPass is type_check_stmt: it folds over stmts again, this
// time filling in every term's Typeof in place (and, for a Define whose
// type declarePass skipped, forward-declaring it here instead, so a
// later statement in the same fold can still reference it by name).
func (dc *Context) typeCheckPass(stmts []ast.Stmt, base env.Env, curr bool) (env.Env, error) {
	e := base
	for _, stmt := range stmts {
		next, err := dc.typeCheckStmt(stmt, e, curr)
		if err != nil {
			return e, err
		}
		e = next
	}
	return e, nil
}

func (dc *Context) typeCheckStmt(stmt ast.Stmt, e env.Env, curr bool) (env.Env, error) {
	ctx := dc.checkCtx()
	switch s := stmt.(type) {
	case *ast.Import:
		imported, err := dc.resolveImport(s.Path)
		if err != nil {
			return e, err
		}
		return e.Extend(imported), nil

	case *ast.Union:
		return e, nil // fully declared and well-formedness-checked in declarePass

	case *ast.RecFun:
		dc.trace(curr, "type-checking %s", s.Name)
		if err := check.CheckRecFun(ctx, s, e); err != nil {
			return e, err
		}
		return e, nil

	case *ast.Define:
		dc.trace(curr, "type-checking %s", s.Name)
		if s.Type != nil {
			val, err := check.CheckTerm(ctx, s.Value, s.Type, e)
			if err != nil {
				return e, err
			}
			s.Value = val
			return e, nil
		}
		val, err := check.SynthTerm(ctx, s.Value, e)
		if err != nil {
			return e, err
		}
		s.Value = val
		s.Type = val.Typeof()
		return e.DeclareTermVar(s.Name, s.Type), nil

	case *ast.Theorem:
		dc.trace(curr, "type-checking theorem %s", s.Name)
		frm, err := check.CheckFormula(ctx, s.Formula, e)
		if err != nil {
			return e, err
		}
		s.Formula = frm
		return e, nil

	case *ast.Assert:
		frm, err := check.CheckFormula(ctx, s.Formula, e)
		if err != nil {
			return e, err
		}
		s.Formula = frm
		return e, nil

	case *ast.Print:
		term, err := check.SynthTerm(ctx, s.Subject, e)
		if err != nil {
			return e, err
		}
		s.Subject = term
		return e, nil

	default:
		return e, fmt.Errorf("driver: unknown statement %T", stmt)
	}
}

// collectPass is collect_env: having type-checked every statement, it
// folds once more to produce the environment proofs actually run
// against, fully defining (not just declaring) every Define, RecFun,
// and Theorem. Running this as its own pass after typeCheckPass (rather
// than defining each name as soon as it's checked) lets a Theorem's
// proof reference a later Theorem in the same module, matching
// check_deduce's collect_env/check_proofs split.
func (dc *Context) collectPass(stmts []ast.Stmt, base env.Env, curr bool) (env.Env, error) {
	e := base
	for _, stmt := range stmts {
		next, err := dc.collectStmt(stmt, e, curr)
		if err != nil {
			return e, err
		}
		e = next
	}
	return e, nil
}

func (dc *Context) collectStmt(stmt ast.Stmt, e env.Env, curr bool) (env.Env, error) {
	switch s := stmt.(type) {
	case *ast.Import:
		imported, err := dc.resolveImport(s.Path)
		if err != nil {
			return e, err
		}
		return e.Extend(imported), nil

	case *ast.Union:
		return e, nil

	case *ast.RecFun:
		ft := &ast.FunctionType{TypeParams: s.TypeParams, Params: s.ParamTypes, Return: s.ReturnType}
		return e.DefineTermVar(s.Name, ft, s), nil

	case *ast.Define:
		return e.DefineTermVar(s.Name, s.Type, s.Value), nil

	case *ast.Theorem:
		return e.DeclareProofVar(s.Name, s.Formula), nil

	case *ast.Assert, *ast.Print:
		return e, nil

	default:
		return e, fmt.Errorf("driver: unknown statement %T", stmt)
	}
}

// checkProofsPass is check_proofs: the final fold, run only once per
// module identity, discharging every Theorem's and Assert's Proof
// against its Formula and printing every Print statement's normal form.
func (dc *Context) checkProofsPass(stmts []ast.Stmt, e env.Env, curr bool) error {
	for _, stmt := range stmts {
		if err := dc.checkProofsStmt(stmt, e, curr); err != nil {
			return err
		}
	}
	return nil
}

func (dc *Context) checkProofsStmt(stmt ast.Stmt, e env.Env, curr bool) error {
	switch s := stmt.(type) {
	case *ast.Theorem:
		dc.trace(curr, "checking proof of %s", s.Name)
		return proof.CheckProofOf(dc.Proof, s.Proof, s.Formula, e)

	case *ast.Assert:
		dc.trace(curr, "checking assertion")
		return proof.CheckProofOf(dc.Proof, s.Proof, s.Formula, e)

	case *ast.Print:
		var result ast.Term
		reduce.WithAll(dc.Reduce, func() {
			result = reduce.Reduce(dc.Reduce, s.Subject, e)
		})
		if dc.Out != nil {
			fmt.Fprintf(dc.Out, "%s\n", result)
		}
		return nil

	default:
		return nil
	}
}

func asDiagError(err error) *diag.Error {
	if de, ok := err.(*diag.Error); ok {
		return de
	}
	return diag.New(diag.AssertionFailed, ast.Position{}, err.Error())
}
